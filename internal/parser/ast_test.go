package parser

import (
	"go/token"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexhholmes/nocopy/internal/schema"
)

// ignorePos drops source positions from comparisons.
var ignorePos = cmpopts.IgnoreTypes(token.Position{})

func TestParseFile(t *testing.T) {
	file, err := ParseFile("testdata/simple.go")
	require.NoError(t, err)

	assert.Equal(t, "testdata", file.Package)

	// PageHeader, Entry and Tag carry @nocopy. IgnoredType has no
	// annotation and NotRequested only a @repr.
	want := []*schema.StructSchema{
		{
			Name:  "PageHeader",
			Shape: schema.ShapeStruct,
			Repr:  schema.ReprC,
			Attrs: []schema.Attribute{{Text: `(endian = "big")`, Placement: schema.Outer}},
			Fields: []schema.FieldSchema{
				{Name: "Magic", Type: "uint32"},
				{Name: "Flags", Type: "uint16"},
				{Name: "Level", Type: "uint8"},
				{Name: "_", Type: "uint8"},
				{Name: "ID", Type: "PageID"},
				{Name: "Owner", Type: "UUID"},
				{Name: "Checksum", Type: "[2]uint32"},
			},
		},
		{
			Name:  "Entry",
			Shape: schema.ShapeStruct,
			Attrs: []schema.Attribute{{Text: `(name = "EntryView")`, Placement: schema.Outer}},
			Fields: []schema.FieldSchema{
				{Name: "_", Type: "structs.HostLayout"},
				{Name: "Key", Type: "uint32"},
				{Name: "Size", Type: "uint32"},
				{Name: "Deleted", Type: "bool"},
			},
		},
		{
			Name:  "Tag",
			Shape: schema.ShapeStruct,
			Repr:  schema.ReprPacked,
			Fields: []schema.FieldSchema{
				{Name: "Kind", Type: "uint8"},
				{Name: "Len", Type: "uint16"},
			},
		},
	}

	if diff := cmp.Diff(want, file.Records, ignorePos, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("ParseFile() records mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "uint64", file.Registry.ResolveType("PageID"))
	assert.Equal(t, "[16]byte", file.Registry.ResolveType("UUID"))
}

func TestParseFilePositions(t *testing.T) {
	file, err := ParseFile("testdata/simple.go")
	require.NoError(t, err)
	require.NotEmpty(t, file.Records)

	header := file.Records[0]
	assert.Equal(t, "testdata/simple.go", header.Pos.Filename)
	assert.Equal(t, 13, header.Pos.Line)
	require.Len(t, header.Attrs, 1)
	assert.Equal(t, 11, header.Attrs[0].Pos.Line)
}

func TestParseInvalidShapes(t *testing.T) {
	file, err := ParseFile("testdata/invalid.go")
	require.NoError(t, err, "shape problems are reported by the analyzer")
	require.Len(t, file.Records, 2)

	page := file.Records[0]
	assert.Equal(t, "Page", page.Name)
	assert.Equal(t, schema.ShapeOther, page.Shape)

	leaf := file.Records[1]
	require.Len(t, leaf.Fields, 2)
	assert.Equal(t, "", leaf.Fields[0].Name, "embedded field has no name")
	assert.Equal(t, "Header", leaf.Fields[0].Type)

	// The trailing field comment is an inner attribute.
	require.Len(t, leaf.Attrs, 1)
	assert.Equal(t, schema.Inner, leaf.Attrs[0].Placement)
	assert.Equal(t, `(endian = "big")`, leaf.Attrs[0].Text)
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
		check   func(t *testing.T, f *File)
	}{
		{
			name: "block comment",
			src: `package p
/*
 * @nocopy(endian = "little")
 * @repr(packed)
 */
type T struct{ A uint16 }
`,
			check: func(t *testing.T, f *File) {
				require.Len(t, f.Records, 1)
				assert.Equal(t, schema.ReprPacked, f.Records[0].Repr)
				require.Len(t, f.Records[0].Attrs, 1)
				assert.Equal(t, `(endian = "little")`, f.Records[0].Attrs[0].Text)
			},
		},
		{
			name: "grouped declaration",
			src: `package p
type (
	// @nocopy
	// @repr(C)
	A struct{ X uint8 }

	B struct{ Y uint8 }
)
`,
			check: func(t *testing.T, f *File) {
				require.Len(t, f.Records, 1)
				assert.Equal(t, "A", f.Records[0].Name)
			},
		},
		{
			name: "malformed attribute kept for the resolver",
			src: `package p
// @nocopy endian=big
// @repr(C)
type T struct{ A uint16 }
`,
			check: func(t *testing.T, f *File) {
				require.Len(t, f.Records, 1)
				require.Len(t, f.Records[0].Attrs, 1)
				assert.Equal(t, "endian=big", f.Records[0].Attrs[0].Text)
			},
		},
		{
			name: "keyword prefix is not a directive",
			src: `package p
// @nocopyright 2024
type T struct{ A uint16 }
`,
			check: func(t *testing.T, f *File) {
				assert.Empty(t, f.Records)
			},
		},
		{
			name: "unknown repr",
			src: `package p
// @nocopy
// @repr(Rust)
type T struct{ A uint16 }
`,
			wantErr: "unknown representation: Rust",
		},
		{
			name: "unknown repr without request",
			src: `package p
// @repr(Rust)
type Other struct{ A uint16 }

// @nocopy
// @repr(C)
type T struct{ A uint16 }
`,
			check: func(t *testing.T, f *File) {
				require.Len(t, f.Records, 1)
				assert.Equal(t, "T", f.Records[0].Name)
				assert.Equal(t, schema.ReprC, f.Records[0].Repr)
			},
		},
		{
			name: "unknown repr before request",
			src: `package p
// @repr(Rust)
// @nocopy
type T struct{ A uint16 }
`,
			wantErr: "unknown representation: Rust",
		},
		{
			name: "free-standing comment in body",
			src: `package p
// @nocopy
// @repr(C)
type T struct {
	A uint16

	// @nocopy(endian = "big")
}

// @nocopy(endian = "little")
type After struct{ B uint8 }
`,
			check: func(t *testing.T, f *File) {
				require.Len(t, f.Records, 2)
				attrs := f.Records[0].Attrs
				require.Len(t, attrs, 1)
				assert.Equal(t, schema.Inner, attrs[0].Placement)
				assert.Equal(t, `(endian = "big")`, attrs[0].Text)
				assert.Equal(t, 7, attrs[0].Pos.Line)

				// Comments outside the braces are not part of the body
				require.Len(t, f.Records[1].Attrs, 1)
				assert.Equal(t, schema.Outer, f.Records[1].Attrs[0].Placement)
			},
		},
		{
			name: "malformed repr in a field comment",
			src: `package p
// @nocopy
// @repr(C)
type T struct {
	// @repr(whatever) is only prose here
	A uint16
}
`,
			check: func(t *testing.T, f *File) {
				require.Len(t, f.Records, 1)
				assert.Empty(t, f.Records[0].Attrs)
			},
		},
		{
			name: "package-level identifiers",
			src: `package p

import "fmt"

const Size, _ = 4, 0

var debug = fmt.Sprint

type (
	ID uint64
	T  struct{ A uint16 }
)

func init() {}

func NewT() *T { return nil }

func (t *T) Reset() {}
`,
			check: func(t *testing.T, f *File) {
				var names []string
				for name := range f.Declared {
					names = append(names, name)
				}
				assert.ElementsMatch(t, []string{"Size", "debug", "ID", "T", "NewT"}, names)
				assert.Equal(t, 16, f.Declared["NewT"].Line)
			},
		},
		{
			name: "generic struct",
			src: `package p
// @nocopy
// @repr(C)
type T[E any] struct{ A E }
`,
			wantErr: "generic types are not supported",
		},
		{
			name:    "syntax error",
			src:     "package p\ntype T struct {",
			wantErr: "parse error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseSource("src.go", tt.src)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, f)
		})
	}
}
