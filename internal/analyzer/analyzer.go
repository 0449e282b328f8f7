// Package analyzer classifies record fields and computes the byte layout of a
// view.
package analyzer

import (
	"fmt"

	"github.com/alexhholmes/nocopy/internal/schema"
)

// FieldLayout is a field placed in the view.
type FieldLayout struct {
	Field  schema.FieldSchema
	Kind   Kind
	Codec  *Codec
	Offset int // Byte offset where the field begins
}

// End returns the byte offset just past the field.
func (f FieldLayout) End() int {
	return f.Offset + f.Codec.Size
}

// Accessible reports whether the field gets a getter/setter pair.
func (f FieldLayout) Accessible() bool {
	return !f.Field.Blank() && !f.Codec.Marker
}

// Layout contains the analyzed byte layout of a record.
type Layout struct {
	Record string
	Repr   schema.Repr
	Size   int
	Align  int
	Fields []FieldLayout
}

// Accessible returns the fields that receive accessors, in declaration order.
func (l *Layout) Accessible() []FieldLayout {
	var out []FieldLayout
	for _, f := range l.Fields {
		if f.Accessible() {
			out = append(out, f)
		}
	}
	return out
}

// CheckShape verifies that s is a struct carrying a fixed-layout marker and
// returns the effective representation. A blank structs.HostLayout field
// marks a C-compatible layout.
func CheckShape(s *schema.StructSchema) (schema.Repr, error) {
	if s == nil {
		return schema.ReprNone, fmt.Errorf("schema is nil")
	}
	if s.Shape != schema.ShapeStruct {
		return schema.ReprNone, &schema.SchemaError{
			Struct: s.Name, Pos: s.Pos,
			Msg: "only struct types are supported",
		}
	}

	hostLayout := false
	for _, f := range s.Fields {
		if f.Type == HostLayoutType {
			hostLayout = true
			break
		}
	}

	switch {
	case s.Repr == schema.ReprPacked && hostLayout:
		return schema.ReprNone, &schema.SchemaError{
			Struct: s.Name, Pos: s.Pos,
			Msg: HostLayoutType + " conflicts with @repr(packed)",
		}
	case s.Repr != schema.ReprNone:
		return s.Repr, nil
	case hostLayout:
		return schema.ReprC, nil
	}

	return schema.ReprNone, &schema.SchemaError{
		Struct: s.Name, Pos: s.Pos,
		Msg: "struct must be marked @repr(C), @repr(packed) or carry a _ " + HostLayoutType + " field",
	}
}

// Analyze performs layout analysis on a record.
func Analyze(s *schema.StructSchema, registry *TypeRegistry) (*Layout, error) {
	repr, err := CheckShape(s)
	if err != nil {
		return nil, err
	}
	if registry == nil {
		registry = NewTypeRegistry()
	}

	l := &Layout{
		Record: s.Name,
		Repr:   repr,
		Align:  1,
	}

	offset := 0
	for _, field := range s.Fields {
		fail := func(format string, args ...any) (*Layout, error) {
			return nil, &schema.SchemaError{
				Struct: s.Name, Field: field.Name, Pos: field.Pos,
				Msg: fmt.Sprintf(format, args...),
			}
		}

		if field.Name == "" {
			return fail("embedded field %s: all fields must be named", field.Type)
		}

		codec, err := registry.CodecOf(field.Type)
		if err != nil {
			return fail("%v", err)
		}
		if codec.Marker && !field.Blank() {
			return fail("%s must be a blank (_) field", HostLayoutType)
		}

		if repr == schema.ReprC {
			offset = alignUp(offset, codec.Align)
			l.Align = max(l.Align, codec.Align)
		}

		l.Fields = append(l.Fields, FieldLayout{
			Field:  field,
			Kind:   Classify(field.Type),
			Codec:  codec,
			Offset: offset,
		})
		offset += codec.Size
	}

	if repr == schema.ReprC {
		// The gc compiler pads a trailing zero-size field so that its address
		// stays inside the struct.
		if n := len(l.Fields); n > 0 && offset > 0 && l.Fields[n-1].Codec.Size == 0 {
			offset++
		}
		offset = alignUp(offset, l.Align)
	}
	l.Size = offset

	return l, nil
}

func alignUp(n, align int) int {
	if align <= 1 {
		return n
	}
	return (n + align - 1) &^ (align - 1)
}
