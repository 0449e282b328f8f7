// Package schema defines the record model consumed by the generator.
//
// A StructSchema is built once by a front-end (see internal/parser), consumed
// by a single generation pass and then discarded.
package schema

import "go/token"

// Shape tells whether a declaration is a struct.
type Shape int

const (
	ShapeStruct Shape = iota
	ShapeOther
)

// Repr is the fixed-layout marker of a record.
type Repr int

const (
	ReprNone   Repr = iota // no marker, layout is not guaranteed
	ReprC                  // natural alignment, matches the Go compiler's layout
	ReprPacked             // declared order, no padding
)

func (r Repr) String() string {
	switch r {
	case ReprC:
		return "C"
	case ReprPacked:
		return "packed"
	default:
		return "none"
	}
}

// Endian is the wire order of integer fields.
type Endian int

const (
	Native Endian = iota
	Big
	Little
)

func (e Endian) String() string {
	switch e {
	case Big:
		return "big"
	case Little:
		return "little"
	default:
		return "native"
	}
}

// Placement is where an attribute appeared relative to the declaration.
type Placement int

const (
	Outer Placement = iota // doc comment of the type
	Inner                  // inside the struct body
)

func (p Placement) String() string {
	if p == Inner {
		return "inner"
	}
	return "outer"
}

// Attribute is one raw "@nocopy" annotation. Text holds everything after the
// keyword, e.g. `(endian = "big")`.
type Attribute struct {
	Text      string
	Placement Placement
	Pos       token.Position
}

// FieldSchema is a single struct field. An empty Name marks an embedded field.
type FieldSchema struct {
	Name string
	Type string
	Pos  token.Position
}

// Blank reports whether the field is a "_" padding field.
func (f FieldSchema) Blank() bool {
	return f.Name == "_"
}

// StructSchema is a record definition as produced by a front-end.
type StructSchema struct {
	Name   string
	Shape  Shape
	Fields []FieldSchema
	Attrs  []Attribute
	Repr   Repr
	Pos    token.Position
}

// Config is the resolved per-struct configuration.
type Config struct {
	OutputName string
	Endian     Endian
}

// DefaultSuffix is appended to the struct name when no name is configured.
const DefaultSuffix = "Buffer"

// DefaultConfig returns the configuration used when a struct carries no
// attributes.
func DefaultConfig(structName string) Config {
	return Config{
		OutputName: structName + DefaultSuffix,
		Endian:     Native,
	}
}
