// Package parser extracts records annotated with @nocopy from Go source.
package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"

	"github.com/alexhholmes/nocopy/internal/analyzer"
	"github.com/alexhholmes/nocopy/internal/schema"
)

// File is a parsed Go source file.
type File struct {
	Path    string
	Package string
	Records []*schema.StructSchema

	// Registry knows the named non-struct types declared in the file, e.g.
	// `type PageID uint64`.
	Registry *analyzer.TypeRegistry

	// Declared maps every package-level identifier of the file to where it
	// is declared. Methods are not included.
	Declared map[string]token.Position
}

// ParseFile parses a Go source file and extracts types with @nocopy annotations
func ParseFile(filename string) (*File, error) {
	return ParseSource(filename, nil)
}

// ParseSource is like ParseFile but reads the source from src when it is not
// nil (see go/parser.ParseFile for accepted types).
func ParseSource(filename string, src any) (*File, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	f := &File{
		Path:     filename,
		Package:  file.Name.Name,
		Registry: analyzer.NewTypeRegistry(),
		Declared: make(map[string]token.Position),
	}
	if err := f.extractTypes(fset, file); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) extractTypes(fset *token.FileSet, file *ast.File) error {
	for _, decl := range file.Decls {
		f.declare(fset, decl)

		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec := spec.(*ast.TypeSpec)

			doc := typeSpec.Doc
			if doc == nil && len(genDecl.Specs) == 1 {
				doc = genDecl.Doc
			}

			directives, err := ScanDirectives(fset, doc, schema.Outer)
			if err != nil && directives.Requested {
				return &schema.SchemaError{Struct: typeSpec.Name.Name, Msg: err.Error()}
			}

			structType, isStruct := typeSpec.Type.(*ast.StructType)
			if !isStruct && typeSpec.TypeParams == nil {
				// Named scalar or array type, usable as an opaque field type.
				f.Registry.RegisterAlias(typeSpec.Name.Name, typeToString(typeSpec.Type))
			}

			if !directives.Requested {
				continue // No @nocopy, skip this type
			}
			if typeSpec.TypeParams != nil {
				return &schema.SchemaError{
					Struct: typeSpec.Name.Name,
					Pos:    fset.Position(typeSpec.Pos()),
					Msg:    "generic types are not supported",
				}
			}

			record := &schema.StructSchema{
				Name:  typeSpec.Name.Name,
				Shape: schema.ShapeOther,
				Attrs: directives.Attrs,
				Repr:  directives.Repr,
				Pos:   fset.Position(typeSpec.Pos()),
			}

			if isStruct {
				record.Shape = schema.ShapeStruct
				fields, inner, err := extractFields(fset, structType, bodyComments(file, structType))
				if err != nil {
					return &schema.SchemaError{Struct: record.Name, Msg: err.Error()}
				}
				record.Fields = fields
				record.Attrs = append(record.Attrs, inner...)
			}

			f.Records = append(f.Records, record)
		}
	}

	return nil
}

// declare records the package-level identifiers introduced by decl.
func (f *File) declare(fset *token.FileSet, decl ast.Decl) {
	add := func(id *ast.Ident) {
		if id.Name != "_" && id.Name != "init" {
			f.Declared[id.Name] = fset.Position(id.Pos())
		}
	}

	switch d := decl.(type) {
	case *ast.FuncDecl:
		if d.Recv == nil {
			add(d.Name)
		}
	case *ast.GenDecl:
		for _, spec := range d.Specs {
			switch s := spec.(type) {
			case *ast.TypeSpec:
				add(s.Name)
			case *ast.ValueSpec:
				for _, name := range s.Names {
					add(name)
				}
			}
		}
	}
}

// bodyComments returns the comment groups between the braces of a struct,
// whether attached to a field or free-standing.
func bodyComments(file *ast.File, structType *ast.StructType) []*ast.CommentGroup {
	open, closing := structType.Fields.Opening, structType.Fields.Closing
	var groups []*ast.CommentGroup
	for _, group := range file.Comments {
		if group.Pos() > open && group.End() <= closing {
			groups = append(groups, group)
		}
	}
	return groups
}

// extractFields returns the fields of a struct in declaration order together
// with any @nocopy attribute written inside the struct body.
func extractFields(fset *token.FileSet, structType *ast.StructType, comments []*ast.CommentGroup) ([]schema.FieldSchema, []schema.Attribute, error) {
	var fields []schema.FieldSchema
	var inner []schema.Attribute

	for _, group := range comments {
		d, err := ScanDirectives(fset, group, schema.Inner)
		if err != nil && d.Requested {
			return nil, nil, err
		}
		inner = append(inner, d.Attrs...)
		if d.Requested && len(d.Attrs) == 0 {
			// A bare @nocopy inside the body is still misplaced.
			inner = append(inner, schema.Attribute{
				Placement: schema.Inner,
				Pos:       fset.Position(group.Pos()),
			})
		}
	}

	for _, field := range structType.Fields.List {
		goType := typeToString(field.Type)

		if len(field.Names) == 0 {
			// Embedded field, rejected by the analyzer
			fields = append(fields, schema.FieldSchema{
				Type: goType,
				Pos:  fset.Position(field.Pos()),
			})
			continue
		}

		for _, name := range field.Names {
			fields = append(fields, schema.FieldSchema{
				Name: name.Name,
				Type: goType,
				Pos:  fset.Position(name.Pos()),
			})
		}
	}

	return fields, inner, nil
}

// typeToString converts AST type expression to string
func typeToString(expr ast.Expr) string {
	return types.ExprString(expr)
}
