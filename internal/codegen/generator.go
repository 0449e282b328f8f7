// Package codegen turns analyzed records into zero-copy buffer views.
package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexhholmes/nocopy/internal/analyzer"
	"github.com/alexhholmes/nocopy/internal/attrs"
	"github.com/alexhholmes/nocopy/internal/schema"
)

// Options controls code emission.
type Options struct {
	// LayoutChecks emits compile-time assertions that a @repr(C) record and
	// its view agree on size and field offsets.
	LayoutChecks bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{LayoutChecks: true}
}

// Unit is the generated code for a single record.
type Unit struct {
	Record    string
	Config    schema.Config
	Layout    *analyzer.Layout
	Accessors []Accessor
	Imports   []string // sorted import paths the code depends on
	Code      string   // declarations only, without package clause or imports
}

// Declared returns the package-level identifiers the unit declares.
func (u *Unit) Declared() []string {
	name := u.Config.OutputName
	return []string{
		name,
		name + "Size",
		prefixed("New", name),
		prefixed("Wrap", name),
	}
}

// Generator generates a buffer view for each record of a file.
type Generator struct {
	registry *analyzer.TypeRegistry
	opts     Options
}

// NewGenerator creates a new code generator. The registry resolves the named
// types declared next to the records.
func NewGenerator(reg *analyzer.TypeRegistry, opts Options) *Generator {
	if reg == nil {
		reg = analyzer.NewTypeRegistry()
	}
	return &Generator{
		registry: reg,
		opts:     opts,
	}
}

// Generate produces the view of s. Any error aborts the record and no code is
// returned for it.
func (g *Generator) Generate(s *schema.StructSchema) (*Unit, error) {
	if _, err := analyzer.CheckShape(s); err != nil {
		return nil, err
	}

	cfg, err := attrs.Resolve(s.Name, s.Attrs)
	if err != nil {
		return nil, err
	}

	layout, err := analyzer.Analyze(s, g.registry)
	if err != nil {
		return nil, err
	}

	syn := newSynthesizer(cfg)
	accessors, err := syn.synthesizeAll(s.Name, layout)
	if err != nil {
		return nil, err
	}

	var code strings.Builder
	v := newView(s.Name, cfg, layout)

	code.WriteString(v.declarations(byteOrderNote(cfg)))
	code.WriteString("\n")
	code.WriteString(v.recordCopies())

	if g.opts.LayoutChecks && layout.Repr == schema.ReprC {
		code.WriteString("\n")
		code.WriteString(v.layoutChecks())
		syn.imports["unsafe"] = true
	}

	for _, a := range accessors {
		code.WriteString("\n")
		code.WriteString(a.Code)
	}

	syn.imports["fmt"] = true

	return &Unit{
		Record:    s.Name,
		Config:    cfg,
		Layout:    layout,
		Accessors: accessors,
		Imports:   sortedKeys(syn.imports),
		Code:      code.String(),
	}, nil
}

// view names the declarations emitted around the accessors.
type view struct {
	record string
	name   string
	size   string // size constant
	newFn  string
	wrapFn string
	layout *analyzer.Layout
}

func newView(record string, cfg schema.Config, layout *analyzer.Layout) *view {
	return &view{
		record: record,
		name:   cfg.OutputName,
		size:   cfg.OutputName + "Size",
		newFn:  prefixed("New", cfg.OutputName),
		wrapFn: prefixed("Wrap", cfg.OutputName),
		layout: layout,
	}
}

// declarations emits the size constant, the view type and its constructors.
func (v *view) declarations(order string) string {
	var code strings.Builder

	code.WriteString(fmt.Sprintf("// %s is the size in bytes of %s.\n", v.size, v.name))
	code.WriteString(fmt.Sprintf("const %s = %d\n\n", v.size, v.layout.Size))

	code.WriteString(fmt.Sprintf("// %s views the bytes of %s records without copying.\n", v.name, v.record))
	if order != "" {
		code.WriteString(fmt.Sprintf("// Integer fields are stored %s.\n", order))
	}
	code.WriteString(fmt.Sprintf("type %s [%s]byte\n\n", v.name, v.size))

	code.WriteString(fmt.Sprintf("// %s returns a view backed by b. Writes through the view change b.\n", v.newFn))
	code.WriteString(fmt.Sprintf("func %s(b *[%s]byte) *%s {\n", v.newFn, v.size, v.name))
	code.WriteString(fmt.Sprintf("\treturn (*%s)(b)\n", v.name))
	code.WriteString("}\n\n")

	code.WriteString(fmt.Sprintf("// %s returns a view backed by b, which must hold exactly %s bytes.\n", v.wrapFn, v.size))
	code.WriteString(fmt.Sprintf("func %s(b []byte) (*%s, error) {\n", v.wrapFn, v.name))
	code.WriteString(fmt.Sprintf("\tif len(b) != %s {\n", v.size))
	code.WriteString(fmt.Sprintf("\t\treturn nil, fmt.Errorf(\"%s: expected %%d bytes, got %%d\", %s, len(b))\n", v.name, v.size))
	code.WriteString("\t}\n")
	code.WriteString(fmt.Sprintf("\treturn %s((*[%s]byte)(b)), nil\n", v.newFn, v.size))
	code.WriteString("}\n\n")

	code.WriteString("// Bytes returns the underlying bytes. The slice aliases p.\n")
	code.WriteString(fmt.Sprintf("func (p *%s) Bytes() []byte {\n", v.name))
	code.WriteString("\treturn p[:]\n")
	code.WriteString("}\n")

	return code.String()
}

// recordCopies emits Record and SetRecord, which copy every accessible field
// between the view and a record value.
func (v *view) recordCopies() string {
	var code strings.Builder
	fields := v.layout.Accessible()

	code.WriteString("// Record returns a copy of the fields stored in p.\n")
	code.WriteString(fmt.Sprintf("func (p *%s) Record() %s {\n", v.name, v.record))
	if len(fields) == 0 {
		code.WriteString(fmt.Sprintf("\treturn %s{}\n", v.record))
	} else {
		code.WriteString(fmt.Sprintf("\treturn %s{\n", v.record))
		for _, f := range fields {
			get, _ := AccessorNames(f.Field.Name)
			code.WriteString(fmt.Sprintf("\t\t%s: p.%s(),\n", f.Field.Name, get))
		}
		code.WriteString("\t}\n")
	}
	code.WriteString("}\n\n")

	code.WriteString("// SetRecord stores every field of r in p.\n")
	code.WriteString(fmt.Sprintf("func (p *%s) SetRecord(r %s) {\n", v.name, v.record))
	for _, f := range fields {
		_, set := AccessorNames(f.Field.Name)
		code.WriteString(fmt.Sprintf("\tp.%s(r.%s)\n", set, f.Field.Name))
	}
	code.WriteString("}\n")

	return code.String()
}

// layoutChecks emits array declarations whose length underflows, and so fails
// to compile, when the record and the view disagree.
func (v *view) layoutChecks() string {
	var code strings.Builder

	code.WriteString(fmt.Sprintf("// The compiler must lay out %s exactly as %s does.\n", v.record, v.name))
	code.WriteString("var (\n")
	code.WriteString(fmt.Sprintf("\t_ [%s - unsafe.Sizeof(%s{})]struct{}\n", v.size, v.record))
	code.WriteString(fmt.Sprintf("\t_ [unsafe.Sizeof(%s{}) - %s]struct{}\n", v.record, v.size))
	for _, f := range v.layout.Fields {
		if f.Field.Blank() {
			continue
		}
		offset := fmt.Sprintf("unsafe.Offsetof(%s{}.%s)", v.record, f.Field.Name)
		code.WriteString(fmt.Sprintf("\t_ [%d - %s]struct{}\n", f.Offset, offset))
		code.WriteString(fmt.Sprintf("\t_ [%s - %d]struct{}\n", offset, f.Offset))
	}
	code.WriteString(")\n")

	return code.String()
}

// byteOrderNote describes the configured byte order, or returns "" when
// fields keep the host order.
func byteOrderNote(cfg schema.Config) string {
	if cfg.Endian == schema.Native {
		return ""
	}
	return cfg.Endian.String() + "-endian"
}

// prefixed joins prefix and name, keeping the result unexported when name is.
func prefixed(prefix, name string) string {
	if name != "" && strings.ToLower(name[:1]) == name[:1] {
		return strings.ToLower(prefix) + upperFirst(name)
	}
	return prefix + name
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
