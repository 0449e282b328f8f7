package codegen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alexhholmes/nocopy/internal/analyzer"
	"github.com/alexhholmes/nocopy/internal/schema"
)

// AccessorKind tells a getter from a setter.
type AccessorKind int

const (
	Getter AccessorKind = iota
	Setter
)

func (k AccessorKind) String() string {
	if k == Setter {
		return "setter"
	}
	return "getter"
}

// Accessor is one synthesized method. It only lives for the duration of a
// generation pass.
type Accessor struct {
	Field          string
	Kind           AccessorKind
	Name           string
	UsesConversion bool // integer field stored in a non-native byte order
	Code           string
}

// AccessorNames returns the getter and setter names for a field:
// Get<Field> and Set<Field>, with the first rune upper-cased.
func AccessorNames(field string) (get, set string) {
	exported := upperFirst(field)
	return "Get" + exported, "Set" + exported
}

// synthesizer emits accessors for a single view type.
type synthesizer struct {
	view    string
	endian  schema.Endian
	imports map[string]bool
}

func newSynthesizer(cfg schema.Config) *synthesizer {
	return &synthesizer{
		view:    cfg.OutputName,
		endian:  cfg.Endian,
		imports: make(map[string]bool),
	}
}

// synthesizeAll produces a getter/setter pair for every accessible field, in
// declaration order.
func (s *synthesizer) synthesizeAll(record string, layout *analyzer.Layout) ([]Accessor, error) {
	reserved := map[string]string{
		"SetRecord": "generated method",
	}

	var out []Accessor
	for _, f := range layout.Accessible() {
		get, set := AccessorNames(f.Field.Name)
		for _, name := range []string{get, set} {
			if other, ok := reserved[name]; ok {
				return nil, &schema.SchemaError{
					Struct: record, Field: f.Field.Name, Pos: f.Field.Pos,
					Msg: fmt.Sprintf("accessor %s collides with %s", name, other),
				}
			}
			reserved[name] = "field " + f.Field.Name
		}

		getter, setter := s.synthesize(f)
		out = append(out, getter, setter)
	}
	return out, nil
}

// synthesize produces the accessor pair of one field.
func (s *synthesizer) synthesize(f analyzer.FieldLayout) (Accessor, Accessor) {
	getName, setName := AccessorNames(f.Field.Name)
	order, converts := s.order(f)
	field := f.Field.Name
	goType := f.Field.Type
	start, end := f.Offset, f.End()

	var get, set strings.Builder

	switch {
	case f.Codec.IsArray():
		fmt.Fprintf(&get, "// %s returns a copy of %s from bytes [%d, %d).\n", getName, field, start, end)
		fmt.Fprintf(&get, "func (p *%s) %s() %s {\n", s.view, getName, goType)
		fmt.Fprintf(&get, "\tvar v %s\n", goType)
		s.decodeInto(&get, f.Codec, "v", strconv.Itoa(start), 0)
		get.WriteString("\treturn v\n")
		get.WriteString("}\n")

		fmt.Fprintf(&set, "// %s copies v into bytes [%d, %d).\n", setName, start, end)
		fmt.Fprintf(&set, "func (p *%s) %s(v %s) {\n", s.view, setName, goType)
		s.encodeFrom(&set, f.Codec, "v", strconv.Itoa(start), 0)
		set.WriteString("}\n")

	default:
		switch {
		case f.Codec.Size == 1:
			fmt.Fprintf(&get, "// %s returns %s from byte %d.\n", getName, field, start)
			fmt.Fprintf(&set, "// %s stores v in byte %d.\n", setName, start)
		case converts:
			fmt.Fprintf(&get, "// %s returns %s decoded from %s-endian bytes [%d, %d).\n", getName, field, s.endian, start, end)
			fmt.Fprintf(&set, "// %s encodes v as %s-endian bytes [%d, %d).\n", setName, s.endian, start, end)
		default:
			fmt.Fprintf(&get, "// %s returns %s from bytes [%d, %d) in host byte order.\n", getName, field, start, end)
			fmt.Fprintf(&set, "// %s stores v in bytes [%d, %d) in host byte order.\n", setName, start, end)
		}

		lo, hi := strconv.Itoa(start), strconv.Itoa(end)

		fmt.Fprintf(&get, "func (p *%s) %s() %s {\n", s.view, getName, goType)
		fmt.Fprintf(&get, "\treturn %s\n", s.decodeScalar(f.Codec, order, lo, hi))
		get.WriteString("}\n")

		fmt.Fprintf(&set, "func (p *%s) %s(v %s) {\n", s.view, setName, goType)
		set.WriteString(indent(s.encodeScalar(f.Codec, order, "v", lo, hi), 1))
		set.WriteString("}\n")
	}

	return Accessor{
			Field:          field,
			Kind:           Getter,
			Name:           getName,
			UsesConversion: converts,
			Code:           get.String(),
		}, Accessor{
			Field:          field,
			Kind:           Setter,
			Name:           setName,
			UsesConversion: converts,
			Code:           set.String(),
		}
}

// order returns the binary.ByteOrder used for a field and whether it differs
// from the stored bits. Only integer kinds are converted.
func (s *synthesizer) order(f analyzer.FieldLayout) (string, bool) {
	if f.Kind.IsInteger() {
		switch s.endian {
		case schema.Big:
			return "binary.BigEndian", true
		case schema.Little:
			return "binary.LittleEndian", true
		}
	}
	return "binary.NativeEndian", false
}

// decodeScalar returns an expression of the codec's declared type reading
// p[lo:hi].
func (s *synthesizer) decodeScalar(c *analyzer.Codec, order, lo, hi string) string {
	bytes := sliceExpr(lo, hi)
	var expr string

	switch c.Scalar {
	case "uint8", "byte":
		expr = fmt.Sprintf("p[%s]", lo)
	case "int8":
		expr = fmt.Sprintf("int8(p[%s])", lo)
	case "bool":
		expr = fmt.Sprintf("p[%s] != 0", lo)
	case "uint16", "uint32", "uint64":
		s.imports["encoding/binary"] = true
		expr = fmt.Sprintf("%s.%s(%s)", order, binaryGetFunc(c.Scalar), bytes)
	case "int16", "int32", "int64":
		s.imports["encoding/binary"] = true
		expr = fmt.Sprintf("%s(%s.%s(%s))", c.Scalar, order, binaryGetFunc(c.Scalar), bytes)
	case "float32", "float64":
		s.imports["encoding/binary"] = true
		s.imports["math"] = true
		expr = fmt.Sprintf("math.%sfrombits(%s.%s(%s))", upperFirst(c.Scalar), order, binaryGetFunc(c.Scalar), bytes)
	}

	if c.Named() {
		return fmt.Sprintf("%s(%s)", c.Type, expr)
	}
	return expr
}

// encodeScalar returns the statement storing value (of the codec's declared
// type) into p[lo:hi].
func (s *synthesizer) encodeScalar(c *analyzer.Codec, order, value, lo, hi string) string {
	bytes := sliceExpr(lo, hi)

	switch c.Scalar {
	case "uint8", "byte":
		if c.Named() {
			value = "byte(" + value + ")"
		}
		return fmt.Sprintf("p[%s] = %s\n", lo, value)
	case "int8":
		return fmt.Sprintf("p[%s] = byte(%s)\n", lo, value)
	case "bool":
		return fmt.Sprintf("if %s {\n\tp[%s] = 1\n} else {\n\tp[%s] = 0\n}\n", value, lo, lo)
	case "uint16", "uint32", "uint64":
		s.imports["encoding/binary"] = true
		if c.Named() {
			value = c.Scalar + "(" + value + ")"
		}
		return fmt.Sprintf("%s.%s(%s, %s)\n", order, binaryPutFunc(c.Scalar), bytes, value)
	case "int16", "int32", "int64":
		s.imports["encoding/binary"] = true
		return fmt.Sprintf("%s.%s(%s, u%s(%s))\n", order, binaryPutFunc(c.Scalar), bytes, c.Scalar, value)
	case "float32", "float64":
		s.imports["encoding/binary"] = true
		s.imports["math"] = true
		if c.Named() {
			value = c.Scalar + "(" + value + ")"
		}
		return fmt.Sprintf("%s.%s(%s, math.%sbits(%s))\n", order, binaryPutFunc(c.Scalar), bytes, upperFirst(c.Scalar), value)
	}
	return ""
}

// decodeInto emits statements filling target from the bytes at offset off.
// Array elements are opaque and stored in host byte order.
func (s *synthesizer) decodeInto(b *strings.Builder, c *analyzer.Codec, target, off string, depth int) {
	tabs := strings.Repeat("\t", depth+1)

	if !c.IsArray() {
		hi := addExpr(off, c.Size)
		fmt.Fprintf(b, "%s%s = %s\n", tabs, target, s.decodeScalar(c, "binary.NativeEndian", off, hi))
		return
	}
	if isByteCodec(c.Elem) {
		fmt.Fprintf(b, "%scopy(%s[:], %s)\n", tabs, target, sliceExpr(off, addExpr(off, c.Size)))
		return
	}

	idx, offVar := loopVars(depth)
	fmt.Fprintf(b, "%sfor %s := range %s {\n", tabs, idx, target)
	fmt.Fprintf(b, "%s\t%s := %s\n", tabs, offVar, elemOffset(off, idx, c.Elem.Size))
	s.decodeInto(b, c.Elem, target+"["+idx+"]", offVar, depth+1)
	fmt.Fprintf(b, "%s}\n", tabs)
}

// encodeFrom emits statements storing source at offset off.
func (s *synthesizer) encodeFrom(b *strings.Builder, c *analyzer.Codec, source, off string, depth int) {
	if !c.IsArray() {
		hi := addExpr(off, c.Size)
		b.WriteString(indent(s.encodeScalar(c, "binary.NativeEndian", source, off, hi), depth+1))
		return
	}

	tabs := strings.Repeat("\t", depth+1)
	if isByteCodec(c.Elem) {
		fmt.Fprintf(b, "%scopy(%s, %s[:])\n", tabs, sliceExpr(off, addExpr(off, c.Size)), source)
		return
	}

	idx, offVar := loopVars(depth)
	fmt.Fprintf(b, "%sfor %s := range %s {\n", tabs, idx, source)
	fmt.Fprintf(b, "%s\t%s := %s\n", tabs, offVar, elemOffset(off, idx, c.Elem.Size))
	s.encodeFrom(b, c.Elem, source+"["+idx+"]", offVar, depth+1)
	fmt.Fprintf(b, "%s}\n", tabs)
}

// binaryPutFunc returns the binary.PutXXX function name for a type
func binaryPutFunc(scalar string) string {
	return "Put" + binaryGetFunc(scalar)
}

// binaryGetFunc returns the binary.Uint32() function name for a type
func binaryGetFunc(scalar string) string {
	switch scalar {
	case "uint16", "int16":
		return "Uint16"
	case "uint32", "int32", "float32":
		return "Uint32"
	default:
		return "Uint64"
	}
}

// isByteCodec reports whether arrays of c can be copied with copy().
func isByteCodec(c *analyzer.Codec) bool {
	return !c.IsArray() && !c.Named() && (c.Scalar == "byte" || c.Scalar == "uint8")
}

func loopVars(depth int) (idx, off string) {
	idx = string(rune('i' + depth))
	off = "off"
	if depth > 0 {
		off += strconv.Itoa(depth + 1)
	}
	return idx, off
}

func elemOffset(base, idx string, size int) string {
	if base == "0" {
		return fmt.Sprintf("%s * %d", idx, size)
	}
	return fmt.Sprintf("%s + %s*%d", base, idx, size)
}

func addExpr(base string, n int) string {
	if v, err := strconv.Atoi(base); err == nil {
		return strconv.Itoa(v + n)
	}
	return fmt.Sprintf("%s+%d", base, n)
}

func sliceExpr(lo, hi string) string {
	return fmt.Sprintf("p[%s:%s]", lo, hi)
}

func indent(code string, depth int) string {
	tabs := strings.Repeat("\t", depth)
	var b strings.Builder
	for _, line := range strings.SplitAfter(code, "\n") {
		if line == "" {
			continue
		}
		b.WriteString(tabs)
		b.WriteString(line)
	}
	return b.String()
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
