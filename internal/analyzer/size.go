package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// HostLayoutType is the marker type from the standard library structs package.
const HostLayoutType = "structs.HostLayout"

// Codec describes how a fixed-width type is stored in a view.
type Codec struct {
	Type   string // declared type, e.g. "PageID" or "[4]uint16"
	Scalar string // underlying built-in type of a scalar codec
	Elem   *Codec // element codec of an array, nil for scalars
	Len    int    // array length
	Size   int
	Align  int
	Marker bool // structs.HostLayout, occupies no space
}

// IsArray reports whether the codec stores a fixed-size array.
func (c *Codec) IsArray() bool {
	return c.Elem != nil
}

// Named reports whether the declared type differs from the underlying one and
// values need a conversion.
func (c *Codec) Named() bool {
	if c.IsArray() {
		return false
	}
	return c.Type != c.Scalar
}

// SizeOf returns the size in bytes of a built-in fixed-width type.
// Returns error for types without a fixed-width representation.
func SizeOf(goType string) (int, error) {
	switch goType {
	case "uint8", "int8", "byte", "bool":
		return 1, nil
	case "uint16", "int16":
		return 2, nil
	case "uint32", "int32", "float32":
		return 4, nil
	case "uint64", "int64", "float64":
		return 8, nil
	}

	switch {
	case strings.HasPrefix(goType, "[]"):
		return 0, fmt.Errorf("slices have no fixed size: %s", goType)
	case strings.HasPrefix(goType, "*"):
		return 0, fmt.Errorf("pointer types not supported: %s", goType)
	case strings.HasPrefix(goType, "map["), strings.HasPrefix(goType, "chan "),
		strings.HasPrefix(goType, "func("), goType == "string",
		goType == "any", goType == "interface{}":
		return 0, fmt.Errorf("indirected type not supported: %s", goType)
	case goType == "int", goType == "uint", goType == "uintptr":
		return 0, fmt.Errorf("platform-sized type not supported: %s", goType)
	}

	return 0, fmt.Errorf("unknown type: %s", goType)
}

// MaxSize bounds the size of a single field so that offset arithmetic cannot
// overflow.
const MaxSize = 1 << 30

var arrayRe = regexp.MustCompile(`^\[([0-9a-fA-FxXoObB_]+)\](.+)$`)

// TypeRegistry tracks named types declared next to the records so that their
// underlying representation can be found.
type TypeRegistry struct {
	aliases map[string]string // name → underlying type
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		aliases: make(map[string]string),
	}
}

// RegisterAlias adds a named type mapping (e.g., type PageID uint64)
func (r *TypeRegistry) RegisterAlias(alias, underlying string) {
	r.aliases[alias] = underlying
}

// ResolveType resolves named types to their underlying types.
// Returns the original type if not registered.
func (r *TypeRegistry) ResolveType(goType string) string {
	seen := make(map[string]bool)
	for !seen[goType] {
		seen[goType] = true
		underlying, ok := r.aliases[goType]
		if !ok {
			break
		}
		goType = underlying
	}
	return goType
}

// CodecOf returns the codec for a declared field type.
func (r *TypeRegistry) CodecOf(goType string) (*Codec, error) {
	return r.codecOf(goType, make(map[string]bool))
}

// codecOf resolves goType. visiting holds the types whose codec is being
// built further up the stack.
func (r *TypeRegistry) codecOf(goType string, visiting map[string]bool) (*Codec, error) {
	if goType == HostLayoutType {
		return &Codec{Type: goType, Align: 1, Marker: true}, nil
	}
	if visiting[goType] {
		return nil, fmt.Errorf("invalid recursive type %s", goType)
	}
	visiting[goType] = true
	defer delete(visiting, goType)

	resolved := r.ResolveType(goType)

	if matches := arrayRe.FindStringSubmatch(resolved); matches != nil {
		n, err := strconv.ParseInt(matches[1], 0, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid array length: %s", matches[1])
		}
		if n > MaxSize {
			return nil, fmt.Errorf("array %s exceeds %d bytes", goType, MaxSize)
		}
		elem, err := r.codecOf(matches[2], visiting)
		if err != nil {
			return nil, fmt.Errorf("array element: %w", err)
		}
		if elem.Marker {
			return nil, fmt.Errorf("array of %s not supported", HostLayoutType)
		}
		if elem.Size > 0 && n > int64(MaxSize/elem.Size) {
			return nil, fmt.Errorf("array %s exceeds %d bytes", goType, MaxSize)
		}
		return &Codec{
			Type:  goType,
			Elem:  elem,
			Len:   int(n),
			Size:  int(n) * elem.Size,
			Align: elem.Align,
		}, nil
	}
	if strings.HasPrefix(resolved, "[") && !strings.HasPrefix(resolved, "[]") {
		return nil, fmt.Errorf("array length of %s must be an integer literal", goType)
	}

	size, err := SizeOf(resolved)
	if err != nil {
		if resolved != goType {
			return nil, fmt.Errorf("%s: %w", goType, err)
		}
		return nil, fmt.Errorf("type %s has no fixed-width codec: %w", goType, err)
	}

	return &Codec{
		Type:   goType,
		Scalar: resolved,
		Size:   size,
		Align:  size,
	}, nil
}
