package analyzer

// Kind is the classification of a field type.
type Kind int

const (
	Opaque Kind = iota // pass-through, stored unconverted
	U8
	U16
	U32
	U64
)

func (k Kind) String() string {
	switch k {
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	default:
		return "opaque"
	}
}

// IsInteger reports whether the kind is eligible for byte-order conversion.
func (k Kind) IsInteger() bool {
	return k != Opaque
}

// Width returns the width in bytes of an integer kind, 0 for Opaque.
func (k Kind) Width() int {
	switch k {
	case U8:
		return 1
	case U16:
		return 2
	case U32:
		return 4
	case U64:
		return 8
	default:
		return 0
	}
}

// Classify maps a declared type name to its Kind. Only the fixed-width
// unsigned integers are integer kinds; byte counts as uint8 because the
// language defines them as the same type. Named types are classified by
// their own name, so `type PageID uint64` is Opaque.
func Classify(typeName string) Kind {
	switch typeName {
	case "uint8", "byte":
		return U8
	case "uint16":
		return U16
	case "uint32":
		return U32
	case "uint64":
		return U64
	default:
		return Opaque
	}
}
