package testdata

// @nocopy
// @repr(C)
type Page uint64

// @nocopy
// @repr(C)
type Leaf struct {
	Header
	Count uint16 // @nocopy(endian = "big")
}

type Header struct {
	Magic uint32
}
