package example

//go:generate go run ../cmd/nocopygen generate

// @nocopy(endian = "big")
// @repr(packed)
type Example struct {
	A uint16
	B uint8
}

// PageTrailer closes every page.
//
// @nocopy(endian = "little", name = "Trailer")
// @repr(packed)
type PageTrailer struct {
	Lsn   uint64
	Fill  float32
	Delta int16
}
