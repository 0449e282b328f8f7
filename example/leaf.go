package example

import "structs"

//go:generate go run ../cmd/nocopygen generate

// PageID identifies a page in the file.
type PageID uint64

// LeafElement is one slot of a leaf page.
//
// @nocopy
// @repr(C)
type LeafElement struct {
	Key    uint32
	Offset uint32
}

// LeafHeader starts every leaf page.
//
// @nocopy(endian = "big", name = "LeafHeaderView")
type LeafHeader struct {
	_        structs.HostLayout
	NumKeys  uint16
	Flags    uint16
	NextPage PageID
	Checksum [2]uint32
	Owner    [4]byte
	Deleted  bool
}
