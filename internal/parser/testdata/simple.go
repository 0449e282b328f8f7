package testdata

import "structs"

type PageID uint64

type UUID [16]byte

// PageHeader starts every page.
//
// @nocopy(endian = "big")
// @repr(C)
type PageHeader struct {
	Magic    uint32
	Flags    uint16
	Level    uint8
	_        uint8
	ID       PageID
	Owner    UUID
	Checksum [2]uint32
}

// @nocopy(name = "EntryView")
type Entry struct {
	_         structs.HostLayout
	Key, Size uint32
	Deleted   bool
}

// @nocopy
// @repr(packed)
type Tag struct {
	Kind uint8
	Len  uint16
}

// No annotation - should be skipped
type IgnoredType struct {
	Field uint32
}

// @repr(C)
type NotRequested struct {
	Field uint32
}
