package treecodec

import "encoding/binary"

// TypeID identifies a TypedValueTree node's type. It is a 128-bit unsigned
// integer compared only by equality; the two halves are little-endian,
// matching the wire encoding used by the adapter.
type TypeID [16]byte

// FieldID identifies a struct field within a TypedValueTree Struct node.
// Same representation and wire encoding rules as TypeID.
type FieldID [16]byte

// NewTypeID builds a TypeID from a low/high 64-bit pair (low bits first).
func NewTypeID(lo, hi uint64) TypeID {
	var id TypeID
	binary.LittleEndian.PutUint64(id[0:8], lo)
	binary.LittleEndian.PutUint64(id[8:16], hi)
	return id
}

// NewFieldID builds a FieldID from a low/high 64-bit pair (low bits first).
func NewFieldID(lo, hi uint64) FieldID {
	var id FieldID
	binary.LittleEndian.PutUint64(id[0:8], lo)
	binary.LittleEndian.PutUint64(id[8:16], hi)
	return id
}

// Bytes returns the 16 little-endian bytes a TypeID flattens into.
func (t TypeID) Bytes() []byte { return t[:] }

// Bytes returns the 16 little-endian bytes a FieldID flattens into.
func (f FieldID) Bytes() []byte { return f[:] }

// Less orders two FieldIDs by their little-endian integer value. Used to
// make struct-field emission order canonical (entries are sorted by field-id).
func (f FieldID) Less(other FieldID) bool {
	return f.Compare(other) < 0
}

// Compare orders two FieldIDs by their little-endian integer value, high
// half first: -1 if f < other, 0 if equal, 1 if f > other. Matches
// slices.SortFunc's three-way comparator contract.
func (f FieldID) Compare(other FieldID) int {
	lo, hi := binary.LittleEndian.Uint64(f[0:8]), binary.LittleEndian.Uint64(f[8:16])
	oLo, oHi := binary.LittleEndian.Uint64(other[0:8]), binary.LittleEndian.Uint64(other[8:16])
	if hi != oHi {
		if hi < oHi {
			return -1
		}
		return 1
	}
	switch {
	case lo < oLo:
		return -1
	case lo > oLo:
		return 1
	default:
		return 0
	}
}
