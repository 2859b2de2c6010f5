package pager

import "encoding/binary"

// ───────────────────────────────────────────────────────────────────────────
// B+ tree node layout
// ───────────────────────────────────────────────────────────────────────────
//
// Leaf layout (spec.md §3):
//
//	[0:6]    common header (node_type, is_root, parent_pointer)
//	[6:10]   num_cells   uint32 LE
//	[10:...] cells: (key uint32, value [RowSize]byte) x num_cells
//
// Internal layout:
//
//	[0:6]    common header
//	[6:10]   num_keys    uint32 LE
//	[10:14]  right_child uint32 LE — page for keys > the last body key
//	[14:...] cells: (child uint32, key uint32) x num_keys
const (
	leafNumCellsOff    = commonNodeHeaderSize // 6
	leafHeaderSize     = leafNumCellsOff + 4  // 10
	leafKeySize        = 4
	leafValueSize      = RowSize
	leafCellSize       = leafKeySize + leafValueSize // 295
	leafSpaceForCells  = PageSize - leafHeaderSize

	internalNumKeysOff    = commonNodeHeaderSize // 6
	internalRightChildOff = internalNumKeysOff + 4 // 10
	internalHeaderSize    = internalRightChildOff + 4 // 14
	internalChildSize     = 4
	internalKeySize       = 4
	internalCellSize      = internalChildSize + internalKeySize // 8
)

// LeafMaxCells is the number of (key, row) cells a leaf page can hold.
const LeafMaxCells = leafSpaceForCells / leafCellSize

// LeftSplitCount and RightSplitCount are the cell counts each half of a
// split leaf receives (spec.md §3).
const (
	LeftSplitCount  = (LeafMaxCells + 1 + 1) / 2 // ceil((LEAF_MAX_CELLS+1)/2)
	RightSplitCount = LeafMaxCells + 1 - LeftSplitCount
)

// ── Leaf node accessors ─────────────────────────────────────────────────

func initializeLeafNode(buf []byte) {
	setNodeType(buf, NodeLeaf)
	setNodeRoot(buf, false)
	setLeafNumCells(buf, 0)
}

func leafNumCells(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[leafNumCellsOff:])
}

func setLeafNumCells(buf []byte, n uint32) {
	binary.LittleEndian.PutUint32(buf[leafNumCellsOff:], n)
}

func leafCellOffset(i uint32) int {
	return leafHeaderSize + int(i)*leafCellSize
}

// leafCell returns the raw (key, value) cell slice at index i.
func leafCell(buf []byte, i uint32) []byte {
	off := leafCellOffset(i)
	return buf[off : off+leafCellSize]
}

func leafKey(buf []byte, i uint32) uint32 {
	off := leafCellOffset(i)
	return binary.LittleEndian.Uint32(buf[off:])
}

func setLeafKey(buf []byte, i uint32, key uint32) {
	off := leafCellOffset(i)
	binary.LittleEndian.PutUint32(buf[off:], key)
}

func leafValue(buf []byte, i uint32) []byte {
	off := leafCellOffset(i) + leafKeySize
	return buf[off : off+leafValueSize]
}

// ── Internal node accessors ─────────────────────────────────────────────

func initializeInternalNode(buf []byte) {
	setNodeType(buf, NodeInternal)
	setNodeRoot(buf, false)
	setInternalNumKeys(buf, 0)
}

func internalNumKeys(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[internalNumKeysOff:])
}

func setInternalNumKeys(buf []byte, n uint32) {
	binary.LittleEndian.PutUint32(buf[internalNumKeysOff:], n)
}

func internalRightChild(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[internalRightChildOff:])
}

func setInternalRightChild(buf []byte, page uint32) {
	binary.LittleEndian.PutUint32(buf[internalRightChildOff:], page)
}

func internalCellOffset(i uint32) int {
	return internalHeaderSize + int(i)*internalCellSize
}

func internalCell(buf []byte, i uint32) []byte {
	off := internalCellOffset(i)
	return buf[off : off+internalCellSize]
}

func internalChild(buf []byte, i uint32) uint32 {
	off := internalCellOffset(i)
	return binary.LittleEndian.Uint32(buf[off:])
}

func setInternalChild(buf []byte, i uint32, page uint32) {
	off := internalCellOffset(i)
	binary.LittleEndian.PutUint32(buf[off:], page)
}

func internalKey(buf []byte, i uint32) uint32 {
	off := internalCellOffset(i) + internalChildSize
	return binary.LittleEndian.Uint32(buf[off:])
}

func setInternalKey(buf []byte, i uint32, key uint32) {
	off := internalCellOffset(i) + internalChildSize
	binary.LittleEndian.PutUint32(buf[off:], key)
}
