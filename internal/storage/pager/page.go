// Package pager implements the page-based, single-table storage engine
// for pagedb.
//
// The storage format is a single database file of fixed-size 4096-byte
// pages. Page 0 is always the root of the B+ tree for the lifetime of
// the file. Every page holds exactly one tree node — leaf or internal —
// laid out by the accessors in node.go. There is no write-ahead log, no
// free-list, and no secondary index: this engine durably commits only at
// Close, by flushing every page it has touched.
package pager

import "encoding/binary"

// ───────────────────────────────────────────────────────────────────────────
// Constants
// ───────────────────────────────────────────────────────────────────────────

const (
	// PageSize is the fixed size, in bytes, of every page in the file.
	PageSize = 4096

	// TableMaxPages bounds how many pages a single session may touch.
	// It is not a file-size limit; it is the size of the pager's
	// resident page-slot array (§3: "Pager state").
	TableMaxPages = 100
)

// NodeType distinguishes a leaf node (holds rows) from an internal node
// (holds routing keys and child pointers).
type NodeType uint8

const (
	NodeInternal NodeType = 0
	NodeLeaf     NodeType = 1
)

// Common node header, present at the start of every page (§3 "Node"):
//
//	[0]   NodeType   (1 byte)
//	[1]   IsRoot     (1 byte, boolean)
//	[2:6] ParentPage (4 bytes, uint32 LE; unused at the root)
const (
	commonNodeTypeOff    = 0
	commonIsRootOff      = 1
	commonParentOff      = 2
	commonNodeHeaderSize = 6
)

func getNodeType(buf []byte) NodeType {
	return NodeType(buf[commonNodeTypeOff])
}

func setNodeType(buf []byte, t NodeType) {
	buf[commonNodeTypeOff] = byte(t)
}

func isNodeRoot(buf []byte) bool {
	return buf[commonIsRootOff] != 0
}

func setNodeRoot(buf []byte, isRoot bool) {
	if isRoot {
		buf[commonIsRootOff] = 1
	} else {
		buf[commonIsRootOff] = 0
	}
}

func nodeParent(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[commonParentOff:])
}

func setNodeParent(buf []byte, parent uint32) {
	binary.LittleEndian.PutUint32(buf[commonParentOff:], parent)
}

// getNodeMaxKey returns the largest key stored under this node (§4.3).
func getNodeMaxKey(buf []byte) uint32 {
	if getNodeType(buf) == NodeLeaf {
		n := leafNumCells(buf)
		return leafKey(buf, n-1)
	}
	n := internalNumKeys(buf)
	return internalKey(buf, n-1)
}
