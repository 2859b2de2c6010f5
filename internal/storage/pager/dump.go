package pager

import (
	"fmt"
	"io"
	"strings"
)

// ───────────────────────────────────────────────────────────────────────────
// Diagnostics
// ───────────────────────────────────────────────────────────────────────────

// DumpTree writes a pretty-printed tree structure to w, in the format
// spec.md §4.8 describes: `- leaf (size N)` with one key per indented
// line for leaves, `- internal (size N)` recursing into each child (with
// `- key K` between them) and finally into right_child for internal
// nodes.
func DumpTree(p *Pager, pageNum uint32, indent int, w io.Writer) error {
	buf, err := p.GetPage(pageNum)
	if err != nil {
		return err
	}
	prefix := strings.Repeat("  ", indent)

	if getNodeType(buf) == NodeLeaf {
		n := leafNumCells(buf)
		fmt.Fprintf(w, "%s- leaf (size %d)\n", prefix, n)
		keyPrefix := strings.Repeat("  ", indent+1)
		for i := uint32(0); i < n; i++ {
			fmt.Fprintf(w, "%s- %d\n", keyPrefix, leafKey(buf, i))
		}
		return nil
	}

	numKeys := internalNumKeys(buf)
	fmt.Fprintf(w, "%s- internal (size %d)\n", prefix, numKeys)
	for i := uint32(0); i < numKeys; i++ {
		child := internalChild(buf, i)
		if err := DumpTree(p, child, indent+1, w); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s- key %d\n", strings.Repeat("  ", indent+1), internalKey(buf, i))
	}
	return DumpTree(p, internalRightChild(buf), indent+1, w)
}

// Constants reports the layout constants named in spec.md §3/§4.8, for
// the `.constants` meta-command.
type Constants struct {
	RowSize                 int `yaml:"row_size"`
	CommonNodeHeaderSize    int `yaml:"common_node_header_size"`
	LeafNodeHeaderSize      int `yaml:"leaf_node_header_size"`
	LeafNodeCellSize        int `yaml:"leaf_node_cell_size"`
	LeafNodeSpaceForCells   int `yaml:"leaf_node_space_for_cells"`
	LeafNodeMaxCells        int `yaml:"leaf_node_max_cells"`
	InternalNodeHeaderSize  int `yaml:"internal_node_header_size"`
	InternalNodeCellSize    int `yaml:"internal_node_cell_size"`
}

// ReportConstants returns the current build's sizing constants.
func ReportConstants() Constants {
	return Constants{
		RowSize:                RowSize,
		CommonNodeHeaderSize:   commonNodeHeaderSize,
		LeafNodeHeaderSize:     leafHeaderSize,
		LeafNodeCellSize:       leafCellSize,
		LeafNodeSpaceForCells:  leafSpaceForCells,
		LeafNodeMaxCells:       LeafMaxCells,
		InternalNodeHeaderSize: internalHeaderSize,
		InternalNodeCellSize:   internalCellSize,
	}
}
