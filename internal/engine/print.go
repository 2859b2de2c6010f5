package engine

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"pagedb/internal/storage/pager"
)

// PrintTree dumps the tree structure rooted at the table's root page, in
// the format spec.md §4.8 describes.
func PrintTree(t *Table, w io.Writer) error {
	return pager.DumpTree(t.Pager, t.Tree.Root, 0, w)
}

// PrintConstants writes the sizing constants of spec.md §3/§4.8. When
// yamlFormat is true the constants are marshaled as YAML instead of the
// original tutorial's plain "NAME: value" lines (domain-stack addition,
// SPEC_FULL.md §5 — it does not change the plain-text form's content).
func PrintConstants(w io.Writer, yamlFormat bool) error {
	c := pager.ReportConstants()
	if yamlFormat {
		out, err := yaml.Marshal(c)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}

	lines := []struct {
		name  string
		value int
	}{
		{"ROW_SIZE", c.RowSize},
		{"COMMON_NODE_HEADER_SIZE", c.CommonNodeHeaderSize},
		{"LEAF_NODE_HEADER_SIZE", c.LeafNodeHeaderSize},
		{"LEAF_NODE_CELL_SIZE", c.LeafNodeCellSize},
		{"LEAF_NODE_SPACE_FOR_CELLS", c.LeafNodeSpaceForCells},
		{"LEAF_NODE_MAX_CELLS", c.LeafNodeMaxCells},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s: %d\n", l.name, l.value); err != nil {
			return err
		}
	}
	return nil
}
