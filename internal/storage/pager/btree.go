package pager

import "fmt"

// ───────────────────────────────────────────────────────────────────────────
// B+ tree
// ───────────────────────────────────────────────────────────────────────────
//
// Tree is the single-table B+ tree: find, insert (with the one supported
// leaf split + new-root case), and ordered traversal via a Cursor.
//
// Per the decision recorded in SPEC_FULL.md §8, this core preserves the
// source tutorial's limitations rather than extending them: once the
// root has split into an internal node, Find no longer descends into it,
// and a non-root leaf that overflows is not split. Both are surfaced as
// ordinary errors (ErrUnimplementedDescend / ErrUnimplementedSplit) so
// they remain testable, even though every caller in this repository
// treats them as fatal.

// Tree is a B+ tree keyed by uint32, stored in a Pager. Root is always 0
// for the lifetime of a database file (spec.md §3 "Table").
type Tree struct {
	Pager *Pager
	Root  uint32
}

// NewTree opens a handle to the tree rooted at page 0, initializing an
// empty leaf root if the file was empty.
func NewTree(p *Pager) (*Tree, error) {
	t := &Tree{Pager: p, Root: 0}
	if p.NumPages() == 0 {
		buf, err := p.GetPage(0)
		if err != nil {
			return nil, err
		}
		initializeLeafNode(buf)
		setNodeRoot(buf, true)
	}
	return t, nil
}

// Cursor identifies a position within the tree for reading or insertion.
type Cursor struct {
	tree       *Tree
	PageNum    uint32
	CellNum    uint32
	EndOfTable bool
}

// Start positions a cursor at the first cell of the leftmost leaf.
// Descending to the leftmost leaf (rather than assuming the root is
// already one) is the one internal-node traversal this core performs
// unconditionally: without it, a select issued after the tree's first
// split could not even reach page 0's surviving data.
func (t *Tree) Start() (*Cursor, error) {
	pageNum := t.Root
	buf, err := t.Pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}
	for getNodeType(buf) != NodeLeaf {
		pageNum = internalChild(buf, 0)
		buf, err = t.Pager.GetPage(pageNum)
		if err != nil {
			return nil, err
		}
	}
	return &Cursor{tree: t, PageNum: pageNum, CellNum: 0, EndOfTable: leafNumCells(buf) == 0}, nil
}

// Value returns the serialized row at the cursor's current cell.
func (c *Cursor) Value() ([]byte, error) {
	buf, err := c.tree.Pager.GetPage(c.PageNum)
	if err != nil {
		return nil, err
	}
	return leafValue(buf, c.CellNum), nil
}

// Advance moves the cursor to the next cell on the same leaf. This core
// has no leaf sibling pointer (spec.md §4.5), so a scan ends at the end
// of a single leaf rather than hopping to the next one.
func (c *Cursor) Advance() error {
	buf, err := c.tree.Pager.GetPage(c.PageNum)
	if err != nil {
		return err
	}
	c.CellNum++
	if c.CellNum >= leafNumCells(buf) {
		c.EndOfTable = true
	}
	return nil
}

// ── Search ──────────────────────────────────────────────────────────────

// Find returns a cursor positioned at key, or at key's insertion slot if
// absent. See the type-level doc comment for the internal-node caveat.
func (t *Tree) Find(key uint32) (*Cursor, error) {
	buf, err := t.Pager.GetPage(t.Root)
	if err != nil {
		return nil, err
	}
	if getNodeType(buf) == NodeLeaf {
		return t.leafFind(t.Root, key)
	}
	return nil, ErrUnimplementedDescend
}

// leafFind binary-searches a leaf's cells over the half-open interval
// [0, numCells), returning a cursor at key if present, else at the
// first cell holding a greater key.
func (t *Tree) leafFind(pageNum uint32, key uint32) (*Cursor, error) {
	buf, err := t.Pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}
	lo, hi := uint32(0), leafNumCells(buf)
	for lo < hi {
		mid := lo + (hi-lo)/2
		k := leafKey(buf, mid)
		if k == key {
			return &Cursor{tree: t, PageNum: pageNum, CellNum: mid}, nil
		}
		if key < k {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return &Cursor{tree: t, PageNum: pageNum, CellNum: lo}, nil
}

// ── Insert ──────────────────────────────────────────────────────────────

// Insert adds row under key, rejecting duplicates (spec.md §4.6).
func (t *Tree) Insert(key uint32, row Row) error {
	cur, err := t.Find(key)
	if err != nil {
		return err
	}
	buf, err := t.Pager.GetPage(cur.PageNum)
	if err != nil {
		return err
	}
	if cur.CellNum < leafNumCells(buf) && leafKey(buf, cur.CellNum) == key {
		return ErrDuplicateKey
	}
	return t.leafInsert(cur, key, row)
}

// leafInsert writes (key, row) into cur's leaf, shifting later cells
// right by one, or dispatches to a split when the leaf is full.
func (t *Tree) leafInsert(cur *Cursor, key uint32, row Row) error {
	buf, err := t.Pager.GetPage(cur.PageNum)
	if err != nil {
		return err
	}

	if leafNumCells(buf) >= LeafMaxCells {
		return t.leafSplitAndInsert(cur, key, row)
	}

	for i := leafNumCells(buf); i > cur.CellNum; i-- {
		copy(leafCell(buf, i), leafCell(buf, i-1))
	}
	serialized := Serialize(row)
	setLeafKey(buf, cur.CellNum, key)
	copy(leafValue(buf, cur.CellNum), serialized[:])
	setLeafNumCells(buf, leafNumCells(buf)+1)
	return nil
}

// leafSplitAndInsert distributes the full leaf's LEAF_MAX_CELLS cells
// plus the new one across the old leaf and a freshly allocated leaf,
// per the placement rule of spec.md §4.6.
func (t *Tree) leafSplitAndInsert(cur *Cursor, key uint32, row Row) error {
	newPageNum, newBuf, err := t.Pager.AllocatePage()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTableFull, err)
	}
	initializeLeafNode(newBuf)

	oldBuf, err := t.Pager.GetPage(cur.PageNum)
	if err != nil {
		return err
	}
	serialized := Serialize(row)

	for i := int(LeafMaxCells); i >= 0; i-- {
		idx := uint32(i)
		var dest []byte
		if idx < LeftSplitCount {
			dest = oldBuf
		} else {
			dest = newBuf
		}
		destIndex := idx % LeftSplitCount

		switch {
		case idx == cur.CellNum:
			setLeafKey(dest, destIndex, key)
			copy(leafValue(dest, destIndex), serialized[:])
		case idx > cur.CellNum:
			copy(leafCell(dest, destIndex), leafCell(oldBuf, idx-1))
		default:
			copy(leafCell(dest, destIndex), leafCell(oldBuf, idx))
		}
	}

	setLeafNumCells(oldBuf, LeftSplitCount)
	setLeafNumCells(newBuf, RightSplitCount)

	if isNodeRoot(oldBuf) {
		return t.createNewRoot(newPageNum)
	}
	return ErrUnimplementedSplit
}

// createNewRoot promotes the just-split root leaf (now holding the left
// half of the split) into the left child of a brand-new internal root,
// with rightChildPage as the right child (spec.md §4.6).
//
// Unlike the source tutorial, right_child is written exactly once, to
// rightChildPage — the transient left-then-right overwrite named as a
// possible source bug in spec.md §9 is not reproduced.
func (t *Tree) createNewRoot(rightChildPage uint32) error {
	rootBuf, err := t.Pager.GetPage(t.Root)
	if err != nil {
		return err
	}
	// rootBuf currently holds the pre-split leaf's left-half data; copy
	// it into a new page before the root page is reinitialized.
	leftChildPage, leftBuf, err := t.Pager.AllocatePage()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTableFull, err)
	}
	copy(leftBuf, rootBuf)
	setNodeRoot(leftBuf, false)
	setNodeParent(leftBuf, t.Root)

	rightBuf, err := t.Pager.GetPage(rightChildPage)
	if err != nil {
		return err
	}
	setNodeParent(rightBuf, t.Root)

	initializeInternalNode(rootBuf)
	setNodeRoot(rootBuf, true)
	setInternalNumKeys(rootBuf, 1)
	setInternalChild(rootBuf, 0, leftChildPage)
	setInternalKey(rootBuf, 0, getNodeMaxKey(leftBuf))
	setInternalRightChild(rootBuf, rightChildPage)
	return nil
}
