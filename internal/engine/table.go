// Package engine is the REPL-facing glue layer over the B+ tree storage
// engine (spec.md §4.8): DBOpen, DBClose, ExecuteInsert, ExecuteSelect,
// PrintTree, and PrintConstants. It holds no dialect-parsing or
// prompt-rendering logic of its own — that belongs to the REPL
// collaborator (cmd/repl) — it only turns already-parsed Statements into
// tree operations and tree state into printed output.
package engine

import "pagedb/internal/storage/pager"

// Table is the open handle a REPL session operates on: a pager plus the
// single B+ tree rooted at page 0.
type Table struct {
	Pager *pager.Pager
	Tree  *pager.Tree
}

// DBOpen opens (creating if absent) the database file at path and
// initializes an empty leaf root if the file was empty (spec.md §4.8).
func DBOpen(path string) (*Table, error) {
	p, err := pager.Open(path)
	if err != nil {
		return nil, err
	}
	tree, err := pager.NewTree(p)
	if err != nil {
		p.Close()
		return nil, err
	}
	return &Table{Pager: p, Tree: tree}, nil
}

// DBClose flushes every touched page and closes the file. This is the
// only durability commit point the engine has.
func DBClose(t *Table) error {
	return t.Pager.Close()
}
