package engine

import (
	"errors"
	"fmt"
	"io"

	"pagedb/internal/storage/pager"
)

// ExecuteInsert implements spec.md §4.6's entry point: find the
// insertion slot, reject duplicates, and insert — mapping the tree
// layer's sentinel errors onto ExecuteResult for the REPL to render.
// Any other error (fatal conditions preserved from §9) is returned
// as-is; callers should treat it as unrecoverable for the session.
func ExecuteInsert(stmt Statement, t *Table) (ExecuteResult, error) {
	row := stmt.RowToInsert
	err := t.Tree.Insert(row.ID, row)
	switch {
	case err == nil:
		return ExecuteSuccess, nil
	case errors.Is(err, pager.ErrDuplicateKey):
		return ExecuteDuplicateKey, nil
	case errors.Is(err, pager.ErrTableFull):
		return ExecuteTableFull, nil
	default:
		return ExecuteSuccess, err
	}
}

// ExecuteSelect implements spec.md §4.7: an ascending scan of the
// leftmost leaf, rendering each row as "(id, username, email)". The scan
// ends at the end of that leaf; rows in other leaves are not returned.
func ExecuteSelect(t *Table, w io.Writer) (ExecuteResult, error) {
	cur, err := t.Tree.Start()
	if err != nil {
		return ExecuteSuccess, err
	}
	for !cur.EndOfTable {
		v, err := cur.Value()
		if err != nil {
			return ExecuteSuccess, err
		}
		row := pager.Deserialize(v)
		if _, err := fmt.Fprintf(w, "(%d, %s, %s)\n", row.ID, row.Username, row.Email); err != nil {
			return ExecuteSuccess, err
		}
		if err := cur.Advance(); err != nil {
			return ExecuteSuccess, err
		}
	}
	return ExecuteSuccess, nil
}
