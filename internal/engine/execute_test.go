package engine

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"pagedb/internal/storage/pager"
)

func mustRow(t *testing.T, id uint32, username, email string) pager.Row {
	t.Helper()
	row, err := pager.NewRow(id, username, email)
	if err != nil {
		t.Fatalf("NewRow: %v", err)
	}
	return row
}

func TestBasicInsertAndSelect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basic.db")
	table, err := DBOpen(path)
	if err != nil {
		t.Fatalf("DBOpen: %v", err)
	}

	res, err := ExecuteInsert(Statement{Kind: StatementInsert, RowToInsert: mustRow(t, 1, "user1", "person1@example.com")}, table)
	if err != nil || res != ExecuteSuccess {
		t.Fatalf("insert: res=%v err=%v", res, err)
	}

	var out bytes.Buffer
	if _, err := ExecuteSelect(table, &out); err != nil {
		t.Fatalf("select: %v", err)
	}
	if out.String() != "(1, user1, person1@example.com)\n" {
		t.Fatalf("unexpected select output: %q", out.String())
	}

	if err := DBClose(table); err != nil {
		t.Fatalf("DBClose: %v", err)
	}

	table2, err := DBOpen(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer DBClose(table2)
	var out2 bytes.Buffer
	if _, err := ExecuteSelect(table2, &out2); err != nil {
		t.Fatalf("select after reopen: %v", err)
	}
	if out2.String() != out.String() {
		t.Fatalf("persisted select mismatch: %q vs %q", out2.String(), out.String())
	}
}

func TestDuplicateKeyRejectedEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.db")
	table, err := DBOpen(path)
	if err != nil {
		t.Fatalf("DBOpen: %v", err)
	}
	defer DBClose(table)

	if res, err := ExecuteInsert(Statement{Kind: StatementInsert, RowToInsert: mustRow(t, 1, "a", "a@a")}, table); err != nil || res != ExecuteSuccess {
		t.Fatalf("first insert: res=%v err=%v", res, err)
	}
	res, err := ExecuteInsert(Statement{Kind: StatementInsert, RowToInsert: mustRow(t, 1, "b", "b@b")}, table)
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if res != ExecuteDuplicateKey {
		t.Fatalf("got %v, want ExecuteDuplicateKey", res)
	}
	if res.String() != "Error: Duplicate key." {
		t.Fatalf("unexpected message: %q", res.String())
	}

	var out bytes.Buffer
	if _, err := ExecuteSelect(table, &out); err != nil {
		t.Fatalf("select: %v", err)
	}
	if out.String() != "(1, a, a@a)\n" {
		t.Fatalf("unexpected select output: %q", out.String())
	}
}

func TestOrderedScanRegardlessOfInsertOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.db")
	table, err := DBOpen(path)
	if err != nil {
		t.Fatalf("DBOpen: %v", err)
	}
	defer DBClose(table)

	rows := []pager.Row{
		mustRow(t, 3, "c", "c@c"),
		mustRow(t, 1, "a", "a@a"),
		mustRow(t, 2, "b", "b@b"),
	}
	for _, r := range rows {
		if res, err := ExecuteInsert(Statement{Kind: StatementInsert, RowToInsert: r}, table); err != nil || res != ExecuteSuccess {
			t.Fatalf("insert %d: res=%v err=%v", r.ID, res, err)
		}
	}

	var out bytes.Buffer
	if _, err := ExecuteSelect(table, &out); err != nil {
		t.Fatalf("select: %v", err)
	}
	want := "(1, a, a@a)\n(2, b, b@b)\n(3, c, c@c)\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestLeafSplitDumpsExpectedTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "split.db")
	table, err := DBOpen(path)
	if err != nil {
		t.Fatalf("DBOpen: %v", err)
	}
	defer DBClose(table)

	for id := uint32(1); id <= 14; id++ {
		row := mustRow(t, id, "user", "user@example.com")
		if res, err := ExecuteInsert(Statement{Kind: StatementInsert, RowToInsert: row}, table); err != nil || res != ExecuteSuccess {
			t.Fatalf("insert %d: res=%v err=%v", id, res, err)
		}
	}

	var out bytes.Buffer
	if err := PrintTree(table, &out); err != nil {
		t.Fatalf("PrintTree: %v", err)
	}
	text := out.String()
	if !strings.HasPrefix(text, "- internal (size 1)\n") {
		t.Fatalf("expected internal root at top, got:\n%s", text)
	}
	if strings.Count(text, "- leaf (size 7)") != 2 {
		t.Fatalf("expected two leaves of size 7, got:\n%s", text)
	}
	if !strings.Contains(text, "- key 7\n") {
		t.Fatalf("expected separator key 7, got:\n%s", text)
	}
}

func TestPrintConstants(t *testing.T) {
	var out bytes.Buffer
	if err := PrintConstants(&out, false); err != nil {
		t.Fatalf("PrintConstants: %v", err)
	}
	if !strings.Contains(out.String(), "ROW_SIZE: 291") {
		t.Fatalf("missing ROW_SIZE line: %q", out.String())
	}
	if !strings.Contains(out.String(), "LEAF_NODE_MAX_CELLS: 13") {
		t.Fatalf("missing LEAF_NODE_MAX_CELLS line: %q", out.String())
	}

	var yout bytes.Buffer
	if err := PrintConstants(&yout, true); err != nil {
		t.Fatalf("PrintConstants yaml: %v", err)
	}
	if !strings.Contains(yout.String(), "row_size: 291") {
		t.Fatalf("missing yaml row_size: %q", yout.String())
	}
}
