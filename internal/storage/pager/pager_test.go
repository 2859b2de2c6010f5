package pager

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenRejectsCorruptLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.db")
	// Write a file whose length is not a multiple of PageSize.
	if err := os.WriteFile(path, make([]byte, PageSize+17), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := Open(path); !errors.Is(err, ErrCorruptFile) {
		t.Fatalf("got %v, want ErrCorruptFile", err)
	}
}

func TestGetPageOutOfBounds(t *testing.T) {
	p := openEmpty(t)
	if _, err := p.GetPage(TableMaxPages); !errors.Is(err, ErrPageOutOfBounds) {
		t.Fatalf("got %v, want ErrPageOutOfBounds", err)
	}
}

func TestFlushAbsentPage(t *testing.T) {
	p := openEmpty(t)
	if err := p.Flush(3); !errors.Is(err, ErrFlushAbsentPage) {
		t.Fatalf("got %v, want ErrFlushAbsentPage", err)
	}
}

func TestGetPageLazyLoadAndGrowsNumPages(t *testing.T) {
	p := openEmpty(t)
	if p.NumPages() != 0 {
		t.Fatalf("fresh file should have 0 pages, got %d", p.NumPages())
	}
	if _, err := p.GetPage(2); err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if p.NumPages() != 3 {
		t.Fatalf("NumPages should be 3 after touching page 2, got %d", p.NumPages())
	}
}

func TestCloseFlushesAndFileLengthMatchesPageCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	buf, err := p.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	buf[10] = 0xAB
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() != PageSize {
		t.Fatalf("file length = %d, want %d", info.Size(), PageSize)
	}

	p2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer p2.Close()
	buf2, err := p2.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage after reopen: %v", err)
	}
	if buf2[10] != 0xAB {
		t.Fatalf("reopened page lost its data: got %x", buf2[10])
	}
}

func TestReopenUnchangedFileIsByteIdentical(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stable.db")
	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := p.GetPage(0); err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	p2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, err := p2.GetPage(0); err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if err := p2.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(before) != len(after) {
		t.Fatalf("length changed: %d vs %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("byte %d differs: %x vs %x", i, before[i], after[i])
		}
	}
}

func openEmpty(t *testing.T) *Pager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db")
	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}
