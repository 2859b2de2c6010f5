package pager

import (
	"fmt"
	"os"
)

// ───────────────────────────────────────────────────────────────────────────
// Pager
// ───────────────────────────────────────────────────────────────────────────
//
// The Pager is the sole owner of the database file handle and the
// resident page buffers. It hands out pages by number, lazily loading
// them from disk on first request, and flushes every present page at
// Close. Unlike the teacher's buffer pool, pages are never evicted —
// spec.md §1 explicitly rules out LRU eviction for this core — so
// `pages` only ever grows for the life of a session.

// Pager maps page numbers to 4096-byte buffers backed by a file.
type Pager struct {
	file     *os.File
	pages    [TableMaxPages][]byte // nil slot = not yet loaded
	numPages uint32
}

// Open opens path read-write, creating it if it does not exist. The
// file length must be a multiple of PageSize (spec.md §3 invariant 1);
// otherwise the file is rejected as corrupt.
func Open(path string) (*Pager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if info.Size()%PageSize != 0 {
		f.Close()
		return nil, fmt.Errorf("%w: file length %d", ErrCorruptFile, info.Size())
	}

	return &Pager{
		file:     f,
		numPages: uint32(info.Size() / PageSize),
	}, nil
}

// NumPages returns one past the highest page number ever materialized.
func (p *Pager) NumPages() uint32 { return p.numPages }

// GetPage returns the buffer for page n, loading it from disk on first
// access. The returned slice aliases the pager's resident buffer: callers
// mutate it in place and need not write it back explicitly.
func (p *Pager) GetPage(n uint32) ([]byte, error) {
	if n >= TableMaxPages {
		return nil, fmt.Errorf("%w: %d >= %d", ErrPageOutOfBounds, n, TableMaxPages)
	}

	if p.pages[n] == nil {
		buf := make([]byte, PageSize)
		if n < p.numPages {
			if _, err := p.file.ReadAt(buf, int64(n)*PageSize); err != nil {
				return nil, fmt.Errorf("read page %d: %w", n, err)
			}
		}
		p.pages[n] = buf
		if n >= p.numPages {
			p.numPages = n + 1
		}
	}
	return p.pages[n], nil
}

// AllocatePage hands out the next unused page number and materializes a
// zeroed buffer for it.
func (p *Pager) AllocatePage() (uint32, []byte, error) {
	n := p.numPages
	buf, err := p.GetPage(n)
	if err != nil {
		return 0, nil, err
	}
	return n, buf, nil
}

// Flush writes page n's full buffer back to the file. It fails if the
// slot was never loaded — flushing an absent page is a programmer error
// (spec.md §4.9), not a recoverable condition.
func (p *Pager) Flush(n uint32) error {
	if n >= TableMaxPages || p.pages[n] == nil {
		return fmt.Errorf("%w: page %d", ErrFlushAbsentPage, n)
	}
	if _, err := p.file.WriteAt(p.pages[n], int64(n)*PageSize); err != nil {
		return fmt.Errorf("flush page %d: %w", n, err)
	}
	return nil
}

// Close flushes every present page, in page-number order, then closes
// the file. This is the only durability commit point this engine has
// (spec.md §5).
func (p *Pager) Close() error {
	for n := uint32(0); n < p.numPages; n++ {
		if p.pages[n] == nil {
			continue
		}
		if err := p.Flush(n); err != nil {
			p.file.Close()
			return err
		}
	}
	return p.file.Close()
}
