package pager

import "errors"

// Recoverable outcomes, surfaced to callers as ordinary errors (spec.md §7):
var (
	// ErrDuplicateKey is returned when an insert's key already exists in
	// the leaf the cursor resolved to.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrTableFull is returned when a leaf split needs a new page and the
	// pager has no page slot left (page number >= TableMaxPages).
	ErrTableFull = errors.New("table full")

	// ErrStringTooLong is returned when username/email exceed their
	// fixed widths.
	ErrStringTooLong = errors.New("string is too long")
)

// Fatal conditions (spec.md §4.9, §9): these terminate the session. They
// are still plain errors rather than panics so tests can assert on them,
// but cmd/repl treats every one of them as unrecoverable.
var (
	// ErrCorruptFile is returned by Open when the file length is not a
	// multiple of PageSize.
	ErrCorruptFile = errors.New("corrupt file: length is not a multiple of the page size")

	// ErrPageOutOfBounds is returned by GetPage for n >= TableMaxPages.
	ErrPageOutOfBounds = errors.New("page number out of bounds")

	// ErrFlushAbsentPage is returned by Flush for a page slot that was
	// never loaded — a programmer error, not a recoverable condition.
	ErrFlushAbsentPage = errors.New("flush of a page that was never loaded")

	// ErrUnimplementedDescend is returned by Find once the root has
	// split into an internal node containing more than one leaf's
	// worth of subtree; this core's Find only descends a leaf root
	// (spec.md §9, preserved-from-source option).
	ErrUnimplementedDescend = errors.New("internal-node descent during find is not implemented")

	// ErrUnimplementedSplit is returned when a non-root leaf would need
	// to split; only the splitting-leaf-is-root case builds a new root
	// (spec.md §9, preserved-from-source option).
	ErrUnimplementedSplit = errors.New("splitting a non-root leaf is not implemented")
)
