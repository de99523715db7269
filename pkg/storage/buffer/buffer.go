// Package buffer declares the lock manager's one external collaborator: a
// buffer manager capable of resolving opaque table sources and row
// addresses into the primitives the lock manager actually indexes by.
// The lock manager never reads or writes page contents; it only needs
// enough of the buffer manager's address space to find a page handle.
package buffer

import "lockengine/pkg/primitives"

// Manager is the contract the lock manager depends on to resolve caller-
// supplied addresses into its own primitives. A real implementation would
// be backed by a page cache and an on-disk file; Stub provides an
// in-memory stand-in for tests.
type Manager interface {
	// GetIndexPage resolves a TableSource to the page that holds its
	// index root, for callers that want to lock a table's first page
	// without decoding a specific row address first. ok is false if
	// source does not name a table the buffer manager knows about.
	GetIndexPage(source primitives.TableSource) (page primitives.PageHandle, ok bool)

	// DecodePointer resolves a RowAddress into the page that contains it
	// and the row's offset within that page. ok is false if the address
	// does not decode to anything the buffer manager recognizes; a lock
	// manager that receives ok == false for a row it was asked to lock
	// treats this as a fatal invariant violation, not an ordinary
	// operational failure, since a well-formed caller should never hand
	// over an address the buffer manager cannot place.
	DecodePointer(address primitives.RowAddress) (page primitives.PageHandle, offset primitives.RowOffset, ok bool)
}
