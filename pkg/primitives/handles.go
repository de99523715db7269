package primitives

import "fmt"

// invalidIndex marks a handle that does not refer to any registered table.
const invalidIndex = -1

// TableHandle identifies a table registered with the lock manager. It is
// the dense index the manager uses to index directly into its tableLocks
// vector instead of hashing through a map. TableHandle is comparable and
// copy-safe; callers may pass it by value freely.
type TableHandle struct {
	Index int
}

// InvalidTableHandle is returned by operations that fail before a table
// handle can be produced.
var InvalidTableHandle = TableHandle{Index: invalidIndex}

// IsValid reports whether h refers to a table slot at all. It does not
// confirm the table is still registered; a manager can reuse a stale index
// for a different table after UnregisterTable, so callers should not keep
// handles around past unregistration.
func (h TableHandle) IsValid() bool {
	return h.Index >= 0
}

func (h TableHandle) String() string {
	if !h.IsValid() {
		return "TableHandle(invalid)"
	}
	return fmt.Sprintf("TableHandle(%d)", h.Index)
}

// PageHandle identifies a page within a table. Page is opaque to the lock
// manager; it is only ever compared for equality and used as a map key.
type PageHandle struct {
	Table TableHandle
	Page  int64
}

func (h PageHandle) String() string {
	return fmt.Sprintf("PageHandle(table=%s, page=%d)", h.Table, h.Page)
}

// RowOffset identifies a row's position within a page. Like PageHandle.Page,
// it is opaque to the lock manager.
type RowOffset int64

// RowAddress is the opaque, encoded location of a row as handed to the lock
// manager by a caller that only knows a byte offset into some underlying
// storage object. It must be decoded through a BufferManager before the
// owning page and row offset are known.
type RowAddress struct {
	Raw uint64
}

func (a RowAddress) String() string {
	return fmt.Sprintf("RowAddress(0x%x)", a.Raw)
}

// TableSource is the opaque value a caller supplies when registering a
// table to identify its backing storage. It is resolved to the table's
// index page via a BufferManager.
type TableSource struct {
	Raw uint64
}

func (s TableSource) String() string {
	return fmt.Sprintf("TableSource(0x%x)", s.Raw)
}
