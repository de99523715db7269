package lock

import "lockengine/pkg/primitives"

// objectLock is the per-object holder-count record shared by table, page,
// and row lock records. It is never exposed outside the package; callers
// only ever see bool/Result outcomes.
type objectLock struct {
	counts [numAccessModes]int
}

// compatible reports whether a request for access is compatible with
// every currently-held mode on this object. It deliberately does not exempt the
// requesting transaction's own held counts: the held-locks structure is a
// multiset, and a transaction's prior acquisitions on the same object
// still participate in this check.
func (o *objectLock) compatible(access Access) bool {
	for m := 0; m < numAccessModes; m++ {
		if o.counts[m] > 0 && !Compatible(access, Access(m)) {
			return false
		}
	}
	return true
}

func (o *objectLock) grant(access Access) {
	o.counts[access]++
}

// release decrements the holder count for access. It reports false if the
// count was already zero; the caller treats that as an invariant
// violation, not an ordinary failure.
func (o *objectLock) release(access Access) bool {
	if o.counts[access] <= 0 {
		return false
	}
	o.counts[access]--
	return true
}

// isEmpty reports whether every mode count is zero. It says nothing about
// any child map; callers combine this with a child-map emptiness check.
func (o *objectLock) isEmpty() bool {
	for _, c := range o.counts {
		if c != 0 {
			return false
		}
	}
	return true
}

// TableLockInfo is the lock record for one registered table, plus the
// page-level records nested beneath it. Table records are never removed
// from the manager's dense vector once created, even when empty.
type TableLockInfo struct {
	Table primitives.TableHandle
	objectLock
	Pages map[primitives.PageHandle]*PageLockInfo
}

func newTableLockInfo(table primitives.TableHandle) *TableLockInfo {
	return &TableLockInfo{
		Table: table,
		Pages: make(map[primitives.PageHandle]*PageLockInfo),
	}
}

// PageLockInfo is the lock record for one page, plus the row-level
// records nested beneath it.
type PageLockInfo struct {
	Page primitives.PageHandle
	objectLock
	Rows map[primitives.RowOffset]*RowLockInfo
}

func newPageLockInfo(page primitives.PageHandle) *PageLockInfo {
	return &PageLockInfo{
		Page: page,
		Rows: make(map[primitives.RowOffset]*RowLockInfo),
	}
}

// RowLockInfo is the lock record for one row. It has no children.
type RowLockInfo struct {
	Offset primitives.RowOffset
	objectLock
}

func newRowLockInfo(offset primitives.RowOffset) *RowLockInfo {
	return &RowLockInfo{Offset: offset}
}

// TableInfo is the registration record created by RegisterTable. It is
// distinct from TableLockInfo: a table can be registered with zero locks
// held on it, and the two records are garbage-collected independently.
type TableInfo struct {
	Handle primitives.TableHandle
	Source primitives.TableSource
}
