package lock

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"lockengine/pkg/concurrency/transaction"
	"lockengine/pkg/primitives"
	"lockengine/pkg/storage/buffer"
)

// Manager is the hierarchical lock manager. A single Manager instance
// serializes every state transition on the nested table/page/row
// registry and the pending-transaction queue under one mutex; the
// sharded maps below are a faithful echo of the reference implementation's
// atomic counters inside its own spin lock — redundant once the mutex is
// held, but cheap insurance if that ever changes.
type Manager struct {
	mu sync.Mutex

	buf buffer.Manager

	tables       *xsync.MapOf[primitives.TableHandle, *TableInfo]
	transactions *xsync.MapOf[transaction.Handle, *TransInfo]

	// tableLocks is the dense vector described in the object registry:
	// indexed directly by TableHandle.Index, grown on demand, never
	// shrunk. A nil entry means no locks are held anywhere under that
	// table.
	tableLocks []*TableLockInfo

	// pendingTransactions holds every transaction currently blocked,
	// in the order they were enqueued.
	pendingTransactions []transaction.Handle
}

// New returns a Manager backed by buf for resolving row addresses and
// table sources.
func New(buf buffer.Manager) *Manager {
	return &Manager{
		buf:          buf,
		tables:       xsync.NewMapOf[primitives.TableHandle, *TableInfo](),
		transactions: xsync.NewMapOf[transaction.Handle, *TransInfo](),
	}
}

// RegisterTable records table as known to the manager, resolving source
// through the buffer manager to confirm it names a real index page.
// It fails if table is already registered or source does not resolve.
func (m *Manager) RegisterTable(table primitives.TableHandle, source primitives.TableSource) bool {
	if !table.IsValid() {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.tables.Load(table); exists {
		return false
	}

	if _, ok := m.buf.GetIndexPage(source); !ok {
		return false
	}

	m.tables.Store(table, &TableInfo{Handle: table, Source: source})
	return true
}

// UnregisterTable removes table's registration record. It succeeds
// whether or not locks are still held on the table; quiescence is the
// caller's responsibility (see the manager's design notes).
func (m *Manager) UnregisterTable(table primitives.TableHandle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, existed := m.tables.LoadAndDelete(table)
	return existed
}

// RegisterTransaction records trans as known to the manager with the
// given tie-break importance for future victim selection. It fails if
// trans is already registered.
func (m *Manager) RegisterTransaction(trans transaction.Handle, importance uint64) bool {
	if !trans.IsValid() {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.transactions.Load(trans); exists {
		return false
	}

	m.transactions.Store(trans, newTransInfo(trans, importance))
	return true
}

// UnregisterTransaction removes trans's bookkeeping record. It does not
// release any locks trans still holds; callers must ReleaseLock (or, in
// the future, Rollback) first.
func (m *Manager) UnregisterTransaction(trans transaction.Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, existed := m.transactions.LoadAndDelete(trans)
	return existed
}

// TableHasLocks reports whether table's lock record exists and holds any
// counts or non-empty children. Emptiness is recursive: a table record
// with zero counts and an empty page map counts as having no locks even
// though the record itself still occupies its vector slot.
func (m *Manager) TableHasLocks(table primitives.TableHandle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	info := m.tableLockInfoAt(table.Index)
	if info == nil {
		return false
	}
	return !info.isEmpty() || len(info.Pages) > 0
}

// tableLockInfoAt returns the TableLockInfo at index, or nil if the
// vector does not reach that far or the slot is unset. Caller must hold
// m.mu.
func (m *Manager) tableLockInfoAt(index int) *TableLockInfo {
	if index < 0 || index >= len(m.tableLocks) {
		return nil
	}
	return m.tableLocks[index]
}

// ensureTableLockInfo grows the dense vector to cover index if needed and
// returns the (possibly newly created) TableLockInfo at that slot. Caller
// must hold m.mu.
func (m *Manager) ensureTableLockInfo(table primitives.TableHandle) *TableLockInfo {
	index := table.Index
	if index >= len(m.tableLocks) {
		grown := make([]*TableLockInfo, index+1)
		copy(grown, m.tableLocks)
		m.tableLocks = grown
	}
	if m.tableLocks[index] == nil {
		m.tableLocks[index] = newTableLockInfo(table)
	}
	return m.tableLocks[index]
}
