package lock

import (
	"lockengine/pkg/concurrency/transaction"
	"lockengine/pkg/dberr"
	"lockengine/pkg/logging"
	"lockengine/pkg/primitives"
)

const component = "LockManager"

// traversal carries everything operateOnObject resolves while walking
// down to a leaf lock record, so the three public operations can act on
// the leaf and, on release, cascade cleanup back up without repeating the
// walk.
type traversal struct {
	trans *TransInfo
	table *TableLockInfo
	page  *PageLockInfo
	row   *RowLockInfo
	leaf  *objectLock
}

// validate checks the three preconditions every operation shares: the
// transaction is registered, the table is registered, and the target's
// page handle or row address is structurally sound for its granularity.
func (m *Manager) validate(trans transaction.Handle, target LockTarget) (*TransInfo, bool) {
	ti, ok := m.transactions.Load(trans)
	if !ok {
		return nil, false
	}
	if !target.TableHandle.IsValid() {
		return nil, false
	}
	if _, ok := m.tables.Load(target.TableHandle); !ok {
		return nil, false
	}

	switch target.Granularity {
	case Table:
		return ti, true
	case Page:
		if target.PageHandle.Table != target.TableHandle {
			return nil, false
		}
		return ti, true
	case Row:
		if target.Address == (primitives.RowAddress{}) {
			return nil, false
		}
		return ti, true
	default:
		return nil, false
	}
}

// operateOnObject is the uniform traversal shared by AcquireLock,
// ReleaseLock, and UpgradeLock: validate, resolve or create the
// table/page/row chain down to the granularity the target names, and
// hand back the leaf record. createLockInfo is true only for an acquire
// (including UpgradeLock's re-acquire phase); a release requires the
// chain to already exist.
func (m *Manager) operateOnObject(trans transaction.Handle, target LockTarget, createLockInfo, checkPendingLock bool) (traversal, bool) {
	ti, ok := m.validate(trans, target)
	if !ok {
		return traversal{}, false
	}
	if checkPendingLock && ti.hasPending() {
		return traversal{}, false
	}

	table := m.resolveTableLockInfo(target.TableHandle, createLockInfo)
	if table == nil {
		return traversal{}, false
	}
	if target.Granularity == Table {
		return traversal{trans: ti, table: table, leaf: &table.objectLock}, true
	}

	var rowOffset primitives.RowOffset
	pageHandle := target.PageHandle
	if target.Granularity == Row {
		decoded, offset, decodeOK := m.buf.DecodePointer(target.Address)
		if !decodeOK {
			dberr.Fatal("ROW_ADDRESS_UNDECODABLE", "operateOnObject", component, "buffer manager could not decode row address")
		}
		pageHandle = decoded
		rowOffset = offset
	}

	page, ok := m.resolvePage(table, pageHandle, createLockInfo)
	if !ok {
		return traversal{}, false
	}
	if target.Granularity == Page {
		return traversal{trans: ti, table: table, page: page, leaf: &page.objectLock}, true
	}

	row, ok := m.resolveRow(page, rowOffset, createLockInfo)
	if !ok {
		return traversal{}, false
	}
	return traversal{trans: ti, table: table, page: page, row: row, leaf: &row.objectLock}, true
}

func (m *Manager) resolveTableLockInfo(table primitives.TableHandle, create bool) *TableLockInfo {
	if create {
		return m.ensureTableLockInfo(table)
	}
	return m.tableLockInfoAt(table.Index)
}

func (m *Manager) resolvePage(table *TableLockInfo, pageHandle primitives.PageHandle, create bool) (*PageLockInfo, bool) {
	page, exists := table.Pages[pageHandle]
	if !exists {
		if !create {
			return nil, false
		}
		page = newPageLockInfo(pageHandle)
		table.Pages[pageHandle] = page
	}
	return page, true
}

func (m *Manager) resolveRow(page *PageLockInfo, offset primitives.RowOffset, create bool) (*RowLockInfo, bool) {
	row, exists := page.Rows[offset]
	if !exists {
		if !create {
			return nil, false
		}
		row = newRowLockInfo(offset)
		page.Rows[offset] = row
	}
	return row, true
}

// AcquireLock attempts to grant target to trans. It returns false for
// operational failures (bad handle, transaction already pending). On
// true, result.Blocked distinguishes an immediate grant from an enqueued,
// blocked request.
func (m *Manager) AcquireLock(trans transaction.Handle, target LockTarget) (Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tr, ok := m.operateOnObject(trans, target, true, true)
	if !ok {
		return Result{}, false
	}

	if tr.leaf.compatible(target.Access) {
		tr.leaf.grant(target.Access)
		tr.trans.addHeld(target)
		logging.WithLock(int(trans.ID()), target.String()).Debug("lock granted")
		return Result{Blocked: false}, true
	}

	if !m.enqueuePending(tr.trans, target) {
		return Result{}, false
	}
	logging.WithLock(int(trans.ID()), target.String()).Debug("lock request blocked")
	return Result{Blocked: true}, true
}

// enqueuePending records target as trans's single outstanding pending
// request. It fails if trans already has one or is already enqueued.
func (m *Manager) enqueuePending(ti *TransInfo, target LockTarget) bool {
	if ti.hasPending() {
		return false
	}
	for _, pending := range m.pendingTransactions {
		if pending.Equals(ti.Handle) {
			return false
		}
	}
	t := target
	ti.PendingLock = &t
	m.pendingTransactions = append(m.pendingTransactions, ti.Handle)
	return true
}

// removePending removes trans from pendingTransactions and clears its
// pending lock, reporting whether it was found there holding exactly
// target.
func (m *Manager) removePending(ti *TransInfo, target LockTarget) bool {
	if ti.PendingLock == nil || !ti.PendingLock.Equal(target) {
		return false
	}
	for i, pending := range m.pendingTransactions {
		if pending.Equals(ti.Handle) {
			m.pendingTransactions = append(m.pendingTransactions[:i], m.pendingTransactions[i+1:]...)
			ti.PendingLock = nil
			return true
		}
	}
	return false
}

// ReleaseLock releases target from trans, whether it is currently held or
// only pending. It cascades cleanup of now-empty page and row records up
// to (but never including) the table record.
func (m *Manager) ReleaseLock(trans transaction.Handle, target LockTarget) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	tr, ok := m.operateOnObject(trans, target, false, false)
	if !ok {
		return false
	}

	if tr.trans.removeHeld(target) {
		if !tr.leaf.release(target.Access) {
			dberr.Fatal("NEGATIVE_HOLDER_COUNT", "ReleaseLock", component, "holder count would go negative")
		}
		m.cascadeCleanup(tr)
		logging.WithLock(int(trans.ID()), target.String()).Debug("lock released")
		return true
	}

	return m.removePending(tr.trans, target)
}

// cascadeCleanup removes now-empty row and page records from their
// parents, in that order. Table records are never removed here.
func (m *Manager) cascadeCleanup(tr traversal) {
	if tr.row != nil {
		if tr.row.isEmpty() {
			delete(tr.page.Rows, tr.row.Offset)
		}
	}
	if tr.page != nil {
		if tr.page.isEmpty() && len(tr.page.Rows) == 0 {
			delete(tr.table.Pages, tr.page.Page)
		}
	}
}

// UpgradeLock releases oldTarget and re-acquires the same object at
// newAccess. If the release fails, the upgrade fails and state is
// unchanged. If the release succeeds but the re-acquire cannot be
// immediately granted, the upgrade still reports success with
// result.Blocked == true; the transaction then holds nothing on the
// object and has a pending request in its place. This two-phase sequence
// is not atomic with respect to other transactions by design.
func (m *Manager) UpgradeLock(trans transaction.Handle, oldTarget LockTarget, newAccess Access) (Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// The pending check is gated once, up front, before either phase of
	// the release-then-acquire sequence touches any state: a transaction
	// with an unrelated pending request must have the whole upgrade
	// rejected with zero mutation, not have oldTarget released out from
	// under it only to fail on re-acquire.
	ti, ok := m.validate(trans, oldTarget)
	if !ok {
		return Result{}, false
	}
	if ti.hasPending() {
		return Result{}, false
	}

	if !m.releaseLocked(trans, oldTarget) {
		return Result{}, false
	}

	newTarget := oldTarget
	newTarget.Access = newAccess

	tr, ok := m.operateOnObject(trans, newTarget, true, false)
	if !ok {
		return Result{}, false
	}

	if tr.leaf.compatible(newAccess) {
		tr.leaf.grant(newAccess)
		tr.trans.addHeld(newTarget)
		return Result{Blocked: false}, true
	}

	if !m.enqueuePending(tr.trans, newTarget) {
		return Result{}, false
	}
	return Result{Blocked: true}, true
}

// releaseLocked is ReleaseLock's body without taking m.mu, for reuse from
// UpgradeLock which already holds it.
func (m *Manager) releaseLocked(trans transaction.Handle, target LockTarget) bool {
	tr, ok := m.operateOnObject(trans, target, false, false)
	if !ok {
		return false
	}

	if tr.trans.removeHeld(target) {
		if !tr.leaf.release(target.Access) {
			dberr.Fatal("NEGATIVE_HOLDER_COUNT", "UpgradeLock", component, "holder count would go negative")
		}
		m.cascadeCleanup(tr)
		return true
	}

	return m.removePending(tr.trans, target)
}
