package lock

import "lockengine/pkg/concurrency/transaction"

// DetectDeadlock builds a wait-for graph from pendingTransactions and the
// held-lock sets of every registered transaction, then reports one
// cycle if it finds one. An edge runs from a blocked transaction to
// every other transaction holding a lock on the same object that
// conflicts with the blocked request. The graph is rebuilt from scratch
// on every call rather than maintained incrementally, since it changes
// on every grant and release.
func (m *Manager) DetectDeadlock() []transaction.Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	graph := NewDependencyGraph()
	for _, waiter := range m.pendingTransactions {
		waiterInfo, ok := m.transactions.Load(waiter)
		if !ok || waiterInfo.PendingLock == nil {
			continue
		}
		wanted := *waiterInfo.PendingLock

		m.transactions.Range(func(holder transaction.Handle, holderInfo *TransInfo) bool {
			if holder == waiter {
				return true
			}
			for _, held := range holderInfo.Held {
				if sameObject(wanted, held) && !Compatible(wanted.Access, held.Access) {
					graph.AddEdge(waiter, holder)
					break
				}
			}
			return true
		})
	}

	return graph.Cycle()
}

// sameObject reports whether a and b name the same table/page/row,
// ignoring Access — used to find which held locks a pending request
// actually conflicts with, as opposed to LockTarget.Equal which also
// requires the access modes to match.
func sameObject(a, b LockTarget) bool {
	if a.Granularity != b.Granularity || a.TableHandle != b.TableHandle {
		return false
	}
	switch a.Granularity {
	case Table:
		return true
	case Page:
		return a.PageHandle == b.PageHandle
	case Row:
		return a.Address == b.Address
	default:
		return false
	}
}

// PickTransaction is a declared but unimplemented contract for deadlock
// victim selection. DetectDeadlock reports the cycle; choosing which
// participant to sacrifice (lowest Importance, youngest, least work
// done) is a policy decision this package does not guess at. It always
// reports no victim.
func (m *Manager) PickTransaction() (transaction.Handle, bool) {
	return transaction.Invalid, false
}

// Rollback is a declared but unimplemented contract for releasing a
// victim transaction's locks and pending request. It always fails.
func (m *Manager) Rollback(trans transaction.Handle) bool {
	return false
}
