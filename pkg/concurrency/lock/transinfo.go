package lock

import "lockengine/pkg/concurrency/transaction"

// TransInfo is the manager's per-transaction bookkeeping: the handle
// identifying it externally, its tie-break weight for future victim
// selection, the multiset of targets it currently holds, and the single
// request it may have pending.
//
// Held is a list, not a set: a transaction can hold the same target twice
// over two separate Acquire calls, and each acquisition is recorded as a
// separate entry that must be released separately.
type TransInfo struct {
	Handle      transaction.Handle
	Importance  uint64
	Held        []LockTarget
	PendingLock *LockTarget
}

func newTransInfo(handle transaction.Handle, importance uint64) *TransInfo {
	return &TransInfo{Handle: handle, Importance: importance}
}

// hasPending reports whether this transaction already has a blocked
// request outstanding.
func (t *TransInfo) hasPending() bool {
	return t.PendingLock != nil
}

// addHeld records a newly granted target.
func (t *TransInfo) addHeld(target LockTarget) {
	t.Held = append(t.Held, target)
}

// removeHeld removes exactly one occurrence of target from the held
// multiset, reporting whether one was found.
func (t *TransInfo) removeHeld(target LockTarget) bool {
	for i, held := range t.Held {
		if held.Equal(target) {
			t.Held = append(t.Held[:i], t.Held[i+1:]...)
			return true
		}
	}
	return false
}
