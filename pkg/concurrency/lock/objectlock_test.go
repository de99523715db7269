package lock

import "testing"

func TestObjectLockGrantAndCompatible(t *testing.T) {
	var o objectLock
	o.grant(Shared)

	if !o.compatible(Shared) {
		t.Errorf("expected S compatible with held S")
	}

	var held objectLock
	held.grant(Exclusive)
	if held.compatible(IntentShared) {
		t.Errorf("expected IS incompatible with held X")
	}
}

func TestObjectLockDoesNotExemptSelfHeldCounts(t *testing.T) {
	var o objectLock
	o.grant(SharedIntentExclusive)

	// SIX is incompatible with everything, including a second SIX
	// request from the same transaction that already holds one.
	if o.compatible(SharedIntentExclusive) {
		t.Errorf("expected SIX incompatible even with itself")
	}
}

func TestObjectLockReleaseRejectsNegative(t *testing.T) {
	var o objectLock
	if o.release(Shared) {
		t.Errorf("expected release on a zero count to report false")
	}
}

func TestObjectLockIsEmpty(t *testing.T) {
	var o objectLock
	if !o.isEmpty() {
		t.Errorf("expected fresh objectLock to be empty")
	}
	o.grant(Update)
	if o.isEmpty() {
		t.Errorf("expected objectLock with a grant to be non-empty")
	}
	o.release(Update)
	if !o.isEmpty() {
		t.Errorf("expected objectLock to be empty again after release")
	}
}
