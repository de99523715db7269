package lock

import (
	"testing"

	"lockengine/pkg/primitives"
)

func TestLockTargetEqualByGranularity(t *testing.T) {
	table := primitives.TableHandle{Index: 1}
	other := primitives.TableHandle{Index: 2}

	a := LockTarget{Granularity: Table, TableHandle: table, Access: Shared}
	b := LockTarget{Granularity: Table, TableHandle: table, Access: Shared}
	if !a.Equal(b) {
		t.Errorf("expected equal table targets to compare equal")
	}

	c := LockTarget{Granularity: Table, TableHandle: other, Access: Shared}
	if a.Equal(c) {
		t.Errorf("expected targets on different tables to compare unequal")
	}

	page := primitives.PageHandle{Table: table, Page: 7}
	p1 := LockTarget{Granularity: Page, TableHandle: table, PageHandle: page, Access: Exclusive}
	p2 := LockTarget{Granularity: Page, TableHandle: table, PageHandle: page, Access: Exclusive}
	if !p1.Equal(p2) {
		t.Errorf("expected equal page targets to compare equal")
	}

	if a.Equal(p1) {
		t.Errorf("expected targets of different granularity to compare unequal")
	}
}

func TestLockTargetEqualDistinguishesAccess(t *testing.T) {
	table := primitives.TableHandle{Index: 1}
	a := LockTarget{Granularity: Table, TableHandle: table, Access: Shared}
	b := LockTarget{Granularity: Table, TableHandle: table, Access: Exclusive}
	if a.Equal(b) {
		t.Errorf("expected targets with different access modes to compare unequal")
	}
}
