package lock

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lockengine/pkg/concurrency/transaction"
)

func TestDetectDeadlockFindsWaitForCycle(t *testing.T) {
	m, stub := newTestManager(t)
	tableA := registerTable(t, m, stub, 0)
	tableB := registerTable(t, m, stub, 1)

	x1, x2 := transaction.FromValue(1), transaction.FromValue(2)
	require.True(t, m.RegisterTransaction(x1, 0))
	require.True(t, m.RegisterTransaction(x2, 0))

	_, ok := m.AcquireLock(x1, LockTarget{Granularity: Table, TableHandle: tableA, Access: SharedIntentExclusive})
	require.True(t, ok)
	_, ok = m.AcquireLock(x2, LockTarget{Granularity: Table, TableHandle: tableB, Access: SharedIntentExclusive})
	require.True(t, ok)

	// x1 waits on tableB, which x2 holds; x2 waits on tableA, which x1
	// holds — a classic two-way wait-for cycle.
	result, ok := m.AcquireLock(x1, LockTarget{Granularity: Table, TableHandle: tableB, Access: Shared})
	require.True(t, ok)
	require.True(t, result.Blocked)

	result, ok = m.AcquireLock(x2, LockTarget{Granularity: Table, TableHandle: tableA, Access: Shared})
	require.True(t, ok)
	require.True(t, result.Blocked)

	cycle := m.DetectDeadlock()
	require.Len(t, cycle, 2)
	require.Contains(t, cycle, x1)
	require.Contains(t, cycle, x2)
}

func TestDetectDeadlockReportsNoneWhenNoCycle(t *testing.T) {
	m, stub := newTestManager(t)
	table := registerTable(t, m, stub, 0)

	x1, x2 := transaction.FromValue(1), transaction.FromValue(2)
	require.True(t, m.RegisterTransaction(x1, 0))
	require.True(t, m.RegisterTransaction(x2, 0))

	_, ok := m.AcquireLock(x1, LockTarget{Granularity: Table, TableHandle: table, Access: SharedIntentExclusive})
	require.True(t, ok)

	result, ok := m.AcquireLock(x2, LockTarget{Granularity: Table, TableHandle: table, Access: Shared})
	require.True(t, ok)
	require.True(t, result.Blocked)

	require.Nil(t, m.DetectDeadlock())
}
