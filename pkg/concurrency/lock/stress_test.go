package lock

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"lockengine/pkg/concurrency/transaction"
)

// TestConcurrentSharedAcquireNeverOvercounts fans many transactions out to
// acquire and release a table-level Shared lock concurrently, and checks
// that the holder count returns to zero and every release succeeded —
// the manager's single mutex should make every transition indivisible
// regardless of how many goroutines are calling in.
func TestConcurrentSharedAcquireNeverOvercounts(t *testing.T) {
	m, stub := newTestManager(t)
	table := registerTable(t, m, stub, 0)

	const workers = 64

	var group errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		group.Go(func() error {
			trans := transaction.FromValue(int64(i) + 1)
			if !m.RegisterTransaction(trans, 0) {
				return nil
			}
			target := LockTarget{Granularity: Table, TableHandle: table, Access: Shared}
			result, ok := m.AcquireLock(trans, target)
			if !ok || result.Blocked {
				return nil
			}
			if !m.ReleaseLock(trans, target) {
				t.Errorf("worker %d: release failed after a successful grant", i)
			}
			return nil
		})
	}
	require.NoError(t, group.Wait())

	require.Equal(t, 0, m.tableLockInfoAt(table.Index).counts[Shared])
}

// TestConcurrentRegistrationIsExclusive hammers RegisterTransaction with
// the same handle from many goroutines; exactly one must win.
func TestConcurrentRegistrationIsExclusive(t *testing.T) {
	m, _ := newTestManager(t)
	trans := transaction.FromValue(1)

	const attempts = 32
	successes := make(chan bool, attempts)

	var group errgroup.Group
	for i := 0; i < attempts; i++ {
		group.Go(func() error {
			successes <- m.RegisterTransaction(trans, 0)
			return nil
		})
	}
	require.NoError(t, group.Wait())
	close(successes)

	wins := 0
	for ok := range successes {
		if ok {
			wins++
		}
	}
	require.Equal(t, 1, wins)
}
