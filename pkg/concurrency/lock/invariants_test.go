package lock

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lockengine/pkg/concurrency/transaction"
	"lockengine/pkg/primitives"
)

// checkInvariants walks the manager's registry and asserts these
// invariants hold: no negative counts, every page and row record is keyed
// by its own identity, and empty non-table records are absent from their
// parent maps. It does not cross-check transactions' held targets against
// the holder counts.
func checkInvariants(t *testing.T, m *Manager) {
	t.Helper()

	for _, table := range m.tableLocks {
		if table == nil {
			continue
		}
		for _, c := range table.counts {
			require.GreaterOrEqual(t, c, 0)
		}
		for pageHandle, page := range table.Pages {
			require.Equal(t, pageHandle, page.Page)
			for _, c := range page.counts {
				require.GreaterOrEqual(t, c, 0)
			}
			require.False(t, page.isEmpty() && len(page.Rows) == 0,
				"an empty page record with no rows must have been removed from its table")

			for offset, row := range page.Rows {
				require.Equal(t, offset, row.Offset)
				for _, c := range row.counts {
					require.GreaterOrEqual(t, c, 0)
				}
				require.False(t, row.isEmpty(), "an empty row record must have been removed from its page")
			}
		}
	}
}

func TestInvariantsHoldAcrossAcquireReleaseSequence(t *testing.T) {
	m, stub := newTestManager(t)
	table := registerTable(t, m, stub, 0)

	page := primitives.PageHandle{Table: table, Page: 1}
	addresses := []primitives.RowAddress{{Raw: 1}, {Raw: 2}, {Raw: 3}}
	for i, addr := range addresses {
		stub.RegisterRow(addr, page, primitives.RowOffset(i))
	}

	x1 := transaction.FromValue(1)
	require.True(t, m.RegisterTransaction(x1, 0))

	targets := make([]LockTarget, 0, len(addresses))
	for _, addr := range addresses {
		target := LockTarget{Granularity: Row, TableHandle: table, Address: addr, Access: Exclusive}
		_, ok := m.AcquireLock(x1, target)
		require.True(t, ok)
		targets = append(targets, target)
		checkInvariants(t, m)
	}

	for _, target := range targets {
		require.True(t, m.ReleaseLock(x1, target))
		checkInvariants(t, m)
	}

	require.False(t, m.TableHasLocks(table))
}
