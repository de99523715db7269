package lock

import (
	"fmt"

	"lockengine/pkg/concurrency/transaction"
	"lockengine/pkg/primitives"
)

// Granularity names the object level a LockTarget addresses.
type Granularity int

const (
	Table Granularity = iota
	Page
	Row
)

func (g Granularity) String() string {
	switch g {
	case Table:
		return "Table"
	case Page:
		return "Page"
	case Row:
		return "Row"
	default:
		return "?"
	}
}

// LockTarget names exactly what is being locked and at what mode. Which
// fields are meaningful depends on Granularity:
//
//   - Table: only TableHandle and Access are read.
//   - Page: TableHandle, PageHandle, and Access.
//   - Row: TableHandle, Address, and Access; PageHandle is resolved by the
//     manager decoding Address through the buffer manager, not supplied
//     by the caller.
//
// Two targets are equal iff every field meaningful for their shared
// granularity matches.
type LockTarget struct {
	Granularity Granularity
	TableHandle primitives.TableHandle
	PageHandle  primitives.PageHandle
	Address     primitives.RowAddress
	Access      Access
}

// Equal reports whether t and other name the same object at the same
// granularity and mode, comparing only the fields meaningful for that
// granularity.
func (t LockTarget) Equal(other LockTarget) bool {
	if t.Granularity != other.Granularity || t.Access != other.Access {
		return false
	}
	if t.TableHandle != other.TableHandle {
		return false
	}
	switch t.Granularity {
	case Table:
		return true
	case Page:
		return t.PageHandle == other.PageHandle
	case Row:
		return t.Address == other.Address
	default:
		return false
	}
}

func (t LockTarget) String() string {
	switch t.Granularity {
	case Table:
		return fmt.Sprintf("Target{Table %s, %s}", t.TableHandle, t.Access)
	case Page:
		return fmt.Sprintf("Target{Page %s, %s}", t.PageHandle, t.Access)
	case Row:
		return fmt.Sprintf("Target{Row %s, %s}", t.Address, t.Access)
	default:
		return "Target{invalid}"
	}
}

// Result is the outcome of AcquireLock or UpgradeLock. Blocked is not an
// error: Blocked == false means the lock was granted immediately, while
// Blocked == true means the transaction was enqueued onto
// pendingTransactions and must be woken some other way.
type Result struct {
	Blocked bool

	// WaitFor is reserved for a future scheduler that wants to know which
	// holder a blocked request is waiting behind. The manager does not
	// populate it today.
	WaitFor transaction.Handle
}
