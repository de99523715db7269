// Package transaction provides the opaque handle the lock manager hands
// back to callers to identify a registered transaction. It deliberately
// carries no status, timestamp, or WAL bookkeeping — that belongs to a
// transaction-processing subsystem the lock manager has no dependency on.
package transaction

import (
	"fmt"
	"sync/atomic"
)

var nextID atomic.Int64

// Handle identifies a transaction known to the lock manager. Unlike a
// pointer-identity transaction ID, Handle is value-typed and copy-safe by design: two Handles with the same id
// always refer to the same transaction, and a Handle can be stored,
// copied, and compared without indirection.
type Handle struct {
	id int64
}

// Invalid is the zero Handle, returned by operations that fail before a
// real handle can be produced.
var Invalid = Handle{id: 0}

// New returns a fresh Handle with an id unique for the lifetime of the
// process.
func New() Handle {
	return Handle{id: nextID.Add(1)}
}

// FromValue wraps an externally-supplied id as a Handle, for callers that
// maintain their own transaction numbering (such as tests).
// id must be nonzero; a zero id produces Invalid.
func FromValue(id int64) Handle {
	return Handle{id: id}
}

// ID returns the underlying numeric identifier.
func (h Handle) ID() int64 {
	return h.id
}

// IsValid reports whether h is anything other than the zero Handle.
func (h Handle) IsValid() bool {
	return h.id != 0
}

// Equals reports whether h and other identify the same transaction.
func (h Handle) Equals(other Handle) bool {
	return h.id == other.id
}

func (h Handle) String() string {
	return fmt.Sprintf("Txn(%d)", h.id)
}
