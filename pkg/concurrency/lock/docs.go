// Package lock implements a hierarchical lock manager over three nested
// object granularities — table, page, and row — using six lock modes:
// Shared, Exclusive, Update, IntentShared, IntentExclusive, and
// SharedIntentExclusive.
//
// # Compatibility
//
// Grant decisions are driven by a static 6x6 compatibility matrix (see
// Compatible). A request is granted against a leaf object iff it is
// compatible with every mode currently held on that object with a
// nonzero count — including modes held by the requesting transaction
// itself. The held-lock structure is a multiset, not a set, so acquiring
// the same target twice records two entries that must be released
// separately.
//
// # Registry shape
//
// The manager keeps a dense vector of *TableLockInfo indexed directly by
// TableHandle.Index, growing on demand and never shrinking. Each
// TableLockInfo owns a map of page handle to *PageLockInfo, and each of
// those owns a map of row offset to *RowLockInfo. Page and row records
// are removed from their parent as soon as they go empty; table records
// persist even at zero counts.
//
// # Operations
//
// AcquireLock, ReleaseLock, and UpgradeLock all walk the same traversal
// (operateOnObject): validate the transaction, table, and target shape;
// resolve or create the table/page/row chain down to the addressed
// granularity; and apply the operation to the leaf record. Only an
// acquire (AcquireLock, or the re-acquire phase of UpgradeLock) creates
// missing chain links — release, and the release phase of an upgrade,
// require the chain to already exist.
//
// A transaction may have at most one pending (blocked) request at a
// time, tracked both on its TransInfo and in the manager-wide, FIFO
// pendingTransactions queue. The manager never blocks a caller's thread:
// a request that cannot be granted immediately is recorded as pending
// and AcquireLock returns with Result.Blocked set, leaving wake-up to the
// caller.
//
// UpgradeLock is release-then-reacquire, not an atomic mode bump. Between
// the two phases another transaction can acquire an incompatible mode on
// the same object, leaving the upgrading transaction holding nothing and
// pending instead. This is a documented limitation, not a bug.
//
// # Deadlocks
//
// DetectDeadlock builds a DependencyGraph (wait-for graph) from the
// pending requests and held locks on every call and reports one cycle's
// participants, or nil if there is none. PickTransaction and Rollback are
// declared but unimplemented; see their doc comments.
//
// # Concurrency
//
// A single internal mutex serializes every state transition: compatibility
// checks, count mutation, pending-queue updates, and cascade cleanup all
// happen inside one critical section. There are no lock-free fast paths.
// Handles (TableHandle, PageHandle, transaction.Handle) are value-typed
// and safe to copy; the manager is the sole owner of every lock record it
// creates.
package lock
