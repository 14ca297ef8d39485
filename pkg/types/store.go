package types

import "errors"

// Store defines the interface for backend-agnostic record storage.
// Callers attach to a backend, access tables by name, and detach when done.
// All mutation that spans more than one table goes through Transaction.
type Store interface {
	// GetTable returns the Table for the given name.
	// Returns ErrTableNotFound if the name is not a standard table.
	GetTable(name string) (Table, error)

	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations on tables return ErrStoreDetached.
	Detach() error

	// Transaction runs fn inside a single atomic unit covering exactly the
	// named tables. Tables obtained through the Tx write against the
	// transaction; every write commits together when fn returns nil, and
	// every write rolls back when fn returns an error. A commit rejected by
	// the backend surfaces as an error wrapping ErrTransactionFailure.
	Transaction(tables []string, fn func(tx Tx) error) error
}

// Tx is a handle to an in-flight transaction. Helper operations receive the
// Tx and record their writes against it; nothing becomes visible until the
// transaction commits.
type Tx interface {
	// Table returns the named table bound to this transaction.
	// Returns ErrTableNotDeclared if the name was not in the set declared
	// when the transaction was opened.
	Table(name string) (Table, error)
}

// Table provides uniform row operations for a single entity table.
// Rows are returned as any; callers type-assert to the concrete entity struct.
type Table interface {
	// Name returns the table name.
	Name() string

	// ToArray returns every row in the table.
	ToArray() ([]any, error)

	// Fetch returns all rows matching the filter. Filter keys are indexed
	// column names; values are compared for equality. An empty or nil filter
	// returns every row.
	Fetch(filter map[string]any) ([]any, error)

	// BulkPut inserts or replaces rows. A row with an empty local ID is
	// assigned a fresh one; a row whose natural key collides with an
	// existing row replaces it. Row pointers are updated in place with the
	// assigned IDs.
	BulkPut(rows []any) error

	// BulkDelete removes rows by local ID. IDs with no matching row are
	// ignored.
	BulkDelete(ids []string) error

	// DeleteWhere removes all rows matching the filter and reports how many
	// were deleted. Refuses an empty filter.
	DeleteWhere(filter map[string]any) (int, error)
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrTableNotFound   = errors.New("table not found")
)

// Table operation errors.
var (
	ErrNotFound         = errors.New("row not found")
	ErrInvalidData      = errors.New("invalid row data")
	ErrInvalidFilter    = errors.New("invalid filter")
	ErrTableNotDeclared = errors.New("table not declared in transaction")
)

// ErrTransactionFailure indicates the backend rejected or aborted a
// transaction. All writes recorded against the transaction are rolled back.
var ErrTransactionFailure = errors.New("transaction failed")
