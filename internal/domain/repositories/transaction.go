package repositories

import "context"

// TxFn runs with a context carrying the active transaction
type TxFn func(ctx context.Context) error

// TransactionManager runs multi-statement writes atomically.
// Cascading deletes and moves go through it.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
