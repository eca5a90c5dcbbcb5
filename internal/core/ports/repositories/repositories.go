package repositories

import "context"

// TransactionManager defines the ability to run repository work atomically.
type TransactionManager interface {
	// WithinTx executes fn inside a database transaction, committing on nil
	// error and rolling back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
