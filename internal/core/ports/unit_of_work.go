package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Callers manage the
// transaction explicitly.
type UnitOfWork interface {
	// Begin starts a transaction. Calling it twice is a no-op.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. It fails when no
	// transaction is active.
	Rollback(ctx context.Context) error

	// DocumentRepository is bound to the transaction started by Begin.
	DocumentRepository() DocumentRepository
}
