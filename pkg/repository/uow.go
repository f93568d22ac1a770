package repository

import "context"

// UnitOfWork is the transaction boundary plus repository access in one
// abstraction. Repositories obtained inside Do are bound to the same
// session, so everything done in fn commits or rolls back together.
//
// The balance mutation and its ledger append in a posting rely on this:
// they must either both happen or neither.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an
	// error the work is rolled back and the error is returned unwrapped.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// Repository accessors, bound to the current session.
	UserRepository() (UserRepository, error)
	AccountRepository() (AccountRepository, error)
	TransactionRepository() (TransactionRepository, error)
}
