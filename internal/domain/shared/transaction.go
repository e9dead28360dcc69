package shared

import "context"

// TransactionManager runs a function inside a single storage transaction.
// The transaction travels in the context handed to fn, so repository writes
// made through that context commit or roll back together.
type TransactionManager interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
