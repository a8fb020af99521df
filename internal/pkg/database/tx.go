package database

import "context"

// TxManager runs fn as one atomic unit. Repositories called with the ctx
// passed to fn take part in the same transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
