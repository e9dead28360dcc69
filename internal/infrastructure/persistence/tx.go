package persistence

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey struct{}

// withTx returns a context carrying an open transaction handle
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TxFromContext returns the transaction carried by ctx, if any
func TxFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx, ok
}

// writer returns the handle writes should go through: the context transaction
// when one is open, the pool connection otherwise
func writer(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return db
}
