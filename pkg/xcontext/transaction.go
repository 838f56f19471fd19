package xcontext

import (
	"context"

	"gorm.io/gorm"
)

// txHolder is mutable so that a deferred WithRollbackDBTransaction sees the
// commit performed through the same context value.
type txHolder struct {
	tx *gorm.DB
}

// WithDBTransaction begins a database transaction and stores it in the
// returned context. Until committed or rolled back, DB() returns the
// transaction handle.
func WithDBTransaction(ctx context.Context) context.Context {
	tx := DB(ctx).Begin()
	return context.WithValue(ctx, txKey{}, &txHolder{tx: tx})
}

// WithCommitDBTransaction commits the transaction if one is active. The
// context keeps working afterwards with the base database handle.
func WithCommitDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(txKey{}).(*txHolder); ok && holder.tx != nil {
		holder.tx.Commit()
		holder.tx = nil
	}

	return ctx
}

// WithRollbackDBTransaction rolls back the transaction if it is still active.
// It is a no-op after a commit, so it is safe to defer right after
// WithDBTransaction.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(txKey{}).(*txHolder); ok && holder.tx != nil {
		holder.tx.Rollback()
		holder.tx = nil
	}

	return ctx
}
