package store

import "context"

// RunAsActor wraps ctx with actor and calls fn inside the provided TxRunner
func RunAsActor(ctx context.Context, tx TxRunner, actorID string, fn func(ctx context.Context, q RowQuerier) error) error {
	ctx = WithActor(ctx, actorID)
	return tx.Tx(ctx, func(q RowQuerier) error {
		return fn(ctx, q)
	})
}

// RunAsSuperadmin wraps ctx as superadmin and calls fn inside the provided TxRunner
func RunAsSuperadmin(ctx context.Context, tx TxRunner, fn func(ctx context.Context, q RowQuerier) error) error {
	ctx = WithSuperadmin(ctx)
	return tx.Tx(ctx, func(q RowQuerier) error {
		return fn(ctx, q)
	})
}
