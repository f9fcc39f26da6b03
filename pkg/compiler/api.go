package compiler

import (
	"context"

	"github.com/pthm/lineage"
)

// Create compiles the spec against db in one call. This is the
// recommended high-level API for most applications.
//
// The call is not atomic: a failing statement leaves the objects created
// so far in place. Wrap the call in a transaction when the store should
// end up all-or-nothing, and serialize concurrent schema migrations
// externally (e.g. with a migration lock):
//
//	tx, _ := db.BeginTx(ctx, nil)
//	if err := compiler.Create(ctx, tx, spec); err != nil {
//	    _ = tx.Rollback()
//	    return err
//	}
//	return tx.Commit()
//
// Recovery after a non-transactional partial failure is Drop with the
// same spec; every drop step tolerates missing objects.
func Create(ctx context.Context, db Execer, spec lineage.Spec) error {
	return New(db).Create(ctx, spec)
}

// Drop tears down the spec's objects against db in one call. Safe to call
// against a partially-created object set.
func Drop(ctx context.Context, db Execer, spec lineage.Spec) error {
	return New(db).Drop(ctx, spec)
}
