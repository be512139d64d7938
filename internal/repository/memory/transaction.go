package memory

import (
	"context"
	"fmt"

	"github.com/gestipresence/presence-backend-go/internal/pkg/database"
)

type transactorImpl struct {
	store *Store
}

func NewTransactor(store *Store) database.Transactor {
	return &transactorImpl{store: store}
}

// WithinTransaction runs fn while holding the store's writer lock. When fn
// fails, every table is put back the way it was before fn started.
func (t *transactorImpl) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if inTransaction(ctx) {
		return fn(ctx)
	}

	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	snap := t.store.snapshot()
	defer func() {
		if p := recover(); p != nil {
			t.store.restore(snap)
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		t.store.restore(snap)
		return fmt.Errorf("transaction rolled back: %w", err)
	}
	return nil
}
