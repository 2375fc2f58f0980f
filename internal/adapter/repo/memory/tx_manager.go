package memory

import "context"

// TxManager serializes logical transactions. Individual repository calls
// take the store mutex themselves, so repos remain usable outside a
// transaction (the generation round trip reads between two of them).
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()
	return fn(ctx)
}
