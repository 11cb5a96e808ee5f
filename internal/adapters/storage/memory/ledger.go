package memory

import (
	"context"
	"sync"

	"pet-shop/internal/domain/orders"
)

type ledger struct {
	mu  sync.RWMutex
	txs []orders.Transaction
}

// NewLedger es el ledger in-memory para dev y tests.
func NewLedger() orders.Ledger {
	return &ledger{}
}

func (l *ledger) Append(ctx context.Context, t orders.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.txs = append(l.txs, t)
	return nil
}

func (l *ledger) List(ctx context.Context, f orders.Filter) ([]orders.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]orders.Transaction, 0)
	for _, t := range l.txs {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}
