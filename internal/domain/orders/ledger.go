package orders

import "context"

// Ledger es el registro append-only de transacciones.
type Ledger interface {
	Append(ctx context.Context, t Transaction) error
	List(ctx context.Context, f Filter) ([]Transaction, error)
}
