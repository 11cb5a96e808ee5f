package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-shop/internal/domain/orders"
)

// LedgerRepo cumple el rol de document store de transacciones sobre una
// tabla Postgres.
type LedgerRepo struct {
	db *sql.DB
}

func NewLedgerRepo(db *sql.DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

// EnsureSchema crea la tabla si no existe. Se llama una vez al arrancar.
func (r *LedgerRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS transactions (
			purchase_id TEXT PRIMARY KEY,
			purchaser   TEXT NOT NULL,
			pet_type    TEXT NOT NULL,
			store       INT  NOT NULL,
			pet_name    TEXT NOT NULL
		)
	`)
	return err
}

func (r *LedgerRepo) Append(ctx context.Context, t orders.Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (purchase_id, purchaser, pet_type, store, pet_name)
		VALUES ($1,$2,$3,$4,$5)
	`,
		t.PurchaseID,
		t.Purchaser,
		t.PetType,
		t.Store,
		t.PetName,
	)
	return err
}

func (r *LedgerRepo) List(ctx context.Context, f orders.Filter) ([]orders.Transaction, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT purchase_id, purchaser, pet_type, store, pet_name
		FROM transactions
		WHERE 1=1
	`)

	args := []any{}
	argN := 1

	add := func(col string, v any) {
		sb.WriteString(fmt.Sprintf(" AND %s = $%d", col, argN))
		args = append(args, v)
		argN++
	}

	if f.PurchaseID != nil {
		add("purchase_id", *f.PurchaseID)
	}
	if f.Purchaser != nil {
		add("purchaser", *f.Purchaser)
	}
	if f.PetType != nil {
		add("pet_type", *f.PetType)
	}
	if f.Store != nil {
		add("store", *f.Store)
	}
	if f.PetName != nil {
		add("pet_name", *f.PetName)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]orders.Transaction, 0)
	for rows.Next() {
		var t orders.Transaction
		if err := rows.Scan(
			&t.PurchaseID,
			&t.Purchaser,
			&t.PetType,
			&t.Store,
			&t.PetName,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
