package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TxBeginner abre transacciones. *pgxpool.Pool la implementa; una pgx.Tx
// también (como savepoint anidado).
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// runInTx ejecuta fn dentro de una transacción cuando q sabe abrirlas, y
// directamente sobre q cuando no (un backend de test, por ejemplo).
// Devuelve si hubo transacción: sin ella, el llamante debe compensar a
// mano los lotes que queden a medias.
func runInTx(ctx context.Context, q Querier, fn func(q Querier) error) (bool, error) {
	b, ok := q.(TxBeginner)
	if !ok {
		return false, fn(q)
	}
	tx, err := b.Begin(ctx)
	if err != nil {
		return true, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return true, err
	}
	if err := tx.Commit(ctx); err != nil {
		return true, fmt.Errorf("commit transaction: %w", err)
	}
	return true, nil
}
