package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El Rollback diferido también cubre pánicos y cancelación del contexto.
func (r *TxRunner) Run(ctx context.Context, fn func(s repository.Stores) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStores(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewStores construye los repositorios transaccionales sobre q (pool o tx).
func NewStores(q Querier) repository.Stores {
	return repository.Stores{
		Products:  NewProductRepository(q),
		Lots:      NewLotRepository(q),
		Movements: NewMovementRepository(q),
		Entries:   NewEntryRepository(q),
		Exits:     NewExitRepository(q),
		Sales:     NewSaleRepository(q),
		Returns:   NewReturnRepository(q),
	}
}

// NewCatalog construye todos los repositorios sobre el pool, fuera de transacción.
func NewCatalog(pool *pgxpool.Pool) repository.Catalog {
	return repository.Catalog{
		Stores:    NewStores(pool),
		Jefes:     NewJefeRepository(pool),
		Clients:   NewClientRepository(pool),
		Suppliers: NewSupplierRepository(pool),
		History:   NewHistoryRepository(pool),
	}
}
