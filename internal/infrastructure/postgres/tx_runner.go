package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/armazem-api/internal/application/allocation"
	"github.com/jhoicas/armazem-api/internal/application/zonestock"
	"github.com/jhoicas/armazem-api/internal/domain/repository"
)

var (
	_ allocation.TxRunner = (*TxRunner)(nil)
	_ zonestock.TxRunner  = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunAllocation inicia una transacción con los repos de líneas y asignaciones atados a ella.
// Los locks (FOR UPDATE, advisory) se liberan con el Commit o el Rollback.
func (r *TxRunner) RunAllocation(ctx context.Context, fn func(
	orderLines repository.OrderLineRepository,
	allocations repository.AllocationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrderLineRepository(tx), NewAllocationRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storageErr("commit transaction", err)
	}
	return nil
}

// RunZoneStock inicia una transacción con el repo de stock por zona.
func (r *TxRunner) RunZoneStock(ctx context.Context, fn func(stock repository.ZoneStockRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewZoneStockRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storageErr("commit transaction", err)
	}
	return nil
}
