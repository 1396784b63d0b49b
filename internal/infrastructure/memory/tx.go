package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/armazem-api/internal/application/allocation"
	"github.com/jhoicas/armazem-api/internal/application/zonestock"
	"github.com/jhoicas/armazem-api/internal/domain"
	"github.com/jhoicas/armazem-api/internal/domain/entity"
	"github.com/jhoicas/armazem-api/internal/domain/repository"
)

var (
	_ allocation.TxRunner = (*Store)(nil)
	_ zonestock.TxRunner  = (*Store)(nil)
)

// tx escrituras pendientes y locks tomados. Un valor nil en los mapas staged es un borrado.
type tx struct {
	s           *Store
	held        map[string]func()
	allocations map[entity.AllocationKey]*decimal.Decimal
	zoneStock   map[entity.ZoneStockKey]*decimal.Decimal
}

func (s *Store) begin() *tx {
	return &tx{
		s:           s,
		held:        make(map[string]func()),
		allocations: make(map[entity.AllocationKey]*decimal.Decimal),
		zoneStock:   make(map[entity.ZoneStockKey]*decimal.Decimal),
	}
}

// lock toma la clave hasta el fin de la tx. Reentrante dentro de la misma tx.
func (t *tx) lock(ctx context.Context, key string) error {
	if t == nil {
		return nil
	}
	if _, ok := t.held[key]; ok {
		return nil
	}
	unlock, err := t.s.locks.Lock(ctx, key)
	if err != nil {
		return &domain.StorageError{Op: "lock " + key, Err: err}
	}
	t.held[key] = unlock
	return nil
}

func (t *tx) release() {
	for _, unlock := range t.held {
		unlock()
	}
	t.held = nil
}

func (t *tx) commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return &domain.StorageError{Op: "commit", Err: err}
	}
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, qty := range t.allocations {
		s.applyAllocation(key, qty, now)
	}
	for key, qty := range t.zoneStock {
		s.applyZoneStock(key, qty, now)
	}
	return nil
}

// RunAllocation ejecuta fn en una transacción del ledger de asignaciones.
func (s *Store) RunAllocation(ctx context.Context, fn func(
	orderLines repository.OrderLineRepository,
	allocations repository.AllocationRepository,
) error) error {
	t := s.begin()
	defer t.release()

	if err := fn(&OrderLineRepo{s: s, tx: t}, &AllocationRepo{s: s, tx: t}); err != nil {
		return err
	}
	return t.commit(ctx)
}

// RunZoneStock ejecuta fn en una transacción del ledger de stock por zona.
func (s *Store) RunZoneStock(ctx context.Context, fn func(stock repository.ZoneStockRepository) error) error {
	t := s.begin()
	defer t.release()

	if err := fn(&ZoneStockRepo{s: s, tx: t}); err != nil {
		return err
	}
	return t.commit(ctx)
}
