package repository

import (
	"context"

	"github.com/jhoicas/armazem-api/internal/domain/entity"
	"github.com/jhoicas/armazem-api/internal/domain/ledger"
)

// ZoneStockFilter filtros de listado de stock por zona.
type ZoneStockFilter struct {
	Query  string
	ZoneID string
}

// ZoneStockRepository puerto del ledger de stock por zona.
type ZoneStockRepository interface {
	ledger.Store[entity.ZoneStockKey]
	List(ctx context.Context, filter ZoneStockFilter) ([]entity.ZoneStockView, error)
}
