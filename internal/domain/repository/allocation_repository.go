package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/armazem-api/internal/domain/entity"
	"github.com/jhoicas/armazem-api/internal/domain/ledger"
)

// AllocationFilter filtros de listado de asignaciones (solo presentación).
type AllocationFilter struct {
	Query    string
	RackCode string
}

// AllocationRepository puerto del ledger de asignaciones a racks.
// Como ledger.Store, cada registro se lee y escribe por clave (rack, línea).
type AllocationRepository interface {
	ledger.Store[entity.AllocationKey]
	// SumByOrderLine total asignado a todos los racks para la línea (0 si no hay registros).
	SumByOrderLine(ctx context.Context, key entity.OrderLineKey) (decimal.Decimal, error)
	List(ctx context.Context, filter AllocationFilter) ([]entity.AllocationView, error)
}
