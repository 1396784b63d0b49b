package repository

import (
	"context"

	"github.com/jhoicas/armazem-api/internal/domain/entity"
)

// OrderLineRepository lectura de líneas de encomienda. El ledger nunca las crea ni edita.
type OrderLineRepository interface {
	GetByID(ctx context.Context, id string) (*entity.OrderLine, error)
	GetByKey(ctx context.Context, key entity.OrderLineKey) (*entity.OrderLine, error)
	// GetByKeyForUpdate bloquea la línea hasta el fin de la transacción; serializa
	// todas las asignaciones de la misma línea.
	GetByKeyForUpdate(ctx context.Context, key entity.OrderLineKey) (*entity.OrderLine, error)
	List(ctx context.Context) ([]*entity.OrderLine, error)
	Search(ctx context.Context, q string) ([]*entity.OrderLine, error)
}
