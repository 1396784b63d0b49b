package allocation

import (
	"context"

	"github.com/jhoicas/armazem-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn devuelve error, o el contexto se cancela, no queda nada escrito.
type TxRunner interface {
	RunAllocation(ctx context.Context, fn func(
		orderLines repository.OrderLineRepository,
		allocations repository.AllocationRepository,
	) error) error
}

// RackResolver traduce el código de rack a su id.
type RackResolver interface {
	ResolveRack(ctx context.Context, code string) (string, error)
}
