package zonestock

import (
	"context"

	"github.com/jhoicas/armazem-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con el repositorio de stock atado a ella.
type TxRunner interface {
	RunZoneStock(ctx context.Context, fn func(stock repository.ZoneStockRepository) error) error
}

// Resolver verifica la existencia de productos y zonas.
type Resolver interface {
	ResolveProduct(ctx context.Context, id string) (string, error)
	ResolveZone(ctx context.Context, id string) (string, error)
}
