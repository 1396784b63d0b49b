package repository

import (
	"context"

	"github.com/jhoicas/armazem-api/internal/domain/entity"
)

// ProductRepository lectura del catálogo de productos; solo se usa para resolver identidades.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
