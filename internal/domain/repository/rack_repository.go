package repository

import (
	"context"

	"github.com/jhoicas/armazem-api/internal/domain/entity"
)

// RackRepository puerto de persistencia para racks. GetByCode/GetByID devuelven (nil, nil) si no existe.
type RackRepository interface {
	Create(ctx context.Context, rack *entity.Rack) error
	GetByID(ctx context.Context, id string) (*entity.Rack, error)
	GetByCode(ctx context.Context, code string) (*entity.Rack, error)
	List(ctx context.Context) ([]*entity.Rack, error)
}
