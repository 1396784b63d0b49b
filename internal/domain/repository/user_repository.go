package repository

import (
	"context"

	"github.com/jhoicas/armazem-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios. GetBy* devuelven (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
