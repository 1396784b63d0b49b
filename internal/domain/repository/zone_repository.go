package repository

import (
	"context"

	"github.com/jhoicas/armazem-api/internal/domain/entity"
)

// ZoneSummary zona con conteos para listados.
type ZoneSummary struct {
	entity.Zone
	TotalRacks    int
	TotalProducts int
}

// ZoneRepository puerto de persistencia para zonas (catálogo externo al ledger).
type ZoneRepository interface {
	Create(ctx context.Context, zone *entity.Zone) error
	GetByID(ctx context.Context, id string) (*entity.Zone, error)
	List(ctx context.Context) ([]ZoneSummary, error)
}
