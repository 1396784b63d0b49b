package location_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/armazem-api/internal/application/location"
	"github.com/jhoicas/armazem-api/internal/domain"
	"github.com/jhoicas/armazem-api/internal/domain/entity"
	"github.com/jhoicas/armazem-api/internal/infrastructure/memory"
)

func TestResolver(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	zone := &entity.Zone{Name: "B"}
	require.NoError(t, s.Zones().Create(ctx, zone))
	rack := &entity.Rack{ZoneID: zone.ID, Code: "B-02-01-01-03"}
	require.NoError(t, s.Racks().Create(ctx, rack))
	s.AddProduct(entity.Product{ID: "p9", Description: "Tampa"})

	r := location.NewResolver(s.Racks(), s.Zones(), s.Products())

	id, err := r.ResolveRack(ctx, "  B-02-01-01-03 ")
	require.NoError(t, err)
	assert.Equal(t, rack.ID, id)

	_, err = r.ResolveRack(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = r.ResolveRack(ctx, "B-99-99-99-99")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	id, err = r.ResolveZone(ctx, zone.ID)
	require.NoError(t, err)
	assert.Equal(t, zone.ID, id)

	_, err = r.ResolveZone(ctx, "otra")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	id, err = r.ResolveProduct(ctx, "p9")
	require.NoError(t, err)
	assert.Equal(t, "p9", id)

	_, err = r.ResolveProduct(ctx, "p0")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
