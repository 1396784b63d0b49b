package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/armazem-api/internal/domain"
	"github.com/jhoicas/armazem-api/internal/domain/entity"
	"github.com/jhoicas/armazem-api/internal/domain/repository"
	"github.com/jhoicas/armazem-api/internal/infrastructure/memory"
)

var testLine = entity.OrderLineKey{RequisitionNumber: "R1", OrderNumber: "E1", ArticleCode: "ART-1"}

func seed(t *testing.T) (*memory.Store, *entity.Rack) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()

	zone := &entity.Zone{Name: "A"}
	require.NoError(t, s.Zones().Create(ctx, zone))
	rack := &entity.Rack{ZoneID: zone.ID, Code: entity.RackCode(zone.Name, 1, 1, 1, 1), Aisle: 1, Rack: 1, Level: 1, Column: 1}
	require.NoError(t, s.Racks().Create(ctx, rack))

	s.AddOrderLine(entity.OrderLine{
		ID:                 "line-1",
		Key:                testLine,
		SupplierName:       "Proveedor",
		ArticleDescription: "Tornillo",
		QuantityOrdered:    decimal.NewFromInt(10),
		Unit:               "UN",
	})
	return s, rack
}

func TestRunAllocation_CommitAplicaEscrituras(t *testing.T) {
	s, rack := seed(t)
	ctx := context.Background()
	key := entity.AllocationKey{RackID: rack.ID, OrderLine: testLine}

	err := s.RunAllocation(ctx, func(_ repository.OrderLineRepository, allocations repository.AllocationRepository) error {
		require.NoError(t, allocations.Lock(ctx, key))
		require.NoError(t, allocations.Put(ctx, key, decimal.NewFromInt(3)))

		// dentro de la tx se ve la escritura pendiente
		got, ok, err := allocations.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, got.Equal(decimal.NewFromInt(3)))

		// fuera de la tx todavía no
		_, ok, err = s.Allocations().Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)

	got, ok, err := s.Allocations().Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, got.Equal(decimal.NewFromInt(3)))
}

func TestRunAllocation_ErrorDescartaEscrituras(t *testing.T) {
	s, rack := seed(t)
	ctx := context.Background()
	key := entity.AllocationKey{RackID: rack.ID, OrderLine: testLine}
	boom := errors.New("boom")

	err := s.RunAllocation(ctx, func(_ repository.OrderLineRepository, allocations repository.AllocationRepository) error {
		require.NoError(t, allocations.Put(ctx, key, decimal.NewFromInt(3)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, ok, err := s.Allocations().Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "una tx fallida no debe dejar rastro")
}

func TestRunZoneStock_ContextoCanceladoNoConfirma(t *testing.T) {
	s := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	key := entity.ZoneStockKey{ProductID: "p1", ZoneID: "z1"}

	err := s.RunZoneStock(ctx, func(stock repository.ZoneStockRepository) error {
		require.NoError(t, stock.Put(ctx, key, decimal.NewFromInt(5)))
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, context.Canceled)

	_, ok, err := s.ZoneStock().Get(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAllocationRepo_SumYDeleteDentroDeTx(t *testing.T) {
	s, rack := seed(t)
	ctx := context.Background()

	zone2 := &entity.Zone{Name: "B"}
	require.NoError(t, s.Zones().Create(ctx, zone2))
	rack2 := &entity.Rack{ZoneID: zone2.ID, Code: "B-01-01-01-01"}
	require.NoError(t, s.Racks().Create(ctx, rack2))

	k1 := entity.AllocationKey{RackID: rack.ID, OrderLine: testLine}
	k2 := entity.AllocationKey{RackID: rack2.ID, OrderLine: testLine}
	require.NoError(t, s.Allocations().Put(ctx, k1, decimal.NewFromInt(4)))
	require.NoError(t, s.Allocations().Put(ctx, k2, decimal.NewFromInt(2)))

	sum, err := s.Allocations().SumByOrderLine(ctx, testLine)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(6)))

	err = s.RunAllocation(ctx, func(_ repository.OrderLineRepository, allocations repository.AllocationRepository) error {
		require.NoError(t, allocations.Delete(ctx, k1))
		sum, err := allocations.SumByOrderLine(ctx, testLine)
		require.NoError(t, err)
		assert.True(t, sum.Equal(decimal.NewFromInt(2)), "el borrado pendiente cuenta dentro de la tx")
		return nil
	})
	require.NoError(t, err)

	views, err := s.Allocations().List(ctx, repository.AllocationFilter{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "B-01-01-01-01", views[0].RackCode)
	assert.Equal(t, "Tornillo", views[0].ArticleDescription)
}

func TestAllocationRepo_ListFiltra(t *testing.T) {
	s, rack := seed(t)
	ctx := context.Background()
	key := entity.AllocationKey{RackID: rack.ID, OrderLine: testLine}
	require.NoError(t, s.Allocations().Put(ctx, key, decimal.NewFromInt(1)))

	views, err := s.Allocations().List(ctx, repository.AllocationFilter{Query: "tornI"})
	require.NoError(t, err)
	assert.Len(t, views, 1)

	views, err = s.Allocations().List(ctx, repository.AllocationFilter{RackCode: "Z-99-99-99-99"})
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestCatalog_Duplicados(t *testing.T) {
	s, rack := seed(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.Zones().Create(ctx, &entity.Zone{Name: "A"}), domain.ErrDuplicate)
	assert.ErrorIs(t, s.Racks().Create(ctx, &entity.Rack{ZoneID: rack.ZoneID, Code: rack.Code}), domain.ErrDuplicate)
	assert.ErrorIs(t, s.Racks().Create(ctx, &entity.Rack{ZoneID: "no-existe", Code: "X"}), domain.ErrNotFound)

	require.NoError(t, s.Users().Create(ctx, &entity.User{Username: "ana", PasswordHash: "x"}))
	assert.ErrorIs(t, s.Users().Create(ctx, &entity.User{Username: "ana", PasswordHash: "y"}), domain.ErrUsernameTaken)
}

func TestZoneRepo_ListCuentaRacksYProductos(t *testing.T) {
	s, rack := seed(t)
	ctx := context.Background()
	s.AddProduct(entity.Product{ID: "p1", Description: "Caja"})
	require.NoError(t, s.ZoneStock().Put(ctx, entity.ZoneStockKey{ProductID: "p1", ZoneID: rack.ZoneID}, decimal.NewFromInt(2)))

	zones, err := s.Zones().List(ctx)
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, 1, zones[0].TotalRacks)
	assert.Equal(t, 1, zones[0].TotalProducts)
}

func TestOrderLineRepo_Search(t *testing.T) {
	s, _ := seed(t)
	ctx := context.Background()

	lines, err := s.OrderLines().Search(ctx, "proveed")
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	lines, err = s.OrderLines().Search(ctx, "nada")
	require.NoError(t, err)
	assert.Empty(t, lines)

	line, err := s.OrderLines().GetByKey(ctx, entity.OrderLineKey{RequisitionNumber: "R1", OrderNumber: "E1", ArticleCode: "otro"})
	require.NoError(t, err)
	assert.Nil(t, line)
}

func TestLoadSample_Idempotente(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.LoadSample(ctx))
	require.NoError(t, s.LoadSample(ctx))

	zones, err := s.Zones().List(ctx)
	require.NoError(t, err)
	assert.Len(t, zones, 2)

	lines, err := s.OrderLines().List(ctx)
	require.NoError(t, err)
	assert.Len(t, lines, 3)

	rack, err := s.Racks().GetByCode(ctx, "A-01-01-02-01")
	require.NoError(t, err)
	require.NotNil(t, rack)
	assert.Equal(t, 2, rack.Level)
}
