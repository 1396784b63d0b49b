package allocation_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/armazem-api/internal/application/allocation"
	"github.com/jhoicas/armazem-api/internal/application/location"
	"github.com/jhoicas/armazem-api/internal/domain"
	"github.com/jhoicas/armazem-api/internal/domain/entity"
	"github.com/jhoicas/armazem-api/internal/domain/repository"
	"github.com/jhoicas/armazem-api/internal/infrastructure/memory"
)

var line = entity.OrderLineKey{RequisitionNumber: "REQ-7", OrderNumber: "ENC-3", ArticleCode: "ART-99"}

type recordingObserver struct {
	calls atomic.Int64
	fails atomic.Int64
}

func (o *recordingObserver) Observe(_, _ string, err error, _ time.Duration) {
	o.calls.Add(1)
	if err != nil {
		o.fails.Add(1)
	}
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newUseCase(t *testing.T, ordered int64, rackCodes ...string) (*allocation.UseCase, *recordingObserver) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()

	zone := &entity.Zone{Name: "A"}
	require.NoError(t, s.Zones().Create(ctx, zone))
	for _, code := range rackCodes {
		require.NoError(t, s.Racks().Create(ctx, &entity.Rack{ZoneID: zone.ID, Code: code}))
	}
	s.AddOrderLine(entity.OrderLine{ID: "l1", Key: line, QuantityOrdered: dec(ordered), Unit: "UN"})

	obs := &recordingObserver{}
	resolver := location.NewResolver(s.Racks(), s.Zones(), s.Products())
	return allocation.NewUseCase(s, resolver, s.Allocations(), obs, time.Second), obs
}

func TestAllocate_NoSuperaLoEncomendado(t *testing.T) {
	uc, _ := newUseCase(t, 10, "A1", "A2")
	ctx := context.Background()

	res, err := uc.Allocate(ctx, allocation.AllocateInput{OrderLine: line, RackCode: "A1", Amount: dec(4)})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.True(t, res.RackTotal.Equal(dec(4)))
	assert.True(t, res.Remaining.Equal(dec(6)))

	_, err = uc.Allocate(ctx, allocation.AllocateInput{OrderLine: line, RackCode: "A2", Amount: dec(7)})
	var capErr *domain.CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	assert.True(t, capErr.Remaining.Equal(dec(6)))

	a2, err := uc.RackQuantity(ctx, "A2", line)
	require.NoError(t, err)
	assert.True(t, a2.IsZero(), "una asignación rechazada no deja nada en el rack")
	total, err := uc.QueryAllocated(ctx, line)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec(4)))

	res, err = uc.Allocate(ctx, allocation.AllocateInput{OrderLine: line, RackCode: "A2", Amount: dec(6)})
	require.NoError(t, err)
	assert.True(t, res.Remaining.IsZero())

	out, err := uc.Deallocate(ctx, allocation.DeallocateInput{OrderLine: line, RackCode: "A1", Entire: true})
	require.NoError(t, err)
	assert.True(t, out.Removed)

	total, err = uc.QueryAllocated(ctx, line)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec(6)))

	a1, err := uc.RackQuantity(ctx, "A1", line)
	require.NoError(t, err)
	assert.True(t, a1.IsZero())
}

func TestAllocate_MismoRackSuma(t *testing.T) {
	uc, _ := newUseCase(t, 10, "A1")
	ctx := context.Background()

	_, err := uc.Allocate(ctx, allocation.AllocateInput{OrderLine: line, RackCode: "A1", Amount: dec(2)})
	require.NoError(t, err)
	res, err := uc.Allocate(ctx, allocation.AllocateInput{OrderLine: line, RackCode: "A1", Amount: dec(3)})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.True(t, res.RackTotal.Equal(dec(5)))
	assert.True(t, res.Remaining.Equal(dec(5)))
}

func TestAllocate_Errores(t *testing.T) {
	uc, obs := newUseCase(t, 10, "A1")
	ctx := context.Background()

	_, err := uc.Allocate(ctx, allocation.AllocateInput{OrderLine: line, RackCode: "A1", Amount: dec(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = uc.Allocate(ctx, allocation.AllocateInput{OrderLine: entity.OrderLineKey{}, RackCode: "A1", Amount: dec(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Allocate(ctx, allocation.AllocateInput{OrderLine: line, RackCode: "NOPE", Amount: dec(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	other := entity.OrderLineKey{RequisitionNumber: "X", OrderNumber: "Y", ArticleCode: "Z"}
	_, err = uc.Allocate(ctx, allocation.AllocateInput{OrderLine: other, RackCode: "A1", Amount: dec(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, int64(4), obs.calls.Load())
	assert.Equal(t, int64(4), obs.fails.Load())
}

func TestDeallocate_PoliticaEstricta(t *testing.T) {
	uc, _ := newUseCase(t, 10, "A1")
	ctx := context.Background()

	_, err := uc.Deallocate(ctx, allocation.DeallocateInput{OrderLine: line, RackCode: "A1", Amount: dec(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound, "sin registro no hay nada que retirar")

	_, err = uc.Allocate(ctx, allocation.AllocateInput{OrderLine: line, RackCode: "A1", Amount: dec(5)})
	require.NoError(t, err)

	_, err = uc.Deallocate(ctx, allocation.DeallocateInput{OrderLine: line, RackCode: "A1", Amount: dec(6)})
	var exErr *domain.ExceedsAvailableError
	require.ErrorAs(t, err, &exErr)
	assert.True(t, exErr.Available.Equal(dec(5)))

	out, err := uc.Deallocate(ctx, allocation.DeallocateInput{OrderLine: line, RackCode: "A1", Amount: dec(2)})
	require.NoError(t, err)
	assert.False(t, out.Removed)
	assert.True(t, out.RackTotal.Equal(dec(3)))

	out, err = uc.Deallocate(ctx, allocation.DeallocateInput{OrderLine: line, RackCode: "A1", Amount: dec(3)})
	require.NoError(t, err)
	assert.True(t, out.Removed, "retirar exactamente lo que hay elimina el registro")

	views, err := uc.List(ctx, repository.AllocationFilter{})
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestRackQuantity_RackInexistenteEsCero(t *testing.T) {
	uc, _ := newUseCase(t, 10, "A1")
	q, err := uc.RackQuantity(context.Background(), "NO-EXISTE", line)
	require.NoError(t, err)
	assert.True(t, q.IsZero())
}

// Muchas asignaciones concurrentes de la misma línea en racks distintos: la suma
// confirmada nunca supera lo encomendado.
func TestAllocate_Concurrente(t *testing.T) {
	racks := []string{"A1", "A2", "A3", "A4"}
	uc, _ := newUseCase(t, 25, racks...)
	ctx := context.Background()

	var ok, rejected atomic.Int64
	var g errgroup.Group
	for i := 0; i < 40; i++ {
		rack := racks[i%len(racks)]
		g.Go(func() error {
			_, err := uc.Allocate(ctx, allocation.AllocateInput{OrderLine: line, RackCode: rack, Amount: dec(1)})
			switch {
			case err == nil:
				ok.Add(1)
			case assert.ErrorIs(t, err, domain.ErrCapacityExceeded):
				rejected.Add(1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int64(25), ok.Load())
	assert.Equal(t, int64(15), rejected.Load())

	total, err := uc.QueryAllocated(ctx, line)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec(25)))
}

func TestAllocate_CantidadFueraDeEscala(t *testing.T) {
	uc, _ := newUseCase(t, 10, "A1")
	ctx := context.Background()

	for _, raw := range []string{"0.0004", "0.0006", "100000000000"} {
		_, err := uc.Allocate(ctx, allocation.AllocateInput{OrderLine: line, RackCode: "A1", Amount: decimal.RequireFromString(raw)})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, raw)
	}
	total, err := uc.QueryAllocated(ctx, line)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	res, err := uc.Allocate(ctx, allocation.AllocateInput{OrderLine: line, RackCode: "A1", Amount: decimal.RequireFromString("0.001")})
	require.NoError(t, err)
	assert.True(t, res.Remaining.Equal(decimal.RequireFromString("9.999")))

	_, err = uc.Deallocate(ctx, allocation.DeallocateInput{OrderLine: line, RackCode: "A1", Amount: decimal.RequireFromString("0.0004")})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	a1, err := uc.RackQuantity(ctx, "A1", line)
	require.NoError(t, err)
	assert.True(t, a1.Equal(decimal.RequireFromString("0.001")))
}

// Retiradas concurrentes del mismo rack: nunca se retira más de lo asignado.
func TestDeallocate_Concurrente(t *testing.T) {
	uc, _ := newUseCase(t, 10, "A1")
	ctx := context.Background()

	_, err := uc.Allocate(ctx, allocation.AllocateInput{OrderLine: line, RackCode: "A1", Amount: dec(10)})
	require.NoError(t, err)

	var ok, removed, missing atomic.Int64
	var g errgroup.Group
	for i := 0; i < 15; i++ {
		g.Go(func() error {
			res, err := uc.Deallocate(ctx, allocation.DeallocateInput{OrderLine: line, RackCode: "A1", Amount: dec(1)})
			switch {
			case err == nil:
				ok.Add(1)
				if res.Removed {
					removed.Add(1)
				}
			case assert.ErrorIs(t, err, domain.ErrNotFound):
				missing.Add(1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int64(10), ok.Load())
	assert.Equal(t, int64(1), removed.Load())
	assert.Equal(t, int64(5), missing.Load())

	total, err := uc.QueryAllocated(ctx, line)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

// Asignaciones en un rack mientras otro se vacía: lo liberado puede reasignarse,
// pero el total nunca supera lo encomendado.
func TestAllocateDeallocate_Concurrente(t *testing.T) {
	uc, _ := newUseCase(t, 10, "A1", "A2")
	ctx := context.Background()

	_, err := uc.Allocate(ctx, allocation.AllocateInput{OrderLine: line, RackCode: "A1", Amount: dec(5)})
	require.NoError(t, err)

	var allocated atomic.Int64
	var g errgroup.Group
	for i := 0; i < 5; i++ {
		g.Go(func() error {
			_, err := uc.Deallocate(ctx, allocation.DeallocateInput{OrderLine: line, RackCode: "A1", Amount: dec(1)})
			return err
		})
	}
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := uc.Allocate(ctx, allocation.AllocateInput{OrderLine: line, RackCode: "A2", Amount: dec(1)})
			switch {
			case err == nil:
				allocated.Add(1)
			default:
				assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	a1, err := uc.RackQuantity(ctx, "A1", line)
	require.NoError(t, err)
	assert.True(t, a1.IsZero())

	a2, err := uc.RackQuantity(ctx, "A2", line)
	require.NoError(t, err)
	assert.True(t, a2.Equal(dec(allocated.Load())))
	assert.GreaterOrEqual(t, allocated.Load(), int64(5))
	assert.LessOrEqual(t, allocated.Load(), int64(10))

	total, err := uc.QueryAllocated(ctx, line)
	require.NoError(t, err)
	assert.True(t, total.Equal(a2))
}
