package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/armazem-api/internal/domain"
	"github.com/jhoicas/armazem-api/internal/domain/ledger"
)

// mapStore store mínimo en memoria para probar la aritmética del contador.
type mapStore struct {
	rows    map[string]decimal.Decimal
	locks   int
	failPut error
}

func newMapStore() *mapStore { return &mapStore{rows: map[string]decimal.Decimal{}} }

func (s *mapStore) Lock(context.Context, string) error { s.locks++; return nil }

func (s *mapStore) Get(_ context.Context, key string) (decimal.Decimal, bool, error) {
	q, ok := s.rows[key]
	return q, ok, nil
}

func (s *mapStore) Put(_ context.Context, key string, q decimal.Decimal) error {
	if s.failPut != nil {
		return s.failPut
	}
	s.rows[key] = q
	return nil
}

func (s *mapStore) Delete(_ context.Context, key string) error {
	delete(s.rows, key)
	return nil
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestCounterAdd_CreaYFusiona(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	c := ledger.NewCounter[string](store, ledger.ClampOverdraw)

	total, err := c.Add(ctx, "k", d(3), ledger.NoBound)
	require.NoError(t, err)
	assert.True(t, total.Equal(d(3)))

	total, err = c.Add(ctx, "k", decimal.RequireFromString("2.5"), ledger.NoBound)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("5.5")))
	assert.Len(t, store.rows, 1, "dos sumas a la misma clave producen un solo registro")
	assert.Equal(t, 2, store.locks)
}

func TestCounterAdd_CantidadNoPositiva(t *testing.T) {
	c := ledger.NewCounter[string](newMapStore(), ledger.ClampOverdraw)
	for _, amount := range []decimal.Decimal{decimal.Zero, d(-1)} {
		_, err := c.Add(context.Background(), "k", amount, ledger.NoBound)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	}
}

func TestCounterAdd_LimiteSuperadoNoMuta(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	c := ledger.NewCounter[string](store, ledger.ClampOverdraw)
	_, err := c.Add(ctx, "k", d(4), ledger.Bound(d(10)))
	require.NoError(t, err)

	_, err = c.Add(ctx, "k", d(7), ledger.Bound(d(10)))
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)
	var capErr *domain.CapacityExceededError
	require.True(t, errors.As(err, &capErr))
	assert.True(t, capErr.Remaining.Equal(d(6)))
	assert.True(t, store.rows["k"].Equal(d(4)), "el intento rechazado no debe aplicarse parcialmente")

	total, err := c.Add(ctx, "k", d(6), ledger.Bound(d(10)))
	require.NoError(t, err)
	assert.True(t, total.Equal(d(10)))
}

func TestCounterSubtract_Parcial(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	store.rows["k"] = d(10)
	c := ledger.NewCounter[string](store, ledger.RejectOverdraw)

	out, err := c.Subtract(ctx, "k", d(3), false)
	require.NoError(t, err)
	assert.False(t, out.Removed)
	assert.True(t, out.Total.Equal(d(7)))
	assert.True(t, store.rows["k"].Equal(d(7)))
}

func TestCounterSubtract_ExactoBorra(t *testing.T) {
	for _, policy := range []ledger.OverdrawPolicy{ledger.ClampOverdraw, ledger.RejectOverdraw} {
		store := newMapStore()
		store.rows["k"] = d(5)
		c := ledger.NewCounter[string](store, policy)

		out, err := c.Subtract(context.Background(), "k", d(5), false)
		require.NoError(t, err)
		assert.True(t, out.Removed)
		_, exists := store.rows["k"]
		assert.False(t, exists, "al llegar a cero el registro se elimina")
	}
}

func TestCounterSubtract_EntireIgnoraCantidad(t *testing.T) {
	store := newMapStore()
	store.rows["k"] = d(5)
	c := ledger.NewCounter[string](store, ledger.RejectOverdraw)

	out, err := c.Subtract(context.Background(), "k", decimal.Zero, true)
	require.NoError(t, err)
	assert.True(t, out.Removed)
	assert.Empty(t, store.rows)
}

// Las dos políticas difieren a propósito: en asignaciones el exceso es un error del caller,
// en stock por zona significa "vaciar la estantería".
func TestCounterSubtract_PoliticaDeExceso(t *testing.T) {
	ctx := context.Background()

	clampStore := newMapStore()
	clampStore.rows["k"] = d(5)
	out, err := ledger.NewCounter[string](clampStore, ledger.ClampOverdraw).Subtract(ctx, "k", d(9), false)
	require.NoError(t, err)
	assert.True(t, out.Removed)
	assert.Empty(t, clampStore.rows)

	rejectStore := newMapStore()
	rejectStore.rows["k"] = d(5)
	_, err = ledger.NewCounter[string](rejectStore, ledger.RejectOverdraw).Subtract(ctx, "k", d(9), false)
	require.ErrorIs(t, err, domain.ErrExceedsAvailable)
	var exErr *domain.ExceedsAvailableError
	require.True(t, errors.As(err, &exErr))
	assert.True(t, exErr.Available.Equal(d(5)))
	assert.True(t, rejectStore.rows["k"].Equal(d(5)))
}

func TestCounterSubtract_Errores(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	c := ledger.NewCounter[string](store, ledger.ClampOverdraw)

	_, err := c.Subtract(ctx, "nope", d(1), false)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	store.rows["k"] = d(2)
	_, err = c.Subtract(ctx, "k", d(0), false)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestCounterQuery(t *testing.T) {
	store := newMapStore()
	c := ledger.NewCounter[string](store, ledger.ClampOverdraw)

	q, err := c.Query(context.Background(), "nope")
	require.NoError(t, err)
	assert.True(t, q.IsZero())

	store.rows["k"] = d(8)
	q, err = c.Query(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, q.Equal(d(8)))
}

func TestCounterAdd_PropagaErrorDeStore(t *testing.T) {
	store := newMapStore()
	store.failPut = &domain.StorageError{Op: "put", Err: errors.New("conn reset")}
	c := ledger.NewCounter[string](store, ledger.ClampOverdraw)

	_, err := c.Add(context.Background(), "k", d(1), ledger.NoBound)
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestValidateAmount_Escala(t *testing.T) {
	for _, raw := range []string{"1", "0.001", "2.500", "1.5000", "99999999999.999"} {
		assert.NoError(t, ledger.ValidateAmount(decimal.RequireFromString(raw)), raw)
	}
	for _, raw := range []string{"0", "-1", "0.0004", "0.0006", "1.2345", "100000000000"} {
		assert.ErrorIs(t, ledger.ValidateAmount(decimal.RequireFromString(raw)), domain.ErrInvalidAmount, raw)
	}
}

func TestCounterAdd_RechazaMasDeTresDecimales(t *testing.T) {
	store := newMapStore()
	c := ledger.NewCounter[string](store, ledger.ClampOverdraw)

	_, err := c.Add(context.Background(), "k", decimal.RequireFromString("0.0004"), ledger.NoBound)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Empty(t, store.rows)
	assert.Zero(t, store.locks)
}

func TestCounterAdd_TopeDeAlmacenamiento(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	c := ledger.NewCounter[string](store, ledger.ClampOverdraw)

	_, err := c.Add(ctx, "k", ledger.MaxQuantity.Sub(d(1)), ledger.NoBound)
	require.NoError(t, err)

	_, err = c.Add(ctx, "k", d(2), ledger.NoBound)
	var capErr *domain.CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	assert.True(t, capErr.Remaining.Equal(d(1)))
	assert.True(t, store.rows["k"].Equal(ledger.MaxQuantity.Sub(d(1))))
}

func TestCounterSubtract_RechazaMasDeTresDecimales(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	store.rows["k"] = d(1)
	c := ledger.NewCounter[string](store, ledger.ClampOverdraw)

	_, err := c.Subtract(ctx, "k", decimal.RequireFromString("0.9996"), false)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.True(t, store.rows["k"].Equal(d(1)))
}
