// Package ledger contiene el contador de conservación compartido por los ledgers de
// asignación a racks y de stock por zona: un total no negativo por clave, con límite
// superior opcional, fusión al sumar y borrado del registro al llegar a cero.
package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/armazem-api/internal/domain"
)

// Store es el puerto de persistencia de un contador. Las implementaciones viven dentro de
// una transacción: Lock serializa el read-modify-write de la clave hasta el fin de la tx.
type Store[K comparable] interface {
	Lock(ctx context.Context, key K) error
	// Get devuelve la cantidad y si el registro existe.
	Get(ctx context.Context, key K) (decimal.Decimal, bool, error)
	Put(ctx context.Context, key K, quantity decimal.Decimal) error
	Delete(ctx context.Context, key K) error
}

// OverdrawPolicy decide qué pasa cuando se pide restar más de lo que hay.
type OverdrawPolicy int

const (
	// ClampOverdraw trata el exceso como "vaciar": borra el registro.
	ClampOverdraw OverdrawPolicy = iota
	// RejectOverdraw falla con ExceedsAvailableError; restar exactamente lo que hay borra.
	RejectOverdraw
)

// Outcome resultado de Subtract: registro eliminado o nuevo total.
type Outcome struct {
	Removed bool
	Total   decimal.Decimal
}

// NoBound se pasa a Add cuando el contador no tiene límite superior.
var NoBound = decimal.NullDecimal{}

// Scale decimales que admite el almacenamiento de cantidades (NUMERIC(14,3)).
const Scale = 3

// MaxQuantity mayor total que admite un registro.
var MaxQuantity = decimal.New(1, 11).Sub(decimal.New(1, -Scale))

// ValidateAmount exige una cantidad positiva, con a lo sumo Scale decimales y no mayor
// que MaxQuantity.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || !amount.Equal(amount.Truncate(Scale)) || amount.GreaterThan(MaxQuantity) {
		return domain.ErrInvalidAmount
	}
	return nil
}

// Bound construye un límite superior para Add.
func Bound(v decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: v, Valid: true}
}

// Counter aplica la aritmética de suma/resta sobre un Store.
type Counter[K comparable] struct {
	store  Store[K]
	policy OverdrawPolicy
}

// NewCounter construye el contador sobre el store (normalmente atado a una tx).
func NewCounter[K comparable](store Store[K], policy OverdrawPolicy) *Counter[K] {
	return &Counter[K]{store: store, policy: policy}
}

// Add suma amount al registro de key, creándolo si no existe. Si bound es válido y el
// nuevo total lo supera, falla con CapacityExceededError sin mutar nada. MaxQuantity
// actúa siempre como límite.
func (c *Counter[K]) Add(ctx context.Context, key K, amount decimal.Decimal, bound decimal.NullDecimal) (decimal.Decimal, error) {
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	limit := MaxQuantity
	if bound.Valid && bound.Decimal.LessThan(limit) {
		limit = bound.Decimal
	}
	if err := c.store.Lock(ctx, key); err != nil {
		return decimal.Zero, err
	}
	current, _, err := c.store.Get(ctx, key)
	if err != nil {
		return decimal.Zero, err
	}
	total := current.Add(amount)
	if total.GreaterThan(limit) {
		return decimal.Zero, &domain.CapacityExceededError{Remaining: nonNegative(limit.Sub(current))}
	}
	if err := c.store.Put(ctx, key, total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Subtract resta amount del registro de key. entire borra el registro sin mirar amount.
func (c *Counter[K]) Subtract(ctx context.Context, key K, amount decimal.Decimal, entire bool) (Outcome, error) {
	if !entire {
		if err := ValidateAmount(amount); err != nil {
			return Outcome{}, err
		}
	}
	if err := c.store.Lock(ctx, key); err != nil {
		return Outcome{}, err
	}
	current, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		return Outcome{}, domain.ErrNotFound
	}
	if !entire && c.policy == RejectOverdraw && amount.GreaterThan(current) {
		return Outcome{}, &domain.ExceedsAvailableError{Available: current}
	}
	if entire || amount.GreaterThanOrEqual(current) {
		if err := c.store.Delete(ctx, key); err != nil {
			return Outcome{}, err
		}
		return Outcome{Removed: true, Total: decimal.Zero}, nil
	}
	total := current.Sub(amount)
	if err := c.store.Put(ctx, key, total); err != nil {
		return Outcome{}, err
	}
	return Outcome{Total: total}, nil
}

// Query devuelve la cantidad de key; una clave ausente vale cero.
func (c *Counter[K]) Query(ctx context.Context, key K) (decimal.Decimal, error) {
	current, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, nil
	}
	return current, nil
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
