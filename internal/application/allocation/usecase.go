// Package allocation implementa el ledger de asignaciones: cuánto de cada línea de
// encomienda está colocado en cada rack, sin superar nunca la cantidad encomendada.
package allocation

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/armazem-api/internal/application/ports"
	"github.com/jhoicas/armazem-api/internal/domain"
	"github.com/jhoicas/armazem-api/internal/domain/entity"
	"github.com/jhoicas/armazem-api/internal/domain/ledger"
	"github.com/jhoicas/armazem-api/internal/domain/repository"
)

const ledgerName = "allocation"

// UseCase casos de uso del ledger de asignaciones a racks.
type UseCase struct {
	txRunner    TxRunner
	racks       RackResolver
	allocations repository.AllocationRepository
	observer    ports.LedgerObserver
	timeout     time.Duration
}

// NewUseCase construye el caso de uso. allocations se usa solo para lecturas fuera de tx.
// observer puede ser nil; timeout 0 desactiva el límite por operación.
func NewUseCase(
	txRunner TxRunner,
	racks RackResolver,
	allocations repository.AllocationRepository,
	observer ports.LedgerObserver,
	timeout time.Duration,
) *UseCase {
	if observer == nil {
		observer = ports.NopObserver{}
	}
	return &UseCase{
		txRunner:    txRunner,
		racks:       racks,
		allocations: allocations,
		observer:    observer,
		timeout:     timeout,
	}
}

// AllocateInput colocar Amount de la línea OrderLine en el rack RackCode.
type AllocateInput struct {
	OrderLine entity.OrderLineKey
	RackCode  string
	Amount    decimal.Decimal
}

// AllocateResult total del rack tras la operación y lo que aún queda por asignar.
type AllocateResult struct {
	RackID    string
	RackTotal decimal.Decimal
	Remaining decimal.Decimal
	Created   bool // el registro (rack, línea) no existía
}

// Allocate asigna cantidad de una línea de encomienda a un rack.
//
// La lectura del total asignado (todos los racks), la validación contra la cantidad
// encomendada y la escritura ocurren en una sola transacción con la línea bloqueada,
// así dos asignaciones concurrentes de la misma línea no pueden superar el total.
func (uc *UseCase) Allocate(ctx context.Context, in AllocateInput) (res *AllocateResult, err error) {
	defer uc.observe("allocate", time.Now(), &err)

	if !in.OrderLine.Valid() || in.RackCode == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := ledger.ValidateAmount(in.Amount); err != nil {
		return nil, err
	}
	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	rackID, err := uc.racks.ResolveRack(ctx, in.RackCode)
	if err != nil {
		return nil, err
	}
	key := entity.AllocationKey{RackID: rackID, OrderLine: in.OrderLine}

	var out AllocateResult
	err = uc.txRunner.RunAllocation(ctx, func(
		orderLines repository.OrderLineRepository,
		allocations repository.AllocationRepository,
	) error {
		line, err := orderLines.GetByKeyForUpdate(ctx, in.OrderLine)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.NotFoundf("línea de encomienda %s", in.OrderLine)
		}
		allocated, err := allocations.SumByOrderLine(ctx, in.OrderLine)
		if err != nil {
			return err
		}
		remaining := line.QuantityOrdered.Sub(allocated)
		if in.Amount.GreaterThan(remaining) {
			return &domain.CapacityExceededError{Remaining: decimal.Max(remaining, decimal.Zero)}
		}
		// El límite ya se validó contra el agregado de todos los racks; el contador por rack no lleva límite.
		total, err := ledger.NewCounter[entity.AllocationKey](allocations, ledger.RejectOverdraw).
			Add(ctx, key, in.Amount, ledger.NoBound)
		if err != nil {
			return err
		}
		out = AllocateResult{
			RackID:    rackID,
			RackTotal: total,
			Remaining: remaining.Sub(in.Amount),
			Created:   total.Equal(in.Amount),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeallocateInput retirar Amount (o todo si Entire) de la línea en el rack.
type DeallocateInput struct {
	OrderLine entity.OrderLineKey
	RackCode  string
	Amount    decimal.Decimal
	Entire    bool
}

// DeallocateResult registro eliminado o nueva cantidad en el rack.
type DeallocateResult struct {
	Removed   bool
	RackTotal decimal.Decimal
}

// Deallocate retira cantidad asignada de un rack. Retirar más de lo que hay es un error
// del caller (ExceedsAvailableError); retirar exactamente lo que hay elimina el registro.
func (uc *UseCase) Deallocate(ctx context.Context, in DeallocateInput) (res *DeallocateResult, err error) {
	defer uc.observe("deallocate", time.Now(), &err)

	if !in.OrderLine.Valid() || in.RackCode == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Entire {
		if err := ledger.ValidateAmount(in.Amount); err != nil {
			return nil, err
		}
	}
	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	rackID, err := uc.racks.ResolveRack(ctx, in.RackCode)
	if err != nil {
		return nil, err
	}
	key := entity.AllocationKey{RackID: rackID, OrderLine: in.OrderLine}

	var out ledger.Outcome
	err = uc.txRunner.RunAllocation(ctx, func(
		_ repository.OrderLineRepository,
		allocations repository.AllocationRepository,
	) error {
		var err error
		out, err = ledger.NewCounter[entity.AllocationKey](allocations, ledger.RejectOverdraw).
			Subtract(ctx, key, in.Amount, in.Entire)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFoundf("línea %s en rack %q", in.OrderLine, in.RackCode)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &DeallocateResult{Removed: out.Removed, RackTotal: out.Total}, nil
}

// QueryAllocated total asignado de la línea sumando todos los racks (0 si no hay).
func (uc *UseCase) QueryAllocated(ctx context.Context, key entity.OrderLineKey) (decimal.Decimal, error) {
	if !key.Valid() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()
	return uc.allocations.SumByOrderLine(ctx, key)
}

// RackQuantity cantidad de la línea en un rack concreto; 0 si el rack o el registro no existen.
func (uc *UseCase) RackQuantity(ctx context.Context, rackCode string, key entity.OrderLineKey) (decimal.Decimal, error) {
	if !key.Valid() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()
	rackID, err := uc.racks.ResolveRack(ctx, rackCode)
	if errors.Is(err, domain.ErrNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.NewCounter[entity.AllocationKey](uc.allocations, ledger.RejectOverdraw).
		Query(ctx, entity.AllocationKey{RackID: rackID, OrderLine: key})
}

// List lista asignaciones con datos de rack y línea (presentación).
func (uc *UseCase) List(ctx context.Context, filter repository.AllocationFilter) ([]entity.AllocationView, error) {
	return uc.allocations.List(ctx, filter)
}

func (uc *UseCase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, uc.timeout)
}

func (uc *UseCase) observe(op string, start time.Time, err *error) {
	uc.observer.Observe(ledgerName, op, *err, time.Since(start))
}
