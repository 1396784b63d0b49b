// Package zonestock implementa el ledger de stock de producto terminado por zona.
package zonestock

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/armazem-api/internal/application/ports"
	"github.com/jhoicas/armazem-api/internal/domain"
	"github.com/jhoicas/armazem-api/internal/domain/entity"
	"github.com/jhoicas/armazem-api/internal/domain/ledger"
	"github.com/jhoicas/armazem-api/internal/domain/repository"
)

const ledgerName = "zone_stock"

// UseCase casos de uso del stock por zona. No hay límite superior: solo no negatividad.
type UseCase struct {
	txRunner TxRunner
	resolver Resolver
	stock    repository.ZoneStockRepository
	observer ports.LedgerObserver
	timeout  time.Duration
}

// NewUseCase construye el caso de uso. stock se usa solo para lecturas fuera de tx.
func NewUseCase(
	txRunner TxRunner,
	resolver Resolver,
	stock repository.ZoneStockRepository,
	observer ports.LedgerObserver,
	timeout time.Duration,
) *UseCase {
	if observer == nil {
		observer = ports.NopObserver{}
	}
	return &UseCase{
		txRunner: txRunner,
		resolver: resolver,
		stock:    stock,
		observer: observer,
		timeout:  timeout,
	}
}

// AddStock suma amount al stock del producto en la zona (picagem). Si ya hay stock
// del producto en la zona, las cantidades se suman.
func (uc *UseCase) AddStock(ctx context.Context, productID, zoneID string, amount decimal.Decimal) (total decimal.Decimal, err error) {
	defer uc.observe("add_stock", time.Now(), &err)

	if err := ledger.ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	if productID, err = uc.resolver.ResolveProduct(ctx, productID); err != nil {
		return decimal.Zero, err
	}
	if zoneID, err = uc.resolver.ResolveZone(ctx, zoneID); err != nil {
		return decimal.Zero, err
	}
	key := entity.ZoneStockKey{ProductID: productID, ZoneID: zoneID}

	err = uc.txRunner.RunZoneStock(ctx, func(stock repository.ZoneStockRepository) error {
		var err error
		total, err = ledger.NewCounter[entity.ZoneStockKey](stock, ledger.ClampOverdraw).
			Add(ctx, key, amount, ledger.NoBound)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// RemoveResult registro eliminado o nuevo total.
type RemoveResult struct {
	Removed bool
	Total   decimal.Decimal
}

// RemoveStock resta amount del stock del producto en la zona.
//
// A diferencia del ledger de asignaciones, pedir más de lo que hay no es un error:
// se interpreta como vaciar la estantería y el registro se elimina.
func (uc *UseCase) RemoveStock(ctx context.Context, productID, zoneID string, amount decimal.Decimal, entire bool) (res *RemoveResult, err error) {
	defer uc.observe("remove_stock", time.Now(), &err)

	productID, zoneID = strings.TrimSpace(productID), strings.TrimSpace(zoneID)
	if productID == "" || zoneID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entire {
		if err := ledger.ValidateAmount(amount); err != nil {
			return nil, err
		}
	}
	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()
	key := entity.ZoneStockKey{ProductID: productID, ZoneID: zoneID}

	var out ledger.Outcome
	err = uc.txRunner.RunZoneStock(ctx, func(stock repository.ZoneStockRepository) error {
		var err error
		out, err = ledger.NewCounter[entity.ZoneStockKey](stock, ledger.ClampOverdraw).
			Subtract(ctx, key, amount, entire)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFoundf("producto %q en zona %q", productID, zoneID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &RemoveResult{Removed: out.Removed, Total: out.Total}, nil
}

// QueryStock cantidad del producto en la zona; 0 si no hay registro.
func (uc *UseCase) QueryStock(ctx context.Context, productID, zoneID string) (decimal.Decimal, error) {
	productID, zoneID = strings.TrimSpace(productID), strings.TrimSpace(zoneID)
	if productID == "" || zoneID == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()
	return ledger.NewCounter[entity.ZoneStockKey](uc.stock, ledger.ClampOverdraw).
		Query(ctx, entity.ZoneStockKey{ProductID: productID, ZoneID: zoneID})
}

// List lista el stock por zona con datos de producto y zona (presentación).
func (uc *UseCase) List(ctx context.Context, filter repository.ZoneStockFilter) ([]entity.ZoneStockView, error) {
	return uc.stock.List(ctx, filter)
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
