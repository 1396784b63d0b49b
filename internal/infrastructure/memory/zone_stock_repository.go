package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/armazem-api/internal/domain/entity"
	"github.com/jhoicas/armazem-api/internal/domain/repository"
)

var _ repository.ZoneStockRepository = (*ZoneStockRepo)(nil)

// ZoneStockRepo stock por zona. Con tx == nil cada escritura se aplica al instante.
type ZoneStockRepo struct {
	s  *Store
	tx *tx
}

func (r *ZoneStockRepo) Lock(ctx context.Context, key entity.ZoneStockKey) error {
	return r.tx.lock(ctx, "zone_stock:"+key.LockKey())
}

func (r *ZoneStockRepo) Get(_ context.Context, key entity.ZoneStockKey) (decimal.Decimal, bool, error) {
	if r.tx != nil {
		if qty, ok := r.tx.zoneStock[key]; ok {
			if qty == nil {
				return decimal.Zero, false, nil
			}
			return *qty, true, nil
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	zs, ok := r.s.zoneStock[key]
	if !ok {
		return decimal.Zero, false, nil
	}
	return zs.Quantity, true, nil
}

func (r *ZoneStockRepo) Put(_ context.Context, key entity.ZoneStockKey, quantity decimal.Decimal) error {
	if r.tx != nil {
		r.tx.zoneStock[key] = &quantity
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.applyZoneStock(key, &quantity, r.s.now())
	return nil
}

func (r *ZoneStockRepo) Delete(_ context.Context, key entity.ZoneStockKey) error {
	if r.tx != nil {
		r.tx.zoneStock[key] = nil
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.applyZoneStock(key, nil, r.s.now())
	return nil
}

func (r *ZoneStockRepo) List(_ context.Context, filter repository.ZoneStockFilter) ([]entity.ZoneStockView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	views := make([]entity.ZoneStockView, 0, len(r.s.zoneStock))
	for key, zs := range r.s.zoneStock {
		if filter.ZoneID != "" && key.ZoneID != filter.ZoneID {
			continue
		}
		product, zone := r.s.products[key.ProductID], r.s.zones[key.ZoneID]
		if product == nil || zone == nil {
			continue
		}
		if q != "" && !containsAny(q, product.Description, product.Drawing, zone.Name) {
			continue
		}
		views = append(views, entity.ZoneStockView{
			ZoneStock:          *zs,
			ProductDescription: product.Description,
			ProductDrawing:     product.Drawing,
			ZoneName:           zone.Name,
			ZoneDescription:    zone.Description,
		})
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].ZoneName != views[j].ZoneName {
			return views[i].ZoneName < views[j].ZoneName
		}
		return views[i].ProductDescription < views[j].ProductDescription
	})
	return views, nil
}

// applyZoneStock requiere s.mu tomado en escritura.
func (s *Store) applyZoneStock(key entity.ZoneStockKey, qty *decimal.Decimal, now time.Time) {
	if qty == nil {
		delete(s.zoneStock, key)
		return
	}
	s.zoneStock[key] = &entity.ZoneStock{Key: key, Quantity: *qty, UpdatedAt: now}
}
