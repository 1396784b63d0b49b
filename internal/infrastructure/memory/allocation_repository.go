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

var _ repository.AllocationRepository = (*AllocationRepo)(nil)

// AllocationRepo asignaciones a racks. Con tx == nil cada escritura se aplica al instante.
type AllocationRepo struct {
	s  *Store
	tx *tx
}

func (r *AllocationRepo) Lock(ctx context.Context, key entity.AllocationKey) error {
	return r.tx.lock(ctx, "allocation:"+key.LockKey())
}

func (r *AllocationRepo) Get(_ context.Context, key entity.AllocationKey) (decimal.Decimal, bool, error) {
	if r.tx != nil {
		if qty, ok := r.tx.allocations[key]; ok {
			if qty == nil {
				return decimal.Zero, false, nil
			}
			return *qty, true, nil
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.allocations[key]
	if !ok {
		return decimal.Zero, false, nil
	}
	return a.Quantity, true, nil
}

func (r *AllocationRepo) Put(_ context.Context, key entity.AllocationKey, quantity decimal.Decimal) error {
	if r.tx != nil {
		r.tx.allocations[key] = &quantity
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.applyAllocation(key, &quantity, r.s.now())
	return nil
}

func (r *AllocationRepo) Delete(_ context.Context, key entity.AllocationKey) error {
	if r.tx != nil {
		r.tx.allocations[key] = nil
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.applyAllocation(key, nil, r.s.now())
	return nil
}

func (r *AllocationRepo) SumByOrderLine(_ context.Context, key entity.OrderLineKey) (decimal.Decimal, error) {
	sum := decimal.Zero
	for k, qty := range r.snapshot() {
		if k.OrderLine == key {
			sum = sum.Add(qty)
		}
	}
	return sum, nil
}

func (r *AllocationRepo) List(_ context.Context, filter repository.AllocationFilter) ([]entity.AllocationView, error) {
	quantities := r.snapshot()

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	linesByKey := make(map[entity.OrderLineKey]*entity.OrderLine, len(r.s.orderLines))
	for _, l := range r.s.orderLines {
		linesByKey[l.Key] = l
	}
	q := strings.ToLower(strings.TrimSpace(filter.Query))

	views := make([]entity.AllocationView, 0, len(quantities))
	for key, qty := range quantities {
		rack := r.s.racks[key.RackID]
		if rack == nil {
			continue
		}
		if filter.RackCode != "" && rack.Code != filter.RackCode {
			continue
		}
		v := entity.AllocationView{
			Allocation: entity.Allocation{Key: key, Quantity: qty},
			RackCode:   rack.Code,
			Aisle:      rack.Aisle,
			Rack:       rack.Rack,
			Level:      rack.Level,
			Column:     rack.Column,
		}
		if a := r.s.allocations[key]; a != nil {
			v.CreatedAt, v.UpdatedAt = a.CreatedAt, a.UpdatedAt
		}
		if line := linesByKey[key.OrderLine]; line != nil {
			v.SupplierName = line.SupplierName
			v.ArticleDescription = line.ArticleDescription
			v.Unit = line.Unit
			v.QuantityOrdered = line.QuantityOrdered
		}
		if q != "" && !containsAny(q,
			key.OrderLine.RequisitionNumber, key.OrderLine.OrderNumber, v.SupplierName,
			key.OrderLine.ArticleCode, v.ArticleDescription, v.RackCode) {
			continue
		}
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool {
		if !views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].CreatedAt.After(views[j].CreatedAt)
		}
		return views[i].Key.String() < views[j].Key.String()
	})
	return views, nil
}

// snapshot cantidades confirmadas con las escrituras pendientes de la tx encima.
func (r *AllocationRepo) snapshot() map[entity.AllocationKey]decimal.Decimal {
	r.s.mu.RLock()
	out := make(map[entity.AllocationKey]decimal.Decimal, len(r.s.allocations))
	for k, a := range r.s.allocations {
		out[k] = a.Quantity
	}
	r.s.mu.RUnlock()

	if r.tx != nil {
		for k, qty := range r.tx.allocations {
			if qty == nil {
				delete(out, k)
				continue
			}
			out[k] = *qty
		}
	}
	return out
}

// applyAllocation requiere s.mu tomado en escritura.
func (s *Store) applyAllocation(key entity.AllocationKey, qty *decimal.Decimal, now time.Time) {
	if qty == nil {
		delete(s.allocations, key)
		return
	}
	if a, ok := s.allocations[key]; ok {
		a.Quantity = *qty
		a.UpdatedAt = now
		return
	}
	s.allocations[key] = &entity.Allocation{Key: key, Quantity: *qty, CreatedAt: now, UpdatedAt: now}
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
