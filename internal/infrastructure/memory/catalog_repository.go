package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/armazem-api/internal/domain"
	"github.com/jhoicas/armazem-api/internal/domain/entity"
	"github.com/jhoicas/armazem-api/internal/domain/repository"
)

var (
	_ repository.ZoneRepository      = (*ZoneRepo)(nil)
	_ repository.RackRepository      = (*RackRepo)(nil)
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.OrderLineRepository = (*OrderLineRepo)(nil)
)

type ZoneRepo struct{ s *Store }

func (r *ZoneRepo) Create(_ context.Context, zone *entity.Zone) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, z := range r.s.zones {
		if z.Name == zone.Name {
			return domain.ErrDuplicate
		}
	}
	if zone.ID == "" {
		zone.ID = uuid.New().String()
	}
	if zone.CreatedAt.IsZero() {
		zone.CreatedAt = r.s.now()
	}
	cp := *zone
	r.s.zones[zone.ID] = &cp
	return nil
}

func (r *ZoneRepo) GetByID(_ context.Context, id string) (*entity.Zone, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	z, ok := r.s.zones[id]
	if !ok {
		return nil, nil
	}
	cp := *z
	return &cp, nil
}

func (r *ZoneRepo) List(_ context.Context) ([]repository.ZoneSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	racks := make(map[string]int)
	for _, rk := range r.s.racks {
		racks[rk.ZoneID]++
	}
	products := make(map[string]int)
	for key := range r.s.zoneStock {
		products[key.ZoneID]++
	}
	out := make([]repository.ZoneSummary, 0, len(r.s.zones))
	for _, z := range r.s.zones {
		out = append(out, repository.ZoneSummary{Zone: *z, TotalRacks: racks[z.ID], TotalProducts: products[z.ID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type RackRepo struct{ s *Store }

func (r *RackRepo) Create(_ context.Context, rack *entity.Rack) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.zones[rack.ZoneID]; !ok {
		return domain.NotFoundf("zona %q", rack.ZoneID)
	}
	for _, rk := range r.s.racks {
		if rk.Code == rack.Code {
			return domain.ErrDuplicate
		}
	}
	if rack.ID == "" {
		rack.ID = uuid.New().String()
	}
	if rack.CreatedAt.IsZero() {
		rack.CreatedAt = r.s.now()
	}
	cp := *rack
	r.s.racks[rack.ID] = &cp
	return nil
}

func (r *RackRepo) GetByID(_ context.Context, id string) (*entity.Rack, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rk, ok := r.s.racks[id]
	if !ok {
		return nil, nil
	}
	cp := *rk
	return &cp, nil
}

func (r *RackRepo) GetByCode(_ context.Context, code string) (*entity.Rack, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rk := range r.s.racks {
		if rk.Code == code {
			cp := *rk
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *RackRepo) List(_ context.Context) ([]*entity.Rack, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Rack, 0, len(r.s.racks))
	for _, rk := range r.s.racks {
		cp := *rk
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

type ProductRepo struct{ s *Store }

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// OrderLineRepo líneas de encomienda. Dentro de una tx, GetByKeyForUpdate toma el lock de la línea.
type OrderLineRepo struct {
	s  *Store
	tx *tx
}

func (r *OrderLineRepo) GetByID(_ context.Context, id string) (*entity.OrderLine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.orderLines[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *OrderLineRepo) GetByKey(_ context.Context, key entity.OrderLineKey) (*entity.OrderLine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, l := range r.s.orderLines {
		if l.Key == key {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *OrderLineRepo) GetByKeyForUpdate(ctx context.Context, key entity.OrderLineKey) (*entity.OrderLine, error) {
	if err := r.tx.lock(ctx, "order_line:"+key.LockKey()); err != nil {
		return nil, err
	}
	return r.GetByKey(ctx, key)
}

func (r *OrderLineRepo) List(_ context.Context) ([]*entity.OrderLine, error) {
	return r.filter(""), nil
}

func (r *OrderLineRepo) Search(_ context.Context, q string) ([]*entity.OrderLine, error) {
	return r.filter(strings.ToLower(strings.TrimSpace(q))), nil
}

func (r *OrderLineRepo) filter(q string) []*entity.OrderLine {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.OrderLine, 0)
	for _, l := range r.s.orderLines {
		if q != "" && !containsAny(q,
			l.Key.RequisitionNumber, l.Key.OrderNumber, l.SupplierName,
			l.Key.ArticleCode, l.ArticleDescription) {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.String() < out[j].Key.String() })
	return out
}
