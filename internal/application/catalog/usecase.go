// Package catalog casos de uso de lectura/alta de zonas, racks y líneas de encomienda.
// No mueve cantidades: eso es de los ledgers.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/armazem-api/internal/application/dto"
	"github.com/jhoicas/armazem-api/internal/domain"
	"github.com/jhoicas/armazem-api/internal/domain/entity"
	"github.com/jhoicas/armazem-api/internal/domain/repository"
)

// UseCase casos de uso del catálogo.
type UseCase struct {
	zones      repository.ZoneRepository
	racks      repository.RackRepository
	orderLines repository.OrderLineRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(zones repository.ZoneRepository, racks repository.RackRepository, orderLines repository.OrderLineRepository) *UseCase {
	return &UseCase{zones: zones, racks: racks, orderLines: orderLines}
}

// CreateZone crea una zona. El nombre se normaliza a mayúsculas; duplicado -> ErrDuplicate.
func (uc *UseCase) CreateZone(ctx context.Context, in dto.CreateZoneRequest) (*dto.ZoneResponse, error) {
	// cases.Caser no es seguro entre goroutines: uno por llamada.
	name := cases.Upper(language.Und).String(strings.TrimSpace(in.Name))
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	zone := &entity.Zone{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   time.Now(),
	}
	if err := uc.zones.Create(ctx, zone); err != nil {
		return nil, err
	}
	return &dto.ZoneResponse{ID: zone.ID, Name: zone.Name, Description: zone.Description, CreatedAt: zone.CreatedAt}, nil
}

// GetZone obtiene una zona por ID.
func (uc *UseCase) GetZone(ctx context.Context, id string) (*dto.ZoneResponse, error) {
	zone, err := uc.zones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, domain.NotFoundf("zona %q", id)
	}
	return &dto.ZoneResponse{ID: zone.ID, Name: zone.Name, Description: zone.Description, CreatedAt: zone.CreatedAt}, nil
}

// ListZones lista zonas con conteo de racks y productos.
func (uc *UseCase) ListZones(ctx context.Context) ([]dto.ZoneResponse, error) {
	list, err := uc.zones.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ZoneResponse, 0, len(list))
	for _, z := range list {
		out = append(out, dto.ZoneResponse{
			ID:            z.ID,
			Name:          z.Name,
			Description:   z.Description,
			TotalRacks:    z.TotalRacks,
			TotalProducts: z.TotalProducts,
			CreatedAt:     z.CreatedAt,
		})
	}
	return out, nil
}

// CreateRack crea un rack en una zona; el código se genera como ZONA-cc-rr-nn-cc.
func (uc *UseCase) CreateRack(ctx context.Context, in dto.CreateRackRequest) (*dto.RackResponse, error) {
	zone, err := uc.zones.GetByID(ctx, strings.TrimSpace(in.ZoneID))
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, domain.NotFoundf("zona %q", in.ZoneID)
	}
	rack := &entity.Rack{
		ID:        uuid.New().String(),
		ZoneID:    zone.ID,
		Code:      entity.RackCode(zone.Name, in.Aisle, in.Rack, in.Level, in.Column),
		Aisle:     in.Aisle,
		Rack:      in.Rack,
		Level:     in.Level,
		Column:    in.Column,
		CreatedAt: time.Now(),
	}
	if err := uc.racks.Create(ctx, rack); err != nil {
		return nil, err
	}
	return toRackResponse(rack), nil
}

// GetRack obtiene un rack por ID.
func (uc *UseCase) GetRack(ctx context.Context, id string) (*dto.RackResponse, error) {
	rack, err := uc.racks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rack == nil {
		return nil, domain.NotFoundf("rack %q", id)
	}
	return toRackResponse(rack), nil
}

// GetRackByCode obtiene un rack por código.
func (uc *UseCase) GetRackByCode(ctx context.Context, code string) (*dto.RackResponse, error) {
	rack, err := uc.racks.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if rack == nil {
		return nil, domain.NotFoundf("rack %q", code)
	}
	return toRackResponse(rack), nil
}

// ListRacks lista todos los racks.
func (uc *UseCase) ListRacks(ctx context.Context) ([]dto.RackResponse, error) {
	list, err := uc.racks.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RackResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRackResponse(r))
	}
	return out, nil
}

// ListOrderLines lista líneas de encomienda.
func (uc *UseCase) ListOrderLines(ctx context.Context) ([]dto.OrderLineResponse, error) {
	return toOrderLineResponses(uc.orderLines.List(ctx))
}

// SearchOrderLines busca líneas por requisición, encomienda, proveedor o artículo.
func (uc *UseCase) SearchOrderLines(ctx context.Context, q string) ([]dto.OrderLineResponse, error) {
	return toOrderLineResponses(uc.orderLines.Search(ctx, q))
}

// GetOrderLine obtiene una línea por ID.
func (uc *UseCase) GetOrderLine(ctx context.Context, id string) (*dto.OrderLineResponse, error) {
	line, err := uc.orderLines.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.NotFoundf("línea de encomienda %q", id)
	}
	return toOrderLineResponse(line), nil
}

// FindOrderLine obtiene una línea por su clave (requisición, encomienda, artículo).
func (uc *UseCase) FindOrderLine(ctx context.Context, key entity.OrderLineKey) (*dto.OrderLineResponse, error) {
	if !key.Valid() {
		return nil, domain.ErrInvalidInput
	}
	line, err := uc.orderLines.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.NotFoundf("línea de encomienda %s", key)
	}
	return toOrderLineResponse(line), nil
}

func toRackResponse(r *entity.Rack) *dto.RackResponse {
	return &dto.RackResponse{
		ID:        r.ID,
		ZoneID:    r.ZoneID,
		Code:      r.Code,
		Aisle:     r.Aisle,
		Rack:      r.Rack,
		Level:     r.Level,
		Column:    r.Column,
		CreatedAt: r.CreatedAt,
	}
}

func toOrderLineResponse(l *entity.OrderLine) *dto.OrderLineResponse {
	return &dto.OrderLineResponse{
		ID:                 l.ID,
		RequisitionNumber:  l.Key.RequisitionNumber,
		OrderNumber:        l.Key.OrderNumber,
		ArticleCode:        l.Key.ArticleCode,
		OrderDate:          l.OrderDate,
		SupplierName:       l.SupplierName,
		SupplierNumber:     l.SupplierNumber,
		ExpectedDelivery:   l.ExpectedDelivery,
		ArticleDescription: l.ArticleDescription,
		QuantityOrdered:    l.QuantityOrdered,
		Unit:               l.Unit,
	}
}

func toOrderLineResponses(list []*entity.OrderLine, err error) ([]dto.OrderLineResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderLineResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *toOrderLineResponse(l))
	}
	return out, nil
}
