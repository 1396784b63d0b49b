package memory

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/armazem-api/internal/domain"
	"github.com/jhoicas/armazem-api/internal/domain/entity"
)

// LoadSample carga los mismos datos de ejemplo que pkg/migrate/seed.sql. Idempotente.
func (s *Store) LoadSample(ctx context.Context) error {
	zones := []entity.Zone{
		{ID: "6f1c0a52-1d3e-4c1b-9d0a-000000000001", Name: "A", Description: "Recepción"},
		{ID: "6f1c0a52-1d3e-4c1b-9d0a-000000000002", Name: "B", Description: "Expedición"},
	}
	for i := range zones {
		if err := s.Zones().Create(ctx, &zones[i]); err != nil && !errors.Is(err, domain.ErrDuplicate) {
			return err
		}
	}

	racks := []entity.Rack{
		{ID: "7a2d1b63-2e4f-4d2c-8e1b-000000000001", ZoneID: zones[0].ID, Code: "A-01-01-01-01", Aisle: 1, Rack: 1, Level: 1, Column: 1},
		{ID: "7a2d1b63-2e4f-4d2c-8e1b-000000000002", ZoneID: zones[0].ID, Code: "A-01-01-02-01", Aisle: 1, Rack: 1, Level: 2, Column: 1},
		{ID: "7a2d1b63-2e4f-4d2c-8e1b-000000000003", ZoneID: zones[1].ID, Code: "B-01-01-01-01", Aisle: 1, Rack: 1, Level: 1, Column: 1},
	}
	for i := range racks {
		if err := s.Racks().Create(ctx, &racks[i]); err != nil && !errors.Is(err, domain.ErrDuplicate) {
			return err
		}
	}

	s.AddProduct(entity.Product{ID: "8b3e2c74-3f50-4e3d-9f2c-000000000001", Description: "Painel lateral", Drawing: "DES-1001"})
	s.AddProduct(entity.Product{ID: "8b3e2c74-3f50-4e3d-9f2c-000000000002", Description: "Tampa superior", Drawing: "DES-1002"})

	ordered := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	s.AddOrderLine(entity.OrderLine{
		ID:  "9c4f3d85-4061-4f4e-a03d-000000000001",
		Key: entity.OrderLineKey{RequisitionNumber: "REQ-0001", OrderNumber: "ENC-0001", ArticleCode: "ART-100"},
		OrderDate: &ordered, SupplierName: "Metalúrgica Norte", SupplierNumber: "F-001", ExpectedDelivery: &due,
		ArticleDescription: "Parafuso M8", QuantityOrdered: decimal.NewFromInt(500), Unit: "UN",
	})
	s.AddOrderLine(entity.OrderLine{
		ID:  "9c4f3d85-4061-4f4e-a03d-000000000002",
		Key: entity.OrderLineKey{RequisitionNumber: "REQ-0001", OrderNumber: "ENC-0001", ArticleCode: "ART-200"},
		OrderDate: &ordered, SupplierName: "Metalúrgica Norte", SupplierNumber: "F-001", ExpectedDelivery: &due,
		ArticleDescription: "Chapa 2mm", QuantityOrdered: decimal.RequireFromString("12.5"), Unit: "M2",
	})
	placed := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	s.AddOrderLine(entity.OrderLine{
		ID:  "9c4f3d85-4061-4f4e-a03d-000000000003",
		Key: entity.OrderLineKey{RequisitionNumber: "REQ-0002", OrderNumber: "ENC-0007", ArticleCode: "ART-300"},
		OrderDate: &placed, SupplierName: "Plásticos Sul", SupplierNumber: "F-014",
		ArticleDescription: "Tampa plástica", QuantityOrdered: decimal.NewFromInt(80), Unit: "UN",
	})
	return nil
}
