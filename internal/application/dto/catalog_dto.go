package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateZoneRequest body para POST /api/zones. El nombre se guarda en mayúsculas.
type CreateZoneRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

// ZoneResponse salida de una zona.
type ZoneResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	TotalRacks    int       `json:"total_racks"`
	TotalProducts int       `json:"total_products"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateRackRequest body para POST /api/racks. El código se genera a partir de la posición.
type CreateRackRequest struct {
	ZoneID string `json:"zone_id" validate:"required"`
	Aisle  int    `json:"aisle" validate:"min=0,max=99"`
	Rack   int    `json:"rack" validate:"min=0,max=99"`
	Level  int    `json:"level" validate:"min=0,max=99"`
	Column int    `json:"column" validate:"min=0,max=99"`
}

// RackResponse salida de un rack.
type RackResponse struct {
	ID        string    `json:"id"`
	ZoneID    string    `json:"zone_id"`
	Code      string    `json:"code"`
	Aisle     int       `json:"aisle"`
	Rack      int       `json:"rack"`
	Level     int       `json:"level"`
	Column    int       `json:"column"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderLineKey identifica una línea de encomienda en bodies y query strings.
type OrderLineKey struct {
	RequisitionNumber string `json:"requisition_number" query:"requisition_number" validate:"required,max=50"`
	OrderNumber       string `json:"order_number" query:"order_number" validate:"required,max=50"`
	ArticleCode       string `json:"article_code" query:"article_code" validate:"required,max=50"`
}

// OrderLineResponse salida de una línea de encomienda.
type OrderLineResponse struct {
	ID                 string          `json:"id"`
	RequisitionNumber  string          `json:"requisition_number"`
	OrderNumber        string          `json:"order_number"`
	ArticleCode        string          `json:"article_code"`
	OrderDate          *time.Time      `json:"order_date,omitempty"`
	SupplierName       string          `json:"supplier_name"`
	SupplierNumber     string          `json:"supplier_number,omitempty"`
	ExpectedDelivery   *time.Time      `json:"expected_delivery,omitempty"`
	ArticleDescription string          `json:"article_description"`
	QuantityOrdered    decimal.Decimal `json:"quantity_ordered"`
	Unit               string          `json:"unit"`
}
