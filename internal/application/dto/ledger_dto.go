package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllocateRequest body para POST /api/rack-allocations/allocate.
type AllocateRequest struct {
	OrderLineKey
	RackCode string `json:"rack_code" validate:"required,max=30"`
	Quantity Amount `json:"quantity" swaggertype:"string" example:"10"`
}

// AllocateResponse resultado de una asignación.
type AllocateResponse struct {
	RackCode     string          `json:"rack_code"`
	RackQuantity decimal.Decimal `json:"rack_quantity"`
	Remaining    decimal.Decimal `json:"remaining"`
	Created      bool            `json:"created"`
}

// DeallocateRequest body para POST /api/rack-allocations/deallocate.
// RemoveAll retira todo lo asignado en el rack e ignora Quantity.
type DeallocateRequest struct {
	OrderLineKey
	RackCode  string `json:"rack_code" validate:"required,max=30"`
	Quantity  Amount `json:"quantity" swaggertype:"string" example:"10"`
	RemoveAll bool   `json:"remove_all"`
}

// StockChangeResponse resultado de una retirada: registro eliminado o nueva cantidad.
type StockChangeResponse struct {
	Removed  bool            `json:"removed"`
	Quantity decimal.Decimal `json:"quantity"`
}

// RackQuantityQuery query de GET /api/rack-allocations/rack-quantity.
type RackQuantityQuery struct {
	OrderLineKey
	RackCode string `json:"rack_code" query:"rack_code" validate:"required,max=30"`
}

// AllocationResponse fila de listado de asignaciones.
type AllocationResponse struct {
	RackID             string          `json:"rack_id"`
	RackCode           string          `json:"rack_code"`
	Aisle              int             `json:"aisle"`
	Rack               int             `json:"rack"`
	Level              int             `json:"level"`
	Column             int             `json:"column"`
	RequisitionNumber  string          `json:"requisition_number"`
	OrderNumber        string          `json:"order_number"`
	ArticleCode        string          `json:"article_code"`
	SupplierName       string          `json:"supplier_name"`
	ArticleDescription string          `json:"article_description"`
	Unit               string          `json:"unit"`
	QuantityOrdered    decimal.Decimal `json:"quantity_ordered"`
	Quantity           decimal.Decimal `json:"quantity"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// AddStockRequest body para POST /api/zone-stock/add.
type AddStockRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	ZoneID    string `json:"zone_id" validate:"required"`
	Quantity  Amount `json:"quantity" swaggertype:"string" example:"10"`
}

// RemoveStockRequest body para POST /api/zone-stock/remove.
type RemoveStockRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	ZoneID    string `json:"zone_id" validate:"required"`
	Quantity  Amount `json:"quantity" swaggertype:"string" example:"10"`
	RemoveAll bool   `json:"remove_all"`
}

// StockQuery query de GET /api/zone-stock/quantity.
type StockQuery struct {
	ProductID string `query:"product_id" validate:"required"`
	ZoneID    string `query:"zone_id" validate:"required"`
}

// ZoneStockResponse fila de listado de stock por zona.
type ZoneStockResponse struct {
	ProductID          string          `json:"product_id"`
	ProductDescription string          `json:"product_description"`
	ProductDrawing     string          `json:"product_drawing,omitempty"`
	ZoneID             string          `json:"zone_id"`
	ZoneName           string          `json:"zone_name"`
	ZoneDescription    string          `json:"zone_description,omitempty"`
	Quantity           decimal.Decimal `json:"quantity"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
