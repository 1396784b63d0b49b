package entity

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// AllocationKey identifica la cantidad de una línea de encomienda colocada en un rack.
type AllocationKey struct {
	RackID    string
	OrderLine OrderLineKey
}

func (k AllocationKey) String() string {
	return k.RackID + "|" + k.OrderLine.String()
}

// LockKey ver OrderLineKey.LockKey.
func (k AllocationKey) LockKey() string {
	return strconv.Quote(k.RackID) + k.OrderLine.LockKey()
}

// Allocation registro del ledger de asignaciones. Quantity > 0 mientras exista.
type Allocation struct {
	Key       AllocationKey
	Quantity  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AllocationView fila de listado: asignación + datos del rack y de la línea de encomienda.
type AllocationView struct {
	Allocation
	RackCode           string
	Aisle              int
	Rack               int
	Level              int
	Column             int
	SupplierName       string
	ArticleDescription string
	Unit               string
	QuantityOrdered    decimal.Decimal
}
