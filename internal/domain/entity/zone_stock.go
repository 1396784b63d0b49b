package entity

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ZoneStockKey identifica el stock de un producto en una zona.
type ZoneStockKey struct {
	ProductID string
	ZoneID    string
}

func (k ZoneStockKey) String() string {
	return k.ProductID + "|" + k.ZoneID
}

// LockKey ver OrderLineKey.LockKey.
func (k ZoneStockKey) LockKey() string {
	return strconv.Quote(k.ProductID) + strconv.Quote(k.ZoneID)
}

// ZoneStock registro del ledger de stock por zona. Quantity > 0 mientras exista.
type ZoneStock struct {
	Key       ZoneStockKey
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}

// ZoneStockView fila de listado con datos del producto y de la zona.
type ZoneStockView struct {
	ZoneStock
	ProductDescription string
	ProductDrawing     string
	ZoneName           string
	ZoneDescription    string
}
