package entity

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineKey identifica un artículo dentro de una encomienda a proveedor.
type OrderLineKey struct {
	RequisitionNumber string
	OrderNumber       string
	ArticleCode       string
}

// Valid indica si los tres componentes de la clave están presentes.
func (k OrderLineKey) Valid() bool {
	return k.RequisitionNumber != "" && k.OrderNumber != "" && k.ArticleCode != ""
}

func (k OrderLineKey) String() string {
	return k.RequisitionNumber + "/" + k.OrderNumber + "/" + k.ArticleCode
}

// LockKey codificación sin colisiones de la clave, para locks por registro.
func (k OrderLineKey) LockKey() string {
	return strconv.Quote(k.RequisitionNumber) + strconv.Quote(k.OrderNumber) + strconv.Quote(k.ArticleCode)
}

// OrderLine línea de encomienda a proveedor. Solo lectura para el ledger:
// QuantityOrdered es el límite superior de lo que puede asignarse a racks.
type OrderLine struct {
	ID                 string
	Key                OrderLineKey
	OrderDate          *time.Time
	SupplierName       string
	SupplierNumber     string
	ExpectedDelivery   *time.Time
	ArticleDescription string
	QuantityOrdered    decimal.Decimal
	Unit               string
}
