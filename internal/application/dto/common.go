package dto

import (
	"bytes"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/armazem-api/internal/domain"
)

// ErrorResponse cuerpo de error HTTP. Remaining/Available solo en errores de cantidad.
type ErrorResponse struct {
	Code      string           `json:"code"`
	Message   string           `json:"message"`
	Remaining *decimal.Decimal `json:"remaining,omitempty"`
	Available *decimal.Decimal `json:"available,omitempty"`
}

// QuantityResponse respuesta de las consultas de cantidad.
type QuantityResponse struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// ListResponse envoltorio de listados.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewList construye el envoltorio; nunca serializa items como null.
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

// Amount cantidad de un body de escritura. Acepta número o string JSON; el valor se
// interpreta en Decimal para que una cantidad no numérica sea ErrInvalidAmount y no
// un body mal formado.
type Amount struct {
	raw []byte
}

// UnmarshalJSON guarda el valor sin interpretarlo.
func (a *Amount) UnmarshalJSON(b []byte) error {
	a.raw = append(a.raw[:0], b...)
	return nil
}

// Decimal devuelve la cantidad; ausente o null vale cero.
func (a Amount) Decimal() (decimal.Decimal, error) {
	if len(a.raw) == 0 || bytes.Equal(a.raw, []byte("null")) {
		return decimal.Zero, nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(a.raw); err != nil {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return d, nil
}
