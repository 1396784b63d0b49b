package labels

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/armazem-api/internal/domain/entity"
)

// RackLabel datos de la etiqueta de un rack.
type RackLabel struct {
	Rack     entity.Rack
	ZoneName string
	Lines    []LabelLine
}

// LabelLine línea de encomienda colocada en el rack.
type LabelLine struct {
	Key         entity.OrderLineKey
	Description string
	Unit        string
	Quantity    decimal.Decimal
}

// RackLabelGenerator puerto de salida para renderizar la etiqueta (PDF).
type RackLabelGenerator interface {
	GenerateRackLabel(ctx context.Context, label RackLabel) ([]byte, error)
}
