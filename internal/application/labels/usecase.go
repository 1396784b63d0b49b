// Package labels genera la etiqueta imprimible de un rack: código, QR y lo que contiene.
package labels

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/armazem-api/internal/domain"
	"github.com/jhoicas/armazem-api/internal/domain/repository"
)

// UseCase casos de uso de etiquetas.
type UseCase struct {
	racks       repository.RackRepository
	zones       repository.ZoneRepository
	allocations repository.AllocationRepository
	generator   RackLabelGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	racks repository.RackRepository,
	zones repository.ZoneRepository,
	allocations repository.AllocationRepository,
	generator RackLabelGenerator,
) *UseCase {
	return &UseCase{racks: racks, zones: zones, allocations: allocations, generator: generator}
}

// RackLabelPDF genera el PDF de la etiqueta del rack con ese código.
func (uc *UseCase) RackLabelPDF(ctx context.Context, code string) (pdfBytes []byte, filename string, err error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, "", domain.ErrInvalidInput
	}
	rack, err := uc.racks.GetByCode(ctx, code)
	if err != nil {
		return nil, "", err
	}
	if rack == nil {
		return nil, "", domain.NotFoundf("rack %q", code)
	}
	label := RackLabel{Rack: *rack}
	zone, err := uc.zones.GetByID(ctx, rack.ZoneID)
	if err != nil {
		return nil, "", err
	}
	if zone != nil {
		label.ZoneName = zone.Name
	}
	views, err := uc.allocations.List(ctx, repository.AllocationFilter{RackCode: rack.Code})
	if err != nil {
		return nil, "", err
	}
	for _, v := range views {
		label.Lines = append(label.Lines, LabelLine{
			Key:         v.Key.OrderLine,
			Description: v.ArticleDescription,
			Unit:        v.Unit,
			Quantity:    v.Quantity,
		})
	}

	pdfBytes, err = uc.generator.GenerateRackLabel(ctx, label)
	if err != nil {
		return nil, "", fmt.Errorf("labels: generar pdf: %w", err)
	}
	return pdfBytes, fmt.Sprintf("rack-%s.pdf", rack.Code), nil
}
