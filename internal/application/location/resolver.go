// Package location traduce códigos visibles para el operador (código de rack, id de zona o
// de producto) a la identidad estable usada en las claves de los ledgers.
package location

import (
	"context"
	"strings"

	"github.com/jhoicas/armazem-api/internal/domain"
	"github.com/jhoicas/armazem-api/internal/domain/repository"
)

// Resolver resuelve ubicaciones y productos. Solo lectura.
type Resolver struct {
	racks    repository.RackRepository
	zones    repository.ZoneRepository
	products repository.ProductRepository
}

// NewResolver construye el resolver sobre los repositorios de catálogo.
func NewResolver(racks repository.RackRepository, zones repository.ZoneRepository, products repository.ProductRepository) *Resolver {
	return &Resolver{racks: racks, zones: zones, products: products}
}

// ResolveRack devuelve el id del rack con ese código o ErrNotFound.
func (r *Resolver) ResolveRack(ctx context.Context, code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", domain.ErrInvalidInput
	}
	rack, err := r.racks.GetByCode(ctx, code)
	if err != nil {
		return "", err
	}
	if rack == nil {
		return "", domain.NotFoundf("rack %q", code)
	}
	return rack.ID, nil
}

// ResolveZone verifica que la zona exista y devuelve su id.
func (r *Resolver) ResolveZone(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", domain.ErrInvalidInput
	}
	zone, err := r.zones.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if zone == nil {
		return "", domain.NotFoundf("zona %q", id)
	}
	return zone.ID, nil
}

// ResolveProduct verifica que el producto exista y devuelve su id.
func (r *Resolver) ResolveProduct(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", domain.ErrInvalidInput
	}
	product, err := r.products.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", domain.NotFoundf("producto %q", id)
	}
	return product.ID, nil
}
