package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/armazem-api/internal/domain"
	"github.com/jhoicas/armazem-api/internal/domain/entity"
	"github.com/jhoicas/armazem-api/internal/domain/repository"
)

var (
	_ repository.ZoneRepository    = (*ZoneRepo)(nil)
	_ repository.RackRepository    = (*RackRepo)(nil)
	_ repository.ProductRepository = (*ProductRepo)(nil)
)

// ZoneRepo implementación de ZoneRepository sobre PostgreSQL.
type ZoneRepo struct {
	q Querier
}

// NewZoneRepository construye el adaptador de zonas. Pasar pool o tx (Querier).
func NewZoneRepository(q Querier) *ZoneRepo {
	return &ZoneRepo{q: q}
}

// Create persiste una zona; el nombre es único.
func (r *ZoneRepo) Create(ctx context.Context, zone *entity.Zone) error {
	query := `
		INSERT INTO zones (id, name, description, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4)`
	_, err := r.q.Exec(ctx, query, zone.ID, zone.Name, zone.Description, zone.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storageErr("insert zone", err)
	}
	return nil
}

// GetByID obtiene una zona por ID.
func (r *ZoneRepo) GetByID(ctx context.Context, id string) (*entity.Zone, error) {
	if !validUUID(id) {
		return nil, nil
	}
	query := `SELECT id, name, COALESCE(description, ''), created_at FROM zones WHERE id = $1`
	var z entity.Zone
	err := r.q.QueryRow(ctx, query, id).Scan(&z.ID, &z.Name, &z.Description, &z.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get zone", err)
	}
	return &z, nil
}

// List lista zonas con el número de racks y de productos almacenados.
func (r *ZoneRepo) List(ctx context.Context) ([]repository.ZoneSummary, error) {
	query := `
		SELECT z.id, z.name, COALESCE(z.description, ''), z.created_at,
		       (SELECT COUNT(*) FROM racks rk WHERE rk.zone_id = z.id),
		       (SELECT COUNT(*) FROM zone_stock zs WHERE zs.zone_id = z.id)
		FROM zones z
		ORDER BY z.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storageErr("list zones", err)
	}
	defer rows.Close()
	var list []repository.ZoneSummary
	for rows.Next() {
		var s repository.ZoneSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.TotalRacks, &s.TotalProducts); err != nil {
			return nil, storageErr("scan zone", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list zones", err)
	}
	return list, nil
}

// RackRepo implementación de RackRepository sobre PostgreSQL.
type RackRepo struct {
	q Querier
}

// NewRackRepository construye el adaptador de racks. Pasar pool o tx (Querier).
func NewRackRepository(q Querier) *RackRepo {
	return &RackRepo{q: q}
}

const rackColumns = `id, zone_id, code, aisle, rack, level, col, created_at`

func scanRack(row pgx.Row) (*entity.Rack, error) {
	var rk entity.Rack
	if err := row.Scan(&rk.ID, &rk.ZoneID, &rk.Code, &rk.Aisle, &rk.Rack, &rk.Level, &rk.Column, &rk.CreatedAt); err != nil {
		return nil, err
	}
	return &rk, nil
}

// Create persiste un rack. Código duplicado -> ErrDuplicate; zona inexistente -> ErrNotFound.
func (r *RackRepo) Create(ctx context.Context, rack *entity.Rack) error {
	if !validUUID(rack.ZoneID) {
		return domain.NotFoundf("zona %q", rack.ZoneID)
	}
	query := `
		INSERT INTO racks (` + rackColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		rack.ID, rack.ZoneID, rack.Code, rack.Aisle, rack.Rack, rack.Level, rack.Column, rack.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.NotFoundf("zona %q", rack.ZoneID)
		}
		return storageErr("insert rack", err)
	}
	return nil
}

// GetByID obtiene un rack por ID.
func (r *RackRepo) GetByID(ctx context.Context, id string) (*entity.Rack, error) {
	if !validUUID(id) {
		return nil, nil
	}
	rk, err := scanRack(r.q.QueryRow(ctx, `SELECT `+rackColumns+` FROM racks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get rack", err)
	}
	return rk, nil
}

// GetByCode obtiene un rack por su código (ej. A-01-02-03-04).
func (r *RackRepo) GetByCode(ctx context.Context, code string) (*entity.Rack, error) {
	rk, err := scanRack(r.q.QueryRow(ctx, `SELECT `+rackColumns+` FROM racks WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get rack by code", err)
	}
	return rk, nil
}

// List lista racks ordenados por código.
func (r *RackRepo) List(ctx context.Context) ([]*entity.Rack, error) {
	rows, err := r.q.Query(ctx, `SELECT `+rackColumns+` FROM racks ORDER BY code`)
	if err != nil {
		return nil, storageErr("list racks", err)
	}
	defer rows.Close()
	var list []*entity.Rack
	for rows.Next() {
		rk, err := scanRack(rows)
		if err != nil {
			return nil, storageErr("scan rack", err)
		}
		list = append(list, rk)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list racks", err)
	}
	return list, nil
}

// ProductRepo lectura del catálogo de productos.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validUUID(id) {
		return nil, nil
	}
	query := `SELECT id, description, COALESCE(drawing, ''), created_at FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Description, &p.Drawing, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get product", err)
	}
	return &p, nil
}
