package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/armazem-api/internal/domain/entity"
	"github.com/jhoicas/armazem-api/internal/domain/repository"
)

var _ repository.ZoneStockRepository = (*ZoneStockRepo)(nil)

// ZoneStockRepo stock por zona sobre PostgreSQL. Lock solo tiene efecto dentro de una tx.
type ZoneStockRepo struct {
	q Querier
}

// NewZoneStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewZoneStockRepository(q Querier) *ZoneStockRepo {
	return &ZoneStockRepo{q: q}
}

// Lock toma un advisory lock de transacción sobre el registro (exista o no la fila).
func (r *ZoneStockRepo) Lock(ctx context.Context, key entity.ZoneStockKey) error {
	_, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, "zone_stock:"+key.LockKey())
	if err != nil {
		return storageErr("lock zone stock", err)
	}
	return nil
}

func (r *ZoneStockRepo) Get(ctx context.Context, key entity.ZoneStockKey) (decimal.Decimal, bool, error) {
	if !validUUID(key.ProductID) || !validUUID(key.ZoneID) {
		return decimal.Zero, false, nil
	}
	var qty decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT quantity FROM zone_stock WHERE product_id = $1 AND zone_id = $2`,
		key.ProductID, key.ZoneID,
	).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, storageErr("get zone stock", err)
	}
	return qty, true, nil
}

// Put inserta o actualiza la cantidad (por producto y zona).
func (r *ZoneStockRepo) Put(ctx context.Context, key entity.ZoneStockKey, quantity decimal.Decimal) error {
	query := `
		INSERT INTO zone_stock (product_id, zone_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, zone_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, key.ProductID, key.ZoneID, quantity); err != nil {
		return storageErr("upsert zone stock", err)
	}
	return nil
}

func (r *ZoneStockRepo) Delete(ctx context.Context, key entity.ZoneStockKey) error {
	_, err := r.q.Exec(ctx, `DELETE FROM zone_stock WHERE product_id = $1 AND zone_id = $2`, key.ProductID, key.ZoneID)
	if err != nil {
		return storageErr("delete zone stock", err)
	}
	return nil
}

// List stock por zona con descripción del producto y nombre de la zona.
func (r *ZoneStockRepo) List(ctx context.Context, filter repository.ZoneStockFilter) ([]entity.ZoneStockView, error) {
	var (
		where []string
		args  []any
	)
	if filter.ZoneID != "" {
		if !validUUID(filter.ZoneID) {
			return nil, nil
		}
		args = append(args, filter.ZoneID)
		where = append(where, fmt.Sprintf("zs.zone_id = $%d", len(args)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+q+"%")
		p := fmt.Sprintf("$%d", len(args))
		where = append(where, "(p.description ILIKE "+p+" OR p.drawing ILIKE "+p+" OR z.name ILIKE "+p+")")
	}
	query := `
		SELECT zs.product_id, zs.zone_id, zs.quantity, zs.updated_at,
		       p.description, COALESCE(p.drawing, ''), z.name, COALESCE(z.description, '')
		FROM zone_stock zs
		JOIN products p ON p.id = zs.product_id
		JOIN zones z ON z.id = zs.zone_id`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY z.name, p.description"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list zone stock", err)
	}
	defer rows.Close()
	var list []entity.ZoneStockView
	for rows.Next() {
		var v entity.ZoneStockView
		if err := rows.Scan(
			&v.Key.ProductID, &v.Key.ZoneID, &v.Quantity, &v.UpdatedAt,
			&v.ProductDescription, &v.ProductDrawing, &v.ZoneName, &v.ZoneDescription,
		); err != nil {
			return nil, storageErr("scan zone stock", err)
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list zone stock", err)
	}
	return list, nil
}
