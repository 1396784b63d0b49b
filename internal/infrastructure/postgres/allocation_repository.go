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

var _ repository.AllocationRepository = (*AllocationRepo)(nil)

// AllocationRepo asignaciones a racks sobre PostgreSQL. Lock solo tiene efecto dentro de una tx.
type AllocationRepo struct {
	q Querier
}

// NewAllocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAllocationRepository(q Querier) *AllocationRepo {
	return &AllocationRepo{q: q}
}

// Lock toma un advisory lock de transacción sobre el registro (exista o no la fila).
func (r *AllocationRepo) Lock(ctx context.Context, key entity.AllocationKey) error {
	_, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, "allocation:"+key.LockKey())
	if err != nil {
		return storageErr("lock allocation", err)
	}
	return nil
}

func (r *AllocationRepo) Get(ctx context.Context, key entity.AllocationKey) (decimal.Decimal, bool, error) {
	if !validUUID(key.RackID) {
		return decimal.Zero, false, nil
	}
	query := `
		SELECT quantity FROM rack_allocations
		WHERE rack_id = $1 AND requisition_number = $2 AND order_number = $3 AND article_code = $4`
	var qty decimal.Decimal
	err := r.q.QueryRow(ctx, query,
		key.RackID, key.OrderLine.RequisitionNumber, key.OrderLine.OrderNumber, key.OrderLine.ArticleCode,
	).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, storageErr("get allocation", err)
	}
	return qty, true, nil
}

// Put inserta o actualiza la cantidad del registro.
func (r *AllocationRepo) Put(ctx context.Context, key entity.AllocationKey, quantity decimal.Decimal) error {
	query := `
		INSERT INTO rack_allocations (rack_id, requisition_number, order_number, article_code, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (rack_id, requisition_number, order_number, article_code)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		key.RackID, key.OrderLine.RequisitionNumber, key.OrderLine.OrderNumber, key.OrderLine.ArticleCode, quantity,
	)
	if err != nil {
		return storageErr("upsert allocation", err)
	}
	return nil
}

func (r *AllocationRepo) Delete(ctx context.Context, key entity.AllocationKey) error {
	query := `
		DELETE FROM rack_allocations
		WHERE rack_id = $1 AND requisition_number = $2 AND order_number = $3 AND article_code = $4`
	_, err := r.q.Exec(ctx, query,
		key.RackID, key.OrderLine.RequisitionNumber, key.OrderLine.OrderNumber, key.OrderLine.ArticleCode,
	)
	if err != nil {
		return storageErr("delete allocation", err)
	}
	return nil
}

// SumByOrderLine total asignado de la línea en todos los racks.
func (r *AllocationRepo) SumByOrderLine(ctx context.Context, key entity.OrderLineKey) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0) FROM rack_allocations
		WHERE requisition_number = $1 AND order_number = $2 AND article_code = $3`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, key.RequisitionNumber, key.OrderNumber, key.ArticleCode).Scan(&sum); err != nil {
		return decimal.Zero, storageErr("sum allocations", err)
	}
	return sum, nil
}

// List asignaciones con datos del rack y de la línea de encomienda.
func (r *AllocationRepo) List(ctx context.Context, filter repository.AllocationFilter) ([]entity.AllocationView, error) {
	var (
		where []string
		args  []any
	)
	if filter.RackCode != "" {
		args = append(args, filter.RackCode)
		where = append(where, fmt.Sprintf("rk.code = $%d", len(args)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+q+"%")
		p := fmt.Sprintf("$%d", len(args))
		where = append(where, "(ra.requisition_number ILIKE "+p+" OR ra.order_number ILIKE "+p+
			" OR ol.supplier_name ILIKE "+p+" OR ra.article_code ILIKE "+p+
			" OR ol.article_description ILIKE "+p+" OR rk.code ILIKE "+p+")")
	}
	query := `
		SELECT ra.rack_id, ra.requisition_number, ra.order_number, ra.article_code, ra.quantity,
		       ra.created_at, ra.updated_at, rk.code, rk.aisle, rk.rack, rk.level, rk.col,
		       COALESCE(ol.supplier_name, ''), COALESCE(ol.article_description, ''),
		       COALESCE(ol.unit, ''), COALESCE(ol.quantity_ordered, 0)
		FROM rack_allocations ra
		JOIN racks rk ON rk.id = ra.rack_id
		LEFT JOIN order_lines ol
		       ON ol.requisition_number = ra.requisition_number
		      AND ol.order_number = ra.order_number
		      AND ol.article_code = ra.article_code`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY ra.created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list allocations", err)
	}
	defer rows.Close()
	var list []entity.AllocationView
	for rows.Next() {
		var v entity.AllocationView
		if err := rows.Scan(
			&v.Key.RackID, &v.Key.OrderLine.RequisitionNumber, &v.Key.OrderLine.OrderNumber, &v.Key.OrderLine.ArticleCode,
			&v.Quantity, &v.CreatedAt, &v.UpdatedAt, &v.RackCode, &v.Aisle, &v.Rack, &v.Level, &v.Column,
			&v.SupplierName, &v.ArticleDescription, &v.Unit, &v.QuantityOrdered,
		); err != nil {
			return nil, storageErr("scan allocation", err)
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list allocations", err)
	}
	return list, nil
}
