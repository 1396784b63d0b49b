package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/armazem-api/internal/domain/entity"
	"github.com/jhoicas/armazem-api/internal/domain/repository"
)

var _ repository.OrderLineRepository = (*OrderLineRepo)(nil)

// OrderLineRepo lectura de líneas de encomienda sobre PostgreSQL (usable con pool o tx).
type OrderLineRepo struct {
	q Querier
}

// NewOrderLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderLineRepository(q Querier) *OrderLineRepo {
	return &OrderLineRepo{q: q}
}

const orderLineColumns = `
	id, requisition_number, order_number, article_code, order_date, supplier_name,
	COALESCE(supplier_number, ''), expected_delivery, article_description, quantity_ordered, unit`

func scanOrderLine(row pgx.Row) (*entity.OrderLine, error) {
	var l entity.OrderLine
	err := row.Scan(
		&l.ID, &l.Key.RequisitionNumber, &l.Key.OrderNumber, &l.Key.ArticleCode, &l.OrderDate, &l.SupplierName,
		&l.SupplierNumber, &l.ExpectedDelivery, &l.ArticleDescription, &l.QuantityOrdered, &l.Unit,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetByID obtiene una línea por ID.
func (r *OrderLineRepo) GetByID(ctx context.Context, id string) (*entity.OrderLine, error) {
	if !validUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get order line", `SELECT `+orderLineColumns+` FROM order_lines WHERE id = $1`, id)
}

// GetByKey obtiene una línea por (requisición, encomienda, artículo).
func (r *OrderLineRepo) GetByKey(ctx context.Context, key entity.OrderLineKey) (*entity.OrderLine, error) {
	query := `SELECT ` + orderLineColumns + ` FROM order_lines
		WHERE requisition_number = $1 AND order_number = $2 AND article_code = $3`
	return r.getOne(ctx, "get order line by key", query, key.RequisitionNumber, key.OrderNumber, key.ArticleCode)
}

// GetByKeyForUpdate obtiene la línea y bloquea la fila para update (SELECT FOR UPDATE).
func (r *OrderLineRepo) GetByKeyForUpdate(ctx context.Context, key entity.OrderLineKey) (*entity.OrderLine, error) {
	query := `SELECT ` + orderLineColumns + ` FROM order_lines
		WHERE requisition_number = $1 AND order_number = $2 AND article_code = $3
		FOR UPDATE`
	return r.getOne(ctx, "get order line for update", query, key.RequisitionNumber, key.OrderNumber, key.ArticleCode)
}

// List lista todas las líneas de encomienda.
func (r *OrderLineRepo) List(ctx context.Context) ([]*entity.OrderLine, error) {
	return r.list(ctx, `SELECT `+orderLineColumns+` FROM order_lines
		ORDER BY order_date DESC NULLS LAST, requisition_number, order_number, article_code`)
}

// Search busca por requisición, encomienda, proveedor, código o descripción del artículo.
func (r *OrderLineRepo) Search(ctx context.Context, q string) ([]*entity.OrderLine, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return r.List(ctx)
	}
	query := `SELECT ` + orderLineColumns + ` FROM order_lines
		WHERE requisition_number ILIKE $1 OR order_number ILIKE $1 OR supplier_name ILIKE $1
		   OR article_code ILIKE $1 OR article_description ILIKE $1
		ORDER BY order_date DESC NULLS LAST, requisition_number, order_number, article_code
		LIMIT 100`
	return r.list(ctx, query, "%"+q+"%")
}

func (r *OrderLineRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.OrderLine, error) {
	l, err := scanOrderLine(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr(op, err)
	}
	return l, nil
}

func (r *OrderLineRepo) list(ctx context.Context, query string, args ...any) ([]*entity.OrderLine, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list order lines", err)
	}
	defer rows.Close()
	var list []*entity.OrderLine
	for rows.Next() {
		l, err := scanOrderLine(rows)
		if err != nil {
			return nil, storageErr("scan order line", err)
		}
		list = append(list, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list order lines", err)
	}
	return list, nil
}
