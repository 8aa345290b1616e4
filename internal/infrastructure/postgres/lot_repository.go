package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo lotes de inventario sobre PostgreSQL (tabla inventario).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotColumns = `id, producto_id, almacen, lote, cantidad, en_venta, fecha_ingreso`

// Create inserta el lote.
func (r *LotRepo) Create(ctx context.Context, l *entity.Lot) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO inventario (`+lotColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.ProductoID, l.Almacen, l.Lote, l.Cantidad, l.EnVenta, l.FechaIngreso,
	)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return fmt.Errorf("producto %s: %w", l.ProductoID, domain.ErrNotFound)
		}
		if qerr := quantityError(err); qerr != nil {
			return qerr
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetForUpdate obtiene el lote y bloquea la fila.
func (r *LotRepo) GetForUpdate(ctx context.Context, id string) (*entity.Lot, error) {
	var l entity.Lot
	err := r.q.QueryRow(ctx, `SELECT `+lotColumns+` FROM inventario WHERE id = $1 FOR UPDATE`, id).Scan(
		&l.ID, &l.ProductoID, &l.Almacen, &l.Lote, &l.Cantidad, &l.EnVenta, &l.FechaIngreso,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

// ListByProductForUpdate bloquea los lotes del producto en un orden estable.
func (r *LotRepo) ListByProductForUpdate(ctx context.Context, productoID string, onlyForSale bool) ([]entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM inventario WHERE producto_id = $1`
	if onlyForSale {
		query += ` AND en_venta`
	}
	query += ` ORDER BY fecha_ingreso, id FOR UPDATE`

	rows, err := r.q.Query(ctx, query, productoID)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	var list []entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.ID, &l.ProductoID, &l.Almacen, &l.Lote, &l.Cantidad, &l.EnVenta, &l.FechaIngreso); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Increment suma n al lote.
func (r *LotRepo) Increment(ctx context.Context, id string, n int) error {
	tag, err := r.q.Exec(ctx, `UPDATE inventario SET cantidad = cantidad + $2 WHERE id = $1`, id, n)
	if err != nil {
		if qerr := quantityError(err); qerr != nil {
			return qerr
		}
		return fmt.Errorf("increment lot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lote %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Decrement resta solo si el lote tiene suficiente; 0 filas afectadas significa que no alcanzó.
func (r *LotRepo) Decrement(ctx context.Context, id string, n int) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE inventario SET cantidad = cantidad - $2 WHERE id = $1 AND cantidad >= $2`, id, n)
	if err != nil {
		return false, fmt.Errorf("decrement lot: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListByJefe lista los lotes de los productos del jefe.
func (r *LotRepo) ListByJefe(ctx context.Context, jefeID string) ([]repository.LotView, error) {
	query := `
		SELECT i.id, i.producto_id, i.almacen, i.lote, i.cantidad, i.en_venta, i.fecha_ingreso, p.nombre
		FROM inventario i
		JOIN productos p ON p.id = i.producto_id
		WHERE p.jefe_id = $1
		ORDER BY p.nombre, i.fecha_ingreso, i.id`
	rows, err := r.q.Query(ctx, query, jefeID)
	if err != nil {
		return nil, fmt.Errorf("list lots by jefe: %w", err)
	}
	defer rows.Close()
	var list []repository.LotView
	for rows.Next() {
		var v repository.LotView
		if err := rows.Scan(&v.ID, &v.ProductoID, &v.Almacen, &v.Lote, &v.Cantidad, &v.EnVenta, &v.FechaIngreso, &v.Producto); err != nil {
			return nil, fmt.Errorf("scan lot view: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// SetForSale marca o desmarca el lote como disponible para venta. false si no es del jefe.
func (r *LotRepo) SetForSale(ctx context.Context, jefeID, id string, enVenta bool) (bool, error) {
	query := `
		UPDATE inventario i SET en_venta = $3
		FROM productos p
		WHERE i.id = $1 AND p.id = i.producto_id AND p.jefe_id = $2`
	tag, err := r.q.Exec(ctx, query, id, jefeID, enVenta)
	if err != nil {
		return false, fmt.Errorf("set lot for sale: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
