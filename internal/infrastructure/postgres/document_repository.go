package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var (
	_ repository.EntryRepository  = (*EntryRepo)(nil)
	_ repository.ExitRepository   = (*ExitRepo)(nil)
	_ repository.SaleRepository   = (*SaleRepo)(nil)
	_ repository.ReturnRepository = (*ReturnRepo)(nil)
)

// nullable convierte "" en NULL para columnas uuid opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// EntryRepo entradas de mercancía sobre PostgreSQL.
type EntryRepo struct {
	q Querier
}

// NewEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{q: q}
}

func (r *EntryRepo) Create(ctx context.Context, e *entity.Entry) error {
	query := `
		INSERT INTO entradas (id, producto_id, lote_id, cantidad, precio_compra, proveedor_id, jefe_id, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.ProductoID, nullable(e.LoteID), e.Cantidad, e.PrecioCompra, nullable(e.ProveedorID), e.JefeID, e.Fecha)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("entrada: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (r *EntryRepo) GetByID(ctx context.Context, jefeID, id string) (*entity.Entry, error) {
	query := `
		SELECT id, producto_id, lote_id, cantidad, precio_compra, proveedor_id, jefe_id, fecha
		FROM entradas WHERE id = $1 AND jefe_id = $2`
	var e entity.Entry
	var loteID, proveedorID *string
	err := r.q.QueryRow(ctx, query, id, jefeID).Scan(
		&e.ID, &e.ProductoID, &loteID, &e.Cantidad, &e.PrecioCompra, &proveedorID, &e.JefeID, &e.Fecha)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	e.LoteID, e.ProveedorID = deref(loteID), deref(proveedorID)
	return &e, nil
}

// ExitRepo salidas de mercancía sobre PostgreSQL.
type ExitRepo struct {
	q Querier
}

// NewExitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExitRepository(q Querier) *ExitRepo {
	return &ExitRepo{q: q}
}

func (r *ExitRepo) Create(ctx context.Context, e *entity.Exit) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO salidas (id, producto_id, cantidad, observacion, jefe_id, fecha) VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.ProductoID, e.Cantidad, e.Observacion, e.JefeID, e.Fecha)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("producto %s: %w", e.ProductoID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert exit: %w", err)
	}
	return nil
}

func (r *ExitRepo) GetByID(ctx context.Context, jefeID, id string) (*entity.Exit, error) {
	var e entity.Exit
	err := r.q.QueryRow(ctx,
		`SELECT id, producto_id, cantidad, observacion, jefe_id, fecha FROM salidas WHERE id = $1 AND jefe_id = $2`,
		id, jefeID).Scan(&e.ID, &e.ProductoID, &e.Cantidad, &e.Observacion, &e.JefeID, &e.Fecha)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get exit: %w", err)
	}
	return &e, nil
}

// SaleRepo ventas y detalle_venta sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO ventas (id, cliente_id, total, jefe_id, fecha) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.ClienteID, s.Total, s.JefeID, s.Fecha)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("cliente %s: %w", s.ClienteID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) CreateLine(ctx context.Context, l *entity.SaleLine) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO detalle_venta (id, venta_id, producto_id, cantidad, precio_unitario) VALUES ($1, $2, $3, $4, $5)`,
		l.ID, l.VentaID, l.ProductoID, l.Cantidad, l.PrecioUnitario)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("producto %s: %w", l.ProductoID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

// GetDetail devuelve la cabecera con el nombre del cliente y las líneas con el nombre del producto.
func (r *SaleRepo) GetDetail(ctx context.Context, jefeID, id string) (*entity.SaleDetail, error) {
	var d entity.SaleDetail
	err := r.q.QueryRow(ctx, `
		SELECT v.id, v.cliente_id, v.total, v.jefe_id, v.fecha, COALESCE(c.nombre, '')
		FROM ventas v
		LEFT JOIN clientes c ON c.id = v.cliente_id
		WHERE v.id = $1 AND v.jefe_id = $2`, id, jefeID).Scan(
		&d.ID, &d.ClienteID, &d.Total, &d.JefeID, &d.Fecha, &d.Cliente)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT dv.id, dv.venta_id, dv.producto_id, dv.cantidad, dv.precio_unitario, COALESCE(p.nombre, '')
		FROM detalle_venta dv
		LEFT JOIN productos p ON p.id = dv.producto_id
		WHERE dv.venta_id = $1
		ORDER BY p.nombre, dv.id`, id)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SaleLineView
		if err := rows.Scan(&l.ID, &l.VentaID, &l.ProductoID, &l.Cantidad, &l.PrecioUnitario, &l.Producto); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		d.Lineas = append(d.Lineas, l)
	}
	return &d, rows.Err()
}

// ReturnRepo devoluciones sobre PostgreSQL.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const returnColumns = `id, tipo, producto_id, cantidad, motivo, estado, lote_id, jefe_id, fecha, aplicada_en`

func scanReturn(row pgx.Row) (*entity.Return, error) {
	var ret entity.Return
	var loteID *string
	if err := row.Scan(&ret.ID, &ret.Tipo, &ret.ProductoID, &ret.Cantidad, &ret.Motivo, &ret.Estado,
		&loteID, &ret.JefeID, &ret.Fecha, &ret.AplicadaEn); err != nil {
		return nil, err
	}
	ret.LoteID = deref(loteID)
	return &ret, nil
}

func (r *ReturnRepo) Create(ctx context.Context, ret *entity.Return) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO devoluciones (`+returnColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		ret.ID, ret.Tipo, ret.ProductoID, ret.Cantidad, ret.Motivo, ret.Estado,
		nullable(ret.LoteID), ret.JefeID, ret.Fecha, ret.AplicadaEn)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("devolución: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert return: %w", err)
	}
	return nil
}

func (r *ReturnRepo) get(ctx context.Context, query string, args ...any) (*entity.Return, error) {
	ret, err := scanReturn(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	return ret, nil
}

func (r *ReturnRepo) GetByID(ctx context.Context, jefeID, id string) (*entity.Return, error) {
	return r.get(ctx, `SELECT `+returnColumns+` FROM devoluciones WHERE id = $1 AND jefe_id = $2`, id, jefeID)
}

func (r *ReturnRepo) GetForUpdate(ctx context.Context, jefeID, id string) (*entity.Return, error) {
	return r.get(ctx, `SELECT `+returnColumns+` FROM devoluciones WHERE id = $1 AND jefe_id = $2 FOR UPDATE`, id, jefeID)
}

// MarkSettled transición condicional pendiente -> aplicada.
func (r *ReturnRepo) MarkSettled(ctx context.Context, id, loteID string, at time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE devoluciones SET estado = 'aplicada', aplicada_en = $2, lote_id = COALESCE($3, lote_id)
		WHERE id = $1 AND estado = 'pendiente'`, id, at, nullable(loteID))
	if err != nil {
		return false, fmt.Errorf("settle return: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ReturnRepo) ListByJefe(ctx context.Context, jefeID, estado string) ([]*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM devoluciones WHERE jefe_id = $1`
	args := []any{jefeID}
	if estado != "" {
		query += ` AND estado = $2`
		args = append(args, estado)
	}
	query += ` ORDER BY fecha DESC, id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()
	var list []*entity.Return
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		list = append(list, ret)
	}
	return list, rows.Err()
}
