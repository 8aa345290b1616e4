package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, jefe_id, nombre, nombre_clave, descripcion, modelo, marca, cantidad,
	precio_compra, precio_venta, ubicacion, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.JefeID, &p.Nombre, &p.NombreClave, &p.Descripcion, &p.Modelo, &p.Marca, &p.Cantidad,
		&p.PrecioCompra, &p.PrecioVenta, &p.Ubicacion, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO productos (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.JefeID, p.Nombre, p.NombreClave, p.Descripcion, p.Modelo, p.Marca, p.Cantidad,
		p.PrecioCompra, p.PrecioVenta, p.Ubicacion, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("producto %q: %w", p.Nombre, domain.ErrDuplicate)
		}
		if qerr := quantityError(err); qerr != nil {
			return qerr
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// CreateIfAbsent inserta el producto salvo que el jefe ya tenga uno con el mismo nombre_clave.
// Dos transacciones concurrentes con el mismo nombre no pueden crear dos productos: la segunda
// espera al índice único y sale por DO NOTHING.
func (r *ProductRepo) CreateIfAbsent(ctx context.Context, p *entity.Product) (bool, error) {
	query := `
		INSERT INTO productos (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (jefe_id, nombre_clave) DO NOTHING`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.JefeID, p.Nombre, p.NombreClave, p.Descripcion, p.Modelo, p.Marca, p.Cantidad,
		p.PrecioCompra, p.PrecioVenta, p.Ubicacion, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if qerr := quantityError(err); qerr != nil {
			return false, qerr
		}
		return false, fmt.Errorf("insert product if absent: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetByID obtiene un producto del jefe por ID.
func (r *ProductRepo) GetByID(ctx context.Context, jefeID, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM productos WHERE id = $1 AND jefe_id = $2`, id, jefeID)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, jefeID, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM productos WHERE id = $1 AND jefe_id = $2 FOR UPDATE`, id, jefeID)
}

// GetByNombreClaveForUpdate busca por nombre normalizado y bloquea la fila. nil si no existe.
func (r *ProductRepo) GetByNombreClaveForUpdate(ctx context.Context, jefeID, nombreClave string) (*entity.Product, error) {
	return r.getOne(ctx,
		`SELECT `+productColumns+` FROM productos WHERE jefe_id = $1 AND nombre_clave = $2 FOR UPDATE`,
		jefeID, nombreClave)
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListByJefe lista los productos del jefe por nombre.
func (r *ProductRepo) ListByJefe(ctx context.Context, jefeID string) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM productos WHERE jefe_id = $1 ORDER BY nombre, id`, jefeID)
}

// ListForSale lista los productos con algún lote en venta y con existencias.
func (r *ProductRepo) ListForSale(ctx context.Context, jefeID string) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM productos p
		WHERE p.jefe_id = $1
		  AND EXISTS (SELECT 1 FROM inventario i WHERE i.producto_id = p.id AND i.en_venta AND i.cantidad > 0)
		ORDER BY p.nombre, p.id`
	return r.list(ctx, query, jefeID)
}

// Update modifica los campos de catálogo. La cantidad solo cambia por operaciones de stock.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE productos SET nombre = $3, nombre_clave = $4, descripcion = $5, modelo = $6, marca = $7,
			precio_compra = $8, precio_venta = $9, ubicacion = $10, updated_at = now()
		WHERE id = $1 AND jefe_id = $2`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.JefeID, p.Nombre, p.NombreClave, p.Descripcion, p.Modelo, p.Marca,
		p.PrecioCompra, p.PrecioVenta, p.Ubicacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("producto %q: %w", p.Nombre, domain.ErrDuplicate)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("producto %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

// IncrementQuantity suma n a la cantidad del producto.
func (r *ProductRepo) IncrementQuantity(ctx context.Context, id string, n int) error {
	tag, err := r.q.Exec(ctx, `UPDATE productos SET cantidad = cantidad + $2, updated_at = now() WHERE id = $1`, id, n)
	if err != nil {
		if qerr := quantityError(err); qerr != nil {
			return qerr
		}
		return fmt.Errorf("increment product quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DecrementQuantity resta solo si alcanza; 0 filas afectadas significa stock insuficiente.
func (r *ProductRepo) DecrementQuantity(ctx context.Context, id string, n int) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE productos SET cantidad = cantidad - $2, updated_at = now() WHERE id = $1 AND cantidad >= $2`, id, n)
	if err != nil {
		return false, fmt.Errorf("decrement product quantity: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SetQuantity fija la cantidad total del producto.
func (r *ProductRepo) SetQuantity(ctx context.Context, id string, cantidad int) error {
	_, err := r.q.Exec(ctx, `UPDATE productos SET cantidad = $2, updated_at = now() WHERE id = $1`, id, cantidad)
	if err != nil {
		if qerr := quantityError(err); qerr != nil {
			return qerr
		}
		return fmt.Errorf("set product quantity: %w", err)
	}
	return nil
}

// SetPurchasePrice guarda el último precio de compra.
func (r *ProductRepo) SetPurchasePrice(ctx context.Context, id string, precio decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE productos SET precio_compra = $2, updated_at = now() WHERE id = $1`, id, precio)
	if err != nil {
		return fmt.Errorf("set purchase price: %w", err)
	}
	return nil
}

// DeleteCascade borra en orden las filas que referencian al producto y luego el producto.
// Debe ejecutarse dentro de una transacción.
func (r *ProductRepo) DeleteCascade(ctx context.Context, jefeID, id string) (bool, error) {
	var owned bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM productos WHERE id = $1 AND jefe_id = $2)`, id, jefeID).Scan(&owned)
	if err != nil {
		return false, fmt.Errorf("check product owner: %w", err)
	}
	if !owned {
		return false, nil
	}
	steps := []string{
		`DELETE FROM detalle_venta WHERE producto_id = $1`,
		`DELETE FROM movimientos WHERE producto_id = $1`,
		`DELETE FROM salidas WHERE producto_id = $1`,
		`DELETE FROM entradas WHERE producto_id = $1`,
		`DELETE FROM devoluciones WHERE producto_id = $1`,
		`DELETE FROM inventario WHERE producto_id = $1`,
	}
	for _, stmt := range steps {
		if _, err := r.q.Exec(ctx, stmt, id); err != nil {
			return false, fmt.Errorf("delete product dependents: %w", err)
		}
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM productos WHERE id = $1 AND jefe_id = $2`, id, jefeID)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
