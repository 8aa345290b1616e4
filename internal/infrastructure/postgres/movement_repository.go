package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo bitácora de movimientos sobre PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento; es una sola escritura sin lectura previa.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movimientos (id, tipo, producto_id, cantidad, jefe_id, observacion, referencia, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, m.ID, m.Tipo, m.ProductoID, m.Cantidad, m.JefeID, m.Observacion, m.Referencia, m.Fecha)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("producto %s: %w", m.ProductoID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List devuelve los movimientos del jefe, más recientes primero.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]entity.MovementView, error) {
	where := []string{"m.jefe_id = $1"}
	args := []any{f.JefeID}
	if f.Tipo != "" {
		args = append(args, f.Tipo)
		where = append(where, fmt.Sprintf("m.tipo = $%d", len(args)))
	}
	if f.ProductoID != "" {
		args = append(args, f.ProductoID)
		where = append(where, fmt.Sprintf("m.producto_id = $%d", len(args)))
	}
	query := `
		SELECT m.id, m.tipo, m.producto_id, m.cantidad, m.jefe_id, m.observacion, m.referencia, m.fecha, p.nombre
		FROM movimientos m
		JOIN productos p ON p.id = m.producto_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY m.fecha DESC, m.id`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []entity.MovementView
	for rows.Next() {
		var v entity.MovementView
		if err := rows.Scan(&v.ID, &v.Tipo, &v.ProductoID, &v.Cantidad, &v.JefeID, &v.Observacion, &v.Referencia, &v.Fecha, &v.Producto); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
