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

var (
	_ repository.JefeRepository     = (*JefeRepo)(nil)
	_ repository.ClientRepository   = (*ClientRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.HistoryRepository  = (*HistoryRepo)(nil)
)

// JefeRepo jefes sobre PostgreSQL.
type JefeRepo struct {
	q Querier
}

// NewJefeRepository construye el adaptador.
func NewJefeRepository(q Querier) *JefeRepo {
	return &JefeRepo{q: q}
}

func (r *JefeRepo) Create(ctx context.Context, j *entity.Jefe) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO jefe (id, usuario, contrasena, created_at) VALUES ($1, $2, $3, $4)`,
		j.ID, j.Usuario, j.PasswordHash, j.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("usuario %q: %w", j.Usuario, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert jefe: %w", err)
	}
	return nil
}

func (r *JefeRepo) GetByUsuario(ctx context.Context, usuario string) (*entity.Jefe, error) {
	var j entity.Jefe
	err := r.q.QueryRow(ctx, `SELECT id, usuario, contrasena, created_at FROM jefe WHERE usuario = $1`, usuario).
		Scan(&j.ID, &j.Usuario, &j.PasswordHash, &j.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get jefe: %w", err)
	}
	return &j, nil
}

// ClientRepo clientes sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, jefe_id, nombre, telefono, email, direccion, created_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	if err := row.Scan(&c.ID, &c.JefeID, &c.Nombre, &c.Telefono, &c.Email, &c.Direccion, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO clientes (`+clientColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.JefeID, c.Nombre, c.Telefono, c.Email, c.Direccion, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, jefeID, id string) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clientes WHERE id = $1 AND jefe_id = $2`, id, jefeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (r *ClientRepo) ListByJefe(ctx context.Context, jefeID string) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, `SELECT `+clientColumns+` FROM clientes WHERE jefe_id = $1 ORDER BY nombre, id`, jefeID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE clientes SET nombre = $3, telefono = $4, email = $5, direccion = $6
		WHERE id = $1 AND jefe_id = $2`,
		c.ID, c.JefeID, c.Nombre, c.Telefono, c.Email, c.Direccion)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cliente %s: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, jefe_id, nombre, contacto, telefono, email, direccion, created_at`

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := row.Scan(&s.ID, &s.JefeID, &s.Nombre, &s.Contacto, &s.Telefono, &s.Email, &s.Direccion, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO proveedores (`+supplierColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.JefeID, s.Nombre, s.Contacto, s.Telefono, s.Email, s.Direccion, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, jefeID, id string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM proveedores WHERE id = $1 AND jefe_id = $2`, id, jefeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

func (r *SupplierRepo) ListByJefe(ctx context.Context, jefeID string) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `SELECT `+supplierColumns+` FROM proveedores WHERE jefe_id = $1 ORDER BY nombre, id`, jefeID)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// HistoryRepo historial sobre PostgreSQL.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador.
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

func (r *HistoryRepo) Create(ctx context.Context, h *entity.History) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO historial (id, jefe_id, accion, descripcion, fecha) VALUES ($1, $2, $3, $4, $5)`,
		h.ID, h.JefeID, h.Accion, h.Descripcion, h.Fecha)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

func (r *HistoryRepo) ListByJefe(ctx context.Context, jefeID string, limit int) ([]*entity.History, error) {
	query := `SELECT id, jefe_id, accion, descripcion, fecha FROM historial WHERE jefe_id = $1 ORDER BY fecha DESC, id`
	args := []any{jefeID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	var list []*entity.History
	for rows.Next() {
		var h entity.History
		if err := rows.Scan(&h.ID, &h.JefeID, &h.Accion, &h.Descripcion, &h.Fecha); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
