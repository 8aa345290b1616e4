package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// JefeRepository persistencia de jefes (dueños de tienda).
type JefeRepository interface {
	Create(ctx context.Context, jefe *entity.Jefe) error
	GetByUsuario(ctx context.Context, usuario string) (*entity.Jefe, error)
}

// ClientRepository persistencia de clientes del jefe.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, jefeID, id string) (*entity.Client, error)
	ListByJefe(ctx context.Context, jefeID string) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
}

// SupplierRepository persistencia de proveedores del jefe.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, jefeID, id string) (*entity.Supplier, error)
	ListByJefe(ctx context.Context, jefeID string) ([]*entity.Supplier, error)
}

// HistoryRepository historial de acciones del jefe.
type HistoryRepository interface {
	Create(ctx context.Context, h *entity.History) error
	ListByJefe(ctx context.Context, jefeID string, limit int) ([]*entity.History, error)
}
