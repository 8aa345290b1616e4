package repository

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// EntryRepository persistencia de entradas de mercancía.
type EntryRepository interface {
	Create(ctx context.Context, entry *entity.Entry) error
	GetByID(ctx context.Context, jefeID, id string) (*entity.Entry, error)
}

// ExitRepository persistencia de salidas de mercancía.
type ExitRepository interface {
	Create(ctx context.Context, exit *entity.Exit) error
	GetByID(ctx context.Context, jefeID, id string) (*entity.Exit, error)
}

// SaleRepository persistencia de ventas y su detalle.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateLine(ctx context.Context, line *entity.SaleLine) error
	// GetDetail devuelve la venta con cliente y líneas; (nil, nil) si no es del jefe.
	GetDetail(ctx context.Context, jefeID, id string) (*entity.SaleDetail, error)
}

// ReturnRepository persistencia de devoluciones.
type ReturnRepository interface {
	Create(ctx context.Context, ret *entity.Return) error
	GetByID(ctx context.Context, jefeID, id string) (*entity.Return, error)
	GetForUpdate(ctx context.Context, jefeID, id string) (*entity.Return, error)
	// MarkSettled pasa la devolución de pendiente a aplicada. Devuelve false si ya no estaba pendiente.
	MarkSettled(ctx context.Context, id, loteID string, at time.Time) (bool, error)
	// ListByJefe lista devoluciones del jefe; estado vacío no filtra.
	ListByJefe(ctx context.Context, jefeID, estado string) ([]*entity.Return, error)
}
