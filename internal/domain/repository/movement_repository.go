package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// MovementFilter filtros opcionales del listado de movimientos.
type MovementFilter struct {
	JefeID     string
	Tipo       string
	ProductoID string
	Limit      int
}

// MovementRepository bitácora de movimientos; solo inserción y lectura.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	List(ctx context.Context, filter MovementFilter) ([]entity.MovementView, error)
}
