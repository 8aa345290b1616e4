package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// LotView lote con el nombre de su producto, para listados.
type LotView struct {
	entity.Lot
	Producto string
}

// LotRepository define el puerto de persistencia para los lotes (tabla inventario).
type LotRepository interface {
	Create(ctx context.Context, lot *entity.Lot) error
	// GetForUpdate bloquea el lote; (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.Lot, error)
	// ListByProductForUpdate bloquea y devuelve los lotes del producto; onlyForSale filtra en_venta.
	ListByProductForUpdate(ctx context.Context, productoID string, onlyForSale bool) ([]entity.Lot, error)
	Increment(ctx context.Context, id string, n int) error
	// Decrement resta n solo si cantidad >= n. Devuelve false si no alcanzó.
	Decrement(ctx context.Context, id string, n int) (bool, error)
	ListByJefe(ctx context.Context, jefeID string) ([]LotView, error)
	// SetForSale cambia en_venta de un lote del jefe. Devuelve false si no existe.
	SetForSale(ctx context.Context, jefeID, id string, enVenta bool) (bool, error)
}
