package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) cuando el producto no existe o pertenece a otro jefe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// CreateIfAbsent inserta el producto salvo que ya exista otro con el mismo nombre_clave para el jefe.
	// Devuelve true si lo insertó.
	CreateIfAbsent(ctx context.Context, product *entity.Product) (bool, error)
	GetByID(ctx context.Context, jefeID, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, jefeID, id string) (*entity.Product, error)
	GetByNombreClaveForUpdate(ctx context.Context, jefeID, nombreClave string) (*entity.Product, error)
	ListByJefe(ctx context.Context, jefeID string) ([]*entity.Product, error)
	// ListForSale lista productos con al menos un lote en venta con existencias.
	ListForSale(ctx context.Context, jefeID string) ([]*entity.Product, error)
	// Update modifica los campos de catálogo; nunca la cantidad.
	Update(ctx context.Context, product *entity.Product) error
	IncrementQuantity(ctx context.Context, id string, n int) error
	// DecrementQuantity resta n solo si cantidad >= n. Devuelve false si no alcanzó.
	DecrementQuantity(ctx context.Context, id string, n int) (bool, error)
	SetQuantity(ctx context.Context, id string, cantidad int) error
	SetPurchasePrice(ctx context.Context, id string, precio decimal.Decimal) error
	// DeleteCascade elimina el producto y todas las filas que lo referencian.
	DeleteCascade(ctx context.Context, jefeID, id string) (bool, error)
}
