package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ProductUseCase consultas y edición de catálogo de productos. La cantidad solo cambia por
// las operaciones de inventario.
type ProductUseCase struct {
	repo     repository.ProductRepository
	recorder *inventory.Recorder
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, recorder *inventory.Recorder) *ProductUseCase {
	return &ProductUseCase{repo: repo, recorder: recorder}
}

// GetByID obtiene un producto del jefe.
func (uc *ProductUseCase) GetByID(ctx context.Context, jefeID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, jefeID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return ToProductResponse(product), nil
}

// List lista los productos del jefe.
func (uc *ProductUseCase) List(ctx context.Context, jefeID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListByJefe(ctx, jefeID)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// ListForSale lista los productos con existencias en lotes habilitados para venta.
func (uc *ProductUseCase) ListForSale(ctx context.Context, jefeID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListForSale(ctx, jefeID)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Update aplica solo los campos presentes en la petición. Cambiar el nombre recalcula la clave normalizada.
func (uc *ProductUseCase) Update(ctx context.Context, jefeID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Empty() {
		return nil, domain.Invalid("body", "no hay campos para actualizar")
	}
	product, err := uc.repo.GetByID(ctx, jefeID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	if in.Nombre != nil {
		clave := entity.NombreClave(*in.Nombre)
		if clave == "" {
			return nil, domain.Invalid("nombre", "requerido")
		}
		product.Nombre = *in.Nombre
		product.NombreClave = clave
	}
	if in.Descripcion != nil {
		product.Descripcion = *in.Descripcion
	}
	if in.Modelo != nil {
		product.Modelo = *in.Modelo
	}
	if in.Marca != nil {
		product.Marca = *in.Marca
	}
	if in.Ubicacion != nil {
		product.Ubicacion = *in.Ubicacion
	}
	if in.PrecioCompra != nil {
		product.PrecioCompra = *in.PrecioCompra
	}
	if in.PrecioVenta != nil {
		product.PrecioVenta = *in.PrecioVenta
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.recorder.History(ctx, jefeID, "editar producto", fmt.Sprintf("Producto %s actualizado", product.Nombre))
	return ToProductResponse(product), nil
}

// ToProductResponse convierte la entidad a su salida HTTP.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		JefeID:       p.JefeID,
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		Modelo:       p.Modelo,
		Marca:        p.Marca,
		Cantidad:     p.Cantidad,
		PrecioCompra: p.PrecioCompra,
		PrecioVenta:  p.PrecioVenta,
		Ubicacion:    p.Ubicacion,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return items
}
