package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProductInput alta de producto con stock inicial opcional.
type ProductInput struct {
	JefeID       string
	Nombre       string
	Descripcion  string
	Modelo       string
	Marca        string
	Ubicacion    string
	Cantidad     int
	PrecioCompra decimal.Decimal
	PrecioVenta  decimal.Decimal
	Almacen      string
	Lote         string
	FechaIngreso *time.Time
}

// LotInput alta de un lote para un producto existente.
type LotInput struct {
	JefeID       string
	ProductoID   string
	Almacen      string
	Lote         string
	Cantidad     int
	EnVenta      bool
	FechaIngreso *time.Time
}

// StockCatalogUseCase altas y bajas del catálogo que afectan al stock: se ejecutan en transacción
// para que el agregado del producto siga igual a la suma de sus lotes.
type StockCatalogUseCase struct {
	deps Deps
}

// NewStockCatalogUseCase construye el caso de uso.
func NewStockCatalogUseCase(d Deps) *StockCatalogUseCase {
	return &StockCatalogUseCase{deps: d}
}

// RegisterProduct crea el producto; con cantidad inicial crea también su lote y el movimiento de entrada.
func (uc *StockCatalogUseCase) RegisterProduct(ctx context.Context, in ProductInput) (*entity.Product, error) {
	switch {
	case in.JefeID == "":
		return nil, domain.Invalid("jefe_id", "requerido")
	case entity.NombreClave(in.Nombre) == "":
		return nil, domain.Invalid("nombre", "requerido")
	case in.Cantidad < 0:
		return nil, domain.Invalid("cantidad", "no puede ser negativa")
	case !domain.ValidMoney(in.PrecioCompra):
		return nil, domain.Invalid("precio_compra", "debe ser >= 0 con máximo dos decimales")
	case !domain.ValidMoney(in.PrecioVenta):
		return nil, domain.Invalid("precio_venta", "debe ser >= 0 con máximo dos decimales")
	}

	now := uc.deps.now()
	p := &entity.Product{
		ID:           uuid.New().String(),
		JefeID:       in.JefeID,
		Nombre:       in.Nombre,
		NombreClave:  entity.NombreClave(in.Nombre),
		Descripcion:  in.Descripcion,
		Modelo:       in.Modelo,
		Marca:        in.Marca,
		Cantidad:     in.Cantidad,
		PrecioCompra: in.PrecioCompra,
		PrecioVenta:  in.PrecioVenta,
		Ubicacion:    in.Ubicacion,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	ingreso := now
	if in.FechaIngreso != nil && !in.FechaIngreso.IsZero() {
		ingreso = in.FechaIngreso.UTC()
	}

	err := uc.deps.Tx.Run(ctx, func(s repository.Stores) error {
		if err := s.Products.Create(ctx, p); err != nil {
			return err
		}
		if in.Cantidad == 0 {
			return nil
		}
		target := ReplenishTarget{Almacen: in.Almacen, Lote: in.Lote}
		if _, err := replenishLot(ctx, s.Lots, p.ID, in.Cantidad, target, lotPrefixEntry, ingreso); err != nil {
			return err
		}
		return uc.deps.Recorder.Record(ctx, s.Movements, MovementInput{
			JefeID:      in.JefeID,
			Tipo:        entity.MovimientoEntrada,
			ProductoID:  p.ID,
			Cantidad:    in.Cantidad,
			Observacion: "Producto registrado con stock inicial",
			Referencia:  p.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.deps.Recorder.History(ctx, in.JefeID, "crear producto", fmt.Sprintf("Producto %s registrado", p.Nombre))
	return p, nil
}

// RegisterLot crea un lote y suma su cantidad al producto.
func (uc *StockCatalogUseCase) RegisterLot(ctx context.Context, in LotInput) (*entity.Lot, error) {
	switch {
	case in.JefeID == "":
		return nil, domain.Invalid("jefe_id", "requerido")
	case in.ProductoID == "":
		return nil, domain.Invalid("producto_id", "requerido")
	case in.Cantidad < 0:
		return nil, domain.Invalid("cantidad", "no puede ser negativa")
	}

	lot := &entity.Lot{
		ID:           uuid.New().String(),
		ProductoID:   in.ProductoID,
		Almacen:      in.Almacen,
		Lote:         in.Lote,
		Cantidad:     in.Cantidad,
		EnVenta:      in.EnVenta,
		FechaIngreso: uc.deps.now(),
	}
	if lot.Almacen == "" {
		lot.Almacen = entity.AlmacenPrincipal
	}
	if in.FechaIngreso != nil && !in.FechaIngreso.IsZero() {
		lot.FechaIngreso = in.FechaIngreso.UTC()
	}

	err := uc.deps.Tx.Run(ctx, func(s repository.Stores) error {
		if _, err := lockProduct(ctx, s.Products, in.JefeID, in.ProductoID); err != nil {
			return err
		}
		if err := s.Lots.Create(ctx, lot); err != nil {
			return err
		}
		if lot.Cantidad == 0 {
			return nil
		}
		if err := s.Products.IncrementQuantity(ctx, in.ProductoID, lot.Cantidad); err != nil {
			return err
		}
		return uc.deps.Recorder.Record(ctx, s.Movements, MovementInput{
			JefeID:      in.JefeID,
			Tipo:        entity.MovimientoEntrada,
			ProductoID:  in.ProductoID,
			Cantidad:    lot.Cantidad,
			Observacion: fmt.Sprintf("Alta de lote %s en %s", lot.Lote, lot.Almacen),
			Referencia:  lot.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.deps.Recorder.History(ctx, in.JefeID, "registrar inventario",
		fmt.Sprintf("Lote registrado para producto %s, cantidad %d", in.ProductoID, lot.Cantidad))
	return lot, nil
}

// DeleteProduct elimina el producto y todo lo que lo referencia en una sola transacción.
func (uc *StockCatalogUseCase) DeleteProduct(ctx context.Context, jefeID, id string) error {
	if jefeID == "" {
		return domain.Invalid("jefe_id", "requerido")
	}
	err := uc.deps.Tx.Run(ctx, func(s repository.Stores) error {
		if _, err := lockProduct(ctx, s.Products, jefeID, id); err != nil {
			return err
		}
		deleted, err := s.Products.DeleteCascade(ctx, jefeID, id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.deps.Recorder.History(ctx, jefeID, "eliminar producto", fmt.Sprintf("Producto %s eliminado", id))
	return nil
}
