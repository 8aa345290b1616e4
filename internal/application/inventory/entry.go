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

// EntryInput entrada de mercancía para un producto existente.
type EntryInput struct {
	JefeID       string
	ProductoID   string
	ProveedorID  string
	Cantidad     int
	PrecioCompra decimal.Decimal
	Target       ReplenishTarget
}

// NewProductEntryInput entrada que crea el producto si aún no existe (por nombre normalizado).
type NewProductEntryInput struct {
	JefeID       string
	Nombre       string
	Descripcion  string
	Modelo       string
	Marca        string
	Ubicacion    string
	PrecioVenta  decimal.Decimal
	Cantidad     int
	PrecioCompra decimal.Decimal
	ProveedorID  string
	Fecha        *time.Time
	Almacen      string
	Lote         string
}

// EntryResult entrada registrada. Nuevo indica que el producto se creó en esta operación.
type EntryResult struct {
	EntradaID  string
	ProductoID string
	LoteID     string
	Nuevo      bool
}

// EntryUseCase registra entradas de mercancía.
type EntryUseCase struct {
	deps Deps
}

// NewEntryUseCase construye el caso de uso.
func NewEntryUseCase(d Deps) *EntryUseCase {
	return &EntryUseCase{deps: d}
}

func (in EntryInput) validate() error {
	switch {
	case in.JefeID == "":
		return domain.Invalid("jefe_id", "requerido")
	case in.ProductoID == "":
		return domain.Invalid("producto_id", "requerido")
	case in.ProveedorID == "":
		return domain.Invalid("proveedor_id", "requerido")
	case in.Cantidad <= 0:
		return domain.Invalid("cantidad", "debe ser mayor que cero")
	case !domain.ValidMoney(in.PrecioCompra):
		return domain.Invalid("precio_compra", "debe ser >= 0 con máximo dos decimales")
	}
	return nil
}

func (uc *EntryUseCase) checkSupplier(ctx context.Context, jefeID, id string) error {
	sup, err := uc.deps.Suppliers.GetByID(ctx, jefeID, id)
	if err != nil {
		return err
	}
	if sup == nil {
		return fmt.Errorf("proveedor %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Register suma la entrada al producto, al lote destino y deja el precio de compra de la entrada.
func (uc *EntryUseCase) Register(ctx context.Context, in EntryInput) (*EntryResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p, err := uc.deps.Products.GetByID(ctx, in.JefeID, in.ProductoID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("producto %s: %w", in.ProductoID, domain.ErrNotFound)
	}
	if err := uc.checkSupplier(ctx, in.JefeID, in.ProveedorID); err != nil {
		return nil, err
	}

	now := uc.deps.now()
	entry := &entity.Entry{
		ID:           uuid.New().String(),
		ProductoID:   p.ID,
		Cantidad:     in.Cantidad,
		PrecioCompra: in.PrecioCompra,
		ProveedorID:  in.ProveedorID,
		JefeID:       in.JefeID,
		Fecha:        now,
	}

	err = uc.deps.Tx.Run(ctx, func(s repository.Stores) error {
		if _, err := lockProduct(ctx, s.Products, in.JefeID, p.ID); err != nil {
			return err
		}
		loteID, err := replenishLot(ctx, s.Lots, p.ID, in.Cantidad, in.Target, lotPrefixEntry, now)
		if err != nil {
			return err
		}
		entry.LoteID = loteID
		if err := s.Entries.Create(ctx, entry); err != nil {
			return err
		}
		if err := s.Products.IncrementQuantity(ctx, p.ID, in.Cantidad); err != nil {
			return err
		}
		if err := s.Products.SetPurchasePrice(ctx, p.ID, in.PrecioCompra); err != nil {
			return err
		}
		return uc.deps.Recorder.Record(ctx, s.Movements, MovementInput{
			JefeID:      in.JefeID,
			Tipo:        entity.MovimientoEntrada,
			ProductoID:  p.ID,
			Cantidad:    in.Cantidad,
			Observacion: fmt.Sprintf("Entrada por proveedor ID %s", in.ProveedorID),
			Referencia:  entry.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.deps.Recorder.History(ctx, in.JefeID, "entrada", fmt.Sprintf("Entrada registrada para producto %s", p.ID))
	return &EntryResult{EntradaID: entry.ID, ProductoID: p.ID, LoteID: entry.LoteID}, nil
}

func (in NewProductEntryInput) validate() error {
	switch {
	case in.JefeID == "":
		return domain.Invalid("jefe_id", "requerido")
	case entity.NombreClave(in.Nombre) == "":
		return domain.Invalid("nombre", "requerido")
	case in.Cantidad <= 0:
		return domain.Invalid("cantidad", "debe ser mayor que cero")
	case !domain.ValidMoney(in.PrecioCompra):
		return domain.Invalid("precio_compra", "debe ser >= 0 con máximo dos decimales")
	case !domain.ValidMoney(in.PrecioVenta):
		return domain.Invalid("precio_venta", "debe ser >= 0 con máximo dos decimales")
	}
	return nil
}

// RegisterWithProduct busca el producto por nombre normalizado dentro de la transacción y lo crea
// si no existe. El agregado se escribe una sola vez: al crear con la cantidad de la entrada o al sumar.
func (uc *EntryUseCase) RegisterWithProduct(ctx context.Context, in NewProductEntryInput) (*EntryResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.ProveedorID != "" {
		if err := uc.checkSupplier(ctx, in.JefeID, in.ProveedorID); err != nil {
			return nil, err
		}
	}

	now := uc.deps.now()
	fecha := now
	if in.Fecha != nil && !in.Fecha.IsZero() {
		fecha = in.Fecha.UTC()
	}
	candidate := &entity.Product{
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
	res := &EntryResult{EntradaID: uuid.New().String()}

	err := uc.deps.Tx.Run(ctx, func(s repository.Stores) error {
		created, err := s.Products.CreateIfAbsent(ctx, candidate)
		if err != nil {
			return err
		}
		productoID := candidate.ID
		if !created {
			existing, err := s.Products.GetByNombreClaveForUpdate(ctx, in.JefeID, candidate.NombreClave)
			if err != nil {
				return err
			}
			if existing == nil {
				return fmt.Errorf("producto %q: %w", in.Nombre, domain.ErrConflict)
			}
			productoID = existing.ID
			if err := s.Products.IncrementQuantity(ctx, productoID, in.Cantidad); err != nil {
				return err
			}
		}
		res.ProductoID = productoID
		res.Nuevo = created

		target := ReplenishTarget{Almacen: in.Almacen, Lote: in.Lote}
		loteID, err := replenishLot(ctx, s.Lots, productoID, in.Cantidad, target, lotPrefixEntry, fecha)
		if err != nil {
			return err
		}
		res.LoteID = loteID

		entry := &entity.Entry{
			ID:           res.EntradaID,
			ProductoID:   productoID,
			LoteID:       loteID,
			Cantidad:     in.Cantidad,
			PrecioCompra: in.PrecioCompra,
			ProveedorID:  in.ProveedorID,
			JefeID:       in.JefeID,
			Fecha:        fecha,
		}
		if err := s.Entries.Create(ctx, entry); err != nil {
			return err
		}
		obs := "Entrada registrada"
		if created {
			obs = "Entrada al registrar nuevo producto"
		}
		return uc.deps.Recorder.Record(ctx, s.Movements, MovementInput{
			JefeID:      in.JefeID,
			Tipo:        entity.MovimientoEntrada,
			ProductoID:  productoID,
			Cantidad:    in.Cantidad,
			Observacion: obs,
			Referencia:  entry.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.deps.Recorder.History(ctx, in.JefeID, "crear entrada",
		fmt.Sprintf("Entrada registrada para producto %s, cantidad %d", res.ProductoID, in.Cantidad))
	return res, nil
}
