package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/inventory"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// SaleLineInput línea pedida. Precio nil toma el precio de venta del producto.
type SaleLineInput struct {
	ProductoID string
	Cantidad   int
	Precio     *decimal.Decimal
}

// SaleInput datos para registrar una venta.
type SaleInput struct {
	JefeID    string
	ClienteID string
	Lineas    []SaleLineInput
}

// SaleResult venta registrada.
type SaleResult struct {
	VentaID string
	Total   decimal.Decimal
}

// SaleUseCase registra ventas: cabecera, detalle, descuento de agregado y lotes, y movimientos,
// todo en una sola transacción.
type SaleUseCase struct {
	deps Deps
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(d Deps) *SaleUseCase {
	return &SaleUseCase{deps: d}
}

func (in SaleInput) validate() error {
	if in.JefeID == "" {
		return domain.Invalid("jefe_id", "requerido")
	}
	if in.ClienteID == "" {
		return domain.Invalid("cliente_id", "requerido")
	}
	if len(in.Lineas) == 0 {
		return domain.Invalid("productos", "la venta debe tener al menos un producto")
	}
	for i, l := range in.Lineas {
		if l.ProductoID == "" {
			return domain.Invalid(fmt.Sprintf("productos[%d].id", i), "requerido")
		}
		if l.Cantidad <= 0 {
			return domain.Invalid(fmt.Sprintf("productos[%d].cantidad", i), "debe ser mayor que cero")
		}
		if l.Precio != nil && !domain.ValidMoney(*l.Precio) {
			return domain.Invalid(fmt.Sprintf("productos[%d].precio", i), "debe ser >= 0 con máximo dos decimales")
		}
	}
	return nil
}

// Register valida la venta y la aplica de forma atómica: o se registran todas las líneas o ninguna.
func (uc *SaleUseCase) Register(ctx context.Context, in SaleInput) (*SaleResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	client, err := uc.deps.Clients.GetByID(ctx, in.JefeID, in.ClienteID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("cliente %s: %w", in.ClienteID, domain.ErrNotFound)
	}

	requested := make(map[string]int, len(in.Lineas))
	for _, l := range in.Lineas {
		requested[l.ProductoID] += l.Cantidad
	}

	// Verificación previa sin bloqueo para rechazar rápido; la definitiva se hace con filas bloqueadas.
	lines := make([]entity.SaleLine, len(in.Lineas))
	total := decimal.Zero
	for i, l := range in.Lineas {
		p, err := uc.deps.Products.GetByID(ctx, in.JefeID, l.ProductoID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("producto %s: %w", l.ProductoID, domain.ErrNotFound)
		}
		if p.Cantidad < requested[p.ID] {
			return nil, &domain.StockError{ProductoID: p.ID, Solicitado: requested[p.ID], Disponible: p.Cantidad}
		}
		price := p.PrecioVenta
		if l.Precio != nil {
			price = *l.Precio
		}
		lines[i] = entity.SaleLine{
			ID:             uuid.New().String(),
			ProductoID:     p.ID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: price,
		}
		total = total.Add(lines[i].Subtotal())
	}

	ids := make([]string, 0, len(requested))
	for id := range requested {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	sale := &entity.Sale{
		ID:        uuid.New().String(),
		ClienteID: client.ID,
		Total:     total,
		JefeID:    in.JefeID,
		Fecha:     uc.deps.now(),
	}

	err = uc.deps.Tx.Run(ctx, func(s repository.Stores) error {
		// Orden fijo de bloqueo para que dos ventas con los mismos productos no se bloqueen mutuamente.
		locked := make(map[string]*entity.Product, len(ids))
		for _, id := range ids {
			p, err := lockProduct(ctx, s.Products, in.JefeID, id)
			if err != nil {
				return err
			}
			if p.Cantidad < requested[id] {
				return &domain.StockError{ProductoID: id, Solicitado: requested[id], Disponible: p.Cantidad}
			}
			locked[id] = p
		}

		if err := s.Sales.Create(ctx, sale); err != nil {
			return err
		}
		for i := range lines {
			line := &lines[i]
			line.VentaID = sale.ID
			if err := s.Sales.CreateLine(ctx, line); err != nil {
				return err
			}
			if err := decrementProduct(ctx, s.Products, locked[line.ProductoID], line.Cantidad); err != nil {
				return err
			}
			if _, err := consumeLots(ctx, s.Lots, line.ProductoID, line.Cantidad, true, inventory.SalePolicy); err != nil {
				return err
			}
			err := uc.deps.Recorder.Record(ctx, s.Movements, MovementInput{
				JefeID:      in.JefeID,
				Tipo:        entity.MovimientoVenta,
				ProductoID:  line.ProductoID,
				Cantidad:    line.Cantidad,
				Observacion: "Venta realizada",
				Referencia:  sale.ID,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.deps.Recorder.History(ctx, in.JefeID, "venta", fmt.Sprintf("Venta registrada ID %s por %s", sale.ID, total.StringFixed(2)))
	return &SaleResult{VentaID: sale.ID, Total: total}, nil
}
