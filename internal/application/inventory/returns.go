package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/inventory"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ReturnInput datos de una devolución nueva.
type ReturnInput struct {
	JefeID     string
	Tipo       string
	ProductoID string
	Cantidad   int
	Motivo     string
	LoteID     string // lote al que volverá el stock en devoluciones de venta
}

// SettleResult efecto de aplicar una devolución. CantidadModificada lleva signo.
type SettleResult struct {
	ProductoID         string
	CantidadModificada int
	LoteID             string
}

// ReturnUseCase gestiona devoluciones: alta en pendiente y aplicación única sobre el stock.
type ReturnUseCase struct {
	deps Deps
}

// NewReturnUseCase construye el caso de uso.
func NewReturnUseCase(d Deps) *ReturnUseCase {
	return &ReturnUseCase{deps: d}
}

// Create registra la devolución en estado pendiente; no toca el stock.
func (uc *ReturnUseCase) Create(ctx context.Context, in ReturnInput) (*entity.Return, error) {
	if in.JefeID == "" {
		return nil, domain.Invalid("jefe_id", "requerido")
	}
	if in.ProductoID == "" {
		return nil, domain.Invalid("producto_id", "requerido")
	}
	if in.Cantidad <= 0 {
		return nil, domain.Invalid("cantidad", "debe ser mayor que cero")
	}
	ret := &entity.Return{
		ID:         uuid.New().String(),
		Tipo:       in.Tipo,
		ProductoID: in.ProductoID,
		Cantidad:   in.Cantidad,
		Motivo:     in.Motivo,
		Estado:     entity.DevolucionPendiente,
		LoteID:     in.LoteID,
		JefeID:     in.JefeID,
		Fecha:      uc.deps.now(),
	}
	if _, ok := ret.Delta(); !ok {
		return nil, domain.Invalid("tipo", "debe ser venta o compra")
	}
	p, err := uc.deps.Products.GetByID(ctx, in.JefeID, in.ProductoID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("producto %s: %w", in.ProductoID, domain.ErrNotFound)
	}
	if err := uc.deps.Returns.Create(ctx, ret); err != nil {
		return nil, err
	}

	uc.deps.Recorder.History(ctx, in.JefeID, "crear devolucion",
		fmt.Sprintf("Devolución de %s: %d unidades del producto %s", ret.Tipo, ret.Cantidad, ret.ProductoID))
	return ret, nil
}

// Settle aplica la devolución al stock una sola vez. Una devolución ya aplicada devuelve ErrReturnSettled.
// Las de venta reponen el lote destino; las de compra consumen lotes como una salida.
func (uc *ReturnUseCase) Settle(ctx context.Context, jefeID, id string, target ReplenishTarget) (*SettleResult, error) {
	if jefeID == "" {
		return nil, domain.Invalid("jefe_id", "requerido")
	}
	ret, err := uc.deps.Returns.GetByID(ctx, jefeID, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, fmt.Errorf("devolución %s: %w", id, domain.ErrNotFound)
	}
	delta, ok := ret.Delta()
	if !ok {
		return nil, domain.Invalid("tipo", "tipo de devolución no reconocido")
	}
	if ret.Estado == entity.DevolucionAplicada {
		return nil, domain.ErrReturnSettled
	}
	if target.LoteID == "" {
		target.LoteID = ret.LoteID
	}

	res := &SettleResult{ProductoID: ret.ProductoID, CantidadModificada: delta}
	err = uc.deps.Tx.Run(ctx, func(s repository.Stores) error {
		locked, err := s.Returns.GetForUpdate(ctx, jefeID, id)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("devolución %s: %w", id, domain.ErrNotFound)
		}
		if locked.Estado != entity.DevolucionPendiente {
			return domain.ErrReturnSettled
		}
		p, err := lockProduct(ctx, s.Products, jefeID, locked.ProductoID)
		if err != nil {
			return err
		}

		if delta > 0 {
			loteID, err := replenishLot(ctx, s.Lots, p.ID, delta, target, lotPrefixReturn, uc.deps.now())
			if err != nil {
				return err
			}
			res.LoteID = loteID
			if err := s.Products.IncrementQuantity(ctx, p.ID, delta); err != nil {
				return err
			}
		} else {
			if err := decrementProduct(ctx, s.Products, p, -delta); err != nil {
				return err
			}
			if _, err := consumeLots(ctx, s.Lots, p.ID, -delta, false, inventory.PurchaseReturnPolicy); err != nil {
				return err
			}
		}

		settled, err := s.Returns.MarkSettled(ctx, locked.ID, res.LoteID, uc.deps.now())
		if err != nil {
			return err
		}
		if !settled {
			return domain.ErrReturnSettled
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.deps.Recorder.History(ctx, jefeID, "aplicar devolucion",
		fmt.Sprintf("Devolución %s aplicada: producto %s, cantidad %+d", id, res.ProductoID, delta))
	return res, nil
}
