package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/inventory"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// AdjustInput fija la cantidad de un producto.
type AdjustInput struct {
	JefeID     string
	ProductoID string
	Cantidad   int
	Target     ReplenishTarget
}

// AdjustUseCase edición directa de la cantidad de un producto, reflejada también en sus lotes.
type AdjustUseCase struct {
	deps Deps
}

// NewAdjustUseCase construye el caso de uso.
func NewAdjustUseCase(d Deps) *AdjustUseCase {
	return &AdjustUseCase{deps: d}
}

// SetQuantity deja el agregado en in.Cantidad. La diferencia se repone en el lote destino
// o se consume de los lotes con más existencias; si los lotes no la cubren no se aplica nada.
func (uc *AdjustUseCase) SetQuantity(ctx context.Context, in AdjustInput) error {
	switch {
	case in.JefeID == "":
		return domain.Invalid("jefe_id", "requerido")
	case in.ProductoID == "":
		return domain.Invalid("producto_id", "requerido")
	case in.Cantidad < 0:
		return domain.Invalid("cantidad", "no puede ser negativa")
	}

	err := uc.deps.Tx.Run(ctx, func(s repository.Stores) error {
		p, err := lockProduct(ctx, s.Products, in.JefeID, in.ProductoID)
		if err != nil {
			return err
		}
		delta := in.Cantidad - p.Cantidad
		switch {
		case delta > 0:
			if _, err := replenishLot(ctx, s.Lots, p.ID, delta, in.Target, lotPrefixAdjustment, uc.deps.now()); err != nil {
				return err
			}
		case delta < 0:
			if _, err := consumeLots(ctx, s.Lots, p.ID, -delta, false, inventory.AdjustmentPolicy); err != nil {
				return err
			}
		default:
			return nil
		}
		return s.Products.SetQuantity(ctx, p.ID, in.Cantidad)
	})
	if err != nil {
		return err
	}

	uc.deps.Recorder.History(ctx, in.JefeID, "editar producto",
		fmt.Sprintf("Cantidad del producto ID %s actualizada a %d", in.ProductoID, in.Cantidad))
	return nil
}
