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

// ExitInput salida de mercancía no ligada a una venta.
type ExitInput struct {
	JefeID      string
	ProductoID  string
	Cantidad    int
	Observacion string
}

// ExitUseCase registra salidas de mercancía.
type ExitUseCase struct {
	deps Deps
}

// NewExitUseCase construye el caso de uso.
func NewExitUseCase(d Deps) *ExitUseCase {
	return &ExitUseCase{deps: d}
}

// Register descuenta la salida del agregado y de los lotes (primero los de más existencias).
func (uc *ExitUseCase) Register(ctx context.Context, in ExitInput) (string, error) {
	switch {
	case in.JefeID == "":
		return "", domain.Invalid("jefe_id", "requerido")
	case in.ProductoID == "":
		return "", domain.Invalid("producto_id", "requerido")
	case in.Cantidad <= 0:
		return "", domain.Invalid("cantidad", "debe ser mayor que cero")
	}
	p, err := uc.deps.Products.GetByID(ctx, in.JefeID, in.ProductoID)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", fmt.Errorf("producto %s: %w", in.ProductoID, domain.ErrNotFound)
	}
	if p.Cantidad < in.Cantidad {
		return "", &domain.StockError{ProductoID: p.ID, Solicitado: in.Cantidad, Disponible: p.Cantidad}
	}

	exit := &entity.Exit{
		ID:          uuid.New().String(),
		ProductoID:  p.ID,
		Cantidad:    in.Cantidad,
		Observacion: in.Observacion,
		JefeID:      in.JefeID,
		Fecha:       uc.deps.now(),
	}
	err = uc.deps.Tx.Run(ctx, func(s repository.Stores) error {
		locked, err := lockProduct(ctx, s.Products, in.JefeID, p.ID)
		if err != nil {
			return err
		}
		if err := s.Exits.Create(ctx, exit); err != nil {
			return err
		}
		if err := decrementProduct(ctx, s.Products, locked, in.Cantidad); err != nil {
			return err
		}
		if _, err := consumeLots(ctx, s.Lots, p.ID, in.Cantidad, false, inventory.ExitPolicy); err != nil {
			return err
		}
		return uc.deps.Recorder.Record(ctx, s.Movements, MovementInput{
			JefeID:      in.JefeID,
			Tipo:        entity.MovimientoSalida,
			ProductoID:  p.ID,
			Cantidad:    in.Cantidad,
			Observacion: in.Observacion,
			Referencia:  exit.ID,
		})
	})
	if err != nil {
		return "", err
	}

	uc.deps.Recorder.History(ctx, in.JefeID, "salida",
		fmt.Sprintf("Salida de %d unidades del producto %s", in.Cantidad, p.ID))
	return exit.ID, nil
}
