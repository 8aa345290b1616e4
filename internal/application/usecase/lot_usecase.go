package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// LotUseCase consulta de lotes y habilitación para venta. Las cantidades de los lotes
// solo cambian dentro de las operaciones de inventario.
type LotUseCase struct {
	repo     repository.LotRepository
	recorder *inventory.Recorder
}

// NewLotUseCase construye el caso de uso.
func NewLotUseCase(repo repository.LotRepository, recorder *inventory.Recorder) *LotUseCase {
	return &LotUseCase{repo: repo, recorder: recorder}
}

// List lista los lotes de todos los productos del jefe.
func (uc *LotUseCase) List(ctx context.Context, jefeID string) ([]dto.LotResponse, error) {
	list, err := uc.repo.ListByJefe(ctx, jefeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LotResponse, 0, len(list))
	for _, l := range list {
		r := ToLotResponse(&l.Lot)
		r.Producto = l.Producto
		out = append(out, *r)
	}
	return out, nil
}

// SetForSale habilita o retira un lote de la venta.
func (uc *LotUseCase) SetForSale(ctx context.Context, jefeID, id string, enVenta bool) error {
	found, err := uc.repo.SetForSale(ctx, jefeID, id, enVenta)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("lote %s: %w", id, domain.ErrNotFound)
	}
	estado := "retirado de la venta"
	if enVenta {
		estado = "habilitado para venta"
	}
	uc.recorder.History(ctx, jefeID, "editar lote", fmt.Sprintf("Lote %s %s", id, estado))
	return nil
}

// ToLotResponse convierte la entidad a su salida HTTP.
func ToLotResponse(l *entity.Lot) *dto.LotResponse {
	return &dto.LotResponse{
		ID:           l.ID,
		ProductoID:   l.ProductoID,
		Almacen:      l.Almacen,
		Lote:         l.Lote,
		Cantidad:     l.Cantidad,
		EnVenta:      l.EnVenta,
		FechaIngreso: l.FechaIngreso,
	}
}
