package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// Límites de los listados de bitácora.
const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// LedgerUseCase consultas de los documentos de inventario (ventas, entradas, salidas,
// devoluciones) y de la bitácora de movimientos e historial.
type LedgerUseCase struct {
	sales     repository.SaleRepository
	entries   repository.EntryRepository
	exits     repository.ExitRepository
	returns   repository.ReturnRepository
	movements repository.MovementRepository
	history   repository.HistoryRepository
}

// NewLedgerUseCase construye el caso de uso sobre los repositorios del catálogo.
func NewLedgerUseCase(cat repository.Catalog) *LedgerUseCase {
	return &LedgerUseCase{
		sales:     cat.Sales,
		entries:   cat.Entries,
		exits:     cat.Exits,
		returns:   cat.Returns,
		movements: cat.Movements,
		history:   cat.History,
	}
}

// Sale devuelve la venta con cliente y líneas.
func (uc *LedgerUseCase) Sale(ctx context.Context, jefeID, id string) (*dto.SaleDetailResponse, error) {
	s, err := uc.sales.GetDetail(ctx, jefeID, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("venta %s: %w", id, domain.ErrNotFound)
	}
	out := &dto.SaleDetailResponse{
		ID:        s.ID,
		ClienteID: s.ClienteID,
		Cliente:   s.Cliente,
		Total:     s.Total,
		Fecha:     s.Fecha,
		Lineas:    make([]dto.SaleLineResponse, 0, len(s.Lineas)),
	}
	for _, l := range s.Lineas {
		out.Lineas = append(out.Lineas, dto.SaleLineResponse{
			ProductoID:     l.ProductoID,
			Producto:       l.Producto,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Subtotal:       l.Subtotal(),
		})
	}
	return out, nil
}

// Entry devuelve una entrada del jefe.
func (uc *LedgerUseCase) Entry(ctx context.Context, jefeID, id string) (*dto.EntryDetailResponse, error) {
	e, err := uc.entries.GetByID(ctx, jefeID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("entrada %s: %w", id, domain.ErrNotFound)
	}
	return &dto.EntryDetailResponse{
		ID:           e.ID,
		ProductoID:   e.ProductoID,
		LoteID:       e.LoteID,
		Cantidad:     e.Cantidad,
		PrecioCompra: e.PrecioCompra,
		ProveedorID:  e.ProveedorID,
		Fecha:        e.Fecha,
	}, nil
}

// Exit devuelve una salida del jefe.
func (uc *LedgerUseCase) Exit(ctx context.Context, jefeID, id string) (*dto.ExitDetailResponse, error) {
	e, err := uc.exits.GetByID(ctx, jefeID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("salida %s: %w", id, domain.ErrNotFound)
	}
	return &dto.ExitDetailResponse{
		ID:          e.ID,
		ProductoID:  e.ProductoID,
		Cantidad:    e.Cantidad,
		Observacion: e.Observacion,
		Fecha:       e.Fecha,
	}, nil
}

// Returns lista devoluciones; estado vacío no filtra.
func (uc *LedgerUseCase) Returns(ctx context.Context, jefeID, estado string) ([]dto.ReturnResponse, error) {
	switch estado {
	case "", entity.DevolucionPendiente, entity.DevolucionAplicada:
	default:
		return nil, domain.Invalid("estado", "debe ser pendiente o aplicada")
	}
	list, err := uc.returns.ListByJefe(ctx, jefeID, estado)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReturnResponse, 0, len(list))
	for _, r := range list {
		out = append(out, ToReturnResponse(r))
	}
	return out, nil
}

// ToReturnResponse convierte la entidad a su salida HTTP.
func ToReturnResponse(r *entity.Return) dto.ReturnResponse {
	return dto.ReturnResponse{
		ID:         r.ID,
		Tipo:       r.Tipo,
		ProductoID: r.ProductoID,
		Cantidad:   r.Cantidad,
		Motivo:     r.Motivo,
		Estado:     r.Estado,
		LoteID:     r.LoteID,
		Fecha:      r.Fecha,
		AplicadaEn: r.AplicadaEn,
	}
}

// Movements lista la bitácora con filtros opcionales de tipo y producto.
func (uc *LedgerUseCase) Movements(ctx context.Context, f repository.MovementFilter) ([]dto.MovementResponse, error) {
	if f.Tipo != "" && !entity.ValidMovementType(f.Tipo) {
		return nil, domain.Invalid("tipo", "debe ser entrada, venta o salida")
	}
	f.Limit = clampLimit(f.Limit)
	list, err := uc.movements.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:          m.ID,
			Tipo:        m.Tipo,
			ProductoID:  m.ProductoID,
			Producto:    m.Producto,
			Cantidad:    m.Cantidad,
			Observacion: m.Observacion,
			Referencia:  m.Referencia,
			Fecha:       m.Fecha,
		})
	}
	return out, nil
}

// History lista el historial del jefe, más reciente primero.
func (uc *LedgerUseCase) History(ctx context.Context, jefeID string, limit int) ([]dto.HistoryResponse, error) {
	list, err := uc.history.ListByJefe(ctx, jefeID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, dto.HistoryResponse{ID: h.ID, Accion: h.Accion, Descripcion: h.Descripcion, Fecha: h.Fecha})
	}
	return out, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}
