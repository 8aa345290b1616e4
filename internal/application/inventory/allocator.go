package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/inventory"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// Prefijos de la etiqueta de lote generada al reponer sin lote indicado.
const (
	lotPrefixEntry      = "ENT-"
	lotPrefixReturn     = "DEV-"
	lotPrefixAdjustment = "AJU-"
)

// ReplenishTarget lote destino de una reposición. Con LoteID se suma a ese lote (debe ser del producto);
// sin él se crea un lote nuevo con Almacen y Lote, o valores por defecto.
type ReplenishTarget struct {
	LoteID  string
	Almacen string
	Lote    string
}

// consumeLots bloquea los lotes del producto, planifica el consumo según la política y
// descuenta cada lote con un update condicional.
func consumeLots(
	ctx context.Context,
	lots repository.LotRepository,
	productoID string,
	qty int,
	onlyForSale bool,
	policy inventory.Policy,
) ([]inventory.Allocation, error) {
	locked, err := lots.ListByProductForUpdate(ctx, productoID, onlyForSale)
	if err != nil {
		return nil, err
	}
	plan, err := inventory.PlanConsumption(locked, qty, policy)
	if err != nil {
		var se *domain.StockError
		if errors.As(err, &se) {
			se.ProductoID = productoID
		}
		return nil, err
	}
	for _, a := range plan {
		ok, err := lots.Decrement(ctx, a.LotID, a.Delta)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("lote %s: %w", a.LotID, domain.ErrInsufficientStock)
		}
	}
	return plan, nil
}

// replenishLot suma qty al lote destino y devuelve su id.
func replenishLot(
	ctx context.Context,
	lots repository.LotRepository,
	productoID string,
	qty int,
	target ReplenishTarget,
	prefix string,
	at time.Time,
) (string, error) {
	if target.LoteID != "" {
		lot, err := lots.GetForUpdate(ctx, target.LoteID)
		if err != nil {
			return "", err
		}
		if lot == nil || lot.ProductoID != productoID {
			return "", fmt.Errorf("lote %s: %w", target.LoteID, domain.ErrNotFound)
		}
		if err := lots.Increment(ctx, lot.ID, qty); err != nil {
			return "", err
		}
		return lot.ID, nil
	}

	lot := &entity.Lot{
		ID:           uuid.New().String(),
		ProductoID:   productoID,
		Almacen:      target.Almacen,
		Lote:         target.Lote,
		Cantidad:     qty,
		EnVenta:      true,
		FechaIngreso: at,
	}
	if lot.Almacen == "" {
		lot.Almacen = entity.AlmacenPrincipal
	}
	if lot.Lote == "" {
		lot.Lote = prefix + at.Format("20060102")
	}
	if err := lots.Create(ctx, lot); err != nil {
		return "", err
	}
	return lot.ID, nil
}

// lockProduct bloquea el producto del jefe; NotFound si no existe o es de otro jefe.
func lockProduct(ctx context.Context, products repository.ProductRepository, jefeID, id string) (*entity.Product, error) {
	p, err := products.GetForUpdate(ctx, jefeID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// decrementProduct resta n del agregado del producto o falla con StockError.
func decrementProduct(ctx context.Context, products repository.ProductRepository, p *entity.Product, n int) error {
	ok, err := products.DecrementQuantity(ctx, p.ID, n)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.StockError{ProductoID: p.ID, Solicitado: n, Disponible: p.Cantidad}
	}
	return nil
}
