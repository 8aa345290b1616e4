package inventory

import (
	"sort"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// Policy orden en que se consumen los lotes de un producto.
type Policy int

const (
	// PolicyOldestFirst consume primero el lote con fecha de ingreso más antigua.
	PolicyOldestFirst Policy = iota
	// PolicyLargestFirst consume primero el lote con más existencias.
	PolicyLargestFirst
)

// Política de consumo de cada operación.
const (
	SalePolicy           = PolicyOldestFirst
	ExitPolicy           = PolicyLargestFirst
	PurchaseReturnPolicy = PolicyLargestFirst
	AdjustmentPolicy     = PolicyLargestFirst
)

func (p Policy) String() string {
	switch p {
	case PolicyOldestFirst:
		return "oldest_first"
	case PolicyLargestFirst:
		return "largest_first"
	}
	return "unknown"
}

// Allocation cantidad a descontar de un lote.
type Allocation struct {
	LotID string
	Delta int
}

// PlanConsumption reparte qty entre los lotes según la política. No modifica los lotes recibidos.
// Si la suma disponible no alcanza devuelve *domain.StockError y ningún plan; con éxito la suma de
// los Delta es exactamente qty.
func PlanConsumption(lots []entity.Lot, qty int, policy Policy) ([]Allocation, error) {
	if qty <= 0 {
		return nil, domain.Invalid("cantidad", "debe ser mayor que cero")
	}

	candidates := make([]entity.Lot, 0, len(lots))
	available := 0
	for _, l := range lots {
		if l.Cantidad > 0 {
			candidates = append(candidates, l)
			available += l.Cantidad
		}
	}
	if available < qty {
		productoID := ""
		if len(lots) > 0 {
			productoID = lots[0].ProductoID
		}
		return nil, &domain.StockError{ProductoID: productoID, Solicitado: qty, Disponible: available}
	}

	sortLots(candidates, policy)

	plan := make([]Allocation, 0, len(candidates))
	remaining := qty
	for _, l := range candidates {
		if remaining == 0 {
			break
		}
		take := min(remaining, l.Cantidad)
		plan = append(plan, Allocation{LotID: l.ID, Delta: take})
		remaining -= take
	}
	return plan, nil
}

func sortLots(lots []entity.Lot, policy Policy) {
	sort.SliceStable(lots, func(i, j int) bool {
		a, b := lots[i], lots[j]
		if policy == PolicyLargestFirst && a.Cantidad != b.Cantidad {
			return a.Cantidad > b.Cantidad
		}
		if !a.FechaIngreso.Equal(b.FechaIngreso) {
			return a.FechaIngreso.Before(b.FechaIngreso)
		}
		return a.ID < b.ID
	})
}
