package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	jefeID      = "jefe-1"
	otroJefeID  = "jefe-2"
	clienteID   = "cliente-1"
	proveedorID = "proveedor-1"
)

var fixedNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	ctx   context.Context
	store *memory.Store
	cat   repository.Catalog
	deps  inventory.Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.New()
	cat := s.Catalog()
	f := &fixture{
		ctx:   context.Background(),
		store: s,
		cat:   cat,
		deps: inventory.Deps{
			Tx:        s,
			Products:  cat.Products,
			Clients:   cat.Clients,
			Suppliers: cat.Suppliers,
			Returns:   cat.Returns,
			Recorder:  inventory.NewRecorder(cat.History, zerolog.Nop()),
			Now:       func() time.Time { return fixedNow },
		},
	}
	require.NoError(t, cat.Clients.Create(f.ctx, &entity.Client{ID: clienteID, JefeID: jefeID, Nombre: "Ana"}))
	require.NoError(t, cat.Clients.Create(f.ctx, &entity.Client{ID: "cliente-otro", JefeID: otroJefeID, Nombre: "Luis"}))
	require.NoError(t, cat.Suppliers.Create(f.ctx, &entity.Supplier{ID: proveedorID, JefeID: jefeID, Nombre: "Distribuidora"}))
	return f
}

// product crea un producto del jefe cuya cantidad es la suma de los lotes dados.
func (f *fixture) product(t *testing.T, id string, precioVenta string, lots ...entity.Lot) {
	t.Helper()
	total := 0
	for _, l := range lots {
		total += l.Cantidad
	}
	require.NoError(t, f.cat.Products.Create(f.ctx, &entity.Product{
		ID:          id,
		JefeID:      jefeID,
		Nombre:      "Producto " + id,
		NombreClave: entity.NombreClave("Producto " + id),
		Cantidad:    total,
		PrecioVenta: decimal.RequireFromString(precioVenta),
	}))
	for i := range lots {
		lots[i].ProductoID = id
		require.NoError(t, f.cat.Lots.Create(f.ctx, &lots[i]))
	}
}

func (f *fixture) quantity(t *testing.T, productoID string) int {
	t.Helper()
	p, err := f.cat.Products.GetByID(f.ctx, jefeID, productoID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Cantidad
}

func (f *fixture) lotQuantity(t *testing.T, loteID string) int {
	t.Helper()
	l, err := f.cat.Lots.GetForUpdate(f.ctx, loteID)
	require.NoError(t, err)
	require.NotNil(t, l)
	return l.Cantidad
}

// assertConsistent verifica que el agregado sea la suma de los lotes y que ningún lote sea negativo.
func (f *fixture) assertConsistent(t *testing.T, productoID string) {
	t.Helper()
	lots, err := f.cat.Lots.ListByProductForUpdate(f.ctx, productoID, false)
	require.NoError(t, err)
	sum := 0
	for _, l := range lots {
		assert.GreaterOrEqual(t, l.Cantidad, 0, "lote %s negativo", l.ID)
		sum += l.Cantidad
	}
	assert.Equal(t, sum, f.quantity(t, productoID), "agregado distinto de la suma de lotes")
}

func (f *fixture) movements(t *testing.T, tipo string) []entity.MovementView {
	t.Helper()
	ms, err := f.cat.Movements.List(f.ctx, repository.MovementFilter{JefeID: jefeID, Tipo: tipo})
	require.NoError(t, err)
	return ms
}

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func lot(id string, cantidad int, fecha time.Time) entity.Lot {
	return entity.Lot{ID: id, Almacen: entity.AlmacenPrincipal, Cantidad: cantidad, EnVenta: true, FechaIngreso: fecha}
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
