package inventory_test

import (
	"testing"

	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_RegisterCreaLoteYActualizaPrecio(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "5.00", lot("l1", 2, day(1, 1)))
	uc := inventory.NewEntryUseCase(f.deps)

	res, err := uc.Register(f.ctx, inventory.EntryInput{
		JefeID:       jefeID,
		ProductoID:   "p1",
		ProveedorID:  proveedorID,
		Cantidad:     8,
		PrecioCompra: decimal.RequireFromString("3.20"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.EntradaID)

	assert.Equal(t, 10, f.quantity(t, "p1"))
	assert.Equal(t, 8, f.lotQuantity(t, res.LoteID))
	f.assertConsistent(t, "p1")

	p, _ := f.cat.Products.GetByID(f.ctx, jefeID, "p1")
	assert.Equal(t, "3.20", p.PrecioCompra.StringFixed(2))

	newLot, _ := f.cat.Lots.GetForUpdate(f.ctx, res.LoteID)
	assert.Equal(t, "ENT-20240601", newLot.Lote)
	assert.Equal(t, entity.AlmacenPrincipal, newLot.Almacen)

	entry, err := f.cat.Entries.GetByID(f.ctx, jefeID, res.EntradaID)
	require.NoError(t, err)
	assert.Equal(t, res.LoteID, entry.LoteID)

	ms := f.movements(t, entity.MovimientoEntrada)
	require.Len(t, ms, 1)
	assert.Equal(t, res.EntradaID, ms[0].Referencia)
}

func TestEntry_RegisterEnLoteIndicado(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "5.00", lot("l1", 2, day(1, 1)))
	f.product(t, "p2", "5.00", lot("l2", 2, day(1, 1)))
	uc := inventory.NewEntryUseCase(f.deps)

	res, err := uc.Register(f.ctx, inventory.EntryInput{
		JefeID: jefeID, ProductoID: "p1", ProveedorID: proveedorID, Cantidad: 3,
		PrecioCompra: decimal.RequireFromString("1"), Target: inventory.ReplenishTarget{LoteID: "l1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "l1", res.LoteID)
	assert.Equal(t, 5, f.lotQuantity(t, "l1"))

	// lote de otro producto
	_, err = uc.Register(f.ctx, inventory.EntryInput{
		JefeID: jefeID, ProductoID: "p1", ProveedorID: proveedorID, Cantidad: 3,
		PrecioCompra: decimal.RequireFromString("1"), Target: inventory.ReplenishTarget{LoteID: "l2"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 5, f.quantity(t, "p1"))
	assert.Equal(t, 2, f.lotQuantity(t, "l2"))
}

func TestEntry_RegisterValidaProveedorYProducto(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "5.00", lot("l1", 2, day(1, 1)))
	uc := inventory.NewEntryUseCase(f.deps)

	_, err := uc.Register(f.ctx, inventory.EntryInput{
		JefeID: jefeID, ProductoID: "p1", ProveedorID: "no-existe", Cantidad: 1, PrecioCompra: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Register(f.ctx, inventory.EntryInput{
		JefeID: otroJefeID, ProductoID: "p1", ProveedorID: proveedorID, Cantidad: 1, PrecioCompra: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Register(f.ctx, inventory.EntryInput{
		JefeID: jefeID, ProductoID: "p1", ProveedorID: proveedorID, Cantidad: 0, PrecioCompra: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEntry_ProductoNuevoNoDuplicaLaCantidad(t *testing.T) {
	f := newFixture(t)
	uc := inventory.NewEntryUseCase(f.deps)

	first, err := uc.RegisterWithProduct(f.ctx, inventory.NewProductEntryInput{
		JefeID:       jefeID,
		Nombre:       "Café Molido",
		Cantidad:     5,
		PrecioCompra: decimal.RequireFromString("2.00"),
		PrecioVenta:  decimal.RequireFromString("3.50"),
	})
	require.NoError(t, err)
	assert.True(t, first.Nuevo)
	assert.Equal(t, 5, f.quantity(t, first.ProductoID))
	f.assertConsistent(t, first.ProductoID)

	second, err := uc.RegisterWithProduct(f.ctx, inventory.NewProductEntryInput{
		JefeID:       jefeID,
		Nombre:       "  CAFE  molido ",
		Cantidad:     4,
		PrecioCompra: decimal.RequireFromString("2.10"),
		ProveedorID:  proveedorID,
	})
	require.NoError(t, err)
	assert.False(t, second.Nuevo)
	assert.Equal(t, first.ProductoID, second.ProductoID)
	assert.Equal(t, 9, f.quantity(t, first.ProductoID))
	f.assertConsistent(t, first.ProductoID)

	products, _ := f.cat.Products.ListByJefe(f.ctx, jefeID)
	assert.Len(t, products, 1)
	assert.Len(t, f.movements(t, entity.MovimientoEntrada), 2)
}

func TestEntry_ProductoNuevoConFechaYLote(t *testing.T) {
	f := newFixture(t)
	uc := inventory.NewEntryUseCase(f.deps)
	fecha := day(3, 15)

	res, err := uc.RegisterWithProduct(f.ctx, inventory.NewProductEntryInput{
		JefeID: jefeID, Nombre: "Arroz", Cantidad: 2, PrecioCompra: decimal.Zero,
		Fecha: &fecha, Almacen: "Bodega 2", Lote: "A-1",
	})
	require.NoError(t, err)
	l, _ := f.cat.Lots.GetForUpdate(f.ctx, res.LoteID)
	assert.Equal(t, "Bodega 2", l.Almacen)
	assert.Equal(t, "A-1", l.Lote)
	assert.True(t, l.FechaIngreso.Equal(fecha))
}
