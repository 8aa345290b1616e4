package inventory_test

import (
	"sync"
	"testing"

	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturn_VentaSeAplicaUnaSolaVez(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "1.00", lot("l1", 10, day(1, 1)))
	uc := inventory.NewReturnUseCase(f.deps)

	ret, err := uc.Create(f.ctx, inventory.ReturnInput{
		JefeID: jefeID, Tipo: entity.DevolucionVenta, ProductoID: "p1", Cantidad: 4, Motivo: "defecto",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DevolucionPendiente, ret.Estado)
	assert.Equal(t, 10, f.quantity(t, "p1"), "crear la devolución no toca el stock")

	res, err := uc.Settle(f.ctx, jefeID, ret.ID, inventory.ReplenishTarget{LoteID: "l1"})
	require.NoError(t, err)
	assert.Equal(t, 4, res.CantidadModificada)
	assert.Equal(t, "p1", res.ProductoID)
	assert.Equal(t, 14, f.quantity(t, "p1"))
	assert.Equal(t, 14, f.lotQuantity(t, "l1"))

	_, err = uc.Settle(f.ctx, jefeID, ret.ID, inventory.ReplenishTarget{})
	assert.ErrorIs(t, err, domain.ErrReturnSettled)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 14, f.quantity(t, "p1"))
	f.assertConsistent(t, "p1")

	stored, _ := f.cat.Returns.GetByID(f.ctx, jefeID, ret.ID)
	assert.Equal(t, entity.DevolucionAplicada, stored.Estado)
	assert.Equal(t, "l1", stored.LoteID)
	assert.Empty(t, f.movements(t, ""), "aplicar una devolución no genera movimiento")
}

func TestReturn_VentaSinLoteCreaLoteDeDevolucion(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "1.00", lot("l1", 1, day(1, 1)))
	uc := inventory.NewReturnUseCase(f.deps)

	ret, err := uc.Create(f.ctx, inventory.ReturnInput{JefeID: jefeID, Tipo: entity.DevolucionVenta, ProductoID: "p1", Cantidad: 2})
	require.NoError(t, err)
	res, err := uc.Settle(f.ctx, jefeID, ret.ID, inventory.ReplenishTarget{})
	require.NoError(t, err)

	l, _ := f.cat.Lots.GetForUpdate(f.ctx, res.LoteID)
	require.NotNil(t, l)
	assert.Equal(t, "DEV-20240601", l.Lote)
	assert.Equal(t, 2, l.Cantidad)
	f.assertConsistent(t, "p1")
}

func TestReturn_CompraDescuentaStock(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "1.00", lot("l1", 3, day(1, 1)), lot("l2", 6, day(2, 1)))
	uc := inventory.NewReturnUseCase(f.deps)

	ret, err := uc.Create(f.ctx, inventory.ReturnInput{JefeID: jefeID, Tipo: entity.DevolucionCompra, ProductoID: "p1", Cantidad: 4})
	require.NoError(t, err)
	res, err := uc.Settle(f.ctx, jefeID, ret.ID, inventory.ReplenishTarget{})
	require.NoError(t, err)

	assert.Equal(t, -4, res.CantidadModificada)
	assert.Equal(t, 5, f.quantity(t, "p1"))
	assert.Equal(t, 2, f.lotQuantity(t, "l2"))
	assert.Equal(t, 3, f.lotQuantity(t, "l1"))
	f.assertConsistent(t, "p1")
}

func TestReturn_CompraSinStockQuedaPendiente(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "1.00", lot("l1", 3, day(1, 1)))
	uc := inventory.NewReturnUseCase(f.deps)

	ret, err := uc.Create(f.ctx, inventory.ReturnInput{JefeID: jefeID, Tipo: entity.DevolucionCompra, ProductoID: "p1", Cantidad: 5})
	require.NoError(t, err)
	_, err = uc.Settle(f.ctx, jefeID, ret.ID, inventory.ReplenishTarget{})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, _ := f.cat.Returns.GetByID(f.ctx, jefeID, ret.ID)
	assert.Equal(t, entity.DevolucionPendiente, stored.Estado)
	assert.Equal(t, 3, f.quantity(t, "p1"))
}

func TestReturn_Validaciones(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "1.00", lot("l1", 3, day(1, 1)))
	uc := inventory.NewReturnUseCase(f.deps)

	_, err := uc.Create(f.ctx, inventory.ReturnInput{JefeID: jefeID, Tipo: "cambio", ProductoID: "p1", Cantidad: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(f.ctx, inventory.ReturnInput{JefeID: jefeID, Tipo: entity.DevolucionVenta, ProductoID: "p1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(f.ctx, inventory.ReturnInput{JefeID: otroJefeID, Tipo: entity.DevolucionVenta, ProductoID: "p1", Cantidad: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Settle(f.ctx, jefeID, "no-existe", inventory.ReplenishTarget{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReturn_AplicacionConcurrenteSoloUna(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "1.00", lot("l1", 10, day(1, 1)))
	uc := inventory.NewReturnUseCase(f.deps)
	ret, err := uc.Create(f.ctx, inventory.ReturnInput{JefeID: jefeID, Tipo: entity.DevolucionVenta, ProductoID: "p1", Cantidad: 4})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Settle(f.ctx, jefeID, ret.ID, inventory.ReplenishTarget{LoteID: "l1"})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, domain.ErrReturnSettled)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 14, f.quantity(t, "p1"))
}
