package inventory_test

import (
	"testing"

	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjust_SubeYBajaReflejandoLotes(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "1.00", lot("l1", 3, day(1, 1)), lot("l2", 5, day(2, 1)))
	uc := inventory.NewAdjustUseCase(f.deps)

	require.NoError(t, uc.SetQuantity(f.ctx, inventory.AdjustInput{JefeID: jefeID, ProductoID: "p1", Cantidad: 12, Target: inventory.ReplenishTarget{LoteID: "l1"}}))
	assert.Equal(t, 12, f.quantity(t, "p1"))
	assert.Equal(t, 7, f.lotQuantity(t, "l1"))
	f.assertConsistent(t, "p1")

	require.NoError(t, uc.SetQuantity(f.ctx, inventory.AdjustInput{JefeID: jefeID, ProductoID: "p1", Cantidad: 4}))
	assert.Equal(t, 4, f.quantity(t, "p1"))
	assert.Equal(t, 0, f.lotQuantity(t, "l1"))
	assert.Equal(t, 4, f.lotQuantity(t, "l2"))
	f.assertConsistent(t, "p1")

	require.NoError(t, uc.SetQuantity(f.ctx, inventory.AdjustInput{JefeID: jefeID, ProductoID: "p1", Cantidad: 0}))
	assert.Equal(t, 0, f.quantity(t, "p1"))
	f.assertConsistent(t, "p1")
	assert.Empty(t, f.movements(t, ""))
}

func TestAdjust_Validaciones(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "1.00", lot("l1", 3, day(1, 1)))
	uc := inventory.NewAdjustUseCase(f.deps)

	assert.ErrorIs(t, uc.SetQuantity(f.ctx, inventory.AdjustInput{JefeID: jefeID, ProductoID: "p1", Cantidad: -1}), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.SetQuantity(f.ctx, inventory.AdjustInput{JefeID: otroJefeID, ProductoID: "p1", Cantidad: 1}), domain.ErrNotFound)
}
