package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(t *testing.T, s *Store, cantidad int) *entity.Product {
	t.Helper()
	p := &entity.Product{ID: "p1", JefeID: "j1", Nombre: "Café", NombreClave: entity.NombreClave("Café"), Cantidad: cantidad}
	require.NoError(t, s.Catalog().Products.Create(context.Background(), p))
	return p
}

func TestRun_ErrorDescartaCambios(t *testing.T) {
	s := New()
	seedProduct(t, s, 10)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.Run(ctx, func(tx repository.Stores) error {
		ok, err := tx.Products.DecrementQuantity(ctx, "p1", 4)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, tx.Lots.Create(ctx, &entity.Lot{ID: "l1", ProductoID: "p1", Cantidad: 3}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := s.Catalog().Products.GetByID(ctx, "j1", "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Cantidad)
	lot, err := s.Catalog().Lots.GetForUpdate(ctx, "l1")
	require.NoError(t, err)
	assert.Nil(t, lot)
}

func TestRun_PanicDescartaCambios(t *testing.T) {
	s := New()
	seedProduct(t, s, 10)
	ctx := context.Background()

	assert.PanicsWithValue(t, "boom", func() {
		_ = s.Run(ctx, func(tx repository.Stores) error {
			ok, err := tx.Products.DecrementQuantity(ctx, "p1", 7)
			require.NoError(t, err)
			require.True(t, ok)
			panic("boom")
		})
	})

	p, err := s.Catalog().Products.GetByID(ctx, "j1", "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Cantidad)

	// el mutex quedó libre
	require.NoError(t, s.Run(ctx, func(tx repository.Stores) error { return nil }))
}

func TestRun_ContextoCanceladoRevierte(t *testing.T) {
	s := New()
	seedProduct(t, s, 10)
	ctx, cancel := context.WithCancel(context.Background())

	err := s.Run(ctx, func(tx repository.Stores) error {
		require.NoError(t, tx.Products.SetQuantity(ctx, "p1", 1))
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	p, _ := s.Catalog().Products.GetByID(context.Background(), "j1", "p1")
	assert.Equal(t, 10, p.Cantidad)
}

func TestProductRepo_AislamientoPorJefe(t *testing.T) {
	s := New()
	seedProduct(t, s, 1)

	p, err := s.Catalog().Products.GetByID(context.Background(), "otro-jefe", "p1")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProductRepo_DecrementoCondicional(t *testing.T) {
	s := New()
	seedProduct(t, s, 3)
	ctx := context.Background()

	ok, err := s.Catalog().Products.DecrementQuantity(ctx, "p1", 4)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.Catalog().Products.DecrementQuantity(ctx, "p1", 3)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProductRepo_CreateIfAbsentPorNombreNormalizado(t *testing.T) {
	s := New()
	seedProduct(t, s, 1)
	ctx := context.Background()

	created, err := s.Catalog().Products.CreateIfAbsent(ctx, &entity.Product{
		ID: "p2", JefeID: "j1", Nombre: "CAFE", NombreClave: entity.NombreClave("CAFE"),
	})
	require.NoError(t, err)
	assert.False(t, created)

	created, err = s.Catalog().Products.CreateIfAbsent(ctx, &entity.Product{
		ID: "p3", JefeID: "j2", Nombre: "CAFE", NombreClave: entity.NombreClave("CAFE"),
	})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestLotRepo_ListaOrdenadaYFiltroEnVenta(t *testing.T) {
	s := New()
	seedProduct(t, s, 0)
	ctx := context.Background()
	lots := s.Catalog().Lots
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, lots.Create(ctx, &entity.Lot{ID: "b", ProductoID: "p1", Cantidad: 1, EnVenta: true, FechaIngreso: jan.AddDate(0, 1, 0)}))
	require.NoError(t, lots.Create(ctx, &entity.Lot{ID: "a", ProductoID: "p1", Cantidad: 1, EnVenta: true, FechaIngreso: jan}))
	require.NoError(t, lots.Create(ctx, &entity.Lot{ID: "c", ProductoID: "p1", Cantidad: 1, EnVenta: false, FechaIngreso: jan}))

	all, err := lots.ListByProductForUpdate(ctx, "p1", false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	forSale, err := lots.ListByProductForUpdate(ctx, "p1", true)
	require.NoError(t, err)
	require.Len(t, forSale, 2)
	assert.Equal(t, "a", forSale[0].ID)
	assert.Equal(t, "b", forSale[1].ID)

	forSaleProducts, err := s.Catalog().Products.ListForSale(ctx, "j1")
	require.NoError(t, err)
	assert.Len(t, forSaleProducts, 1)
}

func TestReturnRepo_MarkSettledUnaVez(t *testing.T) {
	s := New()
	seedProduct(t, s, 0)
	ctx := context.Background()
	returns := s.Catalog().Returns
	require.NoError(t, returns.Create(ctx, &entity.Return{
		ID: "d1", Tipo: entity.DevolucionVenta, ProductoID: "p1", Cantidad: 2, Estado: entity.DevolucionPendiente, JefeID: "j1",
	}))

	ok, err := returns.MarkSettled(ctx, "d1", "l1", time.Now())
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = returns.MarkSettled(ctx, "d1", "l1", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	ret, _ := returns.GetByID(ctx, "j1", "d1")
	assert.Equal(t, entity.DevolucionAplicada, ret.Estado)
	assert.Equal(t, "l1", ret.LoteID)
	assert.NotNil(t, ret.AplicadaEn)
}

func TestProductRepo_IncrementoNoDesbordaCantidad(t *testing.T) {
	s := New()
	seedProduct(t, s, domain.MaxCantidad-1)
	ctx := context.Background()
	products := s.Catalog().Products

	require.NoError(t, products.IncrementQuantity(ctx, "p1", 1))
	err := products.IncrementQuantity(ctx, "p1", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := products.GetByID(ctx, "j1", "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.MaxCantidad, p.Cantidad)
}
