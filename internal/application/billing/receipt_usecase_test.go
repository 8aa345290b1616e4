package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/billing"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
)

type fakeGenerator struct {
	got *entity.SaleDetail
	err error
}

func (g *fakeGenerator) GenerateReceiptPDF(_ context.Context, _ string, sale *entity.SaleDetail) ([]byte, error) {
	g.got = sale
	return []byte("%PDF-fake"), g.err
}

func seedSale(t *testing.T, s *memory.Store) string {
	t.Helper()
	ctx := context.Background()
	cat := s.Catalog()
	require.NoError(t, cat.Clients.Create(ctx, &entity.Client{ID: "c1", JefeID: "j1", Nombre: "Ana"}))
	require.NoError(t, cat.Products.Create(ctx, &entity.Product{ID: "p1", JefeID: "j1", Nombre: "Martillo", NombreClave: "martillo"}))
	require.NoError(t, cat.Sales.Create(ctx, &entity.Sale{
		ID: "venta-123456789", ClienteID: "c1", JefeID: "j1", Total: decimal.RequireFromString("20"), Fecha: time.Now(),
	}))
	require.NoError(t, cat.Sales.CreateLine(ctx, &entity.SaleLine{
		ID: "l1", VentaID: "venta-123456789", ProductoID: "p1", Cantidad: 2, PrecioUnitario: decimal.RequireFromString("10"),
	}))
	return "venta-123456789"
}

func TestReceipt_GeneraPDFConLineas(t *testing.T) {
	s := memory.New()
	id := seedSale(t, s)
	gen := &fakeGenerator{}
	uc := billing.NewReceiptUseCase(s.Catalog().Sales, gen, "Ferretería")

	pdf, name, err := uc.DownloadReceipt(context.Background(), "j1", id)
	require.NoError(t, err)
	assert.Equal(t, "venta_venta-12.pdf", name)
	assert.NotEmpty(t, pdf)
	require.NotNil(t, gen.got)
	require.Len(t, gen.got.Lineas, 1)
	assert.Equal(t, "Martillo", gen.got.Lineas[0].Producto)
}

func TestReceipt_VentaDeOtroJefe(t *testing.T) {
	s := memory.New()
	id := seedSale(t, s)
	uc := billing.NewReceiptUseCase(s.Catalog().Sales, &fakeGenerator{}, "Ferretería")

	_, _, err := uc.DownloadReceipt(context.Background(), "j2", id)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReceipt_ErrorDelGenerador(t *testing.T) {
	s := memory.New()
	id := seedSale(t, s)
	uc := billing.NewReceiptUseCase(s.Catalog().Sales, &fakeGenerator{err: errors.New("sin fuentes")}, "Ferretería")

	_, _, err := uc.DownloadReceipt(context.Background(), "j1", id)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}
