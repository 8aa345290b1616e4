package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0,00", formatMoney(decimal.Zero))
	assert.Equal(t, "$999,90", formatMoney(decimal.RequireFromString("999.9")))
	assert.Equal(t, "$1.234,50", formatMoney(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$1.000.000,00", formatMoney(decimal.RequireFromString("1000000")))
	assert.Equal(t, "-$25.000,00", formatMoney(decimal.RequireFromString("-25000")))
}

func TestGenerateReceiptPDF(t *testing.T) {
	sale := &entity.SaleDetail{
		Sale: entity.Sale{
			ID:    "5b7c9a54-1111-2222-3333-444455556666",
			Total: decimal.RequireFromString("35.50"),
			Fecha: time.Date(2024, time.June, 1, 10, 30, 0, 0, time.UTC),
		},
		Cliente: "Ana",
		Lineas: []entity.SaleLineView{
			{SaleLine: entity.SaleLine{ProductoID: "p1", Cantidad: 2, PrecioUnitario: decimal.RequireFromString("10.00")}, Producto: "Martillo"},
			{SaleLine: entity.SaleLine{ProductoID: "p2", Cantidad: 1, PrecioUnitario: decimal.RequireFromString("15.50")}, Producto: "Serrucho"},
		},
	}

	out, err := NewMarotoReceiptGenerator().GenerateReceiptPDF(context.Background(), "Ferretería El Tornillo", sale)
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}
