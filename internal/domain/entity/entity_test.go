package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNombreClave(t *testing.T) {
	assert.Equal(t, "cafe molido", NombreClave("  Café   Molido "))
	assert.Equal(t, NombreClave("CAFÉ MOLIDO"), NombreClave("cafe molido"))
	assert.Equal(t, "tornillo 3/8", NombreClave("Tornillo 3/8"))
	assert.NotEqual(t, NombreClave("cafe"), NombreClave("cafe molido"))
}

func TestReturnDelta(t *testing.T) {
	venta := &Return{Tipo: DevolucionVenta, Cantidad: 4}
	d, ok := venta.Delta()
	assert.True(t, ok)
	assert.Equal(t, 4, d)

	compra := &Return{Tipo: DevolucionCompra, Cantidad: 4}
	d, ok = compra.Delta()
	assert.True(t, ok)
	assert.Equal(t, -4, d)

	_, ok = (&Return{Tipo: "cambio", Cantidad: 1}).Delta()
	assert.False(t, ok)
}

func TestSaleLineSubtotal(t *testing.T) {
	l := SaleLine{Cantidad: 3, PrecioUnitario: decimal.RequireFromString("12.50")}
	assert.True(t, l.Subtotal().Equal(decimal.RequireFromString("37.50")))
}

func TestValidMovementType(t *testing.T) {
	assert.True(t, ValidMovementType(MovimientoVenta))
	assert.False(t, ValidMovementType("ajuste"))
}
