package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry es una entrada de mercancía (recepción de compra).
type Entry struct {
	ID           string
	ProductoID   string
	LoteID       string
	Cantidad     int
	PrecioCompra decimal.Decimal
	ProveedorID  string // opcional en el alta con producto nuevo
	JefeID       string
	Fecha        time.Time
}

// Exit es una salida de mercancía no ligada a una venta (merma, consumo interno...).
type Exit struct {
	ID          string
	ProductoID  string
	Cantidad    int
	Observacion string
	JefeID      string
	Fecha       time.Time
}

// Sale es la cabecera de una venta.
type Sale struct {
	ID        string
	ClienteID string
	Total     decimal.Decimal
	JefeID    string
	Fecha     time.Time
}

// SaleLine es el detalle de una venta.
type SaleLine struct {
	ID             string
	VentaID        string
	ProductoID     string
	Cantidad       int
	PrecioUnitario decimal.Decimal
}

// Subtotal devuelve cantidad * precio unitario.
func (l SaleLine) Subtotal() decimal.Decimal {
	return l.PrecioUnitario.Mul(decimal.NewFromInt(int64(l.Cantidad)))
}

// SaleDetail venta con cliente y líneas (con nombre de producto), para consulta y comprobante.
type SaleDetail struct {
	Sale
	Cliente string
	Lineas  []SaleLineView
}

// SaleLineView línea de venta con el nombre del producto.
type SaleLineView struct {
	SaleLine
	Producto string
}
