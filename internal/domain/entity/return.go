package entity

import "time"

// Tipos de devolución: de venta (el cliente devuelve, entra stock) o de compra (se devuelve al proveedor, sale stock).
const (
	DevolucionVenta  = "venta"
	DevolucionCompra = "compra"
)

// Estados de una devolución.
const (
	DevolucionPendiente = "pendiente"
	DevolucionAplicada  = "aplicada"
)

// Return es una devolución con ciclo de dos fases: se crea pendiente (sin efecto en stock)
// y se aplica una única vez con una operación distinta.
type Return struct {
	ID         string
	Tipo       string
	ProductoID string
	Cantidad   int
	Motivo     string
	Estado     string
	LoteID     string // lote afectado al aplicar una devolución de venta
	JefeID     string
	Fecha      time.Time
	AplicadaEn *time.Time
}

// Delta devuelve el cambio de stock con signo que produce la devolución al aplicarse.
// El segundo valor es false si el tipo no es válido.
func (r *Return) Delta() (int, bool) {
	switch r.Tipo {
	case DevolucionVenta:
		return r.Cantidad, true
	case DevolucionCompra:
		return -r.Cantidad, true
	}
	return 0, false
}
