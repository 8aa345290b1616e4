package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovimientoEntrada = "entrada"
	MovimientoVenta   = "venta"
	MovimientoSalida  = "salida"
)

// ValidMovementType indica si el tipo está dentro de los admitidos por la bitácora.
func ValidMovementType(tipo string) bool {
	switch tipo {
	case MovimientoEntrada, MovimientoVenta, MovimientoSalida:
		return true
	}
	return false
}

// Movement es un registro inmutable de la bitácora de movimientos de stock.
type Movement struct {
	ID          string
	Tipo        string
	ProductoID  string
	Cantidad    int
	JefeID      string
	Observacion string
	Referencia  string // id del documento origen (venta, entrada, salida)
	Fecha       time.Time
}

// MovementView movimiento con el nombre del producto, para listados.
type MovementView struct {
	Movement
	Producto string
}
