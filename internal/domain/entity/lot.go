package entity

import "time"

// AlmacenPrincipal es el almacén asignado cuando la petición no indica uno.
const AlmacenPrincipal = "Principal"

// Lot es un lote de inventario de un producto, con su propia cantidad y fecha de ingreso.
type Lot struct {
	ID           string
	ProductoID   string
	Almacen      string
	Lote         string
	Cantidad     int // nunca negativa
	EnVenta      bool
	FechaIngreso time.Time
}
