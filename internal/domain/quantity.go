package domain

import (
	"fmt"
	"math"
)

// MaxCantidad es el tope de las columnas INTEGER de cantidad.
const MaxCantidad = math.MaxInt32

// QuantityOverflow es el error cuando una cantidad o una suma de existencias pasa de MaxCantidad.
func QuantityOverflow() error {
	return Invalid("cantidad", fmt.Sprintf("excede el máximo de %d", MaxCantidad))
}

// FitsQuantity indica si actual+n cabe en una columna de cantidad.
func FitsQuantity(actual, n int) bool {
	return n <= MaxCantidad-actual
}
