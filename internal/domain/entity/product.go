package entity

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Product representa un producto del jefe. Cantidad es el agregado cacheado de sus lotes:
// tras cada transacción completada debe ser igual a la suma de Lot.Cantidad.
type Product struct {
	ID           string
	JefeID       string
	Nombre       string
	NombreClave  string // clave normalizada, única por jefe
	Descripcion  string
	Modelo       string
	Marca        string
	Cantidad     int
	PrecioCompra decimal.Decimal
	PrecioVenta  decimal.Decimal
	Ubicacion    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var nameFolder = cases.Fold()

// NombreClave normaliza un nombre de producto para buscar "el mismo producto":
// sin acentos, sin mayúsculas y con espacios colapsados. "  Café  Molido" y "cafe molido" coinciden.
func NombreClave(nombre string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, nombre)
	if err != nil {
		plain = nombre
	}
	return nameFolder.String(strings.Join(strings.Fields(plain), " "))
}
