package domain

import "github.com/shopspring/decimal"

// ValidMoney indica si d es un importe válido: no negativo y con a lo sumo dos decimales.
func ValidMoney(d decimal.Decimal) bool {
	return !d.IsNegative() && d.Equal(d.Round(2))
}
