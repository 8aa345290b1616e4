package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/tienda-api/internal/domain"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
	numericOutOfRange   = "22003"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == uniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == foreignKeyViolation
}

// quantityError traduce los errores de las columnas cantidad: el CHECK (>= 0) y el desborde
// de INTEGER. Devuelve nil si err es otro tipo de error.
func quantityError(err error) error {
	switch pgCode(err) {
	case checkViolation:
		return domain.Invalid("cantidad", "no puede ser negativa")
	case numericOutOfRange:
		return domain.QuantityOverflow()
	}
	return nil
}
