package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrReturnSettled     = fmt.Errorf("%w: la devolución ya fue aplicada", ErrConflict)
)

// ValidationError indica el campo que no pasó la validación. Es ErrInvalidInput para errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StockError detalla qué producto no alcanzó; es ErrInsufficientStock para errors.Is.
type StockError struct {
	ProductoID string
	Solicitado int
	Disponible int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %s: solicitado %d, disponible %d",
		e.ProductoID, e.Solicitado, e.Disponible)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }
