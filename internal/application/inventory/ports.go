package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error la transacción se revierte completa.
type TxRunner interface {
	Run(ctx context.Context, fn func(s repository.Stores) error) error
}

// Deps dependencias compartidas por los casos de uso de inventario.
// Los repositorios sueltos se usan para validaciones previas, fuera de la transacción.
type Deps struct {
	Tx        TxRunner
	Products  repository.ProductRepository
	Clients   repository.ClientRepository
	Suppliers repository.SupplierRepository
	Returns   repository.ReturnRepository
	Recorder  *Recorder
	Now       func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now().UTC()
}
