package dto

import "time"

// ClientRequest alta o edición de cliente.
type ClientRequest struct {
	JefeID    string `json:"jefe_id" validate:"required"`
	Nombre    string `json:"nombre" validate:"required,max=255"`
	Telefono  string `json:"telefono" validate:"max=50"`
	Email     string `json:"email" validate:"omitempty,email,max=255"`
	Direccion string `json:"direccion"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Telefono  string    `json:"telefono"`
	Email     string    `json:"email"`
	Direccion string    `json:"direccion"`
	CreatedAt time.Time `json:"created_at"`
}

// SupplierRequest alta de proveedor.
type SupplierRequest struct {
	JefeID    string `json:"jefe_id" validate:"required"`
	Nombre    string `json:"nombre" validate:"required,max=255"`
	Contacto  string `json:"contacto" validate:"max=255"`
	Telefono  string `json:"telefono" validate:"max=50"`
	Email     string `json:"email" validate:"omitempty,email,max=255"`
	Direccion string `json:"direccion"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Contacto  string    `json:"contacto"`
	Telefono  string    `json:"telefono"`
	Email     string    `json:"email"`
	Direccion string    `json:"direccion"`
	CreatedAt time.Time `json:"created_at"`
}
