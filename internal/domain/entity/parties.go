package entity

import "time"

// Jefe es el dueño de la tienda; su id delimita todos los datos (tenant).
type Jefe struct {
	ID           string
	Usuario      string
	PasswordHash string
	CreatedAt    time.Time
}

// Client cliente de un jefe.
type Client struct {
	ID        string
	JefeID    string
	Nombre    string
	Telefono  string
	Email     string
	Direccion string
	CreatedAt time.Time
}

// Supplier proveedor de un jefe.
type Supplier struct {
	ID        string
	JefeID    string
	Nombre    string
	Contacto  string
	Telefono  string
	Email     string
	Direccion string
	CreatedAt time.Time
}

// History entrada del historial de acciones del jefe.
type History struct {
	ID          string
	JefeID      string
	Accion      string
	Descripcion string
	Fecha       time.Time
}
