package dto

import "time"

// RegisterJefeRequest alta de un jefe (la contraseña se hashea en el caso de uso).
type RegisterJefeRequest struct {
	Usuario    string `json:"usuario" validate:"required,min=3,max=100"`
	Contrasena string `json:"contrasena" validate:"required,min=6,max=72"`
}

// LoginRequest credenciales del jefe.
type LoginRequest struct {
	Usuario    string `json:"usuario" validate:"required"`
	Contrasena string `json:"contrasena" validate:"required"`
}

// JefeResponse jefe sin contraseña.
type JefeResponse struct {
	ID        string    `json:"id"`
	Usuario   string    `json:"usuario"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse token Bearer emitido para el jefe.
type LoginResponse struct {
	Token string       `json:"token"`
	Jefe  JefeResponse `json:"jefe"`
}
