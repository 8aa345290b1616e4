package dto

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP. Error repite Message para clientes que leen ese campo.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// NewError construye el cuerpo de error.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Code: code, Message: message, Error: message}
}

// TenantQuery jefe_id en query string, para GET y PUT sin cuerpo.
type TenantQuery struct {
	JefeID string `query:"jefe_id" validate:"required"`
}
