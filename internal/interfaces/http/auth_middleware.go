package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// Locals keys para el jefe y el usuario del token.
const (
	LocalJefeID  = "jefe_id"
	LocalUsuario = "usuario"
)

// AuthMiddleware valida el Bearer Token cuando viene y deja el jefe en c.Locals.
// Con required=true el token es obligatorio; sin él las rutas se identifican solo por jefe_id.
func AuthMiddleware(jwtSecret string, required bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			if required {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("MISSING_TOKEN", "Authorization header requerido"))
			}
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("INVALID_TOKEN", "formato: Bearer <token>"))
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("MISSING_TOKEN", "token vacío"))
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("INVALID_TOKEN", "token inválido o expirado"))
		}
		c.Locals(LocalJefeID, claims.JefeID)
		c.Locals(LocalUsuario, claims.Usuario)
		return c.Next()
	}
}

// GetJefeID devuelve el jefe del token, o "" si la petición no trajo token.
func GetJefeID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalJefeID).(string)
	return s
}

// tenant resuelve el jefe de la petición. requested viene del cuerpo, query o ruta; si falta se usa
// el del token. Un token de otro jefe es 403.
func tenant(c *fiber.Ctx, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	fromToken := GetJefeID(c)
	switch {
	case requested == "" && fromToken == "":
		return "", domain.Invalid("jefe_id", "requerido")
	case requested == "":
		requested = fromToken
	case fromToken != "" && fromToken != requested:
		return "", fmt.Errorf("jefe_id no coincide con el token: %w", domain.ErrForbidden)
	}
	if _, err := uuid.Parse(requested); err != nil {
		return "", domain.Invalid("jefe_id", "debe ser un UUID")
	}
	return requested, nil
}

// idParam lee un identificador de la ruta; los ids son UUID.
func idParam(c *fiber.Ctx, name string) (string, error) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", domain.Invalid(name, "debe ser un UUID")
	}
	return id, nil
}
