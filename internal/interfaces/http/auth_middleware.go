package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/packstock-api/internal/application/dto"
	"github.com/jhoicas/packstock-api/pkg/jwt"
)

// Locals keys para el administrador autenticado.
const (
	LocalAdminID  = "admin_id"
	LocalUsername = "username"
)

// AdminChecker confirma que el administrador del token sigue existiendo.
type AdminChecker interface {
	Exists(ctx context.Context, adminID string) (bool, error)
}

// AuthMiddleware valida el Bearer Token JWT, comprueba que el administrador exista
// y deja admin_id y username en c.Locals.
func AuthMiddleware(jwtSecret string, admins AdminChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil || claims.AdminID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		ok, err := admins.Exists(c.Context(), claims.AdminID)
		if err != nil {
			return err
		}
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "ADMIN_NOT_FOUND", Message: "el administrador ya no existe"})
		}
		c.Locals(LocalAdminID, claims.AdminID)
		c.Locals(LocalUsername, claims.Username)
		return c.Next()
	}
}

// GetAdminID devuelve el AdminID del contexto (después del middleware de auth).
func GetAdminID(c *fiber.Ctx) string {
	v := c.Locals(LocalAdminID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
