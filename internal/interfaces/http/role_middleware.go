package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/academia-admin/internal/application/dto"
)

// RequireRole restringe la ruta a los roles indicados. Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 401 MISSING_ROLE → la sesión no trae rol.
//   - 403 FORBIDDEN    → el rol no está permitido.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "MISSING_ROLE", Message: "la sesión no incluye un rol", Action: "login",
			})
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "FORBIDDEN", Message: "el rol '" + role + "' no tiene acceso al panel",
			})
		}
		return c.Next()
	}
}
