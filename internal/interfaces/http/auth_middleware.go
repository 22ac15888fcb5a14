package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/academia-admin/internal/application/auth"
	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
	"github.com/jhoicas/academia-admin/pkg/logger"
)

// Cookie y locals de la sesión de consola.
const (
	CookieName = "token"
	LocalUser  = "session_user"
	LoginPath  = "/console/login"
)

// sessionChecker lo implementa *auth.Gate.
type sessionChecker interface {
	Check(ctx context.Context) (auth.Decision, error)
	CheckCookie(ctx context.Context, cookie string) (auth.Decision, error)
}

// AuthMiddleware guarda de la consola: la cookie "token" debe coincidir con la sesión
// guardada y no estar expirada. Consulta el mismo Gate que las comprobaciones del cliente.
func AuthMiddleware(gate sessionChecker, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		d, err := gate.CheckCookie(c.Context(), c.Cookies(CookieName))
		if err != nil {
			log.Error().Err(err).Msg("guard: leer sesión")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code: "SESSION_STORE", Message: "no se pudo leer la sesión",
			})
		}
		if !d.Authenticated {
			log.Debug().Str("reason", d.Reason).Str("path", c.Path()).Msg("guard: acceso denegado")
			if d.Reason == auth.ReasonExpired {
				c.ClearCookie(CookieName)
			}
			return sessionRequired(c, d.Reason)
		}
		c.Locals(LocalUser, d.User)
		return c.Next()
	}
}

// sessionRequired respuesta 401 con la acción de volver al login.
func sessionRequired(c *fiber.Ctx, reason string) error {
	code, msg := "NO_SESSION", "inicia sesión para continuar"
	if reason == auth.ReasonExpired || reason == "" {
		code, msg = "SESSION_EXPIRED", "tu sesión expiró, vuelve a iniciar sesión"
	}
	c.Set(fiber.HeaderLocation, LoginPath)
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg, Action: "login"})
}

// GetUser devuelve el usuario de la sesión (después del middleware de auth).
func GetUser(c *fiber.Ctx) entity.SessionUser {
	u, _ := c.Locals(LocalUser).(entity.SessionUser)
	return u
}

// GetRole devuelve el rol del usuario de la sesión.
func GetRole(c *fiber.Ctx) string {
	return GetUser(c).Role
}
