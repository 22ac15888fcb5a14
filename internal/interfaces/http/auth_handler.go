package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/academia-admin/internal/application/auth"
	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/domain"
)

const rememberCookieTTL = 7 * 24 * time.Hour

// AuthHandler login, logout y chequeo inicial de sesión de la consola.
type AuthHandler struct {
	uc *auth.SessionUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.SessionUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login POST /console/login {identifier, password, remember}.
// Guarda la sesión y deja el token en la cookie que revisa la guarda.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	sess, err := h.uc.Login(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "usuario y contraseña son requeridos"})
		case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrApplication):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: loginMessage(err)})
		}
		return writeError(c, err)
	}

	cookie := &fiber.Cookie{
		Name:     CookieName,
		Value:    sess.Token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if in.Remember {
		cookie.Expires = time.Now().Add(rememberCookieTTL)
	}
	c.Cookie(cookie)
	return c.JSON(fiber.Map{"user": sess.User})
}

// Logout POST /console/logout: vacía ambos almacenes y borra la cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.Context()); err != nil {
		return writeError(c, err)
	}
	c.ClearCookie(CookieName)
	return c.SendStatus(fiber.StatusNoContent)
}

// Session GET /console/session: chequeo inicial. Sin sesión responde 401 con
// Refresh hacia el login tras la demora configurada.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	gate := h.uc.Gate()
	d, err := gate.CheckCookie(c.Context(), c.Cookies(CookieName))
	if err != nil {
		return writeError(c, err)
	}
	if !d.Authenticated {
		delay := gate.RedirectDelay()
		c.Set("Refresh", fmt.Sprintf("%g;url=%s", delay.Seconds(), LoginPath))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"authenticated":   false,
			"reason":          d.Reason,
			"action":          "login",
			"redirectAfterMs": delay.Milliseconds(),
		})
	}
	return c.JSON(fiber.Map{"authenticated": true, "user": d.User})
}

func loginMessage(err error) string {
	if apiErr, ok := domain.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return "credenciales inválidas"
}
