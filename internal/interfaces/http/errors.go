package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/domain"
)

// writeError traduce un error de caso de uso a respuesta HTTP.
func writeError(c *fiber.Ctx, err error) error {
	if apiErr, ok := domain.AsAPIError(err); ok {
		switch apiErr.Kind {
		case domain.KindUnauthenticated:
			c.ClearCookie(CookieName)
			return sessionRequired(c, "")
		case domain.KindNetwork:
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "NETWORK_ERROR", Message: apiErr.Message})
		case domain.KindServer:
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM_ERROR", Message: apiErr.Message})
		case domain.KindInvalidResponse:
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "INVALID_RESPONSE", Message: apiErr.Message})
		case domain.KindApplication:
			status := fiber.StatusUnprocessableEntity
			if apiErr.StatusCode == fiber.StatusNotFound || apiErr.StatusCode == fiber.StatusConflict {
				status = apiErr.StatusCode
			}
			resp := dto.ErrorResponse{Code: "APPLICATION_ERROR", Message: apiErr.Message}
			if apiErr.HasFieldErrors() {
				resp.Fields = make(map[string]string, len(apiErr.FieldErrors))
				for _, f := range apiErr.Fields() {
					resp.Fields[f] = apiErr.FieldMessage(f)
				}
			}
			return c.Status(status).JSON(resp)
		}
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// writeForm respuesta 422 de un formulario rechazado.
func writeForm(c *fiber.Ctx, banner string, fields map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.FormResponse{Banner: banner, Fields: fields})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
