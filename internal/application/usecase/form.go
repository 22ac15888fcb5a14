package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/domain"
	"github.com/jhoicas/academia-admin/pkg/logger"
)

const bannerRevisar = "Revisa los campos marcados"

// FormResult resultado de enviar un formulario. Con errores, Item es nil y Banner
// trae el mensaje general; FieldErrors se pinta junto a cada campo.
type FormResult[T any] struct {
	Item        *T
	FieldErrors map[string]string
	Banner      string
}

// OK indica si el envío fue aceptado.
func (r FormResult[T]) OK() bool { return r.Item != nil }

// submit valida localmente y luego envía. Los rechazos del backend (ApplicationError)
// se devuelven como FormResult con error nil; los fallos de sesión, red o servidor
// se devuelven como error.
func submit[T any](
	ctx context.Context,
	log *logger.Logger,
	notifier ports.Notifier,
	fields map[string]string,
	okMsg string,
	call func(context.Context) (*T, error),
) (FormResult[T], error) {
	if len(fields) > 0 {
		return FormResult[T]{FieldErrors: fields, Banner: bannerRevisar}, nil
	}
	item, err := call(ctx)
	if err != nil {
		apiErr, ok := domain.AsAPIError(err)
		if !ok || !errors.Is(err, domain.ErrApplication) {
			return FormResult[T]{}, err
		}
		log.Info().Str("message", apiErr.Message).Strs("fields", apiErr.Fields()).Msg("formulario rechazado por el backend")
		res := FormResult[T]{Banner: apiErr.Message}
		if apiErr.HasFieldErrors() {
			res.FieldErrors = make(map[string]string, len(apiErr.FieldErrors))
			for _, f := range apiErr.Fields() {
				res.FieldErrors[f] = apiErr.FieldMessage(f)
			}
			if res.Banner == "" {
				res.Banner = bannerRevisar
			}
		}
		if res.Banner == "" {
			res.Banner = domain.ErrApplication.Error()
		}
		return res, nil
	}
	if notifier != nil {
		notifier.Notify(ports.LevelSuccess, okMsg)
	}
	return FormResult[T]{Item: item}, nil
}

// fieldChecks acumula errores de validación por campo; conserva solo el primero de cada campo.
type fieldChecks map[string]string

func (f fieldChecks) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.add(field, "es requerido")
	}
}

func (f fieldChecks) email(field, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		f.add(field, "no es un email válido")
	}
}

func (f fieldChecks) minLen(field, value string, n int) {
	if value != "" && len([]rune(value)) < n {
		f.add(field, "es demasiado corto")
	}
}

func (f fieldChecks) add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}
