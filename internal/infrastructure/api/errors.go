package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/domain"
)

// ── Normalizador de errores ──────────────────────────────────────────────────
//
// Todos los caminos de fallo terminan en uno de estos tipos:
//   transporte         → NetworkError
//   401                → Unauthenticated
//   otro no-2xx        → ServerError(status) (ApplicationError si trae errores por campo)
//   JSON inválido      → InvalidResponse
//   success:false      → ApplicationError(message, fieldErrors)

func networkError(ctx context.Context, err error) *domain.APIError {
	msg := err.Error()
	if ctxErr := ctx.Err(); ctxErr != nil {
		msg = fmt.Sprintf("petición cancelada: %v", ctxErr)
	}
	return &domain.APIError{Kind: domain.KindNetwork, Message: msg, Err: err}
}

func invalidResponse(reason string, err error) *domain.APIError {
	return &domain.APIError{Kind: domain.KindInvalidResponse, Message: "respuesta inválida del servidor: " + reason, Err: err}
}

// statusError clasifica una respuesta no-2xx. Si el cuerpo es un sobre con mensaje
// se conserva ese mensaje.
func statusError(status int, raw []byte) *domain.APIError {
	var env dto.ItemEnvelope
	parsed := json.Unmarshal(raw, &env) == nil

	if status == http.StatusUnauthorized {
		msg := "la sesión expiró, inicie sesión de nuevo"
		if parsed && env.Message != "" {
			msg = env.Message
		}
		return &domain.APIError{Kind: domain.KindUnauthenticated, Message: msg, StatusCode: status}
	}

	if parsed && env.Success != nil && !*env.Success && len(env.Errors) > 0 {
		return applicationError(env.Message, env.Errors, status)
	}

	msg := fmt.Sprintf("el servidor respondió %d %s", status, http.StatusText(status))
	if parsed && env.Message != "" {
		msg = env.Message
	}
	return &domain.APIError{Kind: domain.KindServer, Message: msg, StatusCode: status}
}

func applicationError(message string, fields dto.FieldErrors, status int) *domain.APIError {
	if message == "" {
		message = "la operación fue rechazada por el servidor"
	}
	var fe map[string][]string
	if len(fields) > 0 {
		fe = make(map[string][]string, len(fields))
		for k, v := range fields {
			fe[k] = append([]string(nil), v...)
		}
	}
	return &domain.APIError{Kind: domain.KindApplication, Message: message, StatusCode: status, FieldErrors: fe}
}

func isNullOrEmpty(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeList valida el sobre de listado y decodifica los registros.
func decodeList[R any](raw []byte) ([]R, dto.PageMeta, error) {
	var env dto.ListEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, dto.PageMeta{}, invalidResponse("JSON no válido", err)
	}
	if env.Success == nil {
		return nil, dto.PageMeta{}, invalidResponse("falta el campo success", nil)
	}
	if !*env.Success {
		return nil, dto.PageMeta{}, applicationError(env.Message, env.Errors, 0)
	}
	if isNullOrEmpty(env.Data) {
		return nil, dto.PageMeta{}, invalidResponse("falta el campo data", nil)
	}
	var records []R
	if err := json.Unmarshal(env.Data, &records); err != nil {
		return nil, dto.PageMeta{}, invalidResponse("data no es una lista", err)
	}
	if env.Meta == nil {
		return nil, dto.PageMeta{}, invalidResponse("falta el campo meta", nil)
	}
	if err := checkMeta(*env.Meta, len(records)); err != nil {
		return nil, dto.PageMeta{}, invalidResponse(err.Error(), nil)
	}
	return records, *env.Meta, nil
}

// checkMeta invariantes de paginación.
func checkMeta(m dto.PageMeta, n int) error {
	if m.CurrentPage < 0 || m.TotalPages < 0 || m.TotalItems < 0 || m.ItemsPerPage < 0 {
		return errors.New("meta con valores negativos")
	}
	if n > 0 && n > m.ItemsPerPage {
		return fmt.Errorf("%d elementos con itemsPerPage=%d", n, m.ItemsPerPage)
	}
	if m.TotalPages > 0 && m.CurrentPage > m.TotalPages {
		return fmt.Errorf("currentPage %d > totalPages %d", m.CurrentPage, m.TotalPages)
	}
	return nil
}

// decodeItem valida el sobre de un recurso. data:null con success:true devuelve (nil, nil).
func decodeItem[R any](raw []byte) (*R, error) {
	var env dto.ItemEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, invalidResponse("JSON no válido", err)
	}
	if env.Success == nil {
		return nil, invalidResponse("falta el campo success", nil)
	}
	if !*env.Success {
		return nil, applicationError(env.Message, env.Errors, 0)
	}
	if isNullOrEmpty(env.Data) {
		return nil, nil
	}
	var rec R
	if err := json.Unmarshal(env.Data, &rec); err != nil {
		return nil, invalidResponse("data con forma inesperada", err)
	}
	return &rec, nil
}
