package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorKind clasifica los fallos de una llamada al backend.
type ErrorKind string

const (
	KindUnauthenticated ErrorKind = "UNAUTHENTICATED"
	KindNetwork         ErrorKind = "NETWORK_ERROR"
	KindServer          ErrorKind = "SERVER_ERROR"
	KindInvalidResponse ErrorKind = "INVALID_RESPONSE"
	KindApplication     ErrorKind = "APPLICATION_ERROR"
)

// Errores centinela, uno por tipo; *APIError los satisface vía errors.Is.
var (
	ErrUnauthenticated = errors.New("sesión no válida o expirada")
	ErrNetwork         = errors.New("error de red")
	ErrServer          = errors.New("error del servidor")
	ErrInvalidResponse = errors.New("respuesta inválida del servidor")
	ErrApplication     = errors.New("la operación fue rechazada")
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
)

// APIError forma única de error que producen los clientes HTTP.
// StatusCode es 0 cuando el fallo ocurrió antes de tener respuesta.
type APIError struct {
	Kind        ErrorKind
	Message     string
	StatusCode  int
	FieldErrors map[string][]string
	Err         error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, domain.ErrUnauthenticated) y similares.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthenticated:
		return e.Kind == KindUnauthenticated
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrServer:
		return e.Kind == KindServer
	case ErrInvalidResponse:
		return e.Kind == KindInvalidResponse
	case ErrApplication:
		return e.Kind == KindApplication
	case ErrNotFound:
		return e.StatusCode == 404
	}
	return false
}

// HasFieldErrors indica si el servidor devolvió errores por campo.
func (e *APIError) HasFieldErrors() bool {
	return e != nil && len(e.FieldErrors) > 0
}

// FieldMessage une los mensajes de un campo ("" si no hay).
func (e *APIError) FieldMessage(field string) string {
	if e == nil {
		return ""
	}
	return strings.Join(e.FieldErrors[field], "; ")
}

// Fields devuelve los nombres de campo con error, ordenados.
func (e *APIError) Fields() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.FieldErrors))
	for k := range e.FieldErrors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// AsAPIError extrae el *APIError de una cadena de errores.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// ErrorInfo versión mostrable de un fallo: mensaje y código HTTP opcional.
type ErrorInfo struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code,omitempty"`
}

// InfoFrom resume cualquier error en ErrorInfo.
func InfoFrom(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{}
	}
	if apiErr, ok := AsAPIError(err); ok {
		return ErrorInfo{Message: apiErr.Message, StatusCode: apiErr.StatusCode}
	}
	return ErrorInfo{Message: err.Error()}
}
