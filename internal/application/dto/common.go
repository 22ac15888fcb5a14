package dto

import (
	"encoding/json"

	"github.com/jhoicas/academia-admin/internal/domain"
)

// ListQuery parámetros de un listado paginado. Page empieza en 1.
type ListQuery struct {
	Page   int    `json:"page"`
	Search string `json:"search"`
}

// Normalize aplica página mínima 1.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

// PageMeta metadatos de página tal como los envía el backend.
type PageMeta struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// ListResult resultado tipado de un listado.
type ListResult[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// ListEnvelope cuerpo de respuesta de los endpoints de listado.
// Data y Success son punteros/RawMessage para distinguir "ausente" de "vacío".
type ListEnvelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *PageMeta       `json:"meta"`
	Errors  FieldErrors     `json:"errors,omitempty"`
}

// ItemEnvelope cuerpo de respuesta de los endpoints de un solo recurso (mutaciones).
type ItemEnvelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  FieldErrors     `json:"errors,omitempty"`
}

// FieldErrors errores de validación por campo.
type FieldErrors map[string][]string

// ErrorResponse cuerpo de error HTTP de la consola.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Action  string            `json:"action,omitempty"` // p.ej. "login" en sesión expirada
}

// FormResponse cuerpo de respuesta de un formulario rechazado.
type FormResponse struct {
	Banner string            `json:"banner"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ListSnapshot estado de un listado tal como lo entrega la consola.
type ListSnapshot[V any] struct {
	Status      string            `json:"status"` // idle | loading | success | failure
	Page        int               `json:"page"`
	Search      string            `json:"search"`      // término asentado
	SearchInput string            `json:"searchInput"` // lo tecleado
	Loading     bool              `json:"loading"`
	Items       []V               `json:"items"`
	Meta        *PageMeta         `json:"meta,omitempty"`
	Error       *domain.ErrorInfo `json:"error,omitempty"`
}
