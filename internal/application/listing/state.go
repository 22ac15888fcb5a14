// Package listing contiene el controlador de listados paginados con búsqueda diferida:
// estado, página actual, término de búsqueda inmediato y el término ya asentado que
// realmente dispara las peticiones.
package listing

import (
	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/domain"
)

// Status variante activa del estado asíncrono.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// State instantánea del controlador. Solo una variante tiene datos:
// Result con StatusSuccess, Err con StatusFailure.
type State[T any] struct {
	Status      Status             `json:"status"`
	Query       dto.ListQuery      `json:"query"`       // página y búsqueda asentada de la petición vigente
	SearchInput string             `json:"searchInput"` // lo que el usuario está escribiendo
	Result      *dto.ListResult[T] `json:"result,omitempty"`
	Err         *domain.ErrorInfo  `json:"error,omitempty"`
	Seq         uint64             `json:"seq"`
}

// Loading indica si hay una petición vigente en curso.
func (s State[T]) Loading() bool { return s.Status == StatusLoading }

// Items filas del último resultado exitoso (nil en otras variantes).
func (s State[T]) Items() []T {
	if s.Result == nil {
		return nil
	}
	return s.Result.Items
}

// ErrorMessage mensaje a mostrar en el panel de error ("" si no hay fallo).
func (s State[T]) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Message
}
