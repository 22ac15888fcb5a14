package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/listing"
	"github.com/jhoicas/academia-admin/internal/domain"
)

// ListHandler expone un listing.Controller: la consola solo envía eventos (tecleo,
// página, reintento, borrado) y lee instantáneas.
type ListHandler[T, V any] struct {
	ctrl *listing.Controller[T]
	view func(T) V
	gate sessionChecker
}

// NewListHandler construye el handler; view transforma cada fila para la tabla.
func NewListHandler[T, V any](ctrl *listing.Controller[T], view func(T) V, gate sessionChecker) *ListHandler[T, V] {
	return &ListHandler[T, V]{ctrl: ctrl, view: view, gate: gate}
}

// Mount registra GET /, POST /search, POST /page, POST /retry y DELETE /:id.
func (h *ListHandler[T, V]) Mount(r fiber.Router) {
	r.Get("/", h.Snapshot)
	r.Post("/search", h.Search)
	r.Post("/page", h.Page)
	r.Post("/retry", h.Retry)
	r.Delete("/:id", h.Delete)
}

type searchBody struct {
	Input  string `json:"input"`
	Commit bool   `json:"commit"` // true = Enter, sin esperar el debounce
}

type pageBody struct {
	Page int `json:"page"`
}

// Snapshot GET: estado actual. La primera visita dispara la carga; ?wait=true espera
// a que no haya peticiones en vuelo.
func (h *ListHandler[T, V]) Snapshot(c *fiber.Ctx) error {
	if h.ctrl.Snapshot().Status == listing.StatusIdle {
		if err := h.ctrl.Load(); err != nil {
			return writeError(c, err)
		}
	}
	if c.QueryBool("wait") {
		h.ctrl.Wait()
	}
	return h.respond(c)
}

// Search POST {input, commit}: registra lo tecleado.
func (h *ListHandler[T, V]) Search(c *fiber.Ctx) error {
	var in searchBody
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.ctrl.SetSearchInput(in.Input); err != nil {
		return writeError(c, err)
	}
	if in.Commit {
		if err := h.ctrl.CommitSearch(); err != nil {
			return writeError(c, err)
		}
	}
	return h.respond(c)
}

// Page POST {page}.
func (h *ListHandler[T, V]) Page(c *fiber.Ctx) error {
	var in pageBody
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.ctrl.SetPage(in.Page); err != nil {
		return writeError(c, err)
	}
	return h.respond(c)
}

// Retry POST: botón "reintentar" del panel de error.
func (h *ListHandler[T, V]) Retry(c *fiber.Ctx) error {
	if err := h.ctrl.Retry(); err != nil {
		return writeError(c, err)
	}
	return h.respond(c)
}

// Delete DELETE /:id: borra y recarga la página actual.
func (h *ListHandler[T, V]) Delete(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return writeError(c, domain.ErrInvalidInput)
	}
	if err := h.ctrl.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return h.respond(c)
}

func (h *ListHandler[T, V]) respond(c *fiber.Ctx) error {
	st := h.ctrl.Snapshot()
	if st.Status == listing.StatusFailure && h.gate != nil {
		// un 401 del backend ya vació los almacenes: se muestra "sesión expirada"
		if d, err := h.gate.Check(c.Context()); err == nil && !d.Authenticated {
			return writeError(c, &domain.APIError{Kind: domain.KindUnauthenticated, Message: st.ErrorMessage()})
		}
	}
	return c.JSON(toSnapshot(st, h.view))
}

func toSnapshot[T, V any](st listing.State[T], view func(T) V) dto.ListSnapshot[V] {
	out := dto.ListSnapshot[V]{
		Status:      string(st.Status),
		Page:        st.Query.Page,
		Search:      st.Query.Search,
		SearchInput: st.SearchInput,
		Loading:     st.Loading(),
		Items:       make([]V, 0, len(st.Items())),
		Error:       st.Err,
	}
	for _, it := range st.Items() {
		out.Items = append(out.Items, view(it))
	}
	if st.Result != nil {
		meta := st.Result.Meta
		out.Meta = &meta
	}
	return out
}

// refetchable lo implementa *listing.Controller; lo usan los formularios tras guardar.
type refetchable interface {
	Refetch() error
}

// asRefetch evita envolver un controlador nil en una interfaz no nil.
func asRefetch[T any](c *listing.Controller[T]) refetchable {
	if c == nil {
		return nil
	}
	return c
}

// refetch recarga el listado; un controlador ya cerrado se ignora.
func refetch(r refetchable) {
	if r != nil {
		_ = r.Refetch()
	}
}
