package ports

import (
	"context"

	"github.com/jhoicas/academia-admin/internal/domain/entity"
)

// TokenStore almacén de la sesión (token + metadatos de usuario).
// Get devuelve (nil, nil) si no hay sesión guardada.
type TokenStore interface {
	Get(ctx context.Context) (*entity.Session, error)
	Set(ctx context.Context, s entity.Session) error
	Clear(ctx context.Context) error
}

// TokenSource lectura mínima que necesitan los clientes HTTP: el token vigente y
// la forma de invalidarlo tras un 401. Invalidate recibe el token con el que se hizo
// la petición y no toca una sesión más nueva.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate(ctx context.Context, token string) error
}
