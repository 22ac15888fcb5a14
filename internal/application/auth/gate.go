package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/academia-admin/internal/domain/entity"
	pkgjwt "github.com/jhoicas/academia-admin/pkg/jwt"
)

// Motivos de rechazo del Gate.
const (
	ReasonNoSession      = "no_session"
	ReasonExpired        = "expired"
	ReasonCookieMismatch = "cookie_mismatch"
)

// Store almacén combinado de sesión (ver tokenstore.DualStore).
type Store interface {
	Get(ctx context.Context) (*entity.Session, error)
	Save(ctx context.Context, s entity.Session, remember bool) error
	Clear(ctx context.Context) error
}

// Decision resultado de una verificación de acceso.
type Decision struct {
	Authenticated bool
	Reason        string
	User          entity.SessionUser
	Token         string
}

// Gate única fuente de verdad sobre si hay sesión. La consultan tanto la guarda del
// servidor (cookie) como las comprobaciones del lado cliente (controladores, CLI),
// así ambas no pueden discrepar.
type Gate struct {
	store         Store
	now           func() time.Time
	redirectDelay time.Duration
}

// GateOption configura el Gate.
type GateOption func(*Gate)

// WithClock reloj inyectable (tests).
func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) { g.now = now }
}

// WithRedirectDelay espera antes de redirigir al login en el chequeo inicial.
func WithRedirectDelay(d time.Duration) GateOption {
	return func(g *Gate) { g.redirectDelay = d }
}

// NewGate construye el Gate sobre el almacén combinado.
func NewGate(store Store, opts ...GateOption) *Gate {
	g := &Gate{store: store, now: time.Now, redirectDelay: 1500 * time.Millisecond}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RedirectDelay demora de la redirección automática.
func (g *Gate) RedirectDelay() time.Duration { return g.redirectDelay }

// Check verificación del lado cliente: hay token y, si es JWT, no expiró.
// Un token expirado se borra de ambos almacenes.
func (g *Gate) Check(ctx context.Context) (Decision, error) {
	sess, err := g.store.Get(ctx)
	if err != nil {
		return Decision{}, err
	}
	if sess == nil || sess.Token == "" {
		return Decision{Reason: ReasonNoSession}, nil
	}

	claims, err := pkgjwt.Inspect(sess.Token)
	switch {
	case errors.Is(err, pkgjwt.ErrNotJWT):
		// token opaco: solo el backend puede juzgarlo
	case err != nil:
		return Decision{}, err
	case claims.Expired(g.now()):
		if clearErr := g.store.Clear(ctx); clearErr != nil {
			return Decision{}, clearErr
		}
		return Decision{Reason: ReasonExpired}, nil
	}

	user := sess.User
	if claims != nil {
		if user.ID == "" {
			user.ID = claims.UserID
		}
		if user.Role == "" {
			user.Role = claims.Role
		}
		if user.Username == "" {
			user.Username = claims.Username
		}
	}
	return Decision{Authenticated: true, User: user, Token: sess.Token}, nil
}

// CheckCookie verificación de la guarda del servidor: además de Check, la cookie
// presentada debe coincidir con el token del almacén.
func (g *Gate) CheckCookie(ctx context.Context, cookie string) (Decision, error) {
	d, err := g.Check(ctx)
	if err != nil || !d.Authenticated {
		return d, err
	}
	if cookie == "" || cookie != d.Token {
		return Decision{Reason: ReasonCookieMismatch}, nil
	}
	return d, nil
}
