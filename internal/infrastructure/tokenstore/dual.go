package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
)

var _ ports.TokenSource = (*DualStore)(nil)

// DualStore combina el almacén durable ("recordarme") y el de sesión.
// Como mucho uno de los dos tiene sesión: escribir en uno borra el otro.
// La lectura consulta primero el durable.
type DualStore struct {
	mu      sync.Mutex
	durable ports.TokenStore
	session ports.TokenStore
}

// NewDualStore construye el almacén combinado.
func NewDualStore(durable, session ports.TokenStore) *DualStore {
	return &DualStore{durable: durable, session: session}
}

// Save guarda la sesión en el almacén durable si remember, si no en el de sesión,
// y limpia el otro.
func (d *DualStore) Save(ctx context.Context, sess entity.Session, remember bool) error {
	if sess.Token == "" {
		return fmt.Errorf("tokenstore: token vacío")
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	target, other := d.session, d.durable
	if remember {
		target, other = d.durable, d.session
	}
	if err := other.Clear(ctx); err != nil {
		return err
	}
	return target.Set(ctx, sess)
}

// Get devuelve la sesión vigente (durable primero) o nil.
func (d *DualStore) Get(ctx context.Context) (*entity.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sess, err := d.durable.Get(ctx)
	if err != nil {
		return nil, err
	}
	if sess != nil {
		return sess, nil
	}
	return d.session.Get(ctx)
}

// Remembered indica si la sesión vigente está en el almacén durable.
func (d *DualStore) Remembered(ctx context.Context) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	sess, err := d.durable.Get(ctx)
	return sess != nil, err
}

// Clear vacía ambos almacenes; intenta los dos aunque uno falle.
func (d *DualStore) Clear(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return errors.Join(d.durable.Clear(ctx), d.session.Clear(ctx))
}

// Token implementa ports.TokenSource ("" si no hay sesión).
func (d *DualStore) Token(ctx context.Context) (string, error) {
	sess, err := d.Get(ctx)
	if err != nil || sess == nil {
		return "", err
	}
	return sess.Token, nil
}

// Invalidate implementa ports.TokenSource: un 401 limpia ambos almacenes, salvo que la
// sesión guardada ya no sea la del token rechazado (login posterior).
func (d *DualStore) Invalidate(ctx context.Context, token string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	sess, err := d.durable.Get(ctx)
	if err != nil {
		return err
	}
	if sess == nil {
		if sess, err = d.session.Get(ctx); err != nil {
			return err
		}
	}
	if sess == nil || sess.Token != token {
		return nil
	}
	return errors.Join(d.durable.Clear(ctx), d.session.Clear(ctx))
}
