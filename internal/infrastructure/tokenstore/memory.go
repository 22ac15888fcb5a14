// Package tokenstore implementa los almacenes de sesión: uno de sesión (memoria del proceso)
// y uno durable (archivo local o Redis), combinados por DualStore.
package tokenstore

import (
	"context"
	"sync"

	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
)

var _ ports.TokenStore = (*MemoryStore)(nil)

// MemoryStore almacén con alcance de sesión: vive lo que vive el proceso.
type MemoryStore struct {
	mu      sync.RWMutex
	session *entity.Session
}

// NewMemoryStore construye un almacén vacío.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Get devuelve una copia de la sesión guardada o nil.
func (s *MemoryStore) Get(_ context.Context) (*entity.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, nil
	}
	cp := *s.session
	return &cp, nil
}

// Set reemplaza la sesión.
func (s *MemoryStore) Set(_ context.Context, sess entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &sess
	return nil
}

// Clear borra la sesión.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}
