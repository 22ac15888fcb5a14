package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/domain"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
	"github.com/jhoicas/academia-admin/pkg/logger"
)

// SessionUseCase login, logout y sesión actual del operador.
type SessionUseCase struct {
	api   ports.AuthAPI
	store Store
	gate  *Gate
	log   *logger.Logger
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(api ports.AuthAPI, store Store, gate *Gate, log *logger.Logger) *SessionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SessionUseCase{api: api, store: store, gate: gate, log: log}
}

// Login autentica contra el backend y guarda la sesión: en el almacén durable si
// Remember, si no en el de sesión (el otro queda vacío).
func (uc *SessionUseCase) Login(ctx context.Context, in dto.LoginRequest) (*entity.Session, error) {
	in.Identifier = strings.TrimSpace(in.Identifier)
	if in.Identifier == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: usuario y contraseña son requeridos", domain.ErrInvalidInput)
	}
	data, err := uc.api.Login(ctx, in.Identifier, in.Password)
	if err != nil {
		uc.log.Warn().Err(err).Str("identifier", in.Identifier).Msg("login rechazado")
		return nil, err
	}
	sess := entity.Session{Token: data.Token, User: data.User}
	if err := uc.store.Save(ctx, sess, in.Remember); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}
	uc.log.Info().Str("user", data.User.Username).Bool("remember", in.Remember).Msg("sesión iniciada")
	return &sess, nil
}

// Logout borra ambos almacenes.
func (uc *SessionUseCase) Logout(ctx context.Context) error {
	if err := uc.store.Clear(ctx); err != nil {
		return fmt.Errorf("cerrar sesión: %w", err)
	}
	uc.log.Info().Msg("sesión cerrada")
	return nil
}

// Current decisión del Gate para la sesión guardada.
func (uc *SessionUseCase) Current(ctx context.Context) (Decision, error) {
	return uc.gate.Check(ctx)
}

// Gate acceso al Gate compartido.
func (uc *SessionUseCase) Gate() *Gate { return uc.gate }
