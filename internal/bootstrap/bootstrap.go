// Package bootstrap arma las dependencias compartidas por la consola y el CLI:
// almacenes de sesión, cliente REST, avisos y casos de uso.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/academia-admin/internal/application/analytics"
	"github.com/jhoicas/academia-admin/internal/application/auth"
	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/application/usecase"
	"github.com/jhoicas/academia-admin/internal/infrastructure/api"
	"github.com/jhoicas/academia-admin/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/academia-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/academia-admin/internal/infrastructure/tokenstore"
	"github.com/jhoicas/academia-admin/pkg/config"
	"github.com/jhoicas/academia-admin/pkg/logger"
)

const redisPingTimeout = 3 * time.Second

// Stack dependencias ya conectadas.
type Stack struct {
	Config *config.Config
	Log    *logger.Logger

	Store  *tokenstore.DualStore
	Gate   *auth.Gate
	Client *api.Client
	Feed   *notify.Feed

	Session     *auth.SessionUseCase
	Teachers    *usecase.TeacherUseCase
	Categories  *usecase.CategoryUseCase
	RedeemCodes *usecase.RedeemCodeUseCase
	Reviews     *usecase.ReviewUseCase
	Dashboard   *analytics.DashboardUseCase

	closers []func() error
}

// New conecta todo a partir de la configuración.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Stack, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &Stack{Config: cfg, Log: log}

	durable, err := s.durableStore(ctx)
	if err != nil {
		return nil, err
	}
	s.Store = tokenstore.NewDualStore(durable, tokenstore.NewMemoryStore())
	s.Gate = auth.NewGate(s.Store, auth.WithRedirectDelay(cfg.Auth.RedirectDelay))
	s.Client = api.NewClient(cfg.API.BaseURL, s.Store,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(log.Named("api")),
	)
	s.Feed = notify.NewFeed(notify.DefaultCapacity, log)

	s.Session = auth.NewSessionUseCase(s.Client, s.Store, s.Gate, log.Named("auth"))
	s.Teachers = usecase.NewTeacherUseCase(s.Client, s.Feed, log)
	s.Categories = usecase.NewCategoryUseCase(s.Client, s.Feed, log)
	s.RedeemCodes = usecase.NewRedeemCodeUseCase(s.Client, infrapdf.NewMarotoPDFGenerator(cfg.App.Name), s.Feed, log)
	s.Reviews = usecase.NewReviewUseCase(s.Client, s.Feed, log)
	s.Dashboard = analytics.NewDashboardUseCase(s.Client, s.Client, log)

	log.Debug().
		Str("api", cfg.API.BaseURL).
		Str("session_backend", cfg.Session.Backend).
		Msg("bootstrap: dependencias listas")
	return s, nil
}

// durableStore almacén "recordarme": archivo (sellado si hay clave) o Redis.
func (s *Stack) durableStore(ctx context.Context) (ports.TokenStore, error) {
	cfg := s.Config.Session
	switch cfg.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("bootstrap: conectar a Redis %s: %w", cfg.RedisAddr, err)
		}
		s.closers = append(s.closers, client.Close)
		return tokenstore.NewRedisStore(client), nil
	default:
		path, err := SessionPath(cfg.FilePath)
		if err != nil {
			return nil, err
		}
		if cfg.EncryptionKey == "" {
			s.Log.Warn().Str("path", path).Msg("bootstrap: sesión durable sin cifrar (SESSION_ENCRYPTION_KEY vacío)")
		}
		return tokenstore.NewFileStore(path, cfg.EncryptionKey), nil
	}
}

// SessionPath resuelve rutas relativas contra el directorio de configuración del usuario.
func SessionPath(p string) (string, error) {
	if p == "" {
		return "", errors.New("bootstrap: SESSION_FILE vacío")
	}
	if filepath.IsAbs(p) {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("bootstrap: directorio de configuración: %w", err)
	}
	return filepath.Join(dir, p), nil
}

// Close libera conexiones (Redis).
func (s *Stack) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
