package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIBaseURL host usado cuando API_BASE_URL no está definido.
const DefaultAPIBaseURL = "https://api.academia-platform.com/api/v1"

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	HTTP    HTTPConfig
	Session SessionConfig
	List    ListConfig
	Auth    AuthConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// APIConfig backend REST de la plataforma.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// HTTPConfig configuración de la consola de operador.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SessionConfig almacenamiento del token.
// Backend "file" (por defecto) o "redis" para el almacén durable; el de sesión siempre es en memoria.
type SessionConfig struct {
	Backend       string
	FilePath      string
	EncryptionKey string // vacío = archivo en claro
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// ListConfig comportamiento de los listados paginados.
type ListConfig struct {
	Debounce time.Duration
}

// AuthConfig comportamiento del chequeo inicial de sesión.
type AuthConfig struct {
	RedirectDelay time.Duration
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, LIST_DEBOUNCE_MS, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración a partir de una instancia ya cargada.
// Separado de Load para poder inyectar valores en tests.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "academia-admin"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getString(v, "API_BASE_URL", DefaultAPIBaseURL), "/"),
			Timeout: time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		Session: SessionConfig{
			Backend:       strings.ToLower(getString(v, "SESSION_BACKEND", "file")),
			FilePath:      getString(v, "SESSION_FILE", ".academia-admin/session.json"),
			EncryptionKey: getString(v, "SESSION_ENCRYPTION_KEY", ""),
			RedisAddr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			RedisPassword: getString(v, "REDIS_PASSWORD", ""),
			RedisDB:       getInt(v, "REDIS_DB", 0),
		},
		List: ListConfig{
			Debounce: time.Duration(getInt(v, "LIST_DEBOUNCE_MS", 600)) * time.Millisecond,
		},
		Auth: AuthConfig{
			RedirectDelay: time.Duration(getInt(v, "AUTH_REDIRECT_DELAY_MS", 1500)) * time.Millisecond,
		},
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultAPIBaseURL
	}
	switch cfg.Session.Backend {
	case "file", "redis":
	default:
		return nil, fmt.Errorf("config: SESSION_BACKEND desconocido %q (file|redis)", cfg.Session.Backend)
	}
	if cfg.List.Debounce < 0 {
		return nil, fmt.Errorf("config: LIST_DEBOUNCE_MS no puede ser negativo")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
