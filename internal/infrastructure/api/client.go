// Package api implementa los clientes HTTP del backend REST de la plataforma.
//
// Cada función de recurso adjunta el token Bearer, ejecuta la petición y normaliza
// cualquier fallo en un *domain.APIError (ver errors.go). Usa net/http de la stdlib.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/domain"
	"github.com/jhoicas/academia-admin/pkg/logger"
)

// maxBodyBytes límite de lectura del cuerpo de respuesta.
const maxBodyBytes = 1 << 20

// Option configura el Client.
type Option func(*Client)

// WithHTTPClient usa un *http.Client propio (tests, transportes con proxy).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout fija el timeout de red.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger inyecta el logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// Client cliente del backend. Es seguro para uso concurrente.
type Client struct {
	baseURL    string
	tokens     ports.TokenSource
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente. tokens resuelve el token en cada petición
// (nunca se cachea entre llamadas) y se invalida ante un 401.
func NewClient(baseURL string, tokens ports.TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request describe una llamada al backend.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	public bool // sin Authorization (login)
}

// do ejecuta la petición y devuelve el cuerpo de una respuesta 2xx.
// Cualquier otro resultado sale como *domain.APIError.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	var token string
	if !r.public {
		tok, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, &domain.APIError{Kind: domain.KindUnauthenticated, Message: "no se pudo leer la sesión", Err: err}
		}
		if tok == "" {
			return nil, &domain.APIError{Kind: domain.KindUnauthenticated, Message: "no hay una sesión activa"}
		}
		token = tok
	}

	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var reader io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("api: serializar request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("api: crear HTTP request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", r.method).Str("path", r.path).Str("request_id", requestID).Msg("api: fallo de red")
		return nil, networkError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, networkError(ctx, err)
	}

	c.log.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", requestID).
		Msg("api: respuesta")

	if resp.StatusCode == http.StatusUnauthorized && !r.public {
		if invErr := c.tokens.Invalidate(ctx, token); invErr != nil {
			c.log.Error().Err(invErr).Msg("api: limpiar sesión tras 401")
		}
		return nil, statusError(resp.StatusCode, raw)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := statusError(resp.StatusCode, raw)
		c.log.Warn().Str("kind", string(apiErr.Kind)).Int("status", resp.StatusCode).Str("path", r.path).Msg("api: respuesta de error")
		return nil, apiErr
	}
	return raw, nil
}

// listQuery construye page/search; search se omite si está vacío.
func listQuery(q dto.ListQuery) url.Values {
	q = q.Normalize()
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("search", s)
	}
	return v
}

// getList GET de un listado paginado y transformación de cada registro.
func getList[R any, T any](ctx context.Context, c *Client, path string, q dto.ListQuery, transform func(R) T) (*dto.ListResult[T], error) {
	raw, err := c.do(ctx, request{method: http.MethodGet, path: path, query: listQuery(q)})
	if err != nil {
		return nil, err
	}
	records, meta, err := decodeList[R](raw)
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, len(records))
	for _, rec := range records {
		items = append(items, transform(rec))
	}
	return &dto.ListResult[T]{Items: items, Meta: meta}, nil
}

// sendItem mutación de un recurso; devuelve nil si el backend responde data:null.
func sendItem[R any, T any](ctx context.Context, c *Client, method, path string, body any, transform func(R) T) (*T, error) {
	raw, err := c.do(ctx, request{method: method, path: path, body: body})
	if err != nil {
		return nil, err
	}
	rec, err := decodeItem[R](raw)
	if err != nil || rec == nil {
		return nil, err
	}
	out := transform(*rec)
	return &out, nil
}

// mustSendItem como sendItem pero exige data no nulo.
func mustSendItem[R any, T any](ctx context.Context, c *Client, method, path string, body any, transform func(R) T) (*T, error) {
	item, err := sendItem(ctx, c, method, path, body, transform)
	return requireItem(item, err)
}

// requireItem convierte un data:null inesperado en InvalidResponse.
func requireItem[T any](item *T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, invalidResponse("falta el campo data", nil)
	}
	return item, nil
}

func resourcePath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}
