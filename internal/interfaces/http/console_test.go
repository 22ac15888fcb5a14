package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/academia-admin/internal/application/analytics"
	"github.com/jhoicas/academia-admin/internal/application/auth"
	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/listing"
	"github.com/jhoicas/academia-admin/internal/application/usecase"
	"github.com/jhoicas/academia-admin/internal/domain"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
	"github.com/jhoicas/academia-admin/internal/infrastructure/notify"
	"github.com/jhoicas/academia-admin/internal/infrastructure/tokenstore"
	apphttp "github.com/jhoicas/academia-admin/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/academia-admin/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Backend simulado
// ──────────────────────────────────────────────────────────────────────────────

const testJWTSecret = "test-secret-key-for-unit-tests"

// fakeBackend implementa todos los puertos del backend REST.
type fakeBackend struct {
	mu           sync.Mutex
	role         string
	token        string
	teachers     []entity.Teacher
	queries      []dto.ListQuery
	createErr    error
	statsErr     error
	unauthorized bool // la próxima lista responde 401 y vacía la sesión
	store        *tokenstore.DualStore
}

func (b *fakeBackend) Login(_ context.Context, identifier, password string) (*dto.LoginData, error) {
	if password != "secreta123" {
		return nil, &domain.APIError{Kind: domain.KindUnauthenticated, StatusCode: 401, Message: "credenciales inválidas"}
	}
	return &dto.LoginData{Token: b.token, User: entity.SessionUser{ID: "u-1", Username: identifier, Role: b.role}}, nil
}

func (b *fakeBackend) ListTeachers(ctx context.Context, q dto.ListQuery) (*dto.ListResult[entity.Teacher], error) {
	b.mu.Lock()
	b.queries = append(b.queries, q)
	unauthorized := b.unauthorized
	items := append([]entity.Teacher(nil), b.teachers...)
	b.mu.Unlock()
	if unauthorized {
		_ = b.store.Invalidate(ctx, b.token)
		return nil, &domain.APIError{Kind: domain.KindUnauthenticated, StatusCode: 401, Message: "token expirado"}
	}
	return &dto.ListResult[entity.Teacher]{
		Items: items,
		Meta:  dto.PageMeta{CurrentPage: q.Page, TotalPages: 5, TotalItems: 50, ItemsPerPage: 10},
	}, nil
}

func (b *fakeBackend) CreateTeacher(_ context.Context, in dto.TeacherInput) (*entity.Teacher, error) {
	if b.createErr != nil {
		return nil, b.createErr
	}
	return &entity.Teacher{ID: "t-new", FullName: in.FullName, Email: in.Email}, nil
}

func (b *fakeBackend) UpdateTeacher(_ context.Context, id string, in dto.TeacherInput) (*entity.Teacher, error) {
	return &entity.Teacher{ID: id, FullName: in.FullName}, nil
}

func (b *fakeBackend) DeleteTeacher(context.Context, string) error { return nil }

func (b *fakeBackend) ListCategories(_ context.Context, q dto.ListQuery) (*dto.ListResult[entity.Category], error) {
	return &dto.ListResult[entity.Category]{Meta: dto.PageMeta{CurrentPage: q.Page}}, nil
}

func (b *fakeBackend) CreateCategory(_ context.Context, in dto.CategoryInput) (*entity.Category, error) {
	return &entity.Category{ID: "c-1", Name: in.Name}, nil
}

func (b *fakeBackend) UpdateCategory(_ context.Context, id string, in dto.CategoryInput) (*entity.Category, error) {
	return &entity.Category{ID: id, Name: in.Name}, nil
}

func (b *fakeBackend) DeleteCategory(context.Context, string) error { return nil }

func (b *fakeBackend) ListRedeemCodes(_ context.Context, q dto.ListQuery) (*dto.ListResult[entity.RedeemCode], error) {
	return &dto.ListResult[entity.RedeemCode]{
		Items: []entity.RedeemCode{{ID: "r-1", Code: "PROMO", Active: true}},
		Meta:  dto.PageMeta{CurrentPage: q.Page, TotalPages: 1, TotalItems: 1, ItemsPerPage: 10},
	}, nil
}

func (b *fakeBackend) CreateRedeemCodes(_ context.Context, in dto.RedeemCodeInput) ([]entity.RedeemCode, error) {
	return make([]entity.RedeemCode, in.Quantity), nil
}

func (b *fakeBackend) DeleteRedeemCode(context.Context, string) error { return nil }

func (b *fakeBackend) ListReviews(_ context.Context, q dto.ListQuery) (*dto.ListResult[entity.Review], error) {
	return &dto.ListResult[entity.Review]{Meta: dto.PageMeta{CurrentPage: q.Page}}, nil
}

func (b *fakeBackend) ApproveReview(_ context.Context, id string) (*entity.Review, error) {
	return &entity.Review{ID: id, Approved: true}, nil
}

func (b *fakeBackend) DeleteReview(context.Context, string) error { return nil }

func (b *fakeBackend) GetStats(context.Context) (*entity.DashboardStats, error) {
	if b.statsErr != nil {
		return nil, b.statsErr
	}
	return &entity.DashboardStats{TotalTeachers: 12}, nil
}

func (b *fakeBackend) GenerateRedeemCodesPDF(_ context.Context, _ string, codes []entity.RedeemCode) ([]byte, error) {
	return []byte("%PDF-1.3 fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type console struct {
	app   *fiber.App
	be    *fakeBackend
	store *tokenstore.DualStore
	feed  *notify.Feed
}

func newConsole(t *testing.T, be *fakeBackend) *console {
	t.Helper()
	if be.role == "" {
		be.role = "admin"
	}
	if be.token == "" {
		be.token = "opaque-token-1"
	}
	store := tokenstore.NewDualStore(tokenstore.NewMemoryStore(), tokenstore.NewMemoryStore())
	be.store = store
	gate := auth.NewGate(store, auth.WithRedirectDelay(1500*time.Millisecond))
	feed := notify.NewFeed(20, nil)

	teachers := usecase.NewTeacherUseCase(be, feed, nil)
	categories := usecase.NewCategoryUseCase(be, feed, nil)
	codes := usecase.NewRedeemCodeUseCase(be, be, feed, nil)
	reviews := usecase.NewReviewUseCase(be, feed, nil)
	lists := apphttp.NewLists(teachers, categories, codes, reviews, listing.WithDebounce(0))
	t.Cleanup(lists.Close)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Session:     auth.NewSessionUseCase(be, store, gate, nil),
		Teachers:    teachers,
		Categories:  categories,
		RedeemCodes: codes,
		Reviews:     reviews,
		Dashboard:   analytics.NewDashboardUseCase(be, be, nil),
		Feed:        feed,
		Lists:       lists,
		AppName:     "academia-admin-test",
	})
	return &console{app: app, be: be, store: store, feed: feed}
}

func (c *console) do(t *testing.T, method, path string, body any, cookie string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: apphttp.CookieName, Value: cookie})
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// login inicia sesión y devuelve el valor de la cookie.
func (c *console) login(t *testing.T, remember bool) string {
	t.Helper()
	resp := c.do(t, http.MethodPost, "/console/login", dto.LoginRequest{Identifier: "admin", Password: "secreta123", Remember: remember}, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, ck := range resp.Cookies() {
		if ck.Name == apphttp.CookieName {
			return ck.Value
		}
	}
	t.Fatal("login sin cookie de sesión")
	return ""
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión y guarda
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_SinSesionRedirigeTrasDemora(t *testing.T) {
	c := newConsole(t, &fakeBackend{})
	resp := c.do(t, http.MethodGet, "/console/session", nil, "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "1.5;url=/console/login", resp.Header.Get("Refresh"))
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "login", body["action"])
	assert.Equal(t, float64(1500), body["redirectAfterMs"])
}

func TestGuard_SinCookieResponde401ConAccionLogin(t *testing.T) {
	c := newConsole(t, &fakeBackend{})
	resp := c.do(t, http.MethodGet, "/console/teachers", nil, "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apphttp.LoginPath, resp.Header.Get("Location"))
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NO_SESSION", body.Code)
	assert.Equal(t, "login", body.Action)
}

func TestGuard_CookieQueNoCoincideConElAlmacen(t *testing.T) {
	c := newConsole(t, &fakeBackend{})
	c.login(t, false)

	resp := c.do(t, http.MethodGet, "/console/teachers", nil, "cookie-vieja")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGuard_JWTExpiradoVaciaLaSesion(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "u-1", "admin", "admin", "test", -1)
	require.NoError(t, err)
	c := newConsole(t, &fakeBackend{token: tok})
	cookie := c.login(t, true)

	resp := c.do(t, http.MethodGet, "/console/dashboard", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_EXPIRED", decode[dto.ErrorResponse](t, resp).Code)

	sess, err := c.store.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestRequireRole_NoAdminBloqueado(t *testing.T) {
	c := newConsole(t, &fakeBackend{role: "teacher"})
	cookie := c.login(t, false)

	resp := c.do(t, http.MethodGet, "/console/dashboard", nil, cookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decode[dto.ErrorResponse](t, resp).Code)
}

func TestRequireRole_SinRol_Retorna401(t *testing.T) {
	app := fiber.New()
	app.Get("/x", apphttp.RequireRole("admin"), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_ROLE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	c := newConsole(t, &fakeBackend{})
	resp := c.do(t, http.MethodPost, "/console/login", dto.LoginRequest{Identifier: "admin", Password: "mal"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decode[dto.ErrorResponse](t, resp).Code)
}

func TestLogout_VaciaSesion(t *testing.T) {
	c := newConsole(t, &fakeBackend{})
	cookie := c.login(t, true)

	resp := c.do(t, http.MethodPost, "/console/logout", nil, cookie)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = c.do(t, http.MethodGet, "/console/session", nil, cookie)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestTeachers_PrimeraVisitaCargaPagina1(t *testing.T) {
	c := newConsole(t, &fakeBackend{teachers: []entity.Teacher{{ID: "t-1", FullName: "Ana"}}})
	cookie := c.login(t, false)

	resp := c.do(t, http.MethodGet, "/console/teachers?wait=true", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[dto.ListSnapshot[dto.TeacherView]](t, resp)

	assert.Equal(t, "success", snap.Status)
	assert.Equal(t, 1, snap.Page)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "Ana", snap.Items[0].FullName)
	require.NotNil(t, snap.Meta)
	assert.Equal(t, 5, snap.Meta.TotalPages)
}

func TestTeachers_BuscarYPaginar(t *testing.T) {
	be := &fakeBackend{}
	c := newConsole(t, be)
	cookie := c.login(t, false)

	resp := c.do(t, http.MethodPost, "/console/teachers/page", map[string]int{"page": 3}, cookie)
	resp.Body.Close()
	resp = c.do(t, http.MethodPost, "/console/teachers/search", map[string]any{"input": "  ana  ", "commit": true}, cookie)
	resp.Body.Close()

	resp = c.do(t, http.MethodGet, "/console/teachers?wait=true", nil, cookie)
	snap := decode[dto.ListSnapshot[dto.TeacherView]](t, resp)
	assert.Equal(t, "ana", snap.Search)
	assert.Equal(t, 1, snap.Page, "un término nuevo vuelve a la página 1")

	be.mu.Lock()
	queries := append([]dto.ListQuery(nil), be.queries...)
	be.mu.Unlock()
	assert.Contains(t, queries, dto.ListQuery{Page: 1, Search: "ana"})
	assert.Contains(t, queries, dto.ListQuery{Page: 3})
}

func TestTeachers_PaginaInvalida(t *testing.T) {
	c := newConsole(t, &fakeBackend{})
	cookie := c.login(t, false)

	resp := c.do(t, http.MethodPost, "/console/teachers/page", map[string]int{"page": 0}, cookie)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTeachers_401DelBackendMuestraSesionExpirada(t *testing.T) {
	be := &fakeBackend{unauthorized: true}
	c := newConsole(t, be)
	cookie := c.login(t, false)

	resp := c.do(t, http.MethodGet, "/console/teachers?wait=true", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "SESSION_EXPIRED", body.Code)
	assert.Equal(t, "login", body.Action)
}

// ──────────────────────────────────────────────────────────────────────────────
// Formularios
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateTeacher_ErrorDeCampoDelBackend(t *testing.T) {
	be := &fakeBackend{createErr: &domain.APIError{
		Kind: domain.KindApplication, StatusCode: 422, Message: "Validation failed",
		FieldErrors: map[string][]string{"email": {"already taken"}},
	}}
	c := newConsole(t, be)
	cookie := c.login(t, false)

	in := dto.TeacherInput{FullName: "Ana", Username: "ana", Email: "ana@example.com", Password: "secreta123"}
	resp := c.do(t, http.MethodPost, "/console/teachers", in, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decode[dto.FormResponse](t, resp)
	assert.Equal(t, "already taken", body.Fields["email"])
	assert.Equal(t, "Validation failed", body.Banner)
}

func TestCreateTeacher_OKNotifica(t *testing.T) {
	c := newConsole(t, &fakeBackend{})
	cookie := c.login(t, false)

	in := dto.TeacherInput{FullName: "Ana", Username: "ana", Email: "ana@example.com", Password: "secreta123"}
	resp := c.do(t, http.MethodPost, "/console/teachers", in, cookie)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	view := decode[dto.TeacherView](t, resp)
	assert.Equal(t, "t-new", view.ID)

	resp = c.do(t, http.MethodGet, "/console/notifications", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	feed := decode[struct {
		Items []notify.Notification `json:"items"`
	}](t, resp)
	require.NotEmpty(t, feed.Items)
	assert.Equal(t, "Profesor creado", feed.Items[0].Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard, PDF, salud
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_FalloSinDatosDeMuestra(t *testing.T) {
	c := newConsole(t, &fakeBackend{statsErr: &domain.APIError{Kind: domain.KindServer, StatusCode: 500, Message: "boom"}})
	cookie := c.login(t, false)

	resp := c.do(t, http.MethodGet, "/console/dashboard", nil, cookie)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "UPSTREAM_ERROR", decode[dto.ErrorResponse](t, resp).Code)
}

func TestDashboard_OK(t *testing.T) {
	c := newConsole(t, &fakeBackend{})
	cookie := c.login(t, false)

	resp := c.do(t, http.MethodGet, "/console/dashboard", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 12, decode[dto.DashboardView](t, resp).TotalTeachers)
}

func TestExportRedeemCodes_PDF(t *testing.T) {
	c := newConsole(t, &fakeBackend{})
	cookie := c.login(t, false)

	resp := c.do(t, http.MethodGet, "/console/redeem-codes/export.pdf", nil, cookie)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestHealth(t *testing.T) {
	c := newConsole(t, &fakeBackend{})
	resp := c.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[map[string]string](t, resp)["status"])
}
