package listing_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/listing"
	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeClock temporizador manual: los callbacks solo corren con Fire.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	mu      sync.Mutex
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (c *fakeClock) AfterFunc(_ time.Duration, f func()) listing.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{f: f}
	c.timers = append(c.timers, t)
	return t
}

// Active número de temporizadores pendientes.
func (c *fakeClock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		t.mu.Lock()
		if !t.stopped && !t.fired {
			n++
		}
		t.mu.Unlock()
	}
	return n
}

// Fire ejecuta los temporizadores pendientes (la ventana de debounce expiró).
func (c *fakeClock) Fire() {
	c.mu.Lock()
	var due []func()
	for _, t := range c.timers {
		t.mu.Lock()
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t.f)
		}
		t.mu.Unlock()
	}
	c.mu.Unlock()
	for _, f := range due {
		f()
	}
}

// Trigger marca el temporizador i como disparado y devuelve su callback sin ejecutarlo,
// como time.AfterFunc cuando la goroutine del callback ya arrancó.
func (c *fakeClock) Trigger(i int) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.timers[i]
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fired = true
	return t.f
}

type row struct{ ID string }

// recorder registra las consultas recibidas por el fetch.
type recorder struct {
	mu      sync.Mutex
	queries []dto.ListQuery
}

func (r *recorder) add(q dto.ListQuery) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
}

func (r *recorder) all() []dto.ListQuery {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]dto.ListQuery(nil), r.queries...)
}

func pageResult(q dto.ListQuery, n int) *dto.ListResult[row] {
	items := make([]row, n)
	return &dto.ListResult[row]{
		Items: items,
		Meta:  dto.PageMeta{CurrentPage: q.Page, TotalPages: 5, TotalItems: 42, ItemsPerPage: 10},
	}
}

func okFetch(rec *recorder) listing.FetchFunc[row] {
	return func(_ context.Context, q dto.ListQuery) (*dto.ListResult[row], error) {
		rec.add(q)
		return pageResult(q, 3), nil
	}
}

type notes struct {
	mu   sync.Mutex
	msgs []string
	lvls []ports.Level
}

func (n *notes) Notify(level ports.Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.lvls = append(n.lvls, level)
	n.msgs = append(n.msgs, message)
}

func (n *notes) count(level ports.Level) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, l := range n.lvls {
		if l == level {
			c++
		}
	}
	return c
}

// ──────────────────────────────────────────────────────────────────────────────
// Debounce y búsqueda
// ──────────────────────────────────────────────────────────────────────────────

func TestDebounce_VariasPulsacionesUnaSolaPeticion(t *testing.T) {
	rec := &recorder{}
	clock := &fakeClock{}
	c := listing.NewController(okFetch(rec), listing.WithAfterFunc(clock.AfterFunc))
	defer c.Close()

	require.NoError(t, c.Load())
	c.Wait()
	require.Len(t, rec.all(), 1)

	for _, s := range []string{"a", "an", "ana"} {
		require.NoError(t, c.SetSearchInput(s))
	}
	assert.Len(t, rec.all(), 1, "las pulsaciones no disparan peticiones")
	assert.Equal(t, 1, clock.Active(), "cada pulsación reinicia la misma ventana")
	assert.Equal(t, "ana", c.Snapshot().SearchInput)

	clock.Fire()
	c.Wait()

	qs := rec.all()
	require.Len(t, qs, 2)
	assert.Equal(t, dto.ListQuery{Page: 1, Search: "ana"}, qs[1])
}

func TestDebounce_CallbackViejoNoAdelantaLaBusqueda(t *testing.T) {
	rec := &recorder{}
	clock := &fakeClock{}
	c := listing.NewController(okFetch(rec), listing.WithAfterFunc(clock.AfterFunc))
	defer c.Close()

	require.NoError(t, c.Load())
	c.Wait()

	require.NoError(t, c.SetSearchInput("a"))
	late := clock.Trigger(0) // la ventana de "a" expiró pero el callback aún no tomó el lock
	require.NoError(t, c.SetSearchInput("ab"))

	late()
	c.Wait()
	assert.Len(t, rec.all(), 1, "el callback de una ventana superada no emite")
	assert.Equal(t, 1, clock.Active(), "la ventana de la última pulsación sigue armada")

	clock.Fire()
	c.Wait()
	qs := rec.all()
	require.Len(t, qs, 2)
	assert.Equal(t, dto.ListQuery{Page: 1, Search: "ab"}, qs[1])
}

func TestDebounce_RelojReal(t *testing.T) {
	rec := &recorder{}
	c := listing.NewController(okFetch(rec), listing.WithDebounce(40*time.Millisecond))
	defer c.Close()

	for _, s := range []string{"p", "pr", "pro", "prof"} {
		require.NoError(t, c.SetSearchInput(s))
	}

	assert.Eventually(t, func() bool { return len(rec.all()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(80 * time.Millisecond)
	c.Wait()

	qs := rec.all()
	require.Len(t, qs, 1)
	assert.Equal(t, "prof", qs[0].Search)
}

func TestBusquedaNueva_ReiniciaPagina(t *testing.T) {
	rec := &recorder{}
	clock := &fakeClock{}
	c := listing.NewController(okFetch(rec), listing.WithAfterFunc(clock.AfterFunc))
	defer c.Close()

	require.NoError(t, c.Load())
	require.NoError(t, c.SetPage(4))
	c.Wait()

	require.NoError(t, c.SetSearchInput("mat"))
	clock.Fire()
	c.Wait()

	qs := rec.all()
	last := qs[len(qs)-1]
	assert.Equal(t, dto.ListQuery{Page: 1, Search: "mat"}, last)
	for _, q := range qs {
		if q.Search == "mat" {
			assert.Equal(t, 1, q.Page, "nunca se combina una página vieja con un término nuevo")
		}
	}
}

func TestBusquedaIgual_NoRepitePeticion(t *testing.T) {
	rec := &recorder{}
	clock := &fakeClock{}
	c := listing.NewController(okFetch(rec), listing.WithAfterFunc(clock.AfterFunc))
	defer c.Close()

	require.NoError(t, c.SetSearchInput("ana"))
	clock.Fire()
	c.Wait()
	require.NoError(t, c.SetPage(2))
	c.Wait()

	require.NoError(t, c.SetSearchInput("  ana "))
	clock.Fire()
	c.Wait()

	qs := rec.all()
	require.Len(t, qs, 2)
	assert.Equal(t, 2, c.Snapshot().Query.Page, "el mismo término asentado no reinicia la página")
}

func TestCommitSearch_SinEsperarVentana(t *testing.T) {
	rec := &recorder{}
	clock := &fakeClock{}
	c := listing.NewController(okFetch(rec), listing.WithAfterFunc(clock.AfterFunc))
	defer c.Close()

	require.NoError(t, c.SetSearchInput("física"))
	require.NoError(t, c.CommitSearch())
	c.Wait()
	assert.Zero(t, clock.Active())
	require.Len(t, rec.all(), 1)
	assert.Equal(t, "física", rec.all()[0].Search)
}

func TestNormalizeSearch(t *testing.T) {
	assert.Equal(t, "Ana María", listing.NormalizeSearch("  Ana   María "))
	assert.Equal(t, "José", listing.NormalizeSearch("José"), "composición NFC")
	assert.Equal(t, "", listing.NormalizeSearch("   "))
}

// ──────────────────────────────────────────────────────────────────────────────
// Paginación y orden de respuestas
// ──────────────────────────────────────────────────────────────────────────────

func TestSetPage_SiempreGanaLaUltima(t *testing.T) {
	rec := &recorder{}
	c := listing.NewController(okFetch(rec))
	defer c.Close()

	for _, p := range []int{2, 5, 3, 3, 1, 4} {
		require.NoError(t, c.SetPage(p))
	}
	c.Wait()

	s := c.Snapshot()
	assert.Equal(t, listing.StatusSuccess, s.Status)
	assert.Equal(t, 4, s.Query.Page)
	assert.Equal(t, 4, s.Result.Meta.CurrentPage)
}

func TestWait_VariosEsperandoMientrasSeEmite(t *testing.T) {
	release := make(chan struct{})
	fetch := func(_ context.Context, q dto.ListQuery) (*dto.ListResult[row], error) {
		<-release
		return pageResult(q, 1), nil
	}
	c := listing.NewController[row](fetch)
	defer c.Close()

	var waiters sync.WaitGroup
	for i := 0; i < 3; i++ {
		waiters.Add(1)
		go func() {
			defer waiters.Done()
			c.Wait()
		}()
	}
	require.NoError(t, c.Load())
	require.NoError(t, c.SetPage(2))
	close(release)

	waiters.Wait()
	c.Wait()
	s := c.Snapshot()
	assert.Equal(t, listing.StatusSuccess, s.Status)
	assert.Equal(t, 2, s.Query.Page)
}

func TestSetPage_Invalida(t *testing.T) {
	c := listing.NewController(okFetch(&recorder{}))
	defer c.Close()
	err := c.SetPage(0)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, listing.StatusIdle, c.Snapshot().Status)
}

func TestRespuestaLentaObsoleta_SeDescarta(t *testing.T) {
	release := map[int]chan struct{}{2: make(chan struct{}), 3: make(chan struct{})}
	started := make(chan int, 2)
	fetch := func(_ context.Context, q dto.ListQuery) (*dto.ListResult[row], error) {
		started <- q.Page
		<-release[q.Page]
		return pageResult(q, q.Page), nil
	}
	c := listing.NewController[row](fetch)
	defer c.Close()

	require.NoError(t, c.SetPage(2)) // Q1 lenta
	<-started
	require.NoError(t, c.SetPage(3)) // Q2 posterior
	<-started

	close(release[3]) // Q2 termina primero
	assert.Eventually(t, func() bool { return c.Snapshot().Status == listing.StatusSuccess }, time.Second, time.Millisecond)

	close(release[2]) // Q1 termina después
	c.Wait()

	s := c.Snapshot()
	assert.Equal(t, listing.StatusSuccess, s.Status)
	assert.Equal(t, 3, s.Query.Page)
	assert.Len(t, s.Items(), 3, "el estado final refleja Q2, nunca Q1")
}

func TestEscenario_Pagina2De5(t *testing.T) {
	rec := &recorder{}
	fetch := func(_ context.Context, q dto.ListQuery) (*dto.ListResult[row], error) {
		rec.add(q)
		return &dto.ListResult[row]{
			Items: []row{{"1"}, {"2"}, {"3"}},
			Meta:  dto.PageMeta{CurrentPage: 2, TotalPages: 5, TotalItems: 42, ItemsPerPage: 10},
		}, nil
	}
	c := listing.NewController[row](fetch, listing.WithDebounce(0))
	defer c.Close()

	require.NoError(t, c.SetSearchInput("ana"))
	require.NoError(t, c.SetPage(2))
	c.Wait()

	assert.Contains(t, rec.all(), dto.ListQuery{Page: 2, Search: "ana"})
	s := c.Snapshot()
	assert.Equal(t, listing.StatusSuccess, s.Status)
	assert.Equal(t, dto.ListQuery{Page: 2, Search: "ana"}, s.Query)
	assert.Len(t, s.Items(), 3)
	assert.Equal(t, 2, s.Result.Meta.CurrentPage)
	assert.Equal(t, 5, s.Result.Meta.TotalPages)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos, reintento y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestFallo_SinReintentoAutomatico(t *testing.T) {
	var mu sync.Mutex
	calls, fail := 0, true
	fetch := func(_ context.Context, q dto.ListQuery) (*dto.ListResult[row], error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if fail {
			return nil, &domain.APIError{Kind: domain.KindServer, Message: "error interno", StatusCode: http.StatusInternalServerError}
		}
		return pageResult(q, 1), nil
	}
	n := &notes{}
	c := listing.NewController[row](fetch, listing.WithNotifier(n))
	defer c.Close()

	require.NoError(t, c.Load())
	c.Wait()

	s := c.Snapshot()
	assert.Equal(t, listing.StatusFailure, s.Status)
	assert.Equal(t, "error interno", s.ErrorMessage())
	assert.Equal(t, http.StatusInternalServerError, s.Err.StatusCode)
	assert.Nil(t, s.Result)
	assert.Equal(t, 1, n.count(ports.LevelError))

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, 1, calls, "no hay reintento automático")
	fail = false
	mu.Unlock()

	require.NoError(t, c.Retry())
	c.Wait()
	s = c.Snapshot()
	assert.Equal(t, listing.StatusSuccess, s.Status)
	assert.Nil(t, s.Err, "el error se descarta con el siguiente éxito")
}

func TestFallo_NoAutenticadoAvisa(t *testing.T) {
	fetch := func(context.Context, dto.ListQuery) (*dto.ListResult[row], error) {
		return nil, &domain.APIError{Kind: domain.KindUnauthenticated, Message: "sesión expirada", StatusCode: 401}
	}
	redirected := make(chan struct{}, 1)
	c := listing.NewController[row](fetch, listing.WithUnauthorized(func() { redirected <- struct{}{} }))
	defer c.Close()

	require.NoError(t, c.Load())
	select {
	case <-redirected:
	case <-time.After(time.Second):
		t.Fatal("se esperaba el aviso de sesión no válida")
	}
}

func TestDelete_RecargaLaPaginaActual(t *testing.T) {
	rec := &recorder{}
	var deleted []string
	n := &notes{}
	c := listing.NewController(okFetch(rec),
		listing.WithNotifier(n),
		listing.WithDelete(func(_ context.Context, id string) error {
			deleted = append(deleted, id)
			return nil
		}),
	)
	defer c.Close()

	require.NoError(t, c.SetPage(2))
	c.Wait()
	require.NoError(t, c.Delete(context.Background(), "t-7"))
	c.Wait()

	qs := rec.all()
	require.Len(t, qs, 2)
	assert.Equal(t, qs[0], qs[1], "recarga la misma consulta")
	assert.Equal(t, []string{"t-7"}, deleted)
	assert.Equal(t, 1, n.count(ports.LevelSuccess))
}

func TestDelete_FalloNoRecarga(t *testing.T) {
	rec := &recorder{}
	n := &notes{}
	c := listing.NewController(okFetch(rec),
		listing.WithNotifier(n),
		listing.WithDelete(func(context.Context, string) error {
			return &domain.APIError{Kind: domain.KindApplication, Message: "tiene cursos activos"}
		}),
	)
	defer c.Close()

	require.NoError(t, c.Load())
	c.Wait()
	assert.Error(t, c.Delete(context.Background(), "t-1"))
	c.Wait()
	assert.Len(t, rec.all(), 1)
	assert.Equal(t, 1, n.count(ports.LevelError))
}

func TestDelete_SinFuncion(t *testing.T) {
	c := listing.NewController(okFetch(&recorder{}))
	defer c.Close()
	assert.Error(t, c.Delete(context.Background(), "x"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Suscripción y cierre
// ──────────────────────────────────────────────────────────────────────────────

func TestSubscribe_RecibeTransiciones(t *testing.T) {
	c := listing.NewController(okFetch(&recorder{}))
	ch, unsubscribe := c.Subscribe()
	defer unsubscribe()

	first := <-ch
	assert.Equal(t, listing.StatusIdle, first.Status)

	require.NoError(t, c.Load())
	c.Wait()

	var last listing.State[row]
	assert.Eventually(t, func() bool {
		select {
		case last = <-ch:
		default:
		}
		return last.Status == listing.StatusSuccess
	}, time.Second, time.Millisecond)

	c.Close()
	for range ch {
		// drena el último valor; el bucle termina porque Close cierra el canal
	}

}

func TestClose_RechazaEventos(t *testing.T) {
	c := listing.NewController(okFetch(&recorder{}))
	c.Close()
	c.Close()
	assert.ErrorIs(t, c.Load(), listing.ErrClosed)
	assert.ErrorIs(t, c.SetSearchInput("x"), listing.ErrClosed)
}
