package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/domain"
	"github.com/jhoicas/academia-admin/pkg/logger"
)

// DefaultDebounce ventana de inactividad antes de asentar la búsqueda.
const DefaultDebounce = 600 * time.Millisecond

// FetchFunc consulta una página del recurso.
type FetchFunc[T any] func(ctx context.Context, q dto.ListQuery) (*dto.ListResult[T], error)

// DeleteFunc elimina un elemento por ID.
type DeleteFunc func(ctx context.Context, id string) error

// ErrClosed el controlador ya fue cerrado.
var ErrClosed = errors.New("listing: controlador cerrado")

// Option configura el Controller.
type Option func(*config)

type config struct {
	debounce       time.Duration
	afterFunc      AfterFunc
	notifier       ports.Notifier
	remove         DeleteFunc
	onUnauthorized func()
	log            *logger.Logger
	name           string
}

// WithDebounce cambia la ventana de búsqueda diferida (0 = asentar de inmediato).
func WithDebounce(d time.Duration) Option {
	return func(c *config) { c.debounce = d }
}

// WithAfterFunc reemplaza el temporizador (tests).
func WithAfterFunc(f AfterFunc) Option {
	return func(c *config) { c.afterFunc = f }
}

// WithNotifier canal de avisos transitorios para fallos y borrados.
func WithNotifier(n ports.Notifier) Option {
	return func(c *config) { c.notifier = n }
}

// WithDelete habilita Delete.
func WithDelete(f DeleteFunc) Option {
	return func(c *config) { c.remove = f }
}

// WithUnauthorized callback ante un fallo Unauthenticated (p.ej. redirigir a login).
func WithUnauthorized(f func()) Option {
	return func(c *config) { c.onUnauthorized = f }
}

// WithLogger inyecta el logger; name identifica el listado en los logs.
func WithLogger(l *logger.Logger, name string) Option {
	return func(c *config) { c.log, c.name = l, name }
}

// Controller estado de un listado paginado con búsqueda diferida.
//
// Cada petición lleva un número de secuencia creciente; al completarse solo se aplica
// si sigue siendo la última emitida, así una respuesta lenta de una consulta vieja
// nunca pisa a una más reciente. Las peticiones superadas no se cancelan.
type Controller[T any] struct {
	cfg   config
	fetch FetchFunc[T]

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	idle        *sync.Cond // señal inFlight == 0
	inFlight    int
	inputGen    uint64 // cambia con cada pulsación; invalida callbacks de ventanas anteriores
	state       State[T]
	page        int
	searchInput string
	debounced   string
	seq         uint64
	timer       Timer
	subs        map[chan State[T]]struct{}
	closed      bool
}

// NewController construye el controlador en estado Idle, página 1, sin búsqueda.
func NewController[T any](fetch FetchFunc[T], opts ...Option) *Controller[T] {
	cfg := config{
		debounce:  DefaultDebounce,
		afterFunc: realAfterFunc,
		log:       logger.Nop(),
		name:      "list",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller[T]{
		cfg:    cfg,
		fetch:  fetch,
		ctx:    ctx,
		cancel: cancel,
		page:   1,
		subs:   make(map[chan State[T]]struct{}),
	}
	c.idle = sync.NewCond(&c.mu)
	c.state = State[T]{Status: StatusIdle, Query: dto.ListQuery{Page: 1}}
	return c
}

// ── Eventos ──────────────────────────────────────────────────────────────────

// Load dispara la primera carga (o recarga) con la consulta actual.
func (c *Controller[T]) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.startFetchLocked()
	return nil
}

// Refetch reemite la petición para el par (página, búsqueda asentada) actual sin cambiarlo.
func (c *Controller[T]) Refetch() error { return c.Load() }

// Retry acción manual del botón "reintentar"; mismo camino que Refetch.
func (c *Controller[T]) Retry() error { return c.Load() }

// SetPage cambia de página. Repetir la página actual ya cargada no hace nada.
func (c *Controller[T]) SetPage(page int) error {
	if page < 1 {
		return fmt.Errorf("%w: página %d", domain.ErrInvalidInput, page)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if page == c.page && c.state.Status != StatusIdle {
		return nil
	}
	c.page = page
	c.startFetchLocked()
	return nil
}

// SetSearchInput registra una pulsación: actualiza el valor inmediato y reinicia la
// ventana de debounce. No emite peticiones por sí mismo.
func (c *Controller[T]) SetSearchInput(input string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.searchInput = input
	c.state.SearchInput = input
	c.inputGen++
	gen := c.inputGen
	c.publishLocked()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cfg.debounce <= 0 {
		c.commitLocked()
		return nil
	}
	c.timer = c.cfg.afterFunc(c.cfg.debounce, func() { c.commitFromTimer(gen) })
	return nil
}

// CommitSearch asienta la búsqueda sin esperar la ventana (Enter en el buscador).
func (c *Controller[T]) CommitSearch() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.inputGen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.commitLocked()
	return nil
}

// Delete elimina un elemento y recarga la página actual; la paginación sigue siendo la del servidor.
func (c *Controller[T]) Delete(ctx context.Context, id string) error {
	if c.cfg.remove == nil {
		return fmt.Errorf("listing: %s no admite borrado", c.cfg.name)
	}
	if err := c.cfg.remove(ctx, id); err != nil {
		c.handleFailure(err)
		return err
	}
	c.notify(ports.LevelSuccess, "elemento eliminado")
	return c.Refetch()
}

// commitFromTimer corre al expirar la ventana. Stop no detiene un callback que ya
// arrancó y espera el mutex: si hubo otra pulsación desde que se armó, gen ya no
// coincide y la ventana vigente sigue su curso.
func (c *Controller[T]) commitFromTimer(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.inputGen {
		return
	}
	c.timer = nil
	c.commitLocked()
}

// commitLocked asienta el término; si cambió, vuelve a la página 1 antes de pedir.
func (c *Controller[T]) commitLocked() {
	term := NormalizeSearch(c.searchInput)
	if term == c.debounced && c.state.Status != StatusIdle {
		return
	}
	c.debounced = term
	c.page = 1
	c.startFetchLocked()
}

// ── Peticiones ───────────────────────────────────────────────────────────────

func (c *Controller[T]) startFetchLocked() {
	c.seq++
	seq := c.seq
	q := dto.ListQuery{Page: c.page, Search: c.debounced}

	c.state = State[T]{
		Status:      StatusLoading,
		Query:       q,
		SearchInput: c.searchInput,
		Seq:         seq,
	}
	c.publishLocked()

	c.cfg.log.Debug().Str("list", c.cfg.name).Uint64("seq", seq).Int("page", q.Page).Str("search", q.Search).Msg("listing: petición")

	c.inFlight++
	go func() {
		defer c.done()
		res, err := c.fetch(c.ctx, q)
		c.complete(seq, q, res, err)
	}()
}

func (c *Controller[T]) done() {
	c.mu.Lock()
	c.inFlight--
	if c.inFlight == 0 {
		c.idle.Broadcast()
	}
	c.mu.Unlock()
}

func (c *Controller[T]) complete(seq uint64, q dto.ListQuery, res *dto.ListResult[T], err error) {
	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		c.cfg.log.Debug().Str("list", c.cfg.name).Uint64("seq", seq).Msg("listing: respuesta obsoleta descartada")
		return
	}
	if err == nil && res == nil {
		err = &domain.APIError{Kind: domain.KindInvalidResponse, Message: "respuesta vacía"}
	}
	if err != nil {
		info := domain.InfoFrom(err)
		c.state = State[T]{Status: StatusFailure, Query: q, SearchInput: c.searchInput, Err: &info, Seq: seq}
	} else {
		c.state = State[T]{Status: StatusSuccess, Query: q, SearchInput: c.searchInput, Result: res, Seq: seq}
	}
	c.publishLocked()
	c.mu.Unlock()

	if err != nil {
		c.handleFailure(err)
	}
}

func (c *Controller[T]) handleFailure(err error) {
	c.cfg.log.Warn().Err(err).Str("list", c.cfg.name).Msg("listing: fallo")
	c.notify(ports.LevelError, domain.InfoFrom(err).Message)
	if errors.Is(err, domain.ErrUnauthenticated) && c.cfg.onUnauthorized != nil {
		c.cfg.onUnauthorized()
	}
}

func (c *Controller[T]) notify(level ports.Level, msg string) {
	if c.cfg.notifier != nil {
		c.cfg.notifier.Notify(level, msg)
	}
}

// ── Lectura y suscripción ────────────────────────────────────────────────────

// Snapshot estado actual.
func (c *Controller[T]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe devuelve un canal con la última instantánea (buffer 1, gana la más reciente)
// y la función para darse de baja. El canal se cierra con Close.
func (c *Controller[T]) Subscribe() (<-chan State[T], func()) {
	ch := make(chan State[T], 1)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	c.subs[ch] = struct{}{}
	ch <- c.state
	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[ch]; ok {
			delete(c.subs, ch)
			close(ch)
		}
	}
}

func (c *Controller[T]) publishLocked() {
	for ch := range c.subs {
		select {
		case ch <- c.state:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- c.state
		}
	}
}

// Wait bloquea hasta que no quede ninguna petición en vuelo.
// Admite varios goroutines esperando a la vez mientras otros emiten peticiones.
func (c *Controller[T]) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.inFlight > 0 {
		c.idle.Wait()
	}
}

// Close detiene el temporizador, descarta respuestas pendientes y cierra las suscripciones.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	for ch := range c.subs {
		close(ch)
	}
	c.subs = nil
	c.mu.Unlock()
	c.cancel()
}
