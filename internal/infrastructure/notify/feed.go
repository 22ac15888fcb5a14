// Package notify implementa ports.Notifier: cada aviso se registra en el log y queda
// en un buffer circular que la consola entrega como toasts.
package notify

import (
	"sync"
	"time"

	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/pkg/logger"
)

// DefaultCapacity avisos retenidos antes de descartar los más viejos.
const DefaultCapacity = 50

var _ ports.Notifier = (*Feed)(nil)

// Notification aviso transitorio.
type Notification struct {
	ID      uint64      `json:"id"`
	Level   ports.Level `json:"level"`
	Message string      `json:"message"`
	At      time.Time   `json:"at"`
}

// Feed buffer de avisos, seguro para uso concurrente.
type Feed struct {
	mu    sync.Mutex
	items []Notification
	cap   int
	next  uint64
	log   *logger.Logger
	now   func() time.Time
}

// NewFeed crea el buffer. capacity <= 0 usa DefaultCapacity.
func NewFeed(capacity int, log *logger.Logger) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Feed{cap: capacity, log: log.Named("notify"), now: time.Now}
}

// Notify registra el aviso.
func (f *Feed) Notify(level ports.Level, message string) {
	f.mu.Lock()
	f.next++
	n := Notification{ID: f.next, Level: level, Message: message, At: f.now()}
	f.items = append(f.items, n)
	if len(f.items) > f.cap {
		f.items = f.items[len(f.items)-f.cap:]
	}
	f.mu.Unlock()

	ev := f.log.Info()
	if level == ports.LevelError {
		ev = f.log.Warn()
	}
	ev.Uint64("id", n.ID).Str("kind", string(level)).Msg(message)
}

// Since avisos con ID mayor que after, del más viejo al más nuevo.
func (f *Feed) Since(after uint64) []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Notification, 0, len(f.items))
	for _, n := range f.items {
		if n.ID > after {
			out = append(out, n)
		}
	}
	return out
}

// Last ID del último aviso emitido (0 si ninguno).
func (f *Feed) Last() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.next
}
