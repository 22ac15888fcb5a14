package ports

// Level severidad de una notificación transitoria.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier canal de avisos transitorios (toasts) hacia la capa de presentación.
type Notifier interface {
	Notify(level Level, message string)
}
