package listing

import "time"

// Timer temporizador cancelable.
type Timer interface {
	Stop() bool
}

// AfterFunc programa f tras d. Inyectable para tests con reloj manual.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
