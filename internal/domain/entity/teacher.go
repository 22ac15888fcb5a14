package entity

import "time"

// Teacher profesor tal como lo muestra el panel (ya transformado desde el registro crudo).
type Teacher struct {
	ID             string
	FullName       string
	Username       string
	Email          string
	Phone          string // vacío si el backend no lo envía
	Bio            string
	AvatarURL      string
	Specialization string
	CoursesCount   int
	CreatedAt      time.Time
}
