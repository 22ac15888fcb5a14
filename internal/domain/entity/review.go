package entity

import "time"

// Review reseña de un estudiante sobre un curso.
type Review struct {
	ID          string
	CourseTitle string
	StudentName string
	Rating      int // 1..5
	Comment     string
	Approved    bool
	CreatedAt   time.Time
}
