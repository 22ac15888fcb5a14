package entity

// Category categoría de cursos.
type Category struct {
	ID           string
	Name         string
	Slug         string
	Description  string
	CoursesCount int
}
