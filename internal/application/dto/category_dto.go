package dto

// CategoryRecord registro crudo de categoría.
type CategoryRecord struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Slug         *string `json:"slug"`
	Description  *string `json:"description"`
	CoursesCount int     `json:"courses_count"`
}

// CategoryInput formulario de categoría.
type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
}

// CategoryView fila de la tabla de categorías.
type CategoryView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	CoursesCount int    `json:"coursesCount"`
}
