package dto

// TeacherRecord registro crudo de profesor devuelto por el backend.
// Algunos despliegues envían "name" en lugar de "full_name"; los opcionales pueden faltar.
type TeacherRecord struct {
	ID             string  `json:"id"`
	FullName       string  `json:"full_name"`
	Name           string  `json:"name"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone"`
	Bio            *string `json:"bio"`
	Avatar         *string `json:"avatar"`
	Specialization *string `json:"specialization"`
	CoursesCount   int     `json:"courses_count"`
	CreatedAt      string  `json:"created_at"`
}

// TeacherInput datos del formulario de alta/edición de profesor.
type TeacherInput struct {
	FullName       string `json:"full_name"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}

// TeacherView fila de la tabla de profesores en la consola.
type TeacherView struct {
	ID             string `json:"id"`
	FullName       string `json:"fullName"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	AvatarURL      string `json:"avatarUrl"`
	CoursesCount   int    `json:"coursesCount"`
	CreatedAt      string `json:"createdAt"`
}
