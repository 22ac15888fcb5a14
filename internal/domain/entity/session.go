package entity

// SessionUser metadatos del usuario que se guardan junto al token.
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Session token más metadatos; es lo que persisten los almacenes de sesión.
type Session struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}
