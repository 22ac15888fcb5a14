package dto

import "github.com/jhoicas/academia-admin/internal/domain/entity"

// LoginRequest credenciales de login. Identifier acepta email o username.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	Remember   bool   `json:"remember"`
}

// LoginData datos que devuelve POST /auth/login dentro del sobre.
type LoginData struct {
	Token string             `json:"token"`
	User  entity.SessionUser `json:"user"`
}
