package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT el token no tiene formato JWT (tokens opacos del backend).
var ErrNotJWT = errors.New("jwt: token sin formato JWT")

// Claims incluye los claims estándar JWT más los campos que emite el backend de la plataforma.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"` // "admin" | "teacher" | "student"
}

// Generate genera un token JWT firmado (HS256). Lo usan los backends simulados de los tests;
// el cliente real nunca firma tokens.
func Generate(secret, userID, username, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:   userID,
		Username: username,
		Role:     role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Inspect decodifica los claims SIN verificar la firma.
// El secreto vive en el backend; aquí solo se lee exp/role para decidir redirecciones
// antes de gastar una petición de red. La autorización real la hace el servidor.
func Inspect(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJWT, err)
	}
	return claims, nil
}

// Expired indica si el claim exp ya pasó respecto a now. Sin exp nunca expira.
func (c *Claims) Expired(now time.Time) bool {
	if c == nil || c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}
