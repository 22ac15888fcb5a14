package api

import (
	"context"
	"net/http"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/ports"
)

var _ ports.AuthAPI = (*Client)(nil)

type loginPayload struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Login POST /auth/login (sin token). Un 401 aquí son credenciales inválidas
// y no toca el almacén de sesión.
func (c *Client) Login(ctx context.Context, identifier, password string) (*dto.LoginData, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   loginPayload{Identifier: identifier, Password: password},
		public: true,
	})
	if err != nil {
		return nil, err
	}
	data, err := decodeItem[dto.LoginData](raw)
	if err == nil && data == nil {
		err = invalidResponse("falta el campo data", nil)
	}
	if err != nil {
		return nil, err
	}
	if data.Token == "" {
		return nil, invalidResponse("login sin token", nil)
	}
	return data, nil
}
