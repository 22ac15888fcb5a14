package dto

import "github.com/shopspring/decimal"

// RedeemCodeRecord registro crudo de código de canje.
type RedeemCodeRecord struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Value     decimal.Decimal `json:"value"`
	MaxUses   int             `json:"max_uses"`
	UsedCount int             `json:"used_count"`
	ExpiresAt *string         `json:"expires_at"`
	Active    *bool           `json:"is_active"`
	CreatedAt string          `json:"created_at"`
}

// RedeemCodeInput alta de un lote de códigos.
type RedeemCodeInput struct {
	Value     decimal.Decimal `json:"value"`
	MaxUses   int             `json:"max_uses"`
	Quantity  int             `json:"quantity"`
	ExpiresAt string          `json:"expires_at,omitempty"` // RFC 3339
}

// RedeemCodeView fila de la tabla de códigos.
type RedeemCodeView struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Value     decimal.Decimal `json:"value"`
	Uses      string          `json:"uses"` // "3/10" o "3/∞"
	ExpiresAt string          `json:"expiresAt,omitempty"`
	Status    string          `json:"status"`
}
