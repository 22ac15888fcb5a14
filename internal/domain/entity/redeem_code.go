package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RedeemCode código canjeable por crédito o acceso a cursos.
type RedeemCode struct {
	ID        string
	Code      string
	Value     decimal.Decimal
	MaxUses   int // 0 = ilimitado
	UsedCount int
	ExpiresAt *time.Time
	Active    bool
	CreatedAt time.Time
}

// Exhausted indica si el código ya agotó sus usos.
func (r RedeemCode) Exhausted() bool {
	return r.MaxUses > 0 && r.UsedCount >= r.MaxUses
}

// Expired indica si la fecha de expiración ya pasó.
func (r RedeemCode) Expired(now time.Time) bool {
	return r.ExpiresAt != nil && !now.Before(*r.ExpiresAt)
}

// Status etiqueta legible para tablas y PDF.
func (r RedeemCode) Status(now time.Time) string {
	switch {
	case !r.Active:
		return "inactivo"
	case r.Expired(now):
		return "expirado"
	case r.Exhausted():
		return "agotado"
	default:
		return "activo"
	}
}
