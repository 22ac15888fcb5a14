package api

import (
	"context"
	"net/http"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
)

var _ ports.RedeemCodeAPI = (*Client)(nil)

const redeemCodesPath = "/admin/redeem-codes"

// ListRedeemCodes GET /admin/redeem-codes
func (c *Client) ListRedeemCodes(ctx context.Context, q dto.ListQuery) (*dto.ListResult[entity.RedeemCode], error) {
	return getList(ctx, c, redeemCodesPath, q, redeemCodeFromRecord)
}

// CreateRedeemCodes POST /admin/redeem-codes; el backend genera Quantity códigos y los devuelve en data.
func (c *Client) CreateRedeemCodes(ctx context.Context, in dto.RedeemCodeInput) ([]entity.RedeemCode, error) {
	records, err := mustSendItem(ctx, c, http.MethodPost, redeemCodesPath, in, identity[[]dto.RedeemCodeRecord])
	if err != nil {
		return nil, err
	}
	out := make([]entity.RedeemCode, 0, len(*records))
	for _, r := range *records {
		out = append(out, redeemCodeFromRecord(r))
	}
	return out, nil
}

// DeleteRedeemCode DELETE /admin/redeem-codes/:id
func (c *Client) DeleteRedeemCode(ctx context.Context, id string) error {
	_, err := sendItem(ctx, c, http.MethodDelete, resourcePath(redeemCodesPath, id), nil, redeemCodeFromRecord)
	return err
}
