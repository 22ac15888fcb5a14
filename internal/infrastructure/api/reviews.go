package api

import (
	"context"
	"net/http"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
)

var _ ports.ReviewAPI = (*Client)(nil)

const reviewsPath = "/admin/reviews"

// ListReviews GET /admin/reviews
func (c *Client) ListReviews(ctx context.Context, q dto.ListQuery) (*dto.ListResult[entity.Review], error) {
	return getList(ctx, c, reviewsPath, q, reviewFromRecord)
}

// ApproveReview PATCH /admin/reviews/:id/approve
func (c *Client) ApproveReview(ctx context.Context, id string) (*entity.Review, error) {
	return mustSendItem(ctx, c, http.MethodPatch, resourcePath(reviewsPath, id)+"/approve", nil, reviewFromRecord)
}

// DeleteReview DELETE /admin/reviews/:id
func (c *Client) DeleteReview(ctx context.Context, id string) error {
	_, err := sendItem(ctx, c, http.MethodDelete, resourcePath(reviewsPath, id), nil, reviewFromRecord)
	return err
}
