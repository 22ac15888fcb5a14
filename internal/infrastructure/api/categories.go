package api

import (
	"context"
	"net/http"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
)

var _ ports.CategoryAPI = (*Client)(nil)

const categoriesPath = "/admin/categories"

// ListCategories GET /admin/categories
func (c *Client) ListCategories(ctx context.Context, q dto.ListQuery) (*dto.ListResult[entity.Category], error) {
	return getList(ctx, c, categoriesPath, q, categoryFromRecord)
}

// CreateCategory POST /admin/categories
func (c *Client) CreateCategory(ctx context.Context, in dto.CategoryInput) (*entity.Category, error) {
	return mustSendItem(ctx, c, http.MethodPost, categoriesPath, in, categoryFromRecord)
}

// UpdateCategory PUT /admin/categories/:id
func (c *Client) UpdateCategory(ctx context.Context, id string, in dto.CategoryInput) (*entity.Category, error) {
	return mustSendItem(ctx, c, http.MethodPut, resourcePath(categoriesPath, id), in, categoryFromRecord)
}

// DeleteCategory DELETE /admin/categories/:id
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	_, err := sendItem(ctx, c, http.MethodDelete, resourcePath(categoriesPath, id), nil, categoryFromRecord)
	return err
}
