package api

import (
	"context"
	"net/http"

	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
)

var _ ports.DashboardAPI = (*Client)(nil)

// GetStats GET /admin/stats
func (c *Client) GetStats(ctx context.Context) (*entity.DashboardStats, error) {
	return mustSendItem(ctx, c, http.MethodGet, "/admin/stats", nil, dashboardFromRecord)
}
