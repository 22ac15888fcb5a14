package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/academia-admin/internal/application/analytics"
	"github.com/jhoicas/academia-admin/internal/application/usecase"
	"github.com/jhoicas/academia-admin/internal/infrastructure/notify"
)

var timeNow = time.Now

// ConsoleHandler moderación, exportación, dashboard y avisos.
type ConsoleHandler struct {
	reviews     *usecase.ReviewUseCase
	redeemCodes *usecase.RedeemCodeUseCase
	dashboard   *analytics.DashboardUseCase
	feed        *notify.Feed
	lists       Lists
}

// NewConsoleHandler construye el handler.
func NewConsoleHandler(
	reviews *usecase.ReviewUseCase,
	redeemCodes *usecase.RedeemCodeUseCase,
	dashboard *analytics.DashboardUseCase,
	feed *notify.Feed,
	lists Lists,
) *ConsoleHandler {
	return &ConsoleHandler{reviews: reviews, redeemCodes: redeemCodes, dashboard: dashboard, feed: feed, lists: lists}
}

// ApproveReview POST /console/reviews/:id/approve
func (h *ConsoleHandler) ApproveReview(c *fiber.Ctx) error {
	review, err := h.reviews.Approve(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	refetch(asRefetch(h.lists.Reviews))
	return c.JSON(usecase.ToReviewView(*review))
}

// ExportRedeemCodes GET /console/redeem-codes/export.pdf?search=
func (h *ConsoleHandler) ExportRedeemCodes(c *fiber.Ctx) error {
	out, err := h.redeemCodes.ExportPDF(c.Context(), c.Query("search"))
	if err != nil {
		return writeError(c, err)
	}
	name := fmt.Sprintf("codigos-%s.pdf", timeNow().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(out)
}

// Dashboard GET /console/dashboard
//
// Sin estadísticas no hay datos de muestra: el fallo llega como error.
func (h *ConsoleHandler) Dashboard(c *fiber.Ctx) error {
	summary, err := h.dashboard.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// Notifications GET /console/notifications?after=N
func (h *ConsoleHandler) Notifications(c *fiber.Ctx) error {
	after := uint64(0)
	if v := strings.TrimSpace(c.Query("after")); v != "" {
		if _, err := fmt.Sscan(v, &after); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "VALIDATION", "message": "after debe ser numérico"})
		}
	}
	return c.JSON(fiber.Map{"items": h.feed.Since(after), "last": h.feed.Last()})
}
