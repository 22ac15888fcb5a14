package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/academia-admin/internal/application/analytics"
	"github.com/jhoicas/academia-admin/internal/application/auth"
	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/listing"
	"github.com/jhoicas/academia-admin/internal/application/usecase"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
	"github.com/jhoicas/academia-admin/internal/infrastructure/notify"
	"github.com/jhoicas/academia-admin/pkg/logger"
)

// Lists controladores de listado de la consola, uno por recurso (un operador por proceso).
type Lists struct {
	Teachers    *listing.Controller[entity.Teacher]
	Categories  *listing.Controller[entity.Category]
	RedeemCodes *listing.Controller[entity.RedeemCode]
	Reviews     *listing.Controller[entity.Review]
}

// NewLists crea los cuatro controladores con las mismas opciones.
func NewLists(t *usecase.TeacherUseCase, c *usecase.CategoryUseCase, r *usecase.RedeemCodeUseCase, rv *usecase.ReviewUseCase, opts ...listing.Option) Lists {
	return Lists{
		Teachers:    t.NewList(opts...),
		Categories:  c.NewList(opts...),
		RedeemCodes: r.NewList(opts...),
		Reviews:     rv.NewList(opts...),
	}
}

// Close cierra todos los controladores.
func (l Lists) Close() {
	if l.Teachers != nil {
		l.Teachers.Close()
	}
	if l.Categories != nil {
		l.Categories.Close()
	}
	if l.RedeemCodes != nil {
		l.RedeemCodes.Close()
	}
	if l.Reviews != nil {
		l.Reviews.Close()
	}
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session     *auth.SessionUseCase
	Teachers    *usecase.TeacherUseCase
	Categories  *usecase.CategoryUseCase
	RedeemCodes *usecase.RedeemCodeUseCase
	Reviews     *usecase.ReviewUseCase
	Dashboard   *analytics.DashboardUseCase
	Feed        *notify.Feed
	Lists       Lists
	AppName     string
	Log         *logger.Logger
}

// Router registra las rutas de la consola.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	app.Use(accessLog(log.Named("http")))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	console := app.Group("/console")

	// Auth (público)
	authHandler := NewAuthHandler(deps.Session)
	console.Post("/login", authHandler.Login)
	console.Post("/logout", authHandler.Logout)
	console.Get("/session", authHandler.Session)

	// Rutas protegidas (cookie de sesión + rol admin)
	gate := deps.Session.Gate()
	protected := console.Group("/", AuthMiddleware(gate, log.Named("guard")), RequireRole("admin"))

	forms := NewFormHandler(deps.Teachers, deps.Categories, deps.RedeemCodes, deps.Lists)
	other := NewConsoleHandler(deps.Reviews, deps.RedeemCodes, deps.Dashboard, deps.Feed, deps.Lists)

	// Teachers
	teachers := protected.Group("/teachers")
	NewListHandler(deps.Lists.Teachers, usecase.ToTeacherView, gate).Mount(teachers)
	teachers.Post("/", forms.CreateTeacher)
	teachers.Put("/:id", forms.UpdateTeacher)

	// Categories
	categories := protected.Group("/categories")
	NewListHandler(deps.Lists.Categories, usecase.ToCategoryView, gate).Mount(categories)
	categories.Post("/", forms.CreateCategory)
	categories.Put("/:id", forms.UpdateCategory)

	// Redeem codes (export.pdf antes de /:id)
	codes := protected.Group("/redeem-codes")
	codes.Get("/export.pdf", other.ExportRedeemCodes)
	NewListHandler(deps.Lists.RedeemCodes, redeemCodeRow, gate).Mount(codes)
	codes.Post("/", forms.CreateRedeemCodes)

	// Reviews
	reviews := protected.Group("/reviews")
	NewListHandler(deps.Lists.Reviews, usecase.ToReviewView, gate).Mount(reviews)
	reviews.Post("/:id/approve", other.ApproveReview)

	protected.Get("/dashboard", other.Dashboard)
	protected.Get("/notifications", other.Notifications)
}

func redeemCodeRow(r entity.RedeemCode) dto.RedeemCodeView {
	return usecase.ToRedeemCodeView(r, timeNow())
}

// accessLog registra método, ruta, estado y duración de cada petición.
func accessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("http: petición")
		return err
	}
}
