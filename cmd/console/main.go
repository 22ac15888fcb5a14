package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/academia-admin/internal/application/listing"
	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/bootstrap"
	httpRouter "github.com/jhoicas/academia-admin/internal/interfaces/http"
	"github.com/jhoicas/academia-admin/pkg/config"
	"github.com/jhoicas/academia-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Msg("iniciando consola")

	ctx := context.Background()
	stack, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar dependencias")
	}
	defer stack.Close()

	// Un 401 en cualquier listado ya vació los almacenes; se avisa al operador.
	onUnauthorized := func() {
		stack.Feed.Notify(ports.LevelError, "Tu sesión expiró, vuelve a iniciar sesión")
	}
	lists := httpRouter.NewLists(stack.Teachers, stack.Categories, stack.RedeemCodes, stack.Reviews,
		listing.WithDebounce(cfg.List.Debounce),
		listing.WithUnauthorized(onUnauthorized),
	)
	defer lists.Close()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session:     stack.Session,
		Teachers:    stack.Teachers,
		Categories:  stack.Categories,
		RedeemCodes: stack.RedeemCodes,
		Reviews:     stack.Reviews,
		Dashboard:   stack.Dashboard,
		Feed:        stack.Feed,
		Lists:       lists,
		AppName:     cfg.App.Name,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando consola...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("consola detenida")
}
