package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/jhoicas/academia-admin/internal/bootstrap"
	"github.com/jhoicas/academia-admin/pkg/config"
	"github.com/jhoicas/academia-admin/pkg/logger"
)

// runtime estado compartido por los subcomandos de una ejecución.
type runtime struct {
	apiURL  string
	verbose bool
	stack   *bootstrap.Stack
}

func newRootCmd() *cobra.Command {
	rt := &runtime{}
	root := &cobra.Command{
		Use:   "lmsctl",
		Short: "Administración de la academia desde la terminal",
		Long: `lmsctl inicia sesión contra el backend de la plataforma y permite
listar, buscar y editar profesores, categorías, códigos de canje y reseñas.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if rt.stack == nil {
				return nil
			}
			return rt.stack.Close()
		},
	}

	root.PersistentFlags().StringVar(&rt.apiURL, "api", "", "URL base del backend (por defecto API_BASE_URL)")
	root.PersistentFlags().BoolVar(&rt.verbose, "verbose", false, "Logs de depuración en stderr")

	root.AddCommand(newLoginCmd(rt))
	root.AddCommand(newLogoutCmd(rt))
	root.AddCommand(newWhoamiCmd(rt))
	root.AddCommand(newTeachersCmd(rt))
	root.AddCommand(newCategoriesCmd(rt))
	root.AddCommand(newCodesCmd(rt))
	root.AddCommand(newReviewsCmd(rt))
	root.AddCommand(newDashboardCmd(rt))

	return root
}

func (rt *runtime) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if rt.apiURL != "" {
		cfg.API.BaseURL = rt.apiURL
	}
	level := "warn"
	if rt.verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, Output: cmd.ErrOrStderr()})

	stack, err := bootstrap.New(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	rt.stack = stack
	return nil
}

// requireSession corta antes de tocar la red si no hay sesión vigente.
func (rt *runtime) requireSession(ctx context.Context) error {
	d, err := rt.stack.Gate.Check(ctx)
	if err != nil {
		return err
	}
	if !d.Authenticated {
		return errors.New("sin sesión: ejecuta `lmsctl login`")
	}
	return nil
}
