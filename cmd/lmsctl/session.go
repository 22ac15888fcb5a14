package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/academia-admin/internal/application/dto"
)

func newLoginCmd(rt *runtime) *cobra.Command {
	var in dto.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión y guarda el token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Password == "" {
				// contraseña por stdin para no dejarla en el historial
				fmt.Fprint(cmd.ErrOrStderr(), "Contraseña: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("leer contraseña: %w", err)
				}
				in.Password = strings.TrimRight(line, "\r\n")
			}
			sess, err := rt.stack.Session.Login(cmd.Context(), in)
			if err != nil {
				return err
			}
			where := "solo esta ejecución"
			if in.Remember {
				where = "recordada"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sesión iniciada como %s (%s), %s\n", sess.User.Username, sess.User.Role, where)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Identifier, "user", "u", "", "Email o usuario")
	cmd.Flags().StringVar(&in.Password, "password", "", "Contraseña (si falta se lee de stdin)")
	cmd.Flags().BoolVar(&in.Remember, "remember", false, "Guardar la sesión en el almacén durable")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newLogoutCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión (borra ambos almacenes)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.stack.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sesión cerrada.")
			return nil
		},
	}
}

func newWhoamiCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Muestra el usuario de la sesión actual",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := rt.stack.Session.Current(cmd.Context())
			if err != nil {
				return err
			}
			if !d.Authenticated {
				return fmt.Errorf("sin sesión (%s)", d.Reason)
			}
			remembered, err := rt.stack.Store.Remembered(cmd.Context())
			if err != nil {
				return err
			}
			scope := "temporal"
			if remembered {
				scope = "recordada"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", d.User.Username, d.User.Role, d.User.ID, scope)
			return nil
		},
	}
}
