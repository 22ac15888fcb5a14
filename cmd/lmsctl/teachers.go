package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/listing"
	"github.com/jhoicas/academia-admin/internal/application/usecase"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
)

var errFormRejected = errors.New("formulario rechazado")

func newTeachersCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "teachers",
		Aliases: []string{"profesores"},
		Short:   "Profesores: listar, buscar, crear y eliminar",
	}
	cmd.AddCommand(newTeachersListCmd(rt))
	cmd.AddCommand(newTeachersBrowseCmd(rt))
	cmd.AddCommand(newTeachersCreateCmd(rt))
	cmd.AddCommand(newTeachersDeleteCmd(rt))
	return cmd
}

func newTeachersListCmd(rt *runtime) *cobra.Command {
	var q dto.ListQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista una página de profesores",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			q.Search = listing.NormalizeSearch(q.Search)
			res, err := rt.stack.Client.ListTeachers(cmd.Context(), q.Normalize())
			if err != nil {
				return err
			}
			return printTeachers(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().IntVar(&q.Page, "page", 1, "Página (desde 1)")
	cmd.Flags().StringVar(&q.Search, "search", "", "Texto a buscar")

	return cmd
}

// newTeachersBrowseCmd cada línea de stdin es el contenido del buscador; pasa por el
// controlador con debounce igual que en la consola. ":p N" cambia de página, ":r" reintenta.
func newTeachersBrowseCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Búsqueda interactiva: una línea de stdin por pulsación",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			ctrl := rt.stack.Teachers.NewList(
				listing.WithDebounce(rt.stack.Config.List.Debounce),
				listing.WithLogger(rt.stack.Log, "teachers"),
			)
			defer ctrl.Close()
			if err := ctrl.Load(); err != nil {
				return err
			}
			if err := feedBrowse(cmd.InOrStdin(), ctrl); err != nil {
				return err
			}
			if err := ctrl.CommitSearch(); err != nil {
				return err
			}
			ctrl.Wait()

			st := ctrl.Snapshot()
			if st.Status == listing.StatusFailure {
				return errors.New(st.ErrorMessage())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Búsqueda: %q\n", st.Query.Search)
			return printTeachers(cmd.OutOrStdout(), st.Result)
		},
	}
}

func feedBrowse(r io.Reader, ctrl *listing.Controller[entity.Teacher]) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == ":r":
			if err := ctrl.Retry(); err != nil {
				return err
			}
		case strings.HasPrefix(line, ":p "):
			page, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, ":p ")))
			if err != nil {
				return fmt.Errorf("página inválida %q", line)
			}
			if err := ctrl.SetPage(page); err != nil {
				return err
			}
		default:
			if err := ctrl.SetSearchInput(line); err != nil {
				return err
			}
		}
	}
	return sc.Err()
}

func newTeachersCreateCmd(rt *runtime) *cobra.Command {
	var in dto.TeacherInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crea un profesor",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			res, err := rt.stack.Teachers.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			if !res.OK() {
				printFieldErrors(cmd.ErrOrStderr(), res.Banner, res.FieldErrors)
				return errFormRejected
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profesor creado: %s (%s)\n", res.Item.FullName, res.Item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.FullName, "name", "", "Nombre completo")
	cmd.Flags().StringVar(&in.Username, "username", "", "Usuario")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email")
	cmd.Flags().StringVar(&in.Password, "password", "", "Contraseña inicial")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "Teléfono")
	cmd.Flags().StringVar(&in.Specialization, "specialization", "", "Especialidad")

	return cmd
}

func newTeachersDeleteCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Elimina un profesor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			if err := rt.stack.Client.DeleteTeacher(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profesor %s eliminado.\n", args[0])
			return nil
		},
	}
}

func printTeachers(w io.Writer, res *dto.ListResult[entity.Teacher]) error {
	if res == nil {
		return nil
	}
	rows := make([][]string, 0, len(res.Items))
	for _, t := range res.Items {
		v := usecase.ToTeacherView(t)
		rows = append(rows, []string{v.ID, v.FullName, v.Email, orDash(v.Phone), orDash(v.Specialization), strconv.Itoa(v.CoursesCount)})
	}
	if err := printTable(w, []string{"ID", "NOMBRE", "EMAIL", "TELÉFONO", "ESPECIALIDAD", "CURSOS"}, rows); err != nil {
		return err
	}
	printPage(w, res.Meta, "profesores")
	return nil
}
