package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/usecase"
)

func newReviewsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reviews",
		Aliases: []string{"resenas"},
		Short:   "Moderación de reseñas",
	}

	var q dto.ListQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "Lista una página de reseñas",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			res, err := rt.stack.Client.ListReviews(cmd.Context(), q.Normalize())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(res.Items))
			for _, r := range res.Items {
				v := usecase.ToReviewView(r)
				state := "pendiente"
				if v.Approved {
					state = "aprobada"
				}
				rows = append(rows, []string{v.ID, v.CourseTitle, v.StudentName, strings.Repeat("★", v.Rating), state})
			}
			w := cmd.OutOrStdout()
			if err := printTable(w, []string{"ID", "CURSO", "ESTUDIANTE", "NOTA", "ESTADO"}, rows); err != nil {
				return err
			}
			printPage(w, res.Meta, "reseñas")
			return nil
		},
	}
	list.Flags().IntVar(&q.Page, "page", 1, "Página (desde 1)")
	list.Flags().StringVar(&q.Search, "search", "", "Texto a buscar")

	approve := &cobra.Command{
		Use:   "approve ID",
		Short: "Aprueba una reseña",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			r, err := rt.stack.Reviews.Approve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reseña %s aprobada (%d estrellas).\n", r.ID, r.Rating)
			return nil
		},
	}

	cmd.AddCommand(list, approve)
	return cmd
}
