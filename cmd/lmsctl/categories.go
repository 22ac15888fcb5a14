package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/listing"
	"github.com/jhoicas/academia-admin/internal/application/usecase"
)

func newCategoriesCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"categorias"},
		Short:   "Categorías de cursos",
	}

	var q dto.ListQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "Lista una página de categorías",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			q.Search = listing.NormalizeSearch(q.Search)
			res, err := rt.stack.Client.ListCategories(cmd.Context(), q.Normalize())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(res.Items))
			for _, c := range res.Items {
				v := usecase.ToCategoryView(c)
				rows = append(rows, []string{v.ID, v.Name, orDash(v.Slug), strconv.Itoa(v.CoursesCount)})
			}
			w := cmd.OutOrStdout()
			if err := printTable(w, []string{"ID", "NOMBRE", "SLUG", "CURSOS"}, rows); err != nil {
				return err
			}
			printPage(w, res.Meta, "categorías")
			return nil
		},
	}
	list.Flags().IntVar(&q.Page, "page", 1, "Página (desde 1)")
	list.Flags().StringVar(&q.Search, "search", "", "Texto a buscar")

	cmd.AddCommand(list)
	return cmd
}
