package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDashboardCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Resumen de estadísticas de la plataforma",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			v, err := rt.stack.Dashboard.GetSummary(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Profesores: %d\nEstudiantes: %d\nCursos: %d\nIngresos: %s\n",
				v.TotalTeachers, v.TotalStudents, v.TotalCourses, v.TotalRevenue.StringFixed(2))
			fmt.Fprintf(w, "Reseñas pendientes (primera página): %d\n", v.PendingOnFirstPage)

			if len(v.MonthlyRevenue) > 0 {
				rows := make([][]string, 0, len(v.MonthlyRevenue))
				for _, p := range v.MonthlyRevenue {
					rows = append(rows, []string{p.Label, p.Revenue.StringFixed(2)})
				}
				fmt.Fprintln(w)
				if err := printTable(w, []string{"MES", "INGRESOS"}, rows); err != nil {
					return err
				}
			}
			if len(v.TopCategories) > 0 {
				rows := make([][]string, 0, len(v.TopCategories))
				for _, c := range v.TopCategories {
					rows = append(rows, []string{c.Name, strconv.Itoa(c.Courses)})
				}
				fmt.Fprintln(w)
				return printTable(w, []string{"CATEGORÍA", "CURSOS"}, rows)
			}
			return nil
		},
	}
}
