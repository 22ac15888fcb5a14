package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/jhoicas/academia-admin/internal/application/dto"
)

// printTable imprime encabezado y filas alineadas por tabuladores.
func printTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

func printPage(w io.Writer, meta dto.PageMeta, noun string) {
	fmt.Fprintf(w, "Página %d de %d (%d %s)\n", meta.CurrentPage, meta.TotalPages, meta.TotalItems, noun)
}

// printFieldErrors errores de formulario, un campo por línea en orden alfabético.
func printFieldErrors(w io.Writer, banner string, fields map[string]string) {
	fmt.Fprintln(w, banner)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, fields[k])
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
