package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/listing"
	"github.com/jhoicas/academia-admin/internal/application/usecase"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
)

func newCodesCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "codes",
		Aliases: []string{"codigos"},
		Short:   "Códigos de canje: listar, generar y exportar a PDF",
	}
	cmd.AddCommand(newCodesListCmd(rt))
	cmd.AddCommand(newCodesCreateCmd(rt))
	cmd.AddCommand(newCodesExportCmd(rt))
	return cmd
}

func newCodesListCmd(rt *runtime) *cobra.Command {
	var q dto.ListQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista una página de códigos",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			q.Search = listing.NormalizeSearch(q.Search)
			res, err := rt.stack.Client.ListRedeemCodes(cmd.Context(), q.Normalize())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if err := printCodes(w, res.Items); err != nil {
				return err
			}
			printPage(w, res.Meta, "códigos")
			return nil
		},
	}

	cmd.Flags().IntVar(&q.Page, "page", 1, "Página (desde 1)")
	cmd.Flags().StringVar(&q.Search, "search", "", "Texto a buscar")

	return cmd
}

func newCodesCreateCmd(rt *runtime) *cobra.Command {
	var (
		value string
		in    dto.RedeemCodeInput
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Genera un lote de códigos",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			v, err := decimal.NewFromString(value)
			if err != nil {
				return fmt.Errorf("--value inválido %q", value)
			}
			in.Value = v
			res, err := rt.stack.RedeemCodes.CreateBatch(cmd.Context(), in)
			if err != nil {
				return err
			}
			if !res.OK() {
				printFieldErrors(cmd.ErrOrStderr(), res.Banner, res.FieldErrors)
				return errFormRejected
			}
			return printCodes(cmd.OutOrStdout(), *res.Item)
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "Valor de cada código")
	cmd.Flags().IntVar(&in.Quantity, "quantity", 1, "Cantidad de códigos")
	cmd.Flags().IntVar(&in.MaxUses, "max-uses", 1, "Usos por código (0 = ilimitado)")
	cmd.Flags().StringVar(&in.ExpiresAt, "expires", "", "Fecha de expiración (AAAA-MM-DD o RFC 3339)")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newCodesExportCmd(rt *runtime) *cobra.Command {
	var (
		out    string
		search string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta los códigos a una hoja PDF imprimible",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(cmd.Context()); err != nil {
				return err
			}
			pdf, err := rt.stack.RedeemCodes.ExportPDF(cmd.Context(), search)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "PDF escrito en %s (%d bytes)\n", out, len(pdf))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "codigos.pdf", "Archivo de salida")
	cmd.Flags().StringVar(&search, "search", "", "Exportar solo los que coinciden")

	return cmd
}

func printCodes(w io.Writer, codes []entity.RedeemCode) error {
	now := time.Now()
	rows := make([][]string, 0, len(codes))
	for _, c := range codes {
		v := usecase.ToRedeemCodeView(c, now)
		rows = append(rows, []string{v.Code, v.Value.StringFixed(2), v.Uses, orDash(v.ExpiresAt), v.Status})
	}
	return printTable(w, []string{"CÓDIGO", "VALOR", "USOS", "EXPIRA", "ESTADO"}, rows)
}
