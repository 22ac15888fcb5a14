package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/listing"
	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
	"github.com/jhoicas/academia-admin/pkg/logger"
)

const (
	maxBatchSize   = 500
	maxExportPages = 50 // tope de páginas que recorre la exportación a PDF
)

// RedeemCodeUseCase listado, generación por lotes y exportación a PDF de códigos.
type RedeemCodeUseCase struct {
	api      ports.RedeemCodeAPI
	pdf      ports.RedeemCodePDFGenerator
	notifier ports.Notifier
	log      *logger.Logger
	now      func() time.Time
}

// NewRedeemCodeUseCase construye el caso de uso. pdf puede ser nil si no se exporta.
func NewRedeemCodeUseCase(api ports.RedeemCodeAPI, pdf ports.RedeemCodePDFGenerator, notifier ports.Notifier, log *logger.Logger) *RedeemCodeUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RedeemCodeUseCase{api: api, pdf: pdf, notifier: notifier, log: log.Named("redeem_codes"), now: time.Now}
}

// NewList controlador del listado de códigos.
func (uc *RedeemCodeUseCase) NewList(opts ...listing.Option) *listing.Controller[entity.RedeemCode] {
	base := []listing.Option{
		listing.WithDelete(uc.api.DeleteRedeemCode),
		listing.WithNotifier(uc.notifier),
		listing.WithLogger(uc.log, "redeem_codes"),
	}
	return listing.NewController(uc.api.ListRedeemCodes, append(base, opts...)...)
}

// CreateBatch genera Quantity códigos con el mismo valor, usos y expiración.
func (uc *RedeemCodeUseCase) CreateBatch(ctx context.Context, in dto.RedeemCodeInput) (FormResult[[]entity.RedeemCode], error) {
	checks := fieldChecks{}
	if !in.Value.GreaterThan(decimal.Zero) {
		checks.add("value", "debe ser mayor que cero")
	}
	if in.MaxUses < 0 {
		checks.add("max_uses", "no puede ser negativo")
	}
	if in.Quantity < 1 || in.Quantity > maxBatchSize {
		checks.add("quantity", fmt.Sprintf("debe estar entre 1 y %d", maxBatchSize))
	}
	in.ExpiresAt = strings.TrimSpace(in.ExpiresAt)
	if in.ExpiresAt != "" {
		exp, err := parseExpiry(in.ExpiresAt)
		switch {
		case err != nil:
			checks.add("expires_at", "fecha inválida")
		case !exp.After(uc.now()):
			checks.add("expires_at", "debe ser una fecha futura")
		default:
			in.ExpiresAt = exp.UTC().Format(time.RFC3339)
		}
	}
	msg := fmt.Sprintf("%d códigos generados", in.Quantity)
	return submit(ctx, uc.log, uc.notifier, checks, msg, func(ctx context.Context) (*[]entity.RedeemCode, error) {
		codes, err := uc.api.CreateRedeemCodes(ctx, in)
		if err != nil {
			return nil, err
		}
		return &codes, nil
	})
}

// ExportPDF recorre las páginas del listado (con la búsqueda dada) y genera la hoja imprimible.
func (uc *RedeemCodeUseCase) ExportPDF(ctx context.Context, search string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("redeem codes: exportación PDF no configurada")
	}
	search = listing.NormalizeSearch(search)
	var codes []entity.RedeemCode
	for page := 1; page <= maxExportPages; page++ {
		res, err := uc.api.ListRedeemCodes(ctx, dto.ListQuery{Page: page, Search: search})
		if err != nil {
			return nil, fmt.Errorf("exportar códigos (página %d): %w", page, err)
		}
		codes = append(codes, res.Items...)
		if page >= res.Meta.TotalPages {
			break
		}
	}
	title := "Códigos de canje"
	if search != "" {
		title = fmt.Sprintf("Códigos de canje: %q", search)
	}
	uc.log.Info().Int("codes", len(codes)).Str("search", search).Msg("exportando códigos a PDF")
	return uc.pdf.GenerateRedeemCodesPDF(ctx, title, codes)
}

func parseExpiry(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
