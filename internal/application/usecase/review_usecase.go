package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/academia-admin/internal/application/listing"
	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/domain"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
	"github.com/jhoicas/academia-admin/pkg/logger"
)

// ReviewUseCase moderación de reseñas.
type ReviewUseCase struct {
	api      ports.ReviewAPI
	notifier ports.Notifier
	log      *logger.Logger
}

// NewReviewUseCase construye el caso de uso.
func NewReviewUseCase(api ports.ReviewAPI, notifier ports.Notifier, log *logger.Logger) *ReviewUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReviewUseCase{api: api, notifier: notifier, log: log.Named("reviews")}
}

// NewList controlador de la cola de reseñas.
func (uc *ReviewUseCase) NewList(opts ...listing.Option) *listing.Controller[entity.Review] {
	base := []listing.Option{
		listing.WithDelete(uc.api.DeleteReview),
		listing.WithNotifier(uc.notifier),
		listing.WithLogger(uc.log, "reviews"),
	}
	return listing.NewController(uc.api.ListReviews, append(base, opts...)...)
}

// Approve publica una reseña.
func (uc *ReviewUseCase) Approve(ctx context.Context, id string) (*entity.Review, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id de reseña vacío", domain.ErrInvalidInput)
	}
	review, err := uc.api.ApproveReview(ctx, id)
	if err != nil {
		uc.log.Warn().Err(err).Str("review_id", id).Msg("aprobar reseña")
		if uc.notifier != nil {
			uc.notifier.Notify(ports.LevelError, domain.InfoFrom(err).Message)
		}
		return nil, err
	}
	if uc.notifier != nil {
		uc.notifier.Notify(ports.LevelSuccess, "Reseña aprobada")
	}
	return review, nil
}
