package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/listing"
	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
	"github.com/jhoicas/academia-admin/pkg/logger"
)

// CategoryUseCase listado y formulario de categorías.
type CategoryUseCase struct {
	api      ports.CategoryAPI
	notifier ports.Notifier
	log      *logger.Logger
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(api ports.CategoryAPI, notifier ports.Notifier, log *logger.Logger) *CategoryUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CategoryUseCase{api: api, notifier: notifier, log: log.Named("categories")}
}

// NewList controlador del listado de categorías.
func (uc *CategoryUseCase) NewList(opts ...listing.Option) *listing.Controller[entity.Category] {
	base := []listing.Option{
		listing.WithDelete(uc.api.DeleteCategory),
		listing.WithNotifier(uc.notifier),
		listing.WithLogger(uc.log, "categories"),
	}
	return listing.NewController(uc.api.ListCategories, append(base, opts...)...)
}

// Create alta de categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryInput) (FormResult[entity.Category], error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.TrimSpace(in.Slug)
	checks := fieldChecks{}
	checks.required("name", in.Name)
	return submit(ctx, uc.log, uc.notifier, checks, "Categoría creada", func(ctx context.Context) (*entity.Category, error) {
		return uc.api.CreateCategory(ctx, in)
	})
}

// Update edición de categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryInput) (FormResult[entity.Category], error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.TrimSpace(in.Slug)
	checks := fieldChecks{}
	checks.required("name", in.Name)
	return submit(ctx, uc.log, uc.notifier, checks, "Categoría actualizada", func(ctx context.Context) (*entity.Category, error) {
		return uc.api.UpdateCategory(ctx, id, in)
	})
}
