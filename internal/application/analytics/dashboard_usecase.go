// Package analytics contiene el caso de uso del dashboard de administración.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/application/usecase"
	"github.com/jhoicas/academia-admin/internal/domain"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
	"github.com/jhoicas/academia-admin/pkg/logger"
)

const dashboardLatestReviews = 5 // reseñas en el widget del dashboard

// DashboardUseCase arma el resumen del panel.
//
// Las estadísticas son obligatorias: si fallan, el error se propaga y la vista muestra
// el estado de error (no hay datos de muestra). Las últimas reseñas son un extra; si
// fallan se registra y el widget queda vacío.
type DashboardUseCase struct {
	stats   ports.DashboardAPI
	reviews ports.ReviewAPI
	log     *logger.Logger
}

// NewDashboardUseCase construye el caso de uso. reviews puede ser nil.
func NewDashboardUseCase(stats ports.DashboardAPI, reviews ports.ReviewAPI, log *logger.Logger) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{stats: stats, reviews: reviews, log: log.Named("dashboard")}
}

// GetSummary consulta en paralelo:
//  1. GetStats             → totales y gráficos
//  2. ListReviews(página 1) → últimas reseñas y pendientes
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardView, error) {
	type statsResult struct {
		stats *entity.DashboardStats
		err   error
	}
	type reviewsResult struct {
		res *dto.ListResult[entity.Review]
		err error
	}

	statsCh := make(chan statsResult, 1)
	reviewsCh := make(chan reviewsResult, 1)

	go func() {
		s, err := uc.stats.GetStats(ctx)
		statsCh <- statsResult{s, err}
	}()
	if uc.reviews != nil {
		go func() {
			r, err := uc.reviews.ListReviews(ctx, dto.ListQuery{Page: 1})
			reviewsCh <- reviewsResult{r, err}
		}()
	} else {
		reviewsCh <- reviewsResult{}
	}

	st := <-statsCh
	rv := <-reviewsCh

	if st.err != nil {
		uc.log.Warn().Err(st.err).Msg("dashboard: estadísticas no disponibles")
		return nil, fmt.Errorf("dashboard: estadísticas: %w", st.err)
	}
	if st.stats == nil {
		return nil, fmt.Errorf("dashboard: %w", domain.ErrInvalidResponse)
	}
	if rv.err != nil {
		uc.log.Warn().Err(rv.err).Msg("dashboard: últimas reseñas no disponibles")
	}

	view := toDashboardView(st.stats)
	if rv.res != nil {
		for _, r := range rv.res.Items {
			if !r.Approved {
				view.PendingOnFirstPage++
			}
		}
		latest := rv.res.Items
		if len(latest) > dashboardLatestReviews {
			latest = latest[:dashboardLatestReviews]
		}
		view.LatestReviews = usecase.MapViews(latest, usecase.ToReviewView)
	}
	return view, nil
}

func toDashboardView(s *entity.DashboardStats) *dto.DashboardView {
	v := &dto.DashboardView{
		TotalTeachers:  s.TotalTeachers,
		TotalStudents:  s.TotalStudents,
		TotalCourses:   s.TotalCourses,
		TotalRevenue:   s.TotalRevenue.Round(2),
		MonthlyRevenue: make([]dto.MonthlyRevenueDTO, 0, len(s.MonthlyRevenue)),
		TopCategories:  make([]dto.CategoryShareDTO, 0, len(s.TopCategories)),
		LatestReviews:  []dto.ReviewView{},
	}
	for _, p := range s.MonthlyRevenue {
		v.MonthlyRevenue = append(v.MonthlyRevenue, dto.MonthlyRevenueDTO{
			Month:   p.Month,
			Label:   monthLabel(p.Month),
			Revenue: p.Revenue.Round(2),
		})
	}
	for _, c := range s.TopCategories {
		v.TopCategories = append(v.TopCategories, dto.CategoryShareDTO{Name: c.Name, Courses: c.Courses})
	}
	return v
}

// monthLabel convierte "2026-02" en "Febrero 2026"; si no parsea devuelve la entrada.
func monthLabel(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
