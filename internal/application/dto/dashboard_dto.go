package dto

import "github.com/shopspring/decimal"

// DashboardStatsRecord respuesta cruda de GET /admin/stats.
type DashboardStatsRecord struct {
	TotalTeachers  int             `json:"totalTeachers"`
	TotalStudents  int             `json:"totalStudents"`
	TotalCourses   int             `json:"totalCourses"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	MonthlyRevenue []struct {
		Month   string          `json:"month"`
		Revenue decimal.Decimal `json:"revenue"`
	} `json:"monthlyRevenue"`
	TopCategories []struct {
		Name    string `json:"name"`
		Courses int    `json:"courses"`
	} `json:"topCategories"`
}

// DashboardView respuesta de GET /console/dashboard.
type DashboardView struct {
	TotalTeachers      int                 `json:"totalTeachers"`
	TotalStudents      int                 `json:"totalStudents"`
	TotalCourses       int                 `json:"totalCourses"`
	TotalRevenue       decimal.Decimal     `json:"totalRevenue"`
	MonthlyRevenue     []MonthlyRevenueDTO `json:"monthlyRevenue"`
	TopCategories      []CategoryShareDTO  `json:"topCategories"`
	LatestReviews      []ReviewView        `json:"latestReviews"`
	PendingOnFirstPage int                 `json:"pendingOnFirstPage"` // sin aprobar en la primera página
}

// MonthlyRevenueDTO punto del gráfico de ingresos.
type MonthlyRevenueDTO struct {
	Month   string          `json:"month"`
	Label   string          `json:"label"` // "Enero 2026"
	Revenue decimal.Decimal `json:"revenue"`
}

// CategoryShareDTO porción del gráfico de categorías.
type CategoryShareDTO struct {
	Name    string `json:"name"`
	Courses int    `json:"courses"`
}
