package entity

import "github.com/shopspring/decimal"

// DashboardStats agregados del panel de administración.
type DashboardStats struct {
	TotalTeachers  int
	TotalStudents  int
	TotalCourses   int
	TotalRevenue   decimal.Decimal
	MonthlyRevenue []MonthlyPoint
	TopCategories  []CategoryShare
}

// MonthlyPoint ingreso de un mes ("2026-01").
type MonthlyPoint struct {
	Month   string
	Revenue decimal.Decimal
}

// CategoryShare cursos por categoría para el gráfico de torta.
type CategoryShare struct {
	Name    string
	Courses int
}
