package ports

import (
	"context"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
)

// Puertos de salida hacia el backend REST. La implementación vive en infrastructure/api;
// los casos de uso y los tests solo conocen estos contratos.

// TeacherAPI operaciones sobre profesores.
type TeacherAPI interface {
	ListTeachers(ctx context.Context, q dto.ListQuery) (*dto.ListResult[entity.Teacher], error)
	CreateTeacher(ctx context.Context, in dto.TeacherInput) (*entity.Teacher, error)
	UpdateTeacher(ctx context.Context, id string, in dto.TeacherInput) (*entity.Teacher, error)
	DeleteTeacher(ctx context.Context, id string) error
}

// CategoryAPI operaciones sobre categorías.
type CategoryAPI interface {
	ListCategories(ctx context.Context, q dto.ListQuery) (*dto.ListResult[entity.Category], error)
	CreateCategory(ctx context.Context, in dto.CategoryInput) (*entity.Category, error)
	UpdateCategory(ctx context.Context, id string, in dto.CategoryInput) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// RedeemCodeAPI operaciones sobre códigos de canje.
type RedeemCodeAPI interface {
	ListRedeemCodes(ctx context.Context, q dto.ListQuery) (*dto.ListResult[entity.RedeemCode], error)
	CreateRedeemCodes(ctx context.Context, in dto.RedeemCodeInput) ([]entity.RedeemCode, error)
	DeleteRedeemCode(ctx context.Context, id string) error
}

// ReviewAPI moderación de reseñas.
type ReviewAPI interface {
	ListReviews(ctx context.Context, q dto.ListQuery) (*dto.ListResult[entity.Review], error)
	ApproveReview(ctx context.Context, id string) (*entity.Review, error)
	DeleteReview(ctx context.Context, id string) error
}

// DashboardAPI estadísticas agregadas.
type DashboardAPI interface {
	GetStats(ctx context.Context) (*entity.DashboardStats, error)
}

// AuthAPI login contra el backend (no autenticado).
type AuthAPI interface {
	Login(ctx context.Context, identifier, password string) (*dto.LoginData, error)
}

// RedeemCodePDFGenerator genera la hoja imprimible de códigos.
type RedeemCodePDFGenerator interface {
	GenerateRedeemCodesPDF(ctx context.Context, title string, codes []entity.RedeemCode) ([]byte, error)
}
