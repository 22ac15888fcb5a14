package usecase

import (
	"fmt"
	"time"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
)

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// ToTeacherView fila de la tabla de profesores.
func ToTeacherView(t entity.Teacher) dto.TeacherView {
	return dto.TeacherView{
		ID:             t.ID,
		FullName:       t.FullName,
		Username:       t.Username,
		Email:          t.Email,
		Phone:          t.Phone,
		Specialization: t.Specialization,
		AvatarURL:      t.AvatarURL,
		CoursesCount:   t.CoursesCount,
		CreatedAt:      formatDate(t.CreatedAt),
	}
}

// ToCategoryView fila de la tabla de categorías.
func ToCategoryView(c entity.Category) dto.CategoryView {
	return dto.CategoryView{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		Description:  c.Description,
		CoursesCount: c.CoursesCount,
	}
}

// ToRedeemCodeView fila de la tabla de códigos; el estado se calcula respecto a now.
func ToRedeemCodeView(r entity.RedeemCode, now time.Time) dto.RedeemCodeView {
	v := dto.RedeemCodeView{
		ID:     r.ID,
		Code:   r.Code,
		Value:  r.Value,
		Uses:   UsesLabel(r),
		Status: r.Status(now),
	}
	if r.ExpiresAt != nil {
		v.ExpiresAt = formatDate(*r.ExpiresAt)
	}
	return v
}

// UsesLabel "usados/máximo", con ∞ para códigos sin límite.
func UsesLabel(r entity.RedeemCode) string {
	if r.MaxUses == 0 {
		return fmt.Sprintf("%d/∞", r.UsedCount)
	}
	return fmt.Sprintf("%d/%d", r.UsedCount, r.MaxUses)
}

// ToReviewView fila de la cola de reseñas.
func ToReviewView(r entity.Review) dto.ReviewView {
	return dto.ReviewView{
		ID:          r.ID,
		CourseTitle: r.CourseTitle,
		StudentName: r.StudentName,
		Rating:      r.Rating,
		Comment:     r.Comment,
		Approved:    r.Approved,
		CreatedAt:   formatDate(r.CreatedAt),
	}
}

// MapViews aplica f a cada elemento.
func MapViews[T, V any](items []T, f func(T) V) []V {
	out := make([]V, 0, len(items))
	for _, it := range items {
		out = append(out, f(it))
	}
	return out
}
