package api

import (
	"strings"
	"time"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
)

// Transformaciones registro crudo → entidad de UI: renombrado de campos y
// opcionales ausentes como "".

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func teacherFromRecord(r dto.TeacherRecord) entity.Teacher {
	fullName := strings.TrimSpace(r.FullName)
	if fullName == "" {
		fullName = strings.TrimSpace(r.Name)
	}
	return entity.Teacher{
		ID:             r.ID,
		FullName:       fullName,
		Username:       r.Username,
		Email:          r.Email,
		Phone:          str(r.Phone),
		Bio:            str(r.Bio),
		AvatarURL:      str(r.Avatar),
		Specialization: str(r.Specialization),
		CoursesCount:   r.CoursesCount,
		CreatedAt:      parseTime(r.CreatedAt),
	}
}

func categoryFromRecord(r dto.CategoryRecord) entity.Category {
	return entity.Category{
		ID:           r.ID,
		Name:         r.Name,
		Slug:         str(r.Slug),
		Description:  str(r.Description),
		CoursesCount: r.CoursesCount,
	}
}

func redeemCodeFromRecord(r dto.RedeemCodeRecord) entity.RedeemCode {
	out := entity.RedeemCode{
		ID:        r.ID,
		Code:      r.Code,
		Value:     r.Value,
		MaxUses:   r.MaxUses,
		UsedCount: r.UsedCount,
		Active:    r.Active == nil || *r.Active,
		CreatedAt: parseTime(r.CreatedAt),
	}
	if r.ExpiresAt != nil {
		if t := parseTime(*r.ExpiresAt); !t.IsZero() {
			out.ExpiresAt = &t
		}
	}
	return out
}

func reviewFromRecord(r dto.ReviewRecord) entity.Review {
	out := entity.Review{
		ID:        r.ID,
		Rating:    r.Rating,
		Comment:   str(r.Comment),
		Approved:  r.Approved,
		CreatedAt: parseTime(r.CreatedAt),
	}
	if r.Course != nil {
		out.CourseTitle = r.Course.Title
	}
	if r.Student != nil {
		out.StudentName = r.Student.FullName
	}
	return out
}

func dashboardFromRecord(r dto.DashboardStatsRecord) entity.DashboardStats {
	out := entity.DashboardStats{
		TotalTeachers: r.TotalTeachers,
		TotalStudents: r.TotalStudents,
		TotalCourses:  r.TotalCourses,
		TotalRevenue:  r.TotalRevenue,
	}
	for _, m := range r.MonthlyRevenue {
		out.MonthlyRevenue = append(out.MonthlyRevenue, entity.MonthlyPoint{Month: m.Month, Revenue: m.Revenue})
	}
	for _, c := range r.TopCategories {
		out.TopCategories = append(out.TopCategories, entity.CategoryShare{Name: c.Name, Courses: c.Courses})
	}
	return out
}

func identity[T any](v T) T { return v }
