package api

import (
	"context"
	"net/http"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
)

var _ ports.TeacherAPI = (*Client)(nil)

const teachersPath = "/admin/teachers"

// ListTeachers GET /admin/teachers?page=&search=
func (c *Client) ListTeachers(ctx context.Context, q dto.ListQuery) (*dto.ListResult[entity.Teacher], error) {
	return getList(ctx, c, teachersPath, q, teacherFromRecord)
}

// CreateTeacher POST /admin/teachers. Con errores por campo devuelve un
// ApplicationError cuyo FieldErrors no está vacío.
func (c *Client) CreateTeacher(ctx context.Context, in dto.TeacherInput) (*entity.Teacher, error) {
	return mustSendItem(ctx, c, http.MethodPost, teachersPath, in, teacherFromRecord)
}

// UpdateTeacher PUT /admin/teachers/:id
func (c *Client) UpdateTeacher(ctx context.Context, id string, in dto.TeacherInput) (*entity.Teacher, error) {
	return mustSendItem(ctx, c, http.MethodPut, resourcePath(teachersPath, id), in, teacherFromRecord)
}

// DeleteTeacher DELETE /admin/teachers/:id
func (c *Client) DeleteTeacher(ctx context.Context, id string) error {
	_, err := sendItem(ctx, c, http.MethodDelete, resourcePath(teachersPath, id), nil, teacherFromRecord)
	return err
}
