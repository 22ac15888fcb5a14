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

const minPasswordLen = 8

// TeacherUseCase listado y formulario de profesores.
type TeacherUseCase struct {
	api      ports.TeacherAPI
	notifier ports.Notifier
	log      *logger.Logger
}

// NewTeacherUseCase construye el caso de uso. notifier puede ser nil.
func NewTeacherUseCase(api ports.TeacherAPI, notifier ports.Notifier, log *logger.Logger) *TeacherUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &TeacherUseCase{api: api, notifier: notifier, log: log.Named("teachers")}
}

// NewList controlador del listado de profesores con borrado habilitado.
func (uc *TeacherUseCase) NewList(opts ...listing.Option) *listing.Controller[entity.Teacher] {
	base := []listing.Option{
		listing.WithDelete(uc.api.DeleteTeacher),
		listing.WithNotifier(uc.notifier),
		listing.WithLogger(uc.log, "teachers"),
	}
	return listing.NewController(uc.api.ListTeachers, append(base, opts...)...)
}

// Create alta de profesor. Password es obligatorio.
func (uc *TeacherUseCase) Create(ctx context.Context, in dto.TeacherInput) (FormResult[entity.Teacher], error) {
	in = trimTeacher(in)
	checks := validateTeacher(in)
	checks.required("password", in.Password)
	checks.minLen("password", in.Password, minPasswordLen)
	return submit(ctx, uc.log, uc.notifier, checks, "Profesor creado", func(ctx context.Context) (*entity.Teacher, error) {
		return uc.api.CreateTeacher(ctx, in)
	})
}

// Update edición de profesor. Password vacío conserva la actual.
func (uc *TeacherUseCase) Update(ctx context.Context, id string, in dto.TeacherInput) (FormResult[entity.Teacher], error) {
	in = trimTeacher(in)
	checks := validateTeacher(in)
	checks.minLen("password", in.Password, minPasswordLen)
	if strings.TrimSpace(id) == "" {
		checks.add("id", "es requerido")
	}
	return submit(ctx, uc.log, uc.notifier, checks, "Profesor actualizado", func(ctx context.Context) (*entity.Teacher, error) {
		return uc.api.UpdateTeacher(ctx, id, in)
	})
}

func trimTeacher(in dto.TeacherInput) dto.TeacherInput {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Specialization = strings.TrimSpace(in.Specialization)
	return in
}

func validateTeacher(in dto.TeacherInput) fieldChecks {
	checks := fieldChecks{}
	checks.required("full_name", in.FullName)
	checks.required("username", in.Username)
	checks.required("email", in.Email)
	checks.email("email", in.Email)
	return checks
}
