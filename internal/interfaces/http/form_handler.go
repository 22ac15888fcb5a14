package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/academia-admin/internal/application/dto"
	"github.com/jhoicas/academia-admin/internal/application/usecase"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
)

// FormHandler altas y ediciones de profesores, categorías y lotes de códigos.
// Tras un guardado exitoso recarga el listado correspondiente.
type FormHandler struct {
	teachers    *usecase.TeacherUseCase
	categories  *usecase.CategoryUseCase
	redeemCodes *usecase.RedeemCodeUseCase
	lists       Lists
}

// NewFormHandler construye el handler.
func NewFormHandler(t *usecase.TeacherUseCase, c *usecase.CategoryUseCase, r *usecase.RedeemCodeUseCase, lists Lists) *FormHandler {
	return &FormHandler{teachers: t, categories: c, redeemCodes: r, lists: lists}
}

// CreateTeacher POST /console/teachers
func (h *FormHandler) CreateTeacher(c *fiber.Ctx) error {
	var in dto.TeacherInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.teachers.Create(c.Context(), in)
	return finishForm(c, res, err, fiber.StatusCreated, usecase.ToTeacherView, asRefetch(h.lists.Teachers))
}

// UpdateTeacher PUT /console/teachers/:id
func (h *FormHandler) UpdateTeacher(c *fiber.Ctx) error {
	var in dto.TeacherInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.teachers.Update(c.Context(), c.Params("id"), in)
	return finishForm(c, res, err, fiber.StatusOK, usecase.ToTeacherView, asRefetch(h.lists.Teachers))
}

// CreateCategory POST /console/categories
func (h *FormHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.categories.Create(c.Context(), in)
	return finishForm(c, res, err, fiber.StatusCreated, usecase.ToCategoryView, asRefetch(h.lists.Categories))
}

// UpdateCategory PUT /console/categories/:id
func (h *FormHandler) UpdateCategory(c *fiber.Ctx) error {
	var in dto.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.categories.Update(c.Context(), c.Params("id"), in)
	return finishForm(c, res, err, fiber.StatusOK, usecase.ToCategoryView, asRefetch(h.lists.Categories))
}

// CreateRedeemCodes POST /console/redeem-codes {value, max_uses, quantity, expires_at}
func (h *FormHandler) CreateRedeemCodes(c *fiber.Ctx) error {
	var in dto.RedeemCodeInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.redeemCodes.CreateBatch(c.Context(), in)
	return finishForm(c, res, err, fiber.StatusCreated, func(codes []entity.RedeemCode) []dto.RedeemCodeView {
		now := timeNow()
		return usecase.MapViews(codes, func(r entity.RedeemCode) dto.RedeemCodeView {
			return usecase.ToRedeemCodeView(r, now)
		})
	}, asRefetch(h.lists.RedeemCodes))
}

func finishForm[T, V any](c *fiber.Ctx, res usecase.FormResult[T], err error, okStatus int, view func(T) V, list refetchable) error {
	if err != nil {
		return writeError(c, err)
	}
	if !res.OK() {
		return writeForm(c, res.Banner, res.FieldErrors)
	}
	refetch(list)
	return c.Status(okStatus).JSON(view(*res.Item))
}
