package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Fazeelit/mohafizbackend/dto"
	"github.com/Fazeelit/mohafizbackend/internal/middleware"
	"github.com/Fazeelit/mohafizbackend/internal/services"
)

type NewsController struct {
	base
	svc *services.NewsService
}

func NewNewsController(svc *services.NewsService, timeout time.Duration) *NewsController {
	return &NewsController{base: base{timeout: timeout}, svc: svc}
}

// List godoc
// @Summary List news items
// @Tags news
// @Produce json
// @Success 200 {object} dto.ListResponse{data=[]models.News}
// @Router /api/news [get]
func (h *NewsController) List(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	items, err := h.svc.List(ctx)
	if err != nil {
		return err
	}
	return listed(c, "News fetched successfully", items)
}

// Get godoc
// @Summary Get a news item
// @Tags news
// @Produce json
// @Param id path string true "News item ID"
// @Success 200 {object} dto.Response{data=models.News}
// @Failure 400 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/news/{id} [get]
func (h *NewsController) Get(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	item, err := h.svc.Get(ctx, id)
	if err != nil {
		return err
	}
	return ok(c, "News fetched successfully", item)
}

// Create godoc
// @Summary Publish a news item
// @Description JSON bodies with the same fields are accepted too
// @Tags news
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param category formData string false "Category"
// @Param date formData string false "Publication date"
// @Param icon formData string false "Icon"
// @Param color formData string false "Color"
// @Param link formData string false "Link"
// @Param image formData file false "Image"
// @Success 201 {object} dto.Response{data=models.News}
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Router /api/news/createNews [post]
func (h *NewsController) Create(c *fiber.Ctx) error {
	var req dto.NewsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	item, err := h.svc.Create(ctx, req, formFile(c, "image"))
	if err != nil {
		return err
	}
	return created(c, "News created successfully", item)
}

// Update godoc
// @Summary Update a news item
// @Description JSON bodies with the same fields are accepted too
// @Tags news
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "News item ID"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param category formData string false "Category"
// @Param date formData string false "Publication date"
// @Param icon formData string false "Icon"
// @Param color formData string false "Color"
// @Param link formData string false "Link"
// @Param image formData file false "Image"
// @Success 200 {object} dto.Response{data=models.News}
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/news/updateNews/{id} [put]
func (h *NewsController) Update(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	var req dto.NewsUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	item, err := h.svc.Update(ctx, id, req, formFile(c, "image"))
	if err != nil {
		return err
	}
	return ok(c, "News updated successfully", item)
}

// Delete godoc
// @Summary Delete a news item
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param id path string true "News item ID"
// @Success 200 {object} dto.Response
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/news/deleteNews/{id} [delete]
func (h *NewsController) Delete(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		return err
	}
	return ok(c, "News deleted successfully", nil)
}
