package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Fazeelit/mohafizbackend/dto"
	"github.com/Fazeelit/mohafizbackend/internal/middleware"
	"github.com/Fazeelit/mohafizbackend/internal/services"
)

type HelplineController struct {
	base
	svc *services.HelplineService
}

func NewHelplineController(svc *services.HelplineService, timeout time.Duration) *HelplineController {
	return &HelplineController{base: base{timeout: timeout}, svc: svc}
}

// Create godoc
// @Summary Contact the helpline
// @Tags helpline
// @Accept json
// @Produce json
// @Param body body dto.HelplineRequest true "Request"
// @Success 201 {object} dto.Response{data=models.Helpline}
// @Failure 400 {object} apperr.Body
// @Router /api/helpline/createHelpline [post]
func (h *HelplineController) Create(c *fiber.Ctx) error {
	var req dto.HelplineRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	request, err := h.svc.Create(ctx, req)
	if err != nil {
		return err
	}
	return created(c, "Helpline request submitted successfully", request)
}

// List godoc
// @Summary List helpline requests
// @Tags helpline
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse{data=[]models.Helpline}
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Router /api/helpline [get]
func (h *HelplineController) List(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	requests, err := h.svc.List(ctx)
	if err != nil {
		return err
	}
	return listed(c, "Helpline requests fetched successfully", requests)
}

// Get godoc
// @Summary Get a helpline request
// @Tags helpline
// @Produce json
// @Security BearerAuth
// @Param id path string true "Helpline request ID"
// @Success 200 {object} dto.Response{data=models.Helpline}
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/helpline/{id} [get]
func (h *HelplineController) Get(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	request, err := h.svc.Get(ctx, id)
	if err != nil {
		return err
	}
	return ok(c, "Helpline request fetched successfully", request)
}

// Delete godoc
// @Summary Delete a helpline request
// @Tags helpline
// @Produce json
// @Security BearerAuth
// @Param id path string true "Helpline request ID"
// @Success 200 {object} dto.Response
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/helpline/deleteHelpline/{id} [delete]
func (h *HelplineController) Delete(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		return err
	}
	return ok(c, "Helpline request deleted successfully", nil)
}
