package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Fazeelit/mohafizbackend/dto"
	"github.com/Fazeelit/mohafizbackend/internal/middleware"
	"github.com/Fazeelit/mohafizbackend/internal/services"
)

type EmergencyController struct {
	base
	svc *services.EmergencyService
}

func NewEmergencyController(svc *services.EmergencyService, timeout time.Duration) *EmergencyController {
	return &EmergencyController{base: base{timeout: timeout}, svc: svc}
}

// List godoc
// @Summary List emergencies
// @Tags emergencies
// @Produce json
// @Success 200 {object} dto.ListResponse{data=[]models.Emergency}
// @Router /api/emergencies [get]
func (h *EmergencyController) List(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	alerts, err := h.svc.List(ctx)
	if err != nil {
		return err
	}
	return listed(c, "Emergencies fetched successfully", alerts)
}

// Get godoc
// @Summary Get an emergency
// @Tags emergencies
// @Produce json
// @Param id path string true "Emergency ID"
// @Success 200 {object} dto.Response{data=models.Emergency}
// @Failure 400 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/emergencies/{id} [get]
func (h *EmergencyController) Get(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	alert, err := h.svc.Get(ctx, id)
	if err != nil {
		return err
	}
	return ok(c, "Emergency fetched successfully", alert)
}

// Create godoc
// @Summary Raise an emergency alert
// @Description reportedBy is taken from the bearer token
// @Tags emergencies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.EmergencyRequest true "Emergency"
// @Success 201 {object} dto.Response{data=models.Emergency}
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Router /api/emergencies/createAlert [post]
func (h *EmergencyController) Create(c *fiber.Ctx) error {
	var req dto.EmergencyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	alert, err := h.svc.Create(ctx, req, middleware.UIDPtr(c))
	if err != nil {
		return err
	}
	return created(c, "Emergency alert created successfully", alert)
}

// Update godoc
// @Summary Update an emergency
// @Tags emergencies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Emergency ID"
// @Param body body dto.EmergencyUpdateRequest true "Fields to change"
// @Success 200 {object} dto.Response{data=models.Emergency}
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/emergencies/updateEmergency/{id} [put]
func (h *EmergencyController) Update(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	var req dto.EmergencyUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	alert, err := h.svc.Update(ctx, id, req)
	if err != nil {
		return err
	}
	return ok(c, "Emergency updated successfully", alert)
}

// Delete godoc
// @Summary Delete an emergency
// @Tags emergencies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Emergency ID"
// @Success 200 {object} dto.Response
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/emergencies/deleteEmergency/{id} [delete]
func (h *EmergencyController) Delete(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		return err
	}
	return ok(c, "Emergency deleted successfully", nil)
}
