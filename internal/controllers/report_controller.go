package controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Fazeelit/mohafizbackend/dto"
	"github.com/Fazeelit/mohafizbackend/internal/apperr"
	"github.com/Fazeelit/mohafizbackend/internal/middleware"
	"github.com/Fazeelit/mohafizbackend/internal/services"
)

type ReportController struct {
	base
	svc *services.ReportService
}

func NewReportController(svc *services.ReportService, timeout time.Duration) *ReportController {
	return &ReportController{base: base{timeout: timeout}, svc: svc}
}

// Create godoc
// @Summary File an abuse report
// @Description Anonymous reports drop name, phone and email. Up to 5 images under "files".
// @Tags reports
// @Accept multipart/form-data
// @Produce json
// @Param complaintType formData string true "Complaint type"
// @Param anonymous formData bool false "Hide reporter details"
// @Param name formData string false "Reporter name"
// @Param phone formData string false "Reporter phone"
// @Param email formData string false "Reporter email"
// @Param victimName formData string true "Victim name"
// @Param victimAge formData int true "Victim age"
// @Param address formData string true "Address"
// @Param district formData string true "District"
// @Param description formData string true "Description"
// @Param files formData file false "Evidence images"
// @Success 201 {object} dto.Response{data=models.Report}
// @Failure 400 {object} apperr.Body
// @Router /api/reports/createReport [post]
func (h *ReportController) Create(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	report, err := h.svc.Create(ctx, req, formFiles(c, "files"))
	if err != nil {
		return err
	}
	return created(c, "Report submitted successfully", report)
}

// Track godoc
// @Summary Check a report's status
// @Tags reports
// @Produce json
// @Param trackingId path string true "Tracking ID"
// @Success 200 {object} dto.Response{data=dto.ReportTrackResponse}
// @Failure 404 {object} apperr.Body
// @Router /api/reports/track/{trackingId} [get]
func (h *ReportController) Track(c *fiber.Ctx) error {
	trackingID := strings.TrimSpace(c.Params("trackingId"))
	if trackingID == "" {
		return apperr.Validation("Tracking ID is required")
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	res, err := h.svc.Track(ctx, trackingID)
	if err != nil {
		return err
	}
	return ok(c, "Report status fetched successfully", res)
}

// List godoc
// @Summary List reports
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse{data=[]models.Report}
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Router /api/reports [get]
func (h *ReportController) List(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	reports, err := h.svc.List(ctx)
	if err != nil {
		return err
	}
	return listed(c, "Reports fetched successfully", reports)
}

// Get godoc
// @Summary Get a report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} dto.Response{data=models.Report}
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/reports/{id} [get]
func (h *ReportController) Get(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	report, err := h.svc.Get(ctx, id)
	if err != nil {
		return err
	}
	return ok(c, "Report fetched successfully", report)
}

// Update godoc
// @Summary Change a report status
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param body body dto.ReportUpdateRequest true "Pending, In Progress or Resolved"
// @Success 200 {object} dto.Response{data=models.Report}
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/reports/updateReport/{id} [put]
func (h *ReportController) Update(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	var req dto.ReportUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	report, err := h.svc.Update(ctx, id, req)
	if err != nil {
		return err
	}
	return ok(c, "Report updated successfully", report)
}

// Delete godoc
// @Summary Delete a report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} dto.Response
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/reports/deleteReport/{id} [delete]
func (h *ReportController) Delete(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		return err
	}
	return ok(c, "Report deleted successfully", nil)
}
