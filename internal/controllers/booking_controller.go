package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Fazeelit/mohafizbackend/dto"
	"github.com/Fazeelit/mohafizbackend/internal/middleware"
	"github.com/Fazeelit/mohafizbackend/internal/services"
)

type BookingController struct {
	base
	svc *services.BookingService
}

func NewBookingController(svc *services.BookingService, timeout time.Duration) *BookingController {
	return &BookingController{base: base{timeout: timeout}, svc: svc}
}

// Create godoc
// @Summary Book a service
// @Tags bookings
// @Accept json
// @Produce json
// @Param body body dto.BookingRequest true "Booking"
// @Success 201 {object} dto.Response{data=models.Booking}
// @Failure 400 {object} apperr.Body "Booking with this CNIC already exists"
// @Router /api/bookings/createBooking [post]
func (h *BookingController) Create(c *fiber.Ctx) error {
	var req dto.BookingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	booking, err := h.svc.Create(ctx, req)
	if err != nil {
		return err
	}
	return created(c, "Booking created successfully", booking)
}

// List godoc
// @Summary List bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse{data=[]models.Booking}
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Router /api/bookings [get]
func (h *BookingController) List(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	bookings, err := h.svc.List(ctx)
	if err != nil {
		return err
	}
	return listed(c, "Bookings fetched successfully", bookings)
}

// Get godoc
// @Summary Get a booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.Response{data=models.Booking}
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/bookings/{id} [get]
func (h *BookingController) Get(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	booking, err := h.svc.Get(ctx, id)
	if err != nil {
		return err
	}
	return ok(c, "Booking fetched successfully", booking)
}

// Update godoc
// @Summary Update a booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param body body dto.BookingUpdateRequest true "Fields to change"
// @Success 200 {object} dto.Response{data=models.Booking}
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/bookings/updateBooking/{id} [put]
func (h *BookingController) Update(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	var req dto.BookingUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	booking, err := h.svc.Update(ctx, id, req)
	if err != nil {
		return err
	}
	return ok(c, "Booking updated successfully", booking)
}

// Delete godoc
// @Summary Delete a booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.Response
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/bookings/deleteBooking/{id} [delete]
func (h *BookingController) Delete(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		return err
	}
	return ok(c, "Booking deleted successfully", nil)
}
