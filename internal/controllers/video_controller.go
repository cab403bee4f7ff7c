package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Fazeelit/mohafizbackend/dto"
	"github.com/Fazeelit/mohafizbackend/internal/middleware"
	"github.com/Fazeelit/mohafizbackend/internal/services"
)

type VideoController struct {
	base
	svc *services.VideoService
}

func NewVideoController(svc *services.VideoService, timeout time.Duration) *VideoController {
	return &VideoController{base: base{timeout: timeout}, svc: svc}
}

// List godoc
// @Summary List videos
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse{data=[]models.Video}
// @Failure 401 {object} apperr.Body
// @Router /api/videos [get]
func (h *VideoController) List(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	videos, err := h.svc.List(ctx)
	if err != nil {
		return err
	}
	return listed(c, "Videos fetched successfully", videos)
}

// Get godoc
// @Summary Get a video
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 200 {object} dto.Response{data=models.Video}
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/videos/{id} [get]
func (h *VideoController) Get(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	video, err := h.svc.Get(ctx, id)
	if err != nil {
		return err
	}
	return ok(c, "Video fetched successfully", video)
}

// Download counts a view and returns the playable URL.
//
// @Summary Count a view and return the video URL
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} dto.Response{data=dto.VideoLinkResponse}
// @Failure 400 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/videos/download/{id} [get]
func (h *VideoController) Download(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	video, err := h.svc.View(ctx, id)
	if err != nil {
		return err
	}
	return ok(c, "Video link generated", dto.VideoLinkResponse{
		VideoFile: video.VideoFile,
		Views:     video.Views,
	})
}

// Upload godoc
// @Summary Upload a video
// @Tags videos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param instructor formData string true "Instructor"
// @Param category formData string true "Category"
// @Param duration formData string true "Duration"
// @Param status formData string false "published, draft or pending"
// @Param videoFile formData file true "Video file"
// @Success 201 {object} dto.Response{data=models.Video}
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Failure 503 {object} apperr.Body "Media storage is not configured"
// @Router /api/videos/uploadVideo [post]
func (h *VideoController) Upload(c *fiber.Ctx) error {
	var req dto.VideoRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	video, err := h.svc.Create(ctx, req, formFile(c, "videoFile"))
	if err != nil {
		return err
	}
	return created(c, "Video uploaded successfully", video)
}

// Update godoc
// @Summary Update a video
// @Description A new file replaces the stored one
// @Tags videos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Param title formData string false "Title"
// @Param instructor formData string false "Instructor"
// @Param category formData string false "Category"
// @Param duration formData string false "Duration"
// @Param status formData string false "published, draft or pending"
// @Param videoFile formData file false "Video file"
// @Success 200 {object} dto.Response{data=models.Video}
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/videos/updateVideo/{id} [put]
func (h *VideoController) Update(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	var req dto.VideoUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	video, err := h.svc.Update(ctx, id, req, formFile(c, "videoFile"))
	if err != nil {
		return err
	}
	return ok(c, "Video updated successfully", video)
}

// Delete godoc
// @Summary Delete a video
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 200 {object} dto.Response{data=models.Video}
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/videos/deleteVideo/{id} [delete]
func (h *VideoController) Delete(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	video, err := h.svc.Delete(ctx, id)
	if err != nil {
		return err
	}
	return ok(c, "Video deleted successfully", video)
}
