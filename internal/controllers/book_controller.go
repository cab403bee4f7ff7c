package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Fazeelit/mohafizbackend/dto"
	"github.com/Fazeelit/mohafizbackend/internal/middleware"
	"github.com/Fazeelit/mohafizbackend/internal/services"
)

type BookController struct {
	base
	svc *services.BookService
}

func NewBookController(svc *services.BookService, timeout time.Duration) *BookController {
	return &BookController{base: base{timeout: timeout}, svc: svc}
}

// List godoc
// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {object} dto.ListResponse{data=[]models.Book}
// @Router /api/books [get]
func (h *BookController) List(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	books, err := h.svc.List(ctx)
	if err != nil {
		return err
	}
	return listed(c, "Books fetched successfully", books)
}

// Get godoc
// @Summary Get a book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} dto.Response{data=models.Book}
// @Failure 400 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/books/{id} [get]
func (h *BookController) Get(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	book, err := h.svc.Get(ctx, id)
	if err != nil {
		return err
	}
	return ok(c, "Book fetched successfully", book)
}

// Download godoc
// @Summary Count a download and return the file URL
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} dto.Response{data=dto.BookDownloadResponse}
// @Failure 400 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/books/download/{id} [get]
func (h *BookController) Download(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	book, err := h.svc.Download(ctx, id)
	if err != nil {
		return err
	}
	return ok(c, "Book download link generated", dto.BookDownloadResponse{
		FileURL:   book.FileURL,
		Downloads: book.Downloads,
	})
}

// Upload godoc
// @Summary Upload a book
// @Tags books
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param author formData string true "Author"
// @Param category formData string true "Category"
// @Param language formData string true "Language"
// @Param status formData string false "available, unavailable, active or inactive"
// @Param file formData file true "PDF, at most 10MB"
// @Success 201 {object} dto.Response{data=models.Book}
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Failure 503 {object} apperr.Body "Media storage is not configured"
// @Router /api/books/uploadBook [post]
func (h *BookController) Upload(c *fiber.Ctx) error {
	var req dto.BookRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	book, err := h.svc.Create(ctx, req, formFile(c, "file"), middleware.UIDPtr(c))
	if err != nil {
		return err
	}
	return created(c, "Book uploaded successfully", book)
}

// Update godoc
// @Summary Update a book
// @Description A new file replaces the stored one
// @Tags books
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Param title formData string false "Title"
// @Param author formData string false "Author"
// @Param category formData string false "Category"
// @Param language formData string false "Language"
// @Param status formData string false "available, unavailable, active or inactive"
// @Param file formData file false "PDF, at most 10MB"
// @Success 200 {object} dto.Response{data=models.Book}
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/books/updateBook/{id} [put]
func (h *BookController) Update(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	var req dto.BookUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	book, err := h.svc.Update(ctx, id, req, formFile(c, "file"))
	if err != nil {
		return err
	}
	return ok(c, "Book updated successfully", book)
}

// Delete godoc
// @Summary Delete a book
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {object} dto.Response
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/books/deleteBook/{id} [delete]
func (h *BookController) Delete(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		return err
	}
	return ok(c, "Book deleted successfully", nil)
}
