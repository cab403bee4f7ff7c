// Package controllers holds the Fiber handlers. They parse requests, bound
// each call with the store timeout, and shape the JSON envelope; rules live
// in services.
package controllers

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Fazeelit/mohafizbackend/dto"
	"github.com/Fazeelit/mohafizbackend/internal/apperr"
)

type base struct {
	timeout time.Duration
}

func (b base) ctx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), b.timeout)
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return nil
}

// formFiles returns the files uploaded under name; nil when the request is
// not multipart or carries none.
func formFiles(c *fiber.Ctx, name string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[name]
}

func formFile(c *fiber.Ctx, name string) *multipart.FileHeader {
	files := formFiles(c, name)
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

func ok(c *fiber.Ctx, msg string, data any) error {
	return c.Status(fiber.StatusOK).JSON(dto.Response{Message: msg, Data: data})
}

func created(c *fiber.Ctx, msg string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.Response{Message: msg, Data: data})
}

func listed[T any](c *fiber.Ctx, msg string, items []T) error {
	return c.Status(fiber.StatusOK).JSON(dto.ListResponse{Message: msg, Total: len(items), Data: items})
}
