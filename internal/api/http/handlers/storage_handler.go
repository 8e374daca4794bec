package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-gateway/internal/storage"
)

// StorageHandler exposes the file store endpoints.
type StorageHandler struct {
	store *storage.Service
}

// NewStorageHandler constructs handler.
func NewStorageHandler(store *storage.Service) *StorageHandler {
	return &StorageHandler{store: store}
}

// Upload handles POST /storage.
func (h *StorageHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "multipart field 'file' required")
	}

	file, err := header.Open()
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "unreadable upload")
	}
	defer file.Close()

	stored, size, err := h.store.Store(c.Context(), header.Filename, file)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"filename": stored,
			"size":     size,
			"url":      "/storage/" + stored,
		},
	})
}

// Serve handles GET /storage/:filename.
func (h *StorageHandler) Serve(c *fiber.Ctx) error {
	path, err := h.store.Path(c.Params("filename"))
	if err != nil {
		return err
	}
	return c.SendFile(path)
}

// Delete handles DELETE /storage/:filename.
func (h *StorageHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.Delete(c.Context(), c.Params("filename")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
