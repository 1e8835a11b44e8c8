package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/socialflow/internal/service"
	"github.com/maheshrc27/socialflow/internal/transfer"
)

type IdeaHandler struct {
	s service.PublishService
}

func NewIdeaHandler(service service.PublishService) *IdeaHandler {
	return &IdeaHandler{s: service}
}

func (h *IdeaHandler) ListIdeas(c *fiber.Ctx) error {
	ideas, err := h.s.Ideas(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list ideas",
		})
	}
	return c.Status(fiber.StatusOK).JSON(ideas)
}

func (h *IdeaHandler) RemoveIdea(c *fiber.Ctx) error {
	var req transfer.IdeaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	ideas, err := h.s.DeleteIdea(c.Context(), GetUserID(c), req.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove idea",
		})
	}
	return c.Status(fiber.StatusOK).JSON(ideas)
}

// PublishIdea posts a saved idea immediately.
func (h *IdeaHandler) PublishIdea(c *fiber.Ctx) error {
	var req transfer.IdeaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	post, err := h.s.PublishIdea(c.Context(), GetUserID(c), req.ID, req.Platforms)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, service.ErrIdeaNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(post)
}
