package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/socialflow/internal/service"
	"github.com/maheshrc27/socialflow/internal/transfer"
)

type CreditHandler struct {
	s service.CreditService
}

func NewCreditHandler(service service.CreditService) *CreditHandler {
	return &CreditHandler{s: service}
}

func (h *CreditHandler) GetBalance(c *fiber.Ctx) error {
	balance, err := h.s.Balance(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to read balance",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"credits": balance,
	})
}

func (h *CreditHandler) TopUp(c *fiber.Ctx) error {
	var req transfer.TopUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	balance, err := h.s.TopUp(c.Context(), GetUserID(c), req.Amount)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidAmount) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"credits": balance,
	})
}
