package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/socialflow/internal/ai"
	"github.com/maheshrc27/socialflow/internal/service"
	"github.com/maheshrc27/socialflow/internal/wizard"
)

func GetUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

// wizardStatus maps the wizard's error taxonomy onto HTTP statuses:
// validation 400, busy 409, insufficient credits 402, collaborator 502.
func wizardStatus(err error) int {
	switch {
	case errors.Is(err, wizard.ErrBusy):
		return fiber.StatusConflict
	case errors.Is(err, wizard.ErrInsufficientCredits):
		return fiber.StatusPaymentRequired
	case errors.Is(err, ai.ErrInvalidURL),
		errors.Is(err, wizard.ErrWrongStep),
		errors.Is(err, wizard.ErrEmptyBrand),
		errors.Is(err, wizard.ErrIndexOutOfRange),
		errors.Is(err, wizard.ErrEmptySelection),
		errors.Is(err, wizard.ErrNoConnectedPlatforms),
		errors.Is(err, wizard.ErrNoTargetPlatforms),
		errors.Is(err, wizard.ErrPlatformNotConnected),
		errors.Is(err, service.ErrInvalidAmount):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusBadGateway
	}
}
