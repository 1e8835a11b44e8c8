package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/queue"
	"github.com/maheshrc27/socialflow/internal/transfer"
	"github.com/maheshrc27/socialflow/internal/wizard"
)

type WizardHandler struct {
	w           *wizard.Wizard
	AsynqClient *asynq.Client
}

func NewWizardHandler(w *wizard.Wizard, asynqClient *asynq.Client) *WizardHandler {
	return &WizardHandler{w: w, AsynqClient: asynqClient}
}

func (h *WizardHandler) GetState(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.w.State(GetUserID(c)))
}

func (h *WizardHandler) Scan(c *fiber.Ctx) error {
	var req transfer.ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	if err := h.w.Scan(c.Context(), GetUserID(c), req.URL); err != nil {
		return c.Status(wizardStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(h.w.State(GetUserID(c)))
}

func (h *WizardHandler) Skip(c *fiber.Ctx) error {
	if err := h.w.Skip(GetUserID(c)); err != nil {
		return c.Status(wizardStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(h.w.State(GetUserID(c)))
}

func (h *WizardHandler) SetBrand(c *fiber.Ctx) error {
	var req transfer.BrandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	if err := h.w.SetBrand(GetUserID(c), req.Brand); err != nil {
		return c.Status(wizardStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(h.w.State(GetUserID(c)))
}

func (h *WizardHandler) Back(c *fiber.Ctx) error {
	if err := h.w.Back(GetUserID(c)); err != nil {
		return c.Status(wizardStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(h.w.State(GetUserID(c)))
}

func (h *WizardHandler) Generate(c *fiber.Ctx) error {
	if err := h.w.Generate(c.Context(), GetUserID(c)); err != nil {
		return c.Status(wizardStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(h.w.State(GetUserID(c)))
}

func (h *WizardHandler) RegenerateImage(c *fiber.Ctx) error {
	var req transfer.ImageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	if err := h.w.RegenerateImage(c.Context(), GetUserID(c), req.Index, req.Prompt); err != nil {
		return c.Status(wizardStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(h.w.State(GetUserID(c)))
}

func (h *WizardHandler) EditCaption(c *fiber.Ctx) error {
	var req transfer.CaptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	if err := h.w.EditCaption(GetUserID(c), req.Index, req.Caption); err != nil {
		return c.Status(wizardStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(h.w.State(GetUserID(c)))
}

func (h *WizardHandler) ToggleSelect(c *fiber.Ctx) error {
	var req transfer.IndexRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	if err := h.w.ToggleSelect(GetUserID(c), req.Index); err != nil {
		return c.Status(wizardStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(h.w.State(GetUserID(c)))
}

func (h *WizardHandler) SaveIdea(c *fiber.Ctx) error {
	var req transfer.IndexRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	if err := h.w.SaveIdea(c.Context(), GetUserID(c), req.Index); err != nil {
		return c.Status(wizardStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Idea saved to your library",
	})
}

func (h *WizardHandler) Finalize(c *fiber.Ctx) error {
	var req transfer.FinalizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	userID := GetUserID(c)
	posts, err := h.w.Finalize(c.Context(), userID, req.Platforms, req.Schedule)
	if err != nil {
		return c.Status(wizardStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	for _, post := range posts {
		if post.Status != models.PostStatusScheduled || post.ScheduledTime == nil {
			continue
		}
		delay := time.Until(*post.ScheduledTime)
		if delay < 0 {
			delay = 0
		}
		err := queue.EnqueuePost(h.AsynqClient, queue.PublishPostPayload{
			UserID: userID,
			PostID: post.ID,
		}, delay)
		if err != nil {
			// The cron sweep picks the post up later.
			slog.Error(err.Error(), "post_id", post.ID)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post successfully distributed!",
		"posts":   posts,
	})
}
