package controllers

import (
	"habitat/backend/clients"
	"habitat/backend/config"
	"habitat/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type TranslateController struct {
	Cfg    *config.Config
	Client *clients.TranslateClient
}

func NewTranslateController(cfg *config.Config, client *clients.TranslateClient) *TranslateController {
	return &TranslateController{Cfg: cfg, Client: client}
}

// Translate is a display-only passthrough to the translation service; the
// scoring engine never consumes its output.
func (tc *TranslateController) Translate(c *fiber.Ctx) error {
	var input clients.TranslateRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Text == "" || input.TargetLanguage == "" {
		return utils.BadRequest(c, "Text and target language are required")
	}

	result, err := tc.Client.Translate(input)
	if err != nil {
		return utils.BadGateway(c, "Translation service unavailable")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"translated_text": result.TranslatedText,
	})
}
