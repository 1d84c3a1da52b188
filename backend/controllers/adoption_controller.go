package controllers

import (
	"habitat/backend/config"
	"habitat/backend/models"
	"habitat/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AdoptionController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAdoptionController(db *gorm.DB, cfg *config.Config) *AdoptionController {
	return &AdoptionController{DB: db, Cfg: cfg}
}

func (ac *AdoptionController) GetAdoptions(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var adoptions []models.SpeciesAdoption
	if err := ac.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&adoptions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, adoptions)
}

func (ac *AdoptionController) AdoptSpecies(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Species   string `json:"species"`
		Ecosystem string `json:"ecosystem"`
		Nickname  string `json:"nickname"`
		ImageURL  string `json:"image_url"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Species == "" || input.Ecosystem == "" {
		return utils.BadRequest(c, "Species and ecosystem are required")
	}

	adoption := models.SpeciesAdoption{
		UserID:    userID,
		Species:   input.Species,
		Ecosystem: input.Ecosystem,
		Nickname:  input.Nickname,
		ImageURL:  input.ImageURL,
	}
	if err := ac.DB.Create(&adoption).Error; err != nil {
		return utils.InternalServerError(c, "Could not save adoption")
	}

	return utils.Created(c, adoption)
}
