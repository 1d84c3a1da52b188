package controllers

import (
	"encoding/json"
	"habitat/backend/clients"
	"habitat/backend/config"
	"habitat/backend/engine"
	"habitat/backend/models"
	"habitat/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AssessmentController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Client *clients.AssessmentClient
}

func NewAssessmentController(db *gorm.DB, cfg *config.Config, client *clients.AssessmentClient) *AssessmentController {
	return &AssessmentController{DB: db, Cfg: cfg, Client: client}
}

func (ac *AssessmentController) tierThresholds() []engine.Threshold {
	return []engine.Threshold{
		{Min: 0, Label: "explorer"},
		{Min: ac.Cfg.AssessmentProMin, Label: "pro"},
		{Min: ac.Cfg.AssessmentPremiumMin, Label: "premium"},
	}
}

// SubmitAssessment forwards the learner's recording to the speech-assessment
// service and stores the verdict. The service's recommended tier wins; the
// overall score is only classified locally when the service returns none.
func (ac *AssessmentController) SubmitAssessment(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return utils.BadRequest(c, "Missing audio recording")
	}
	referenceText := c.FormValue("reference_text")
	language := c.FormValue("language", "en")
	if referenceText == "" {
		return utils.BadRequest(c, "Missing reference text")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.InternalServerError(c, "Could not read audio recording")
	}
	defer file.Close()

	verdict, err := ac.Client.Score(file, fileHeader.Filename, referenceText, language)
	if err != nil {
		return utils.BadGateway(c, "Assessment service unavailable")
	}

	tier := verdict.RecommendedTier
	if tier == "" {
		tier, err = engine.Classify(verdict.Scores.Overall, ac.tierThresholds())
		if err != nil {
			return utils.InternalServerError(c, "Invalid tier configuration")
		}
	}

	strengthsJson, _ := json.Marshal(verdict.Feedback.Strengths)
	improvementsJson, _ := json.Marshal(verdict.Feedback.Improvements)

	result := models.AssessmentResult{
		UserID:        userID,
		Tier:          tier,
		Overall:       verdict.Scores.Overall,
		Pronunciation: verdict.Scores.Pronunciation,
		Fluency:       verdict.Scores.Fluency,
		Strengths:     string(strengthsJson),
		Improvements:  string(improvementsJson),
		Language:      language,
		ReferenceText: referenceText,
	}
	if err := ac.DB.Create(&result).Error; err != nil {
		return utils.InternalServerError(c, "Could not save assessment")
	}

	ac.DB.Model(&models.User{}).Where("id = ?", userID).Update("tier", tier)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"tier": tier,
		"scores": fiber.Map{
			"overall":       verdict.Scores.Overall,
			"pronunciation": verdict.Scores.Pronunciation,
			"fluency":       verdict.Scores.Fluency,
		},
		"feedback": fiber.Map{
			"strengths":    verdict.Feedback.Strengths,
			"improvements": verdict.Feedback.Improvements,
		},
	})
}

func (ac *AssessmentController) GetLatestAssessment(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var result models.AssessmentResult
	if err := ac.DB.Where("user_id = ?", userID).Order("created_at DESC").First(&result).Error; err != nil {
		return utils.NotFound(c, "No assessment found")
	}

	var strengths, improvements []string
	json.Unmarshal([]byte(result.Strengths), &strengths)
	json.Unmarshal([]byte(result.Improvements), &improvements)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"tier": result.Tier,
		"scores": fiber.Map{
			"overall":       result.Overall,
			"pronunciation": result.Pronunciation,
			"fluency":       result.Fluency,
		},
		"feedback": fiber.Map{
			"strengths":    strengths,
			"improvements": improvements,
		},
		"taken_at": result.CreatedAt,
	})
}
