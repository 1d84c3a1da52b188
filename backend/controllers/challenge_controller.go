package controllers

import (
	"encoding/json"
	"errors"
	"habitat/backend/config"
	"habitat/backend/engine"
	"habitat/backend/models"
	"habitat/backend/utils"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ChallengeController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewChallengeController(db *gorm.DB, cfg *config.Config) *ChallengeController {
	return &ChallengeController{DB: db, Cfg: cfg}
}

func (cc *ChallengeController) GetChallenges(c *fiber.Ctx) error {
	ecosystem := c.Query("ecosystem")

	query := cc.DB.Model(&models.Challenge{})
	if ecosystem != "" {
		query = query.Where("ecosystem = ?", ecosystem)
	}

	var challenges []models.Challenge
	query.Order("created_at DESC").Find(&challenges)

	var result []fiber.Map
	for _, challenge := range challenges {
		var count int64
		cc.DB.Model(&models.ChallengeQuestion{}).Where("challenge_id = ?", challenge.ID).Count(&count)

		result = append(result, fiber.Map{
			"id":          challenge.ID,
			"title":       challenge.Title,
			"description": challenge.Description,
			"ecosystem":   challenge.Ecosystem,
			"questions":   count,
		})
	}

	return c.JSON(result)
}

func (cc *ChallengeController) GetChallengeDetails(c *fiber.Ctx) error {
	challengeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid challenge ID",
		})
	}

	var challenge models.Challenge
	if err := cc.DB.Preload("Questions").First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Challenge not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var questions []fiber.Map
	for _, q := range challenge.Questions {
		var options []string
		json.Unmarshal([]byte(q.Options), &options)

		questions = append(questions, fiber.Map{
			"id":      q.ID,
			"prompt":  q.Prompt,
			"options": options,
			"order":   q.SequenceOrder,
		})
	}

	return c.JSON(fiber.Map{
		"id":          challenge.ID,
		"title":       challenge.Title,
		"description": challenge.Description,
		"ecosystem":   challenge.Ecosystem,
		"questions":   questions,
	})
}

// SubmitChallenge scores a situational challenge set. Challenges pay per
// correct answer but only count as beaten on a perfect run, and the XP
// credit lands on the learner's total exactly once.
func (cc *ChallengeController) SubmitChallenge(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	challengeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid challenge ID",
		})
	}

	var input struct {
		Answers map[string]string `json:"answers"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var challenge models.Challenge
	if err := cc.DB.Preload("Questions").First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Challenge not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	unit := engine.ExerciseUnit{
		ID:   "challenge-" + strconv.Itoa(challengeID),
		Type: engine.StepMultipleChoice,
	}
	for _, q := range challenge.Questions {
		var accepted []string
		json.Unmarshal([]byte(q.Answers), &accepted)
		unit.Items = append(unit.Items, engine.AnswerItem{
			ID:      strconv.Itoa(int(q.ID)),
			Correct: accepted,
		})
	}

	var beatenCount int64
	cc.DB.Model(&models.ChallengeCompletion{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Count(&beatenCount)
	alreadyBeaten := beatenCount > 0

	session := engine.NewScoringSession(unit)
	outcome, err := session.Score(engine.SubmissionAttempt{
		UnitID:      unit.ID,
		Answers:     input.Answers,
		SubmittedAt: time.Now(),
	}, alreadyBeaten)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Invalid scoring configuration",
		})
	}

	// Challenges stay replayable for feedback, but the cumulative XP credit
	// goes through the same one-way gate as unit completions. They never
	// feed the unit completion counters.
	beaten := outcome.Result.Succeeded(engine.AllOrNothing)
	justBeaten := outcome.Completion.JustCompleted
	if justBeaten {
		txErr := cc.DB.Transaction(func(tx *gorm.DB) error {
			completion := models.ChallengeCompletion{UserID: userID, ChallengeID: uint(challengeID)}
			if err := tx.Create(&completion).Error; err != nil {
				return err
			}

			var progress models.UserProgress
			if err := tx.Where("user_id = ?", userID).First(&progress).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				progress = models.UserProgress{UserID: userID}
			}
			progress.TotalXP += outcome.Reward.XPAwarded
			progress.LastActive = time.Now()
			return tx.Save(&progress).Error
		})
		if txErr != nil {
			// Another submit won the race; this one is a repeat, not an error
			if errors.Is(txErr, gorm.ErrDuplicatedKey) {
				justBeaten = false
			} else {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Could not save completion",
				})
			}
		}
	}

	var feedback []fiber.Map
	for _, q := range challenge.Questions {
		feedback = append(feedback, fiber.Map{
			"question_id": q.ID,
			"correct":     outcome.ItemCorrect[strconv.Itoa(int(q.ID))],
		})
	}

	return c.JSON(fiber.Map{
		"correct_count": outcome.Result.CorrectCount,
		"total_count":   outcome.Result.TotalCount,
		"beaten":        beaten,
		"just_beaten":   justBeaten,
		"xp_awarded":    outcome.Reward.XPAwarded,
		"feedback":      feedback,
	})
}

func (cc *ChallengeController) CreateChallenge(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Ecosystem   string `json:"ecosystem"`
		Questions   []struct {
			Prompt  string   `json:"prompt"`
			Options []string `json:"options"`
			Answers []string `json:"answers"`
		} `json:"questions"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	challenge := models.Challenge{
		Title:       input.Title,
		Description: input.Description,
		Ecosystem:   input.Ecosystem,
		AuthorID:    userID,
	}
	for i, q := range input.Questions {
		optionsJson, _ := json.Marshal(q.Options)
		answersJson, _ := json.Marshal(q.Answers)
		challenge.Questions = append(challenge.Questions, models.ChallengeQuestion{
			Prompt:        q.Prompt,
			Options:       string(optionsJson),
			Answers:       string(answersJson),
			SequenceOrder: i + 1,
		})
	}

	if err := cc.DB.Create(&challenge).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create challenge",
		})
	}

	return c.JSON(fiber.Map{
		"message":   "Challenge created",
		"challenge": challenge,
	})
}
