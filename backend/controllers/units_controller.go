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
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UnitsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUnitsController(db *gorm.DB, cfg *config.Config) *UnitsController {
	return &UnitsController{DB: db, Cfg: cfg}
}

// buildExerciseUnit converts a stored unit into the engine's value type.
// Question ids become item ids; stored answer JSON becomes accepted strings.
func buildExerciseUnit(unit models.Unit) engine.ExerciseUnit {
	eu := engine.ExerciseUnit{
		ID:                   strconv.Itoa(int(unit.ID)),
		Type:                 engine.StepType(unit.StepType),
		PassThresholdPercent: unit.PassThreshold,
	}
	for _, q := range unit.Questions {
		var accepted []string
		json.Unmarshal([]byte(q.Answers), &accepted)
		eu.Items = append(eu.Items, engine.AnswerItem{
			ID:      strconv.Itoa(int(q.ID)),
			Correct: accepted,
		})
	}
	return eu
}

func (uc *UnitsController) GetAvailableUnits(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	ecosystem := c.Query("ecosystem")
	difficulty := c.Query("difficulty")
	search := c.Query("search")

	query := uc.DB.Model(&models.Unit{}).Where("access_level = 'public'")
	if ecosystem != "" {
		query = query.Where("ecosystem = ?", ecosystem)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	if search != "" {
		query = query.Where("title LIKE ? OR short_desc LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var units []models.Unit
	query.Order("created_at").Find(&units)

	var result []fiber.Map
	for _, unit := range units {
		var completed int64
		uc.DB.Model(&models.UnitCompletion{}).
			Where("user_id = ? AND unit_id = ?", userID, unit.ID).
			Count(&completed)

		result = append(result, fiber.Map{
			"id":         unit.ID,
			"title":      unit.Title,
			"short_desc": unit.ShortDesc,
			"step_type":  unit.StepType,
			"ecosystem":  unit.Ecosystem,
			"difficulty": unit.Difficulty,
			"species":    unit.Species,
			"image_url":  unit.ImageURL,
			"completed":  completed > 0,
		})
	}

	return c.JSON(result)
}

func (uc *UnitsController) GetUnitDetails(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	unitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid unit ID",
		})
	}

	var unit models.Unit
	if err := uc.DB.Preload("Questions").First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Unit not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	// Questions are sent without their accepted answers
	var questions []fiber.Map
	for _, q := range unit.Questions {
		var options []string
		json.Unmarshal([]byte(q.Options), &options)

		questions = append(questions, fiber.Map{
			"id":      q.ID,
			"prompt":  q.Prompt,
			"options": options,
			"order":   q.SequenceOrder,
		})
	}

	var completed int64
	uc.DB.Model(&models.UnitCompletion{}).
		Where("user_id = ? AND unit_id = ?", userID, unitID).
		Count(&completed)

	return c.JSON(fiber.Map{
		"unit": fiber.Map{
			"id":             unit.ID,
			"title":          unit.Title,
			"description":    unit.Description,
			"step_type":      unit.StepType,
			"ecosystem":      unit.Ecosystem,
			"difficulty":     unit.Difficulty,
			"species":        unit.Species,
			"image_url":      unit.ImageURL,
			"pass_threshold": unit.PassThreshold,
			"questions":      questions,
		},
		"completed": completed > 0,
	})
}

// SubmitUnit scores a submission, shows feedback, and applies the completion
// gate. Completions and counter increments happen exactly once per
// (user, unit); the unique index on unit_completions closes the concurrent
// double-submit race.
func (uc *UnitsController) SubmitUnit(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	unitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid unit ID",
		})
	}

	type SubmitInput struct {
		Answers map[string]string `json:"answers"`
		// For externally graded step types: the grading service's verdict
		// and XP award, passed through untouched.
		Graded   bool `json:"graded"`
		EarnedXP int  `json:"earned_xp"`
	}

	var input SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var unit models.Unit
	if err := uc.DB.Preload("Questions").First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Unit not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var completedCount int64
	uc.DB.Model(&models.UnitCompletion{}).
		Where("user_id = ? AND unit_id = ?", userID, unitID).
		Count(&completedCount)
	alreadyCompleted := completedCount > 0

	stepType := engine.StepType(unit.StepType)
	attempt := engine.SubmissionAttempt{
		UnitID:      strconv.Itoa(unitID),
		Answers:     input.Answers,
		SubmittedAt: time.Now(),
	}

	var outcome engine.SessionOutcome
	if stepType.Scoreable() {
		session := engine.NewScoringSession(buildExerciseUnit(unit))
		outcome, err = session.Score(attempt, alreadyCompleted)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Invalid scoring configuration",
			})
		}
	} else {
		// AI-graded step: flat XP passthrough, no answer matching
		flatXP := unit.FlatXP
		if flatXP == 0 {
			flatXP = input.EarnedXP
		}
		result := engine.ScoreResult{Passed: input.Graded}
		reward, rerr := engine.ComputeReward(result, engine.FlatPolicy(flatXP))
		if rerr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Invalid scoring configuration",
			})
		}
		outcome = engine.SessionOutcome{
			Result:     result,
			Reward:     reward,
			Completion: engine.TryComplete(result, alreadyCompleted),
		}
	}

	justCompleted := outcome.Completion.JustCompleted
	if justCompleted {
		txErr := uc.DB.Transaction(func(tx *gorm.DB) error {
			completion := models.UnitCompletion{UserID: userID, UnitID: uint(unitID)}
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
			progress.UnitsCompleted++
			progress.LastActive = time.Now()
			if err := tx.Save(&progress).Error; err != nil {
				return err
			}

			if unit.Ecosystem != "" {
				var eco models.EcosystemProgress
				if err := tx.Where("user_id = ? AND ecosystem = ?", userID, unit.Ecosystem).First(&eco).Error; err != nil {
					if !errors.Is(err, gorm.ErrRecordNotFound) {
						return err
					}
					eco = models.EcosystemProgress{UserID: userID, Ecosystem: unit.Ecosystem}
				}
				eco.UnitsCompleted++
				if err := tx.Save(&eco).Error; err != nil {
					return err
				}
			}

			return nil
		})
		if txErr != nil {
			// Another submit won the race; this one is a repeat, not an error
			if errors.Is(txErr, gorm.ErrDuplicatedKey) {
				justCompleted = false
			} else {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Could not save completion",
				})
			}
		}
	}

	record := models.SubmissionRecord{
		AttemptID:     uuid.NewString(),
		UserID:        userID,
		UnitID:        uint(unitID),
		CorrectCount:  outcome.Result.CorrectCount,
		TotalCount:    outcome.Result.TotalCount,
		Score:         outcome.Result.Percent(),
		XPAwarded:     outcome.Reward.XPAwarded,
		Passed:        outcome.Result.Passed,
		JustCompleted: justCompleted,
	}
	uc.DB.Create(&record)

	var feedback []fiber.Map
	for _, q := range unit.Questions {
		id := strconv.Itoa(int(q.ID))
		feedback = append(feedback, fiber.Map{
			"question_id": q.ID,
			"correct":     outcome.ItemCorrect[id],
		})
	}

	var progress models.UserProgress
	uc.DB.Where("user_id = ?", userID).First(&progress)

	return c.JSON(fiber.Map{
		"attempt_id":     record.AttemptID,
		"correct_count":  outcome.Result.CorrectCount,
		"total_count":    outcome.Result.TotalCount,
		"score":          outcome.Result.Percent(),
		"is_perfect":     outcome.Result.IsPerfect,
		"passed":         outcome.Result.Passed,
		"xp_awarded":     outcome.Reward.XPAwarded,
		"bonus_applied":  outcome.Reward.BonusApplied,
		"just_completed": justCompleted,
		"feedback":       feedback,
		"total_xp":       progress.TotalXP,
		"level":          engine.GreenScaleLevel(progress.UnitsCompleted),
	})
}

func (uc *UnitsController) GetUnitAnalytics(c *fiber.Ctx) error {
	unitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid unit ID",
		})
	}

	var records []models.SubmissionRecord
	if err := uc.DB.Where("unit_id = ?", unitID).Order("created_at DESC").Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var attempts []fiber.Map
	for _, record := range records {
		var user models.User
		if err := uc.DB.First(&user, record.UserID).Error; err != nil {
			continue
		}

		attempts = append(attempts, fiber.Map{
			"user_id":        user.ID,
			"username":       user.Username,
			"correct_count":  record.CorrectCount,
			"total_count":    record.TotalCount,
			"score":          record.Score,
			"xp_awarded":     record.XPAwarded,
			"passed":         record.Passed,
			"just_completed": record.JustCompleted,
			"submitted_at":   record.CreatedAt,
		})
	}

	var completions int64
	uc.DB.Model(&models.UnitCompletion{}).Where("unit_id = ?", unitID).Count(&completions)

	return c.JSON(fiber.Map{
		"attempts":    attempts,
		"completions": completions,
	})
}
