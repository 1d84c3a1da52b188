package controllers

import (
	"encoding/json"
	"errors"
	"habitat/backend/models"
	"habitat/backend/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func (uc *UnitsController) CreateUnit(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var unit models.Unit
	if err := c.BodyParser(&unit); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	unit.AuthorID = userID
	if unit.PassThreshold < 0 || unit.PassThreshold > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Pass threshold must be between 0 and 100",
		})
	}

	if err := uc.DB.Create(&unit).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create unit",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Unit created",
		"unit":    unit,
	})
}

func (uc *UnitsController) AddQuestion(c *fiber.Ctx) error {
	unitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid unit ID",
		})
	}

	var input struct {
		Prompt  string   `json:"prompt"`
		Options []string `json:"options"`
		Answers []string `json:"answers"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var unit models.Unit
	if err := uc.DB.First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Unit not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	if len(input.Answers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one accepted answer is required",
		})
	}

	// Choice questions must include every accepted answer in the options
	if len(input.Options) > 0 {
		for _, answer := range input.Answers {
			found := false
			for _, option := range input.Options {
				if option == answer {
					found = true
					break
				}
			}
			if !found {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Accepted answers must appear in options",
				})
			}
		}
	}

	optionsJson, _ := json.Marshal(input.Options)
	answersJson, _ := json.Marshal(input.Answers)

	var questionCount int64
	uc.DB.Model(&models.UnitQuestion{}).Where("unit_id = ?", unitID).Count(&questionCount)

	question := models.UnitQuestion{
		UnitID:        uint(unitID),
		Prompt:        input.Prompt,
		Options:       string(optionsJson),
		Answers:       string(answersJson),
		SequenceOrder: int(questionCount) + 1,
	}

	if err := uc.DB.Create(&question).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create question",
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Question added",
		"question": question,
	})
}

func (uc *UnitsController) UpdateQuestion(c *fiber.Ctx) error {
	unitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid unit ID",
		})
	}

	questionID, err := strconv.Atoi(c.Params("questionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid question ID",
		})
	}

	var input struct {
		Prompt        string   `json:"prompt"`
		Options       []string `json:"options"`
		Answers       []string `json:"answers"`
		SequenceOrder int      `json:"sequence_order"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var question models.UnitQuestion
	if err := uc.DB.Where("id = ? AND unit_id = ?", questionID, unitID).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Question not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	if input.Prompt != "" {
		question.Prompt = input.Prompt
	}
	if input.Options != nil {
		optionsJson, _ := json.Marshal(input.Options)
		question.Options = string(optionsJson)
	}
	if input.Answers != nil {
		answersJson, _ := json.Marshal(input.Answers)
		question.Answers = string(answersJson)
	}
	if input.SequenceOrder != 0 {
		question.SequenceOrder = input.SequenceOrder
	}

	if err := uc.DB.Save(&question).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update question",
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Question updated",
		"question": question,
	})
}

func (uc *UnitsController) UpdateUnitSettings(c *fiber.Ctx) error {
	unitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid unit ID",
		})
	}

	var input struct {
		Title         string `json:"title"`
		ShortDesc     string `json:"short_desc"`
		Description   string `json:"description"`
		Ecosystem     string `json:"ecosystem"`
		Difficulty    string `json:"difficulty"`
		Species       string `json:"species"`
		ImageURL      string `json:"image_url"`
		AccessLevel   string `json:"access_level"`
		PassThreshold int    `json:"pass_threshold"`
		FlatXP        int    `json:"flat_xp"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var unit models.Unit
	if err := uc.DB.First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Unit not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	if input.Title != "" {
		unit.Title = input.Title
	}
	if input.ShortDesc != "" {
		unit.ShortDesc = input.ShortDesc
	}
	if input.Description != "" {
		unit.Description = input.Description
	}
	if input.Ecosystem != "" {
		unit.Ecosystem = input.Ecosystem
	}
	if input.Difficulty != "" {
		unit.Difficulty = input.Difficulty
	}
	if input.Species != "" {
		unit.Species = input.Species
	}
	if input.ImageURL != "" {
		unit.ImageURL = input.ImageURL
	}
	if input.AccessLevel != "" {
		unit.AccessLevel = input.AccessLevel
	}
	if input.PassThreshold > 0 && input.PassThreshold <= 100 {
		unit.PassThreshold = input.PassThreshold
	}
	if input.FlatXP > 0 {
		unit.FlatXP = input.FlatXP
	}

	if err := uc.DB.Save(&unit).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update unit",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Unit updated",
		"unit":    unit,
	})
}
