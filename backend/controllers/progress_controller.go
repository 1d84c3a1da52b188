package controllers

import (
	"habitat/backend/config"
	"habitat/backend/engine"
	"habitat/backend/models"
	"habitat/backend/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

// GetProgress godoc
// @Summary Get learner activity
// @Description Returns the last 4 months of completions, XP and logins
// @Tags progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	// Last 4 months of activity
	now := time.Now()
	months := make([]models.MonthlyActivity, 4)

	for i := 0; i < 4; i++ {
		month := now.AddDate(0, -i, 0)
		startOfMonth := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
		endOfMonth := startOfMonth.AddDate(0, 1, -1)

		var unitsCompleted int64
		pc.DB.Model(&models.UnitCompletion{}).
			Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, startOfMonth, endOfMonth).
			Count(&unitsCompleted)

		var xpEarned int64
		pc.DB.Model(&models.SubmissionRecord{}).
			Where("user_id = ? AND just_completed = ? AND created_at BETWEEN ? AND ?", userID, true, startOfMonth, endOfMonth).
			Select("COALESCE(SUM(xp_awarded), 0)").
			Scan(&xpEarned)

		loginFrequency := make(map[string]int)
		var logins []models.LoginHistory
		pc.DB.Where("user_id = ? AND login_time BETWEEN ? AND ?", userID, startOfMonth, endOfMonth).
			Find(&logins)
		for _, login := range logins {
			day := login.LoginTime.Format("2006-01-02")
			loginFrequency[day]++
		}

		months[i] = models.MonthlyActivity{
			Month:          month.Month(),
			Year:           month.Year(),
			UnitsCompleted: unitsCompleted,
			XPEarned:       xpEarned,
			LoginFrequency: loginFrequency,
		}
	}

	return c.JSON(fiber.Map{
		"progress": months,
	})
}

// GetProgressOverview godoc
// @Summary Get gamification overview
// @Description Returns cumulative XP, Green Scale level and ecosystem badges
// @Tags progress
// @Produce json
// @Success 200 {object} models.ProgressOverview
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/overview [get]
func (pc *ProgressController) GetProgressOverview(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var userProgress models.UserProgress
	pc.DB.Where("user_id = ?", userID).First(&userProgress)

	// The level is always recomputed from the metric, never stored
	badges := make(map[string]string)
	badgeLevels := make(map[string]int)
	var ecoRows []models.EcosystemProgress
	pc.DB.Where("user_id = ?", userID).Find(&ecoRows)
	for _, row := range ecoRows {
		if badge := engine.EcosystemBadge(row.Ecosystem, row.UnitsCompleted); badge != "" {
			badges[row.Ecosystem] = badge
			badgeLevels[row.Ecosystem] = engine.EcosystemBadgeLevel(row.UnitsCompleted)
		}
	}

	return c.JSON(models.ProgressOverview{
		TotalXP:         userProgress.TotalXP,
		UnitsCompleted:  userProgress.UnitsCompleted,
		StreakDays:      userProgress.StreakDays,
		GreenScaleLevel: engine.GreenScaleLevel(userProgress.UnitsCompleted),
		Badges:          badges,
		BadgeLevels:     badgeLevels,
	})
}
