package routes

import (
	"habitat/backend/clients"
	"habitat/backend/config"
	"habitat/backend/controllers"
	"habitat/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg)
	app.Get("/api/progress", authMiddleware, progressController.GetProgress)
	app.Get("/api/progress/overview", authMiddleware, progressController.GetProgressOverview)

	// Units routes
	unitsController := controllers.NewUnitsController(db, cfg)
	units := app.Group("/api/units", authMiddleware)
	units.Get("/available", unitsController.GetAvailableUnits)
	units.Get("/:id", unitsController.GetUnitDetails)
	units.Post("/:id/submit", unitsController.SubmitUnit)

	// Challenge routes
	challengeController := controllers.NewChallengeController(db, cfg)
	challenges := app.Group("/api/challenges", authMiddleware)
	challenges.Get("/", challengeController.GetChallenges)
	challenges.Get("/:id", challengeController.GetChallengeDetails)
	challenges.Post("/:id/submit", challengeController.SubmitChallenge)

	// Species adoption
	adoptionController := controllers.NewAdoptionController(db, cfg)
	app.Get("/api/adoptions", authMiddleware, adoptionController.GetAdoptions)
	app.Post("/api/adoptions", authMiddleware, adoptionController.AdoptSpecies)

	// Assessment flow
	assessmentClient := clients.NewAssessmentClient(cfg.AssessmentAPIURL)
	assessmentController := controllers.NewAssessmentController(db, cfg, assessmentClient)
	app.Post("/api/assessment", authMiddleware, assessmentController.SubmitAssessment)
	app.Get("/api/assessment/latest", authMiddleware, assessmentController.GetLatestAssessment)

	// Translation passthrough
	translateClient := clients.NewTranslateClient(cfg.TranslateAPIURL)
	translateController := controllers.NewTranslateController(cfg, translateClient)
	app.Post("/api/translate", authMiddleware, translateController.Translate)

	// Admin routes for units
	adminUnits := app.Group("/api/admin/units", authMiddleware, adminMiddleware)
	adminUnits.Post("/", unitsController.CreateUnit)
	adminUnits.Post("/:id/questions", unitsController.AddQuestion)
	adminUnits.Put("/:id/questions/:questionId", unitsController.UpdateQuestion)
	adminUnits.Put("/:id/settings", unitsController.UpdateUnitSettings)
	adminUnits.Get("/:id/analytics", unitsController.GetUnitAnalytics)

	// Admin routes for challenges
	adminChallenges := app.Group("/api/admin/challenges", authMiddleware, adminMiddleware)
	adminChallenges.Post("/", challengeController.CreateChallenge)
}
