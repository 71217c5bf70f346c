package main

import (
	"trivia-api/internal/config"
	"trivia-api/internal/handler"
	"trivia-api/internal/metrics"
	"trivia-api/internal/middleware"
	"trivia-api/internal/service"

	_ "trivia-api/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// appDeps is everything the HTTP layer needs from the rest of the program.
type appDeps struct {
	cfg        *config.Config
	questions  service.QuestionService
	categories service.CategoryService
	quiz       service.QuizService
	metrics    *metrics.Metrics
	health     map[string]handler.HealthCheck
	// limiterStorage holds rate-limit counters; nil keeps them in process memory
	limiterStorage fiber.Storage
}

func newApp(deps appDeps) *fiber.App {
	cfg := deps.cfg

	app := fiber.New(fiber.Config{
		AppName:      "trivia-api",
		ErrorHandler: middleware.ErrorHandler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: cfg.CORS.AllowMethods,
		AllowHeaders: cfg.CORS.AllowHeaders,
		MaxAge:       300,
	}))
	app.Use(middleware.Metrics(deps.metrics))
	app.Use(middleware.RequestLogger())

	// Operational endpoints
	app.Get("/healthz", handler.NewHealthHandler(deps.health).Health)
	app.Get("/metrics", adaptor.HTTPHandler(deps.metrics.Handler()))
	app.Get("/swagger/*", swagger.HandlerDefault)

	questionHandler := handler.NewQuestionHandler(deps.questions)
	categoryHandler := handler.NewCategoryHandler(deps.categories)
	quizHandler := handler.NewQuizHandler(deps.quiz)

	writeLimit := func(c *fiber.Ctx) error { return c.Next() }
	if cfg.RateLimit.Enabled {
		writeLimit = limiter.New(limiter.Config{
			Max:        cfg.RateLimit.Max,
			Expiration: cfg.RateLimit.Expiration,
			Storage:    deps.limiterStorage,
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.ErrTooManyRequests
			},
		})
	}

	// API group
	api := app.Group("/api")

	api.Get("/categories", categoryHandler.ListCategories)
	api.Get("/categories/:id/questions", questionHandler.ListQuestionsByCategory)

	api.Get("/questions", questionHandler.ListQuestions)
	api.Post("/questions", writeLimit, questionHandler.CreateQuestion)
	api.Delete("/questions/:id", writeLimit, questionHandler.DeleteQuestion)
	api.Post("/questions/search", questionHandler.SearchQuestions)
	api.Post("/questions/query", questionHandler.SearchQuestions)

	api.Post("/quizzes", quizHandler.NextQuestion)

	return app
}
