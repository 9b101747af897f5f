package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"microcourses/config"
	"microcourses/database"
	"microcourses/middleware"
	adminRoutes "microcourses/routers/adminRoutes"
	authRoutes "microcourses/routers/authRoutes"
	courseRoutes "microcourses/routers/courseRoutes"
	creatorRoutes "microcourses/routers/creatorRoutes"
	"microcourses/services"
	"microcourses/utils"
)

// setupApp builds the fiber application with all middleware and routes.
// Split out of main so tests can drive the full HTTP surface in-process.
func setupApp() *fiber.App {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        config.AppConfig.RateLimitMax,
		Expiration: 60 * time.Second,
		LimitReached: func(c *fiber.Ctx) error {
			return middleware.ErrorResponse(c, fiber.StatusTooManyRequests, services.CodeRateLimit,
				"", "Too many requests, slow down")
		},
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authRoutes.SetupAuthRoutes(app)
	creatorRoutes.SetupCreatorRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	return app
}

func main() {
	config.LoadConfig()
	database.ConnectDb()

	if config.AppConfig.AdminDigestEmail != "" {
		utils.InitializeReviewScheduler()
	}

	app := setupApp()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
