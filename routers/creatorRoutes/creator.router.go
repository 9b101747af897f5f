package creatorRoutes

import (
	creatorControllers "microcourses/controllers/creator"
	"microcourses/middleware"
	"microcourses/models"
	courseValidators "microcourses/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCreatorRoutes sets up the creator application and authoring routes.
func SetupCreatorRoutes(app *fiber.App) {
	creatorGroup := app.Group("/creator", middleware.JWTMiddleware)

	creatorGroup.Post("/apply", middleware.Authorize(models.RoleLearner), creatorControllers.Apply)
	creatorGroup.Post("/courses", middleware.RequireApprovedCreator, courseValidators.CreateCourse(), creatorControllers.CreateCourse)
	creatorGroup.Put("/courses/:id/submit", middleware.RequireApprovedCreator, courseValidators.CourseID(), creatorControllers.SubmitCourse)
	creatorGroup.Get("/dashboard", middleware.Authorize(models.RoleCreator), creatorControllers.Dashboard)
}
