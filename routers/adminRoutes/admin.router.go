package adminRoutes

import (
	adminControllers "microcourses/controllers/admin"
	"microcourses/middleware"
	"microcourses/models"
	courseValidators "microcourses/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up the review queues and decision endpoints.
// Every route requires an authenticated admin.
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.Authorize(models.RoleAdmin))

	adminGroup.Get("/creators/pending", adminControllers.PendingCreators)
	adminGroup.Put("/creators/:id/status", adminControllers.DecideCreator)
	adminGroup.Get("/courses/pending", adminControllers.PendingCourses)
	adminGroup.Put("/courses/:id/status", courseValidators.CourseID(), adminControllers.DecideCourse)
}
