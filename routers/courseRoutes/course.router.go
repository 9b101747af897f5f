package courseRoutes

import (
	courseControllers "microcourses/controllers/course"
	"microcourses/middleware"
	courseValidators "microcourses/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public catalog and the enrollment/progress
// routes for authenticated learners.
func SetupCourseRoutes(app *fiber.App) {
	catalogGroup := app.Group("/courses")

	catalogGroup.Get("/", courseControllers.ListCourses)
	catalogGroup.Get("/:id", courseValidators.CourseID(), courseControllers.GetCourse)
	catalogGroup.Put("/:id", middleware.JWTMiddleware, courseValidators.CourseID(), courseValidators.UpdateCourse(), courseControllers.UpdateCourse)
	catalogGroup.Delete("/:id", middleware.JWTMiddleware, courseValidators.CourseID(), courseControllers.DeleteCourse)

	enrollGroup := app.Group("/course", middleware.JWTMiddleware)

	enrollGroup.Post("/enroll", courseValidators.Enroll(), courseControllers.Enroll)
	enrollGroup.Post("/progress", courseValidators.Progress(), courseControllers.UpdateProgress)
	enrollGroup.Get("/progress/:courseId", courseValidators.CourseIDParam(), courseControllers.GetProgress)
}
