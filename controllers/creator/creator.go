package creatorController

import (
	"github.com/gofiber/fiber/v2"

	"microcourses/database"
	"microcourses/middleware"
	"microcourses/services"
)

// Apply submits the caller's creator application (none -> pending).
func Apply(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, services.CodeUnauthorized,
			"", "User not authenticated")
	}

	if err := services.ApplyForCreator(database.Database.Db, user); err != nil {
		return middleware.ServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":       "Creator application submitted successfully",
		"creatorStatus": user.CreatorStatus,
	})
}

// CreateCourse creates a course with its lessons for an approved creator.
func CreateCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, services.CodeUnauthorized,
			"", "User not authenticated")
	}
	in := c.Locals("validatedCourse").(services.CourseInput)

	crs, err := services.CreateCourse(database.Database.Db, user, in)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":        crs.ID,
		"title":     crs.Title,
		"status":    crs.Status,
		"published": crs.Published,
		"lessons":   crs.Lessons,
	})
}

// SubmitCourse moves one of the caller's pending courses into review.
func SubmitCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, services.CodeUnauthorized,
			"", "User not authenticated")
	}
	courseID := c.Locals("courseID").(uint)

	crs, err := services.SubmitCourseForReview(database.Database.Db, user, courseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Course submitted for admin review",
		"id":      crs.ID,
		"status":  crs.Status,
	})
}

// Dashboard lists every course owned by the caller.
func Dashboard(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, services.CodeUnauthorized,
			"", "User not authenticated")
	}

	items, err := services.ListByCreator(database.Database.Db, user.ID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"items": items,
		"count": len(items),
	})
}
