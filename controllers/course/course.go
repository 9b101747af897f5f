package courseController

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"microcourses/database"
	"microcourses/middleware"
	"microcourses/models"
	"microcourses/services"
)

// ListCourses returns published courses, paginated via limit/offset.
func ListCourses(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	list, err := services.ListPublished(database.Database.Db, limit, offset)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"items":       list.Items,
		"next_offset": list.NextOffset,
	})
}

// GetCourse returns one course with its lessons and a creator summary.
func GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	crs, err := services.GetCourse(database.Database.Db, courseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	var creator models.User
	if err := database.Database.Db.First(&creator, crs.CreatorID).Error; err != nil {
		return middleware.ServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"course": crs,
		"creator": fiber.Map{
			"id":   creator.ID,
			"name": creator.Name,
		},
	})
}

// UpdateCourse edits one of the caller's courses, optionally replacing the
// lesson set.
func UpdateCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, services.CodeUnauthorized,
			"", "User not authenticated")
	}
	courseID := c.Locals("courseID").(uint)
	in := c.Locals("validatedCourse").(services.CourseInput)

	crs, err := services.UpdateCourse(database.Database.Db, user, courseID, in)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Course updated successfully",
		"course":  crs,
	})
}

// DeleteCourse removes one of the caller's courses.
func DeleteCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, services.CodeUnauthorized,
			"", "User not authenticated")
	}
	courseID := c.Locals("courseID").(uint)

	if err := services.DeleteCourse(database.Database.Db, user, courseID); err != nil {
		return middleware.ServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Course deleted successfully"})
}
