package adminController

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"microcourses/database"
	"microcourses/middleware"
	"microcourses/services"
	"microcourses/utils"
)

type decisionBody struct {
	Status string `json:"status"`
}

// PendingCreators lists users with a pending creator application.
func PendingCreators(c *fiber.Ctx) error {
	users, err := services.ListPendingCreators(database.Database.Db)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	items := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		items = append(items, fiber.Map{
			"id":            u.ID,
			"name":          u.Name,
			"email":         u.Email,
			"creatorStatus": u.CreatorStatus,
			"appliedAt":     u.UpdatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"items": items,
		"count": len(items),
	})
}

// DecideCreator approves or rejects a pending creator application.
func DecideCreator(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || userID == 0 {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, services.CodeNotFound,
			"id", "User not found")
	}

	body := new(decisionBody)
	if err := c.BodyParser(body); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, services.CodeInvalidStatus,
			"status", "Status must be approved or rejected")
	}

	user, err := services.DecideCreatorApplication(database.Database.Db, uint(userID), body.Status)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	go utils.SendCreatorDecisionEmail(user.Email, user.Name, user.CreatorStatus)

	return c.JSON(fiber.Map{
		"message":       "Creator application " + user.CreatorStatus,
		"id":            user.ID,
		"name":          user.Name,
		"creatorStatus": user.CreatorStatus,
		"role":          user.Role,
	})
}

// PendingCourses lists courses awaiting review. An optional status query
// narrows the list (pending or under_review).
func PendingCourses(c *fiber.Ctx) error {
	courses, err := services.ListCoursesForReview(database.Database.Db, c.Query("status"))
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"items": courses,
		"count": len(courses),
	})
}

// DecideCourse approves or rejects a submitted course. Approval publishes
// the course and stamps its serial hash.
func DecideCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	body := new(decisionBody)
	if err := c.BodyParser(body); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, services.CodeInvalidAction,
			"status", "Status must be approved or rejected")
	}

	crs, err := services.DecideCourseReview(database.Database.Db, courseID, body.Status)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Course " + crs.Status,
		"course":  crs,
	})
}
