package courseController

import (
	"github.com/gofiber/fiber/v2"

	"microcourses/database"
	"microcourses/middleware"
	"microcourses/services"
	"microcourses/utils"
)

// Enroll enrolls the caller in a published course.
func Enroll(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, services.CodeUnauthorized,
			"", "User not authenticated")
	}
	courseID := c.Locals("courseID").(uint)

	enrollment, err := services.Enroll(database.Database.Db, user, courseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	if crs, cerr := services.GetCourse(database.Database.Db, courseID); cerr == nil {
		go utils.SendEnrollmentEmail(user.Email, user.Name, crs.Title)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Enrolled successfully",
		"enrollment": enrollment,
	})
}

// UpdateProgress marks a lesson complete and recomputes enrollment progress.
func UpdateProgress(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, services.CodeUnauthorized,
			"", "User not authenticated")
	}
	courseID := c.Locals("courseID").(uint)
	lessonID := c.Locals("lessonID").(uint)

	enrollment, issuedNow, err := services.CompleteLesson(database.Database.Db, user, courseID, lessonID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	if issuedNow {
		go utils.SendCertificateEmail(user.Email, user.Name, *enrollment.CertificateHash)
		go utils.NotifyCertificateIssued(user.ID, courseID, *enrollment.CertificateHash)
	}

	return c.JSON(fiber.Map{
		"message":           "Progress updated",
		"progress":          enrollment.Progress,
		"certificateIssued": enrollment.CertificateIssued,
		"certificateHash":   enrollment.CertificateHash,
	})
}

// GetProgress returns the caller's progress projection for a course.
func GetProgress(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, services.CodeUnauthorized,
			"", "User not authenticated")
	}
	courseID := c.Locals("courseID").(uint)

	report, err := services.GetProgress(database.Database.Db, user, courseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return c.JSON(report)
}
