package courseValidator

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"microcourses/middleware"
	"microcourses/services"
	"microcourses/validators"
)

type lessonBody struct {
	Title      string `json:"title" validate:"required"`
	VideoURL   string `json:"video_url"`
	Transcript string `json:"transcript"`
	Order      int    `json:"order" validate:"omitempty,gt=0"`
}

type createCourseBody struct {
	Title       string       `json:"title" validate:"required,max=200"`
	Description string       `json:"description" validate:"required"`
	Lessons     []lessonBody `json:"lessons" validate:"omitempty,dive"`
}

// updateCourseBody relaxes the required top-level fields but holds lessons to
// the same rules as creation: a replacement set with untitled lessons is just
// as broken on update.
type updateCourseBody struct {
	Title       string       `json:"title" validate:"omitempty,max=200"`
	Description string       `json:"description"`
	Lessons     []lessonBody `json:"lessons" validate:"omitempty,dive"`
}

// CourseID validates the :id route parameter.
func CourseID() fiber.Handler {
	return courseIDParam("id")
}

// CourseIDParam validates the :courseId route parameter.
func CourseIDParam() fiber.Handler {
	return courseIDParam("courseId")
}

func courseIDParam(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params(name), 10, 32)
		if err != nil || id == 0 {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, services.CodeNotFound,
				"courseId", "Course not found")
		}
		c.Locals("courseID", uint(id))
		return c.Next()
	}
}

// CreateCourse validates the course create body (title and description
// required, lessons optional but each lesson needs a title).
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(createCourseBody)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, services.CodeFieldRequired, "",
				"Invalid request body")
		}

		if errs := validators.Struct(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedCourse", toCourseInput(reqData.Title, reqData.Description, reqData.Lessons))
		return c.Next()
	}
}

// UpdateCourse validates the course update body (top-level fields optional,
// supplied lessons held to the creation rules).
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(updateCourseBody)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, services.CodeFieldRequired, "",
				"Invalid request body")
		}

		if errs := validators.Struct(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedCourse", toCourseInput(reqData.Title, reqData.Description, reqData.Lessons))
		return c.Next()
	}
}

func toCourseInput(title, description string, lessons []lessonBody) services.CourseInput {
	in := services.CourseInput{
		Title:       title,
		Description: description,
	}
	if lessons != nil {
		in.Lessons = make([]services.LessonInput, 0, len(lessons))
		for _, l := range lessons {
			in.Lessons = append(in.Lessons, services.LessonInput{
				Title:      l.Title,
				VideoURL:   l.VideoURL,
				Transcript: l.Transcript,
				Order:      l.Order,
			})
		}
	}
	return in
}

type enrollBody struct {
	CourseID uint `json:"courseId" validate:"required"`
}

type progressBody struct {
	CourseID uint `json:"courseId" validate:"required"`
	LessonID uint `json:"lessonId" validate:"required"`
}

// Enroll validates the POST /course/enroll body.
func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(enrollBody)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, services.CodeFieldRequired, "",
				"Invalid request body")
		}
		if errs := validators.Struct(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}
		c.Locals("courseID", reqData.CourseID)
		return c.Next()
	}
}

// Progress validates the POST /course/progress body.
func Progress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(progressBody)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, services.CodeFieldRequired, "",
				"Invalid request body")
		}
		if errs := validators.Struct(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}
		c.Locals("courseID", reqData.CourseID)
		c.Locals("lessonID", reqData.LessonID)
		return c.Next()
	}
}
