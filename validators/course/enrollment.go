package courseValidator

import (
	"lms/middleware"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func EnrollCourse() fiber.Handler {
	return courseIDParam("id")
}

func GetCourseProgress() fiber.Handler {
	return courseIDParam("course_id")
}

func CompleteLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("course_id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		lessonIDStr := strings.TrimSpace(c.Params("lesson_id"))
		lessonID, err := strconv.Atoi(lessonIDStr)
		if err != nil || lessonID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		// Score is optional; present only when the lesson had a quiz
		reqData := new(struct {
			Score *uint `json:"score" validate:"omitempty,lte=100"`
		})
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}

			v := validator.New()
			if err := v.Struct(reqData); err != nil {
				errors := make(map[string]string)
				for _, fieldErr := range err.(validator.ValidationErrors) {
					errors[fieldErr.Field()] = "Failed validation: " + fieldErr.Tag()
				}
				return middleware.ValidationErrorResponse(c, errors)
			}
		}

		c.Locals("courseID", courseID)
		c.Locals("lessonID", lessonID)
		c.Locals("validatedCompletion", reqData)
		return c.Next()
	}
}
