package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all course, lesson and progress routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Course listing and details (published courses)
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.GetCourseDetail(), controllers.GetCourseDetails)

	// Course authoring
	courseGroup.Post("/create", middleware.JWTMiddleware, middleware.RequireRole("AUTHOR", "ADMIN"), validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Post("/:id/lessons", middleware.JWTMiddleware, middleware.RequireRole("AUTHOR", "ADMIN"), validators.CreateLesson(), controllers.CreateLesson)
	courseGroup.Get("/:id/lessons", middleware.JWTMiddleware, validators.LessonList(), controllers.GetLessons)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.EnrollInCourse)

	// Lesson completion
	courseGroup.Post("/:course_id/lesson/:lesson_id/complete", middleware.JWTMiddleware, validators.CompleteLesson(), controllers.CompleteLesson)

	// Progress tracking
	courseGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.GetCourseProgress(), controllers.GetUserProgress)

	// User enrollments
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollmentsList)
}
