package userController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// EnrolledCourse pairs a course with the user's progress in it
type EnrolledCourse struct {
	courseModels.Course
	Progress         float64 `json:"progress"`
	CompletedLessons int     `json:"completed_lessons"`
	TotalLessons     int     `json:"total_lessons"`
	Status           string  `json:"enrollment_status"`
}

// GetDashboard returns the user's profile, balance and enrolled
// courses with their completion state
func GetDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	user.Password = ""

	points, err := services.GetBalance(db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch balance!", nil)
	}

	enrollments, err := services.GetUserEnrollments(db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	enrolledCourses := make([]EnrolledCourse, 0, len(enrollments))
	completedCount := 0
	for _, enrollment := range enrollments {
		var course courseModels.Course
		if err := db.Where("id = ? AND is_deleted = ?", enrollment.CourseID, false).First(&course).Error; err != nil {
			continue
		}
		enrolledCourses = append(enrolledCourses, EnrolledCourse{
			Course:           course,
			Progress:         enrollment.Progress,
			CompletedLessons: enrollment.CompletedLessons,
			TotalLessons:     enrollment.TotalLessons,
			Status:           enrollment.Status,
		})
		if enrollment.CompletedAt != nil {
			completedCount++
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"user":                    user,
		"balance":                 points,
		"enrolled_courses":        enrolledCourses,
		"enrolled_courses_count":  len(enrolledCourses),
		"completed_courses_count": completedCount,
	})
}
