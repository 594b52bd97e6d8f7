package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

func EnrollInCourse(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Retrieve validated course ID
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	enrollment, err := services.Enroll(db, userID, uint(courseID))
	if err != nil {
		switch err {
		case services.ErrCourseNotFound:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case services.ErrInsufficientFunds:
			return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Points not enough, Please buy more points!", nil)
		case services.ErrAlreadyEnrolled:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You are already enrolled in this course!", nil)
		case services.ErrUserNotFound:
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		default:
			log.Printf("Error enrolling user %d in course %d: %v", userID, courseID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
		}
	}

	// Confirmation email, fire-and-forget
	go func(userID uint, enrollment courseModels.Enrollment) {
		var user models.User
		if err := database.Database.Db.First(&user, userID).Error; err != nil {
			return
		}
		var course courseModels.Course
		if err := database.Database.Db.First(&course, enrollment.CourseID).Error; err != nil {
			return
		}
		points, _ := services.GetBalance(database.Database.Db, userID)
		if err := utils.SendEnrollmentEmail(user.Name, user.Email, course.Title, uint(course.Price), points); err != nil {
			log.Printf("Error sending enrollment email to %s: %v", user.Email, err)
		}
	}(userID, *enrollment)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

func GetUserEnrollmentsList(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollments, err := services.GetUserEnrollments(database.Database.Db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"total":       len(enrollments),
	})
}
