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

func CompleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	var score uint
	if reqData, ok := c.Locals("validatedCompletion").(*struct {
		Score *uint `json:"score" validate:"omitempty,lte=100"`
	}); ok && reqData.Score != nil {
		score = *reqData.Score
	}

	db := database.Database.Db

	wasCompleted := false
	var before courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&before).Error; err == nil {
		wasCompleted = before.CompletedAt != nil
	}

	enrollment, err := services.CompleteLesson(db, userID, uint(courseID), uint(lessonID), score)
	if err != nil {
		switch err {
		case services.ErrNotEnrolled:
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
		case services.ErrLessonNotFound:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		case services.ErrInvalidLesson:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson does not belong to this course!", nil)
		default:
			log.Printf("Error completing lesson %d for user %d: %v", lessonID, userID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete lesson!", nil)
		}
	}

	// Congratulate on first reaching 100%, fire-and-forget
	if !wasCompleted && enrollment.CompletedAt != nil {
		go func(userID uint, courseID uint) {
			var user models.User
			if err := database.Database.Db.First(&user, userID).Error; err != nil {
				return
			}
			var course courseModels.Course
			if err := database.Database.Db.First(&course, courseID).Error; err != nil {
				return
			}
			if err := utils.SendCourseCompletedEmail(user.Name, user.Email, course.Title); err != nil {
				log.Printf("Error sending completion email to %s: %v", user.Email, err)
			}
		}(userID, enrollment.CourseID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson completed successfully!", enrollment)
}

func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	// Completed lesson IDs for the client to tick off
	var completions []courseModels.LessonCompletion
	db.Where("enrollment_id = ? AND is_deleted = ?", enrollment.ID, false).Find(&completions)

	completedIDs := make([]uint, len(completions))
	for i, completion := range completions {
		completedIDs[i] = completion.LessonID
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":    enrollment,
		"completed_ids": completedIDs,
	})
}
