package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/services"
	"log"

	"github.com/gofiber/fiber/v2"
)

func CreateLesson(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title      string `json:"title" validate:"required,min=3"`
		VideoURL   string `json:"video_url" validate:"required,url"`
		OrderIndex int    `json:"order_index" validate:"gte=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Only the course author may add lessons
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if course.AuthorID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course author can add lessons!", nil)
	}

	lesson := courseModels.Lesson{
		CourseID:   course.ID,
		Title:      reqData.Title,
		VideoURL:   reqData.VideoURL,
		OrderIndex: reqData.OrderIndex,
	}

	if err := db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	// The lesson count changed: every enrollment percentage for this
	// course is now stale. Fire the recalculation; the lesson itself
	// is already committed, so a recalc failure only delays the sweep.
	if err := services.HandleLessonAdded(db, services.LessonAdded{CourseID: course.ID}); err != nil {
		log.Printf("Error recalculating progress for course %d: %v", course.ID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

func GetLessons(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lessons []courseModels.Lesson
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc, created_at asc").Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", fiber.Map{
		"lessons": lessons,
		"total":   len(lessons),
	})
}
