package services

import (
	"log"
	"strings"
	"time"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// LessonAdded is dispatched by the lesson-create handler after a new
// lesson is committed. Enrollment percentages for that course are
// stale until HandleLessonAdded runs.
type LessonAdded struct {
	CourseID uint
}

// CompleteLesson records a lesson completion for the user's enrollment
// and recomputes the completion percentage. Calling it again for the
// same lesson is a no-op on the stored state: the completion is not
// duplicated and the percentage does not move.
func CompleteLesson(db *gorm.DB, userID uint, courseID uint, lessonID uint, score uint) (*courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotEnrolled
			}
			return err
		}

		var lesson courseModels.Lesson
		if err := tx.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrLessonNotFound
			}
			return err
		}
		if lesson.CourseID != courseID {
			return ErrInvalidLesson
		}

		var existing courseModels.LessonCompletion
		err := tx.Where("enrollment_id = ? AND lesson_id = ? AND is_deleted = ?", enrollment.ID, lessonID, false).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			completion := courseModels.LessonCompletion{
				EnrollmentID: enrollment.ID,
				LessonID:     lessonID,
				Score:        score,
			}
			if err := tx.Create(&completion).Error; err != nil {
				// The unique index catches a concurrent completion of
				// the same lesson; treat it as already completed.
				if !isDuplicateKeyError(err) {
					return err
				}
			}
		} else if err != nil {
			return err
		}

		return recomputeProgress(tx, &enrollment)
	})

	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// HandleLessonAdded recomputes the completion percentage of every
// enrollment in the course after its lesson count changed. Each
// enrollment is updated in its own transaction: a failure on one
// leaves the others either untouched or correctly updated, never
// half-written.
func HandleLessonAdded(db *gorm.DB, event LessonAdded) error {
	var enrollments []courseModels.Enrollment
	if err := db.Where("course_id = ? AND is_deleted = ?", event.CourseID, false).Find(&enrollments).Error; err != nil {
		return err
	}

	for i := range enrollments {
		enrollment := enrollments[i]
		err := db.Transaction(func(tx *gorm.DB) error {
			return recomputeProgress(tx, &enrollment)
		})
		if err != nil {
			log.Printf("Failed to recompute progress for enrollment %d: %v", enrollment.ID, err)
		}
	}
	return nil
}

// recomputeProgress recalculates Progress from the authoritative
// lesson and completion counts and persists the enrollment. The
// percentage is never carried forward from a previous value.
//
// CompletedAt is set the first time Progress reaches 100 and never
// cleared. If a lesson is added to a finished course the percentage
// drops back below 100 while CompletedAt (and Status COMPLETED) stay
// put. That state is intentional: the student did finish the course
// as it existed at the time.
func recomputeProgress(tx *gorm.DB, enrollment *courseModels.Enrollment) error {
	var totalLessons int64
	if err := tx.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", enrollment.CourseID, false).
		Count(&totalLessons).Error; err != nil {
		return err
	}

	var completedLessons int64
	if err := tx.Model(&courseModels.LessonCompletion{}).
		Where("enrollment_id = ? AND is_deleted = ?", enrollment.ID, false).
		Count(&completedLessons).Error; err != nil {
		return err
	}

	enrollment.CompletedLessons = int(completedLessons)
	enrollment.TotalLessons = int(totalLessons)

	if totalLessons > 0 {
		enrollment.Progress = float64(completedLessons) / float64(totalLessons) * 100
	} else {
		// A course with no lessons is 0% complete, not a division by zero
		enrollment.Progress = 0
	}

	if enrollment.Progress >= 100 && enrollment.CompletedAt == nil {
		now := time.Now()
		enrollment.Status = "COMPLETED"
		enrollment.CompletedAt = &now
	} else if enrollment.CompletedAt == nil && enrollment.Progress > 0 {
		enrollment.Status = "IN_PROGRESS"
	}

	return tx.Save(enrollment).Error
}

// isDuplicateKeyError detects unique constraint violations across the
// postgres and sqlite drivers.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
