package services

import (
	"math"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enroll enrolls a user in a course and debits the course price from
// the user's points, as one atomic unit. A crash or error anywhere in
// the transaction leaves neither a debit without an enrollment nor an
// enrollment without a debit.
//
// Check order matters and is part of the API contract: the price check
// runs before the duplicate-enrollment check, so a user with too few
// points gets ErrInsufficientFunds even if already enrolled.
func Enroll(db *gorm.DB, userID uint, courseID uint) (*courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment

	err := db.Transaction(func(tx *gorm.DB) error {
		var course courseModels.Course
		if err := tx.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrCourseNotFound
			}
			return err
		}

		var balance models.Balance
		if err := tx.Where("user_id = ?", userID).First(&balance).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrUserNotFound
			}
			return err
		}

		// Points are indivisible, so a fractional price is rounded to
		// whole points once and that value drives both the check and
		// the debit. Checking against the raw float would let the two
		// disagree on a .5 price.
		price := uint(math.Round(course.Price))
		if price > balance.Points {
			return ErrInsufficientFunds
		}

		var existing courseModels.Enrollment
		if err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error; err == nil {
			return ErrAlreadyEnrolled
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		var totalLessons int64
		if err := tx.Model(&courseModels.Lesson{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&totalLessons).Error; err != nil {
			return err
		}

		enrollment = courseModels.Enrollment{
			UserID:       userID,
			CourseID:     courseID,
			Status:       "ENROLLED",
			TotalLessons: int(totalLessons),
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			// Composite unique index backs the duplicate check under race
			if isDuplicateKeyError(err) {
				return ErrAlreadyEnrolled
			}
			return err
		}

		// Guarded debit: the points >= price condition re-checks the
		// balance at write time, so two concurrent enrollments cannot
		// overdraw the account.
		res := tx.Model(&models.Balance{}).
			Where("user_id = ? AND points >= ?", userID, price).
			UpdateColumn("points", gorm.Expr("points - ?", price))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientFunds
		}

		// Re-read after the debit: the balance loaded above may be
		// stale by now (a concurrent credit lands between the read and
		// the update), and the audit row must record what the debit
		// actually did.
		var debited models.Balance
		if err := tx.Where("user_id = ?", userID).First(&debited).Error; err != nil {
			return err
		}

		debit := models.PointsTransaction{
			UserID:          userID,
			ReferenceID:     uuid.NewString(),
			TransactionType: models.TransactionTypeEnrollment,
			Amount:          price,
			BalanceBefore:   debited.Points + price,
			BalanceAfter:    debited.Points,
			Status:          models.TransactionStatusCompleted,
			Description:     "Enrollment in " + course.Title,
			CourseID:        course.ID,
			CourseName:      course.Title,
			TransactionDate: time.Now(),
		}
		return tx.Create(&debit).Error
	})

	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// GetUserEnrollments returns all active enrollments for a user.
func GetUserEnrollments(db *gorm.DB, userID uint) ([]courseModels.Enrollment, error) {
	var enrollments []courseModels.Enrollment
	err := db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").
		Find(&enrollments).Error
	return enrollments, err
}
