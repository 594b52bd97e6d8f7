package services

import "errors"

// Expected, recoverable outcomes of user actions. Controllers map
// these to HTTP statuses; anything else is a storage failure that
// aborts the surrounding transaction.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrCourseNotFound    = errors.New("course not found")
	ErrLessonNotFound    = errors.New("lesson not found")
	ErrAlreadyEnrolled   = errors.New("user already enrolled in this course")
	ErrInsufficientFunds = errors.New("points not enough")
	ErrNotEnrolled       = errors.New("user not enrolled in this course")
	ErrInvalidLesson     = errors.New("lesson does not belong to this course")
	ErrDuplicatePayment  = errors.New("payment already processed")
)
