package services

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteLessonUpdatesPercentage(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "author@example.com", 0)
	user := createTestUser(t, db, "student@example.com", 1000)
	course := createTestCourse(t, db, author.ID, "Go Basics", 300)
	l1 := createTestLesson(t, db, course.ID, "intro")
	createTestLesson(t, db, course.ID, "syntax")

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	enrollment, err := CompleteLesson(db, user.ID, course.ID, l1.ID, 0)
	require.NoError(t, err)

	assert.Equal(t, float64(50), enrollment.Progress)
	assert.Equal(t, 1, enrollment.CompletedLessons)
	assert.Equal(t, 2, enrollment.TotalLessons)
	assert.Equal(t, "IN_PROGRESS", enrollment.Status)
	assert.Nil(t, enrollment.CompletedAt)
}

func TestCompleteLessonIdempotent(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "author@example.com", 0)
	user := createTestUser(t, db, "student@example.com", 1000)
	course := createTestCourse(t, db, author.ID, "Go Basics", 300)
	l1 := createTestLesson(t, db, course.ID, "intro")
	createTestLesson(t, db, course.ID, "syntax")

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	first, err := CompleteLesson(db, user.ID, course.ID, l1.ID, 80)
	require.NoError(t, err)
	second, err := CompleteLesson(db, user.ID, course.ID, l1.ID, 80)
	require.NoError(t, err)

	assert.Equal(t, first.Progress, second.Progress)
	assert.Equal(t, 1, second.CompletedLessons)

	// Exactly one completion row
	var count int64
	db.Model(&courseModels.LessonCompletion{}).Where("enrollment_id = ? AND lesson_id = ?", first.ID, l1.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCompleteAllLessonsFinishesCourse(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "author@example.com", 0)
	user := createTestUser(t, db, "student@example.com", 1000)
	course := createTestCourse(t, db, author.ID, "Go Basics", 300)
	l1 := createTestLesson(t, db, course.ID, "intro")
	l2 := createTestLesson(t, db, course.ID, "syntax")

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	_, err = CompleteLesson(db, user.ID, course.ID, l1.ID, 0)
	require.NoError(t, err)
	enrollment, err := CompleteLesson(db, user.ID, course.ID, l2.ID, 0)
	require.NoError(t, err)

	assert.Equal(t, float64(100), enrollment.Progress)
	assert.Equal(t, "COMPLETED", enrollment.Status)
	require.NotNil(t, enrollment.CompletedAt)
}

func TestCompleteLessonNotEnrolled(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "author@example.com", 0)
	user := createTestUser(t, db, "student@example.com", 1000)
	course := createTestCourse(t, db, author.ID, "Go Basics", 300)
	l1 := createTestLesson(t, db, course.ID, "intro")

	_, err := CompleteLesson(db, user.ID, course.ID, l1.ID, 0)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestCompleteLessonWrongCourse(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "author@example.com", 0)
	user := createTestUser(t, db, "student@example.com", 1000)
	course := createTestCourse(t, db, author.ID, "Go Basics", 100)
	other := createTestCourse(t, db, author.ID, "Rust Basics", 100)
	otherLesson := createTestLesson(t, db, other.ID, "ownership")

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	_, err = CompleteLesson(db, user.ID, course.ID, otherLesson.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidLesson)
}

func TestCompleteLessonMissingLesson(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "author@example.com", 0)
	user := createTestUser(t, db, "student@example.com", 1000)
	course := createTestCourse(t, db, author.ID, "Go Basics", 100)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	_, err = CompleteLesson(db, user.ID, course.ID, 9999, 0)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestLessonAddedRecomputesEnrollments(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "author@example.com", 0)
	user := createTestUser(t, db, "student@example.com", 1000)
	course := createTestCourse(t, db, author.ID, "Go Basics", 300)
	l1 := createTestLesson(t, db, course.ID, "intro")
	l2 := createTestLesson(t, db, course.ID, "syntax")

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)
	_, err = CompleteLesson(db, user.ID, course.ID, l1.ID, 0)
	require.NoError(t, err)
	enrollment, err := CompleteLesson(db, user.ID, course.ID, l2.ID, 0)
	require.NoError(t, err)
	require.Equal(t, float64(100), enrollment.Progress)
	require.NotNil(t, enrollment.CompletedAt)
	completedAt := *enrollment.CompletedAt

	// Author adds a third lesson after the student finished
	createTestLesson(t, db, course.ID, "generics")
	require.NoError(t, HandleLessonAdded(db, LessonAdded{CourseID: course.ID}))

	var updated courseModels.Enrollment
	require.NoError(t, db.First(&updated, enrollment.ID).Error)

	// Percentage drops, but the completion timestamp never reverts:
	// the student did finish the course as it existed at the time
	assert.InDelta(t, 66.67, updated.Progress, 0.01)
	assert.Equal(t, 2, updated.CompletedLessons)
	assert.Equal(t, 3, updated.TotalLessons)
	require.NotNil(t, updated.CompletedAt)
	assert.True(t, updated.CompletedAt.Equal(completedAt))
	assert.Equal(t, "COMPLETED", updated.Status)
}

func TestLessonAddedRecomputesAllEnrollments(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "author@example.com", 0)
	course := createTestCourse(t, db, author.ID, "Go Basics", 100)
	l1 := createTestLesson(t, db, course.ID, "intro")

	first := createTestUser(t, db, "first@example.com", 1000)
	second := createTestUser(t, db, "second@example.com", 1000)

	_, err := Enroll(db, first.ID, course.ID)
	require.NoError(t, err)
	_, err = Enroll(db, second.ID, course.ID)
	require.NoError(t, err)

	_, err = CompleteLesson(db, first.ID, course.ID, l1.ID, 0)
	require.NoError(t, err)

	createTestLesson(t, db, course.ID, "syntax")
	require.NoError(t, HandleLessonAdded(db, LessonAdded{CourseID: course.ID}))

	var enrollments []courseModels.Enrollment
	require.NoError(t, db.Where("course_id = ?", course.ID).Order("user_id asc").Find(&enrollments).Error)
	require.Len(t, enrollments, 2)

	// first completed 1 of now 2 lessons, second completed none
	assert.Equal(t, float64(50), enrollments[0].Progress)
	assert.Equal(t, float64(0), enrollments[1].Progress)
	assert.Equal(t, 2, enrollments[0].TotalLessons)
	assert.Equal(t, 2, enrollments[1].TotalLessons)
}

func TestProgressZeroLessonCourse(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "author@example.com", 0)
	user := createTestUser(t, db, "student@example.com", 1000)
	course := createTestCourse(t, db, author.ID, "Empty Course", 100)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	// No lessons: recomputation must define the percentage as 0
	require.NoError(t, HandleLessonAdded(db, LessonAdded{CourseID: course.ID}))

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error)
	assert.Equal(t, float64(0), enrollment.Progress)
	assert.Nil(t, enrollment.CompletedAt)
}

// Full walkthrough: 1000 points, a 300-point course with two lessons,
// then a third lesson lands after completion.
func TestEnrollmentLifecycleScenario(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "author@example.com", 0)
	user := createTestUser(t, db, "student@example.com", 1000)
	course := createTestCourse(t, db, author.ID, "Go Basics", 300)
	l1 := createTestLesson(t, db, course.ID, "intro")
	l2 := createTestLesson(t, db, course.ID, "syntax")

	enrollment, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), enrollment.Progress)

	points, err := GetBalance(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(700), points)

	enrollment, err = CompleteLesson(db, user.ID, course.ID, l1.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, float64(50), enrollment.Progress)

	enrollment, err = CompleteLesson(db, user.ID, course.ID, l2.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, float64(100), enrollment.Progress)
	require.NotNil(t, enrollment.CompletedAt)

	createTestLesson(t, db, course.ID, "generics")
	require.NoError(t, HandleLessonAdded(db, LessonAdded{CourseID: course.ID}))

	var final courseModels.Enrollment
	require.NoError(t, db.First(&final, enrollment.ID).Error)
	assert.InDelta(t, 66.67, final.Progress, 0.01)
	require.NotNil(t, final.CompletedAt)
}
