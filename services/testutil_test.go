package services

import (
	"fmt"
	"testing"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory sqlite database and runs the
// migrations. Each test gets its own named memory database so parallel
// tests never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, points uint) *models.User {
	t.Helper()

	user := models.User{
		Name:     "Test User",
		Email:    email,
		Password: "hashed",
	}
	require.NoError(t, RegisterUser(db, &user, points))
	return &user
}

func createTestCourse(t *testing.T, db *gorm.DB, authorID uint, title string, price float64) *courseModels.Course {
	t.Helper()

	course := courseModels.Course{
		Title:       title,
		Description: "A test course",
		AuthorID:    authorID,
		Price:       price,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)
	return &course
}

func createTestLesson(t *testing.T, db *gorm.DB, courseID uint, title string) *courseModels.Lesson {
	t.Helper()

	lesson := courseModels.Lesson{
		CourseID: courseID,
		Title:    title,
		VideoURL: "https://videos.example.com/" + title,
	}
	require.NoError(t, db.Create(&lesson).Error)
	return &lesson
}
