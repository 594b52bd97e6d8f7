package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/routers/courseRoutes"
	"lms/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// apiResponse mirrors the JsonResponse envelope
type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	// SendGridKey left empty so emails are skipped in tests
	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 10,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	return app
}

func seedStudent(t *testing.T, email string, points uint) (*models.User, string) {
	t.Helper()

	user := models.User{
		Name:     "Test Student",
		Email:    email,
		Role:     "USER",
		Password: "hashed",
	}
	require.NoError(t, services.RegisterUser(database.Database.Db, &user, points))

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return &user, token
}

func seedCourse(t *testing.T, title string, price float64) *courseModels.Course {
	t.Helper()

	author := models.User{
		Name:     "Test Author",
		Email:    title + "-author@example.com",
		Role:     "AUTHOR",
		Password: "hashed",
	}
	require.NoError(t, services.RegisterUser(database.Database.Db, &author, 0))

	course := courseModels.Course{
		Title:       title,
		Description: "A course about " + title,
		AuthorID:    author.ID,
		Price:       price,
		IsPublished: true,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return &course
}

func doEnroll(t *testing.T, app *fiber.App, courseID uint, token string) (*http.Response, apiResponse) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, fmt.Sprintf("/course/%d/enroll", courseID), nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var body apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestEnrollEndpointSuccess(t *testing.T) {
	app := setupTestApp(t)
	course := seedCourse(t, "Go Basics", 300)
	user, token := seedStudent(t, "student@example.com", 1000)

	resp, body := doEnroll(t, app, course.ID, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, body.Status)
	assert.Equal(t, "Enrolled in course successfully!", body.Message)

	points, err := services.GetBalance(database.Database.Db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(700), points)
}

func TestEnrollEndpointInsufficientPoints(t *testing.T) {
	app := setupTestApp(t)
	course := seedCourse(t, "Go Basics", 300)
	_, token := seedStudent(t, "student@example.com", 100)

	resp, body := doEnroll(t, app, course.ID, token)
	assert.Equal(t, fiber.StatusPaymentRequired, resp.StatusCode)
	assert.False(t, body.Status)
	assert.Equal(t, "Points not enough, Please buy more points!", body.Message)
}

func TestEnrollEndpointAlreadyEnrolled(t *testing.T) {
	app := setupTestApp(t)
	course := seedCourse(t, "Go Basics", 300)
	_, token := seedStudent(t, "student@example.com", 1000)

	resp, _ := doEnroll(t, app, course.ID, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := doEnroll(t, app, course.ID, token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "You are already enrolled in this course!", body.Message)
}

func TestEnrollEndpointCourseNotFound(t *testing.T) {
	app := setupTestApp(t)
	_, token := seedStudent(t, "student@example.com", 1000)

	resp, body := doEnroll(t, app, 9999, token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Course not found!", body.Message)
}

func TestEnrollEndpointRequiresAuth(t *testing.T) {
	app := setupTestApp(t)
	course := seedCourse(t, "Go Basics", 300)

	req := httptest.NewRequest(fiber.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
