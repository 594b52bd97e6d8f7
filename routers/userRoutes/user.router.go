package userRoutes

import (
	userController "lms/controllers/userControllers"
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up user dashboard routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/dashboard", middleware.JWTMiddleware, userController.GetDashboard)
}
