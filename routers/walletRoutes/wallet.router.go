package walletRoutes

import (
	walletController "lms/controllers/wallet"
	"lms/middleware"
	walletValidator "lms/validators/wallet"

	"github.com/gofiber/fiber/v2"
)

// SetupWalletRoutes sets up points balance and purchase routes
func SetupWalletRoutes(app *fiber.App) {
	walletGroup := app.Group("/wallet")

	walletGroup.Get("/balance", middleware.JWTMiddleware, walletController.GetWalletBalance)
	walletGroup.Post("/deposit", middleware.JWTMiddleware, walletValidator.Deposit(), walletController.DepositToWallet)
	walletGroup.Get("/history", middleware.JWTMiddleware, walletController.GetWalletHistory)
}
