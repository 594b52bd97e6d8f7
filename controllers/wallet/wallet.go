package walletController

import (
	"lms/database"
	"lms/middleware"
	"lms/services"
	"lms/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// GetWalletBalance returns user's current points balance
func GetWalletBalance(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	points, err := services.GetBalance(database.Database.Db, userId)
	if err != nil {
		if err == services.ErrUserNotFound {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch balance!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet balance fetched!", fiber.Map{
		"balance":  points,
		"currency": "points",
	})
}

// DepositToWallet credits purchased points after gateway verification
func DepositToWallet(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedDeposit").(*struct {
		PaymentGateway string `json:"paymentGateway" validate:"required"`
		PaymentID      string `json:"paymentId" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Verify with the gateway before touching the balance
	payment, err := utils.VerifyPayment(reqData.PaymentID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment verification failed!", nil)
	}

	txn, err := services.Deposit(database.Database.Db, services.DepositRequest{
		UserID:         userId,
		Points:         uint(payment.Amount),
		PaymentGateway: reqData.PaymentGateway,
		PaymentID:      payment.PaymentID,
		PaymentStatus:  payment.Status,
		PaymentRaw:     payment.Raw,
	})
	if err != nil {
		switch err {
		case services.ErrDuplicatePayment:
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Transaction already processed!", nil)
		case services.ErrUserNotFound:
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process deposit!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Deposit successful!", fiber.Map{
		"transactionId": txn.ID,
		"referenceId":   txn.ReferenceID,
		"points":        txn.Amount,
		"balanceBefore": txn.BalanceBefore,
		"balanceAfter":  txn.BalanceAfter,
		"paymentId":     txn.PaymentID,
		"status":        txn.Status,
	})
}

// GetWalletHistory returns user's points transaction history
func GetWalletHistory(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	// Parse query params
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	txnType := c.Query("type") // PURCHASE, ENROLLMENT, etc.

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var from, to *time.Time
	if c.Query("period") == "today" {
		start := now.BeginningOfDay()
		end := now.EndOfDay()
		from, to = &start, &end
	}

	offset := (page - 1) * limit
	transactions, total, err := services.GetTransactionHistory(database.Database.Db, userId, txnType, from, to, offset, limit)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transactions!", nil)
	}

	response := map[string]interface{}{
		"transactions": transactions,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transactions fetched successfully!", response)
}
