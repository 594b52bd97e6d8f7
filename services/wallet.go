package services

import (
	"time"

	"lms/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DepositRequest carries a gateway-verified points purchase.
type DepositRequest struct {
	UserID         uint
	Points         uint
	PaymentGateway string
	PaymentID      string
	PaymentStatus  string
	PaymentRaw     []byte
}

// Deposit credits purchased points to the user's balance and records
// the transaction. The gateway payment ID is checked first so a
// replayed callback cannot credit twice.
func Deposit(db *gorm.DB, req DepositRequest) (*models.PointsTransaction, error) {
	var txn models.PointsTransaction

	err := db.Transaction(func(tx *gorm.DB) error {
		var balance models.Balance
		if err := tx.Where("user_id = ?", req.UserID).First(&balance).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrUserNotFound
			}
			return err
		}

		var existing models.PointsTransaction
		if err := tx.Where("payment_id = ? AND is_deleted = ?", req.PaymentID, false).First(&existing).Error; err == nil {
			return ErrDuplicatePayment
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		res := tx.Model(&models.Balance{}).
			Where("user_id = ?", req.UserID).
			UpdateColumn("points", gorm.Expr("points + ?", req.Points))
		if res.Error != nil {
			return res.Error
		}

		// Re-read so the audit pair reflects the credit's actual
		// result, not the balance as of the read above.
		var credited models.Balance
		if err := tx.Where("user_id = ?", req.UserID).First(&credited).Error; err != nil {
			return err
		}

		txn = models.PointsTransaction{
			UserID:             req.UserID,
			ReferenceID:        uuid.NewString(),
			TransactionType:    models.TransactionTypePurchase,
			Amount:             req.Points,
			BalanceBefore:      credited.Points - req.Points,
			BalanceAfter:       credited.Points,
			Status:             models.TransactionStatusCompleted,
			Description:        "Points purchase via " + req.PaymentGateway,
			PaymentGateway:     req.PaymentGateway,
			PaymentID:          req.PaymentID,
			PaymentStatus:      req.PaymentStatus,
			PaymentResponseRaw: datatypes.JSON(req.PaymentRaw),
			TransactionDate:    time.Now(),
		}
		return tx.Create(&txn).Error
	})

	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// GetTransactionHistory returns the user's points transactions, newest
// first, optionally filtered by type and by a time window.
func GetTransactionHistory(db *gorm.DB, userID uint, txnType string, from, to *time.Time, offset, limit int) ([]models.PointsTransaction, int64, error) {
	query := db.Model(&models.PointsTransaction{}).Where("user_id = ? AND is_deleted = ?", userID, false)

	if txnType != "" {
		query = query.Where("transaction_type = ?", txnType)
	}
	if from != nil && to != nil {
		query = query.Where("transaction_date BETWEEN ? AND ?", *from, *to)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []models.PointsTransaction
	if err := query.Offset(offset).Limit(limit).Order("transaction_date desc").Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}
