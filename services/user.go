package services

import (
	"lms/models"

	"gorm.io/gorm"
)

// RegisterUser creates a user together with its points balance in a
// single transaction. The balance row must exist before this returns:
// every other operation assumes it does, so there is no lazy creation
// anywhere else.
func RegisterUser(db *gorm.DB, user *models.User, signupPoints uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		balance := models.Balance{
			UserID: user.ID,
			Points: signupPoints,
		}
		return tx.Create(&balance).Error
	})
}

// GetBalance returns the current points for a user.
func GetBalance(db *gorm.DB, userID uint) (uint, error) {
	var balance models.Balance
	if err := db.Where("user_id = ?", userID).First(&balance).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return balance.Points, nil
}
