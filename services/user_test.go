package services

import (
	"testing"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUserGrantsSignupPoints(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{
		Name:     "New Student",
		Email:    "new@example.com",
		Role:     "USER",
		Password: "hashed",
	}
	require.NoError(t, RegisterUser(db, &user, 1000))
	require.NotZero(t, user.ID)

	points, err := GetBalance(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(1000), points)
}

func TestRegisterUserDuplicateEmailLeavesNoBalance(t *testing.T) {
	db := setupTestDB(t)
	existing := createTestUser(t, db, "taken@example.com", 1000)

	dup := models.User{
		Name:     "Impostor",
		Email:    existing.Email,
		Role:     "USER",
		Password: "hashed",
	}
	err := RegisterUser(db, &dup, 1000)
	require.Error(t, err)

	// The whole signup rolls back, not just the user row
	var balances int64
	require.NoError(t, db.Model(&models.Balance{}).Count(&balances).Error)
	assert.Equal(t, int64(1), balances)
}

func TestGetBalanceUnknownUser(t *testing.T) {
	db := setupTestDB(t)

	_, err := GetBalance(db, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
