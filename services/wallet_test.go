package services

import (
	"testing"
	"time"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositCreditsPoints(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com", 100)

	txn, err := Deposit(db, DepositRequest{
		UserID:         user.ID,
		Points:         500,
		PaymentGateway: "credpay",
		PaymentID:      "pay_123",
		PaymentStatus:  "success",
		PaymentRaw:     []byte(`{"payment_id":"pay_123","amount":500,"status":"success"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, uint(500), txn.Amount)
	assert.Equal(t, uint(100), txn.BalanceBefore)
	assert.Equal(t, uint(600), txn.BalanceAfter)
	assert.NotEmpty(t, txn.ReferenceID)

	points, err := GetBalance(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(600), points)
}

func TestDepositDuplicatePaymentRejected(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com", 0)

	req := DepositRequest{
		UserID:         user.ID,
		Points:         500,
		PaymentGateway: "credpay",
		PaymentID:      "pay_123",
		PaymentStatus:  "success",
	}

	_, err := Deposit(db, req)
	require.NoError(t, err)

	// Replayed gateway callback must not credit twice
	_, err = Deposit(db, req)
	assert.ErrorIs(t, err, ErrDuplicatePayment)

	points, err := GetBalance(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(500), points)
}

func TestDepositUnknownUser(t *testing.T) {
	db := setupTestDB(t)

	_, err := Deposit(db, DepositRequest{
		UserID:    9999,
		Points:    100,
		PaymentID: "pay_999",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTransactionHistoryFilters(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "author@example.com", 0)
	user := createTestUser(t, db, "student@example.com", 1000)
	course := createTestCourse(t, db, author.ID, "Go Basics", 300)

	_, err := Deposit(db, DepositRequest{UserID: user.ID, Points: 200, PaymentGateway: "credpay", PaymentID: "pay_1", PaymentStatus: "success"})
	require.NoError(t, err)
	_, err = Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	all, total, err := GetTransactionHistory(db, user.ID, "", nil, nil, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	purchases, total, err := GetTransactionHistory(db, user.ID, string(models.TransactionTypePurchase), nil, nil, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, purchases, 1)
	assert.Equal(t, models.TransactionTypePurchase, purchases[0].TransactionType)

	// A window in the past matches nothing
	from := time.Now().Add(-48 * time.Hour)
	to := time.Now().Add(-24 * time.Hour)
	old, total, err := GetTransactionHistory(db, user.ID, "", &from, &to, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, old)
}
