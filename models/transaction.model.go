package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TransactionType defines the type of points transaction
type TransactionType string

const (
	TransactionTypePurchase    TransactionType = "PURCHASE"
	TransactionTypeEnrollment  TransactionType = "ENROLLMENT"
	TransactionTypeRefund      TransactionType = "REFUND"
	TransactionTypeAdminCredit TransactionType = "ADMIN_CREDIT"
	TransactionTypeAdminDebit  TransactionType = "ADMIN_DEBIT"
)

// TransactionStatus defines the status of a transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusRefunded  TransactionStatus = "REFUNDED"
)

// PointsTransaction tracks every balance mutation for a user
type PointsTransaction struct {
	gorm.Model
	UserID          uint              `gorm:"not null;index" json:"userId"`
	ReferenceID     string            `gorm:"type:varchar(36);uniqueIndex" json:"referenceId"` // uuid assigned by the service
	TransactionType TransactionType   `gorm:"type:varchar(50);not null" json:"transactionType"`
	Amount          uint              `gorm:"not null" json:"amount"`
	BalanceBefore   uint              `gorm:"not null" json:"balanceBefore"`
	BalanceAfter    uint              `gorm:"not null" json:"balanceAfter"`
	Status          TransactionStatus `gorm:"type:varchar(20);default:'COMPLETED'" json:"status"`
	Description     string            `gorm:"type:text" json:"description"`

	// Payment gateway details (for points purchases)
	PaymentGateway     string         `gorm:"type:varchar(50)" json:"paymentGateway"`
	PaymentID          string         `gorm:"type:varchar(100);index" json:"paymentId"`
	PaymentStatus      string         `gorm:"type:varchar(50)" json:"paymentStatus"`
	PaymentResponseRaw datatypes.JSON `json:"paymentResponseRaw"`

	// Reference details (for enrollment debits)
	CourseID   uint   `gorm:"default:0" json:"courseId"`
	CourseName string `gorm:"type:varchar(255)" json:"courseName"`

	TransactionDate time.Time `gorm:"not null" json:"transactionDate"`
	IsDeleted       bool      `gorm:"default:false" json:"isDeleted"`

	// Relations - omit in JSON by default
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PointsTransaction) TableName() string {
	return "points_transactions"
}
