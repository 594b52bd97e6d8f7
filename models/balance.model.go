package models

import (
	"gorm.io/gorm"
)

// Balance holds a user's points, the internal currency used to enroll
// in courses. One row per user, created together with the user at
// signup. Points only change through the wallet and enrollment
// services, never by direct writes.
type Balance struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"uniqueIndex;not null"`
	Points uint `json:"points" gorm:"default:0"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
