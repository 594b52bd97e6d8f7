package course

import (
	"lms/models"
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a user's enrollment in a course with progress.
// The composite unique index enforces at most one enrollment per
// (user, course). StartedAt is CreatedAt; CompletedAt is set exactly
// once when Progress first reaches 100 and is never cleared, even if
// lessons added later pull Progress back below 100.
type Enrollment struct {
	gorm.Model
	UserID           uint        `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course"`
	CourseID         uint        `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course"`
	Status           string      `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	Progress         float64     `json:"progress" gorm:"default:0"`        // Completion percentage (0-100)
	CompletedLessons int         `json:"completed_lessons" gorm:"default:0"`
	TotalLessons     int         `json:"total_lessons" gorm:"default:0"`
	CompletedAt      *time.Time  `json:"completed_at"`
	IsDeleted        bool        `gorm:"default:false"`
	User             models.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course           Course      `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}
