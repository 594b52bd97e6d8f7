package course

import (
	"gorm.io/gorm"
)

// LessonCompletion records that a lesson was finished within an
// enrollment. At most one row per (enrollment, lesson): re-completing
// a lesson must not double-count it in the percentage.
type LessonCompletion struct {
	gorm.Model
	EnrollmentID uint       `json:"enrollment_id" gorm:"not null;uniqueIndex:idx_enrollment_lesson"`
	LessonID     uint       `json:"lesson_id" gorm:"not null;uniqueIndex:idx_enrollment_lesson"`
	Score        uint       `json:"score" gorm:"default:0"`
	IsDeleted    bool       `gorm:"default:false"`
	Enrollment   Enrollment `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE" json:"-"`
	Lesson       Lesson     `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"-"`
}
