package course

import (
	"gorm.io/gorm"
)

type Lesson struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	VideoURL   string `json:"video_url"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
	Course     Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}
