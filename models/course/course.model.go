package course

import (
	"lms/models"

	"gorm.io/gorm"
)

type Course struct {
	gorm.Model
	Title       string      `json:"title"`
	Description string      `json:"description"`
	AuthorID    uint        `json:"author_id" gorm:"index;not null"`
	Price       float64     `json:"price" gorm:"default:0"` // points charged at enrollment
	IsPublished bool        `json:"is_published" gorm:"default:false"`
	IsDeleted   bool        `gorm:"default:false"`
	Author      models.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}
