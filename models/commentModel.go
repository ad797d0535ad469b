package models

import "time"

type Comment struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	ProductID      uint       `json:"product_id" gorm:"not null;index"`
	UserIdentifier string     `json:"user_identifier" gorm:"size:255;not null;index"`
	Comment        string     `json:"comment" gorm:"type:text;not null"`
	Rating         float64    `json:"rating" gorm:"not null"`
	CreatedAt      time.Time  `json:"created_at"`
	EditedAt       *time.Time `json:"edited_at"`
}

func (Comment) TableName() string {
	return "comments"
}
