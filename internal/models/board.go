package models

import "gorm.io/gorm"

// Board is referenced by invitations. This service only ever reads boards;
// creating and editing them is handled elsewhere.
type Board struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string `json:"title" gorm:"type:varchar(255)" validate:"required,min=3,max=255"`
	Slug        string `json:"slug" gorm:"type:varchar(255)"`
	Description string `json:"description" gorm:"type:varchar(255)"`
	Type        string `json:"type" gorm:"type:varchar(20)"` // "public" or "private"
	gorm.Model
}
