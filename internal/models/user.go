package models

import "gorm.io/gorm"

// User represents an account on the board service.
type User struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email       string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password    string `gorm:"type:varchar(255)"` // No json tag for security
	Username    string `json:"username" gorm:"type:varchar(100)"`
	DisplayName string `json:"displayName" gorm:"type:varchar(100)"`
	Avatar      string `json:"avatar" gorm:"type:varchar(512)"`
	IsActive    bool   `json:"isActive" gorm:"default:false"`
	VerifyToken string `gorm:"type:varchar(36)"` // No json tag; cleared once the account is verified
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// PublicUser is the client-safe projection of a User. It carries everything
// except the password hash and the verification token.
type PublicUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// Public returns the projection of the user that may be sent to clients.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
		IsActive:    u.IsActive,
	}
}
