package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleUser is granted to every registered account.
const RoleUser = "ROLE_USER"

type User struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Username     string      `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email        string      `gorm:"size:100;not null;uniqueIndex" json:"email"`
	PasswordHash string      `gorm:"not null" json:"-"`
	Roles        StringArray `gorm:"type:text;not null" json:"roles"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
