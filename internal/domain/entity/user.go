package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table. LinkedID points
// at the doctor or patient record backing a non-admin account.
type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID    int        `gorm:"not null;index" json:"role_id"`
	Username  string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Password  string     `gorm:"type:text;not null" json:"-"`
	LinkedID  *uuid.UUID `gorm:"type:uuid" json:"linked_id,omitempty"`
	IsActive  *bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}
