package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleSeeker   = "SEEKER"
	RoleEmployer = "EMPLOYER"
	RoleAdmin    = "ADMIN"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email    string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_user_email"`
	Password string    `gorm:"type:varchar(255);not null"`
	FullName string    `gorm:"type:varchar(255);not null"`
	Avatar   string    `gorm:"type:text"`
	Phone    string    `gorm:"type:varchar(30)"`
	Address  string    `gorm:"type:text"`

	Role          string `gorm:"type:varchar(20);not null;default:'SEEKER';index:idx_users_role"`
	Active        bool   `gorm:"not null;default:true"`
	EmailVerified bool   `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_users_deleted_at"`
}
