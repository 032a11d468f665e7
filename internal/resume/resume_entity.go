package resume

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Resume struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_resumes_user"`

	ResumeName string `gorm:"type:varchar(255);not null"`
	FilePath   string `gorm:"type:text;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_resumes_deleted_at"`
}

func (Resume) TableName() string {
	return "resumes"
}
