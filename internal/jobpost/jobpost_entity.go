package jobpost

import (
	"time"

	"topcv/internal/catalog"
	"topcv/internal/company"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusActive    = "ACTIVE"
	StatusClosed    = "CLOSED"
	StatusExpired   = "EXPIRED"
	StatusRejected  = "REJECTED"
	StatusSuspended = "SUSPENDED"
)

type JobPost struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_job_posts_company"`
	Company   company.Company

	Title              string `gorm:"type:varchar(255);not null"`
	Description        string `gorm:"type:text"`
	Requirements       string `gorm:"type:text"`
	Benefits           string `gorm:"type:text"`
	Location           string `gorm:"type:varchar(255);index:idx_job_posts_location"`
	WorkingTime        string `gorm:"type:varchar(100)"`
	Salary             string `gorm:"type:varchar(100)"`
	ExperienceRequired string `gorm:"type:varchar(100)"`

	Deadline     time.Time `gorm:"not null;index:idx_job_posts_deadline"`
	AppliedCount int       `gorm:"not null;default:0"`
	HiringQuota  int       `gorm:"not null;default:1"`
	Status       string    `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_job_posts_status"`

	JobTypeID  uuid.UUID `gorm:"type:uuid;not null"`
	JobType    catalog.JobType
	JobLevelID uuid.UUID `gorm:"type:uuid;not null"`
	JobLevel   catalog.JobLevel

	Skills []catalog.Skill `gorm:"many2many:job_post_skills"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_job_posts_deleted_at"`
}

func (JobPost) TableName() string {
	return "job_posts"
}

func isValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusActive, StatusClosed, StatusExpired, StatusRejected, StatusSuspended:
		return true
	}
	return false
}
