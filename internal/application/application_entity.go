package application

import (
	"time"

	"topcv/internal/jobpost"
	"topcv/internal/resume"
	"topcv/internal/user"

	"github.com/google/uuid"
)

const (
	StatusPending     = "PENDING"
	StatusReviewing   = "REVIEWING"
	StatusShortlisted = "SHORTLISTED"
	StatusInterviewed = "INTERVIEWED"
	StatusHired       = "HIRED"
	StatusRejected    = "REJECTED"
	StatusWithdrawn   = "WITHDRAWN"
)

// Application rows are never hard-deleted; a seeker leaving a job soft
// transitions the row to WITHDRAWN. The partial unique index keeps at most
// one live application per (applicant, job post) while letting a withdrawn
// seeker apply again.
type Application struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	JobPostID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_applications_live;index:idx_applications_job_post"`
	JobPost   jobpost.JobPost

	ApplicantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_applications_live,where:status <> 'WITHDRAWN';index:idx_applications_applicant"`
	Applicant   user.User `gorm:"foreignKey:ApplicantID"`

	// Denormalized from the job post's company at submission time so employer
	// dashboards never need a three-way join.
	EmployerID uuid.UUID `gorm:"type:uuid;not null;index:idx_applications_employer"`

	ResumeID uuid.UUID `gorm:"type:uuid;not null"`
	Resume   resume.Resume

	CoverLetter string `gorm:"type:text"`
	Status      string `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_applications_status"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Application) TableName() string {
	return "applications"
}
