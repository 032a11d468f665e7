package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Catalog rows are master data: small tables read on every job post and
// search, mutated only by admins.

type JobType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_job_types_name"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (JobType) TableName() string {
	return "job_types"
}

type JobLevel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_job_levels_name"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (JobLevel) TableName() string {
	return "job_levels"
}

type Skill struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_skills_name"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Skill) TableName() string {
	return "skills"
}

type JobCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_job_categories_name"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (JobCategory) TableName() string {
	return "job_categories"
}

type CompanyCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_company_categories_name"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CompanyCategory) TableName() string {
	return "company_categories"
}
