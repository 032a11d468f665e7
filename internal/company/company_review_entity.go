package company

import (
	"time"

	"github.com/google/uuid"
)

// Review carries a composite primary key (user_id, company_id): one review
// per user per company, with upsert semantics on repeat review.
type Review struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_company_reviews_company"`

	Rating  int    `gorm:"type:int;not null"`
	Comment string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Review) TableName() string {
	return "company_reviews"
}

type FollowCompany struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_follow_companies_company"`

	CreatedAt time.Time
}

func (FollowCompany) TableName() string {
	return "follow_companies"
}
