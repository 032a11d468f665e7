package company

import (
	"time"

	"topcv/internal/catalog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_company_user"`

	Name          string `gorm:"type:varchar(255);not null;index:idx_companies_name"`
	Description   string `gorm:"type:text"`
	Logo          string `gorm:"type:text"`
	Website       string `gorm:"type:varchar(255)"`
	Address       string `gorm:"type:text"`
	EmployeeRange string `gorm:"type:varchar(50)"`

	Active bool `gorm:"not null;default:true;index:idx_companies_active"`

	Categories []catalog.CompanyCategory `gorm:"many2many:categories_companies;joinForeignKey:CompanyID;joinReferences:CategoryID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_companies_deleted_at"`
}
