package catalog

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kind selects which master table an operation targets. The tables share one
// shape (id, unique name) so the repository is written once.
type Kind string

const (
	KindJobType         Kind = "job_type"
	KindJobLevel        Kind = "job_level"
	KindSkill           Kind = "skill"
	KindJobCategory     Kind = "job_category"
	KindCompanyCategory Kind = "company_category"
)

func (k Kind) table() string {
	switch k {
	case KindJobType:
		return "job_types"
	case KindJobLevel:
		return "job_levels"
	case KindJobCategory:
		return "job_categories"
	case KindCompanyCategory:
		return "company_categories"
	default:
		return "skills"
	}
}

func (k Kind) uniqueIndex() string {
	switch k {
	case KindJobType:
		return "uq_job_types_name"
	case KindJobLevel:
		return "uq_job_levels_name"
	case KindJobCategory:
		return "uq_job_categories_name"
	case KindCompanyCategory:
		return "uq_company_categories_name"
	default:
		return "uq_skills_name"
	}
}

// Item is the row shape shared by all catalog tables.
type Item struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

//go:generate mockgen -source=catalog_repo.go -destination=mock/catalog_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	List(ctx context.Context, kind Kind) ([]Item, error)
	FindByID(ctx context.Context, kind Kind, id uuid.UUID) (*Item, error)
	FindByIDs(ctx context.Context, kind Kind, ids []uuid.UUID) ([]Item, error)
	Create(ctx context.Context, kind Kind, item *Item) error
	Update(ctx context.Context, kind Kind, item *Item) error
	Delete(ctx context.Context, kind Kind, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) List(ctx context.Context, kind Kind) ([]Item, error) {
	var items []Item
	err := r.db.WithContext(ctx).
		Table(kind.table()).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindByID(ctx context.Context, kind Kind, id uuid.UUID) (*Item, error) {
	var item Item
	err := r.db.WithContext(ctx).
		Table(kind.table()).
		Where("id = ?", id).
		Take(&item).Error
	return &item, err
}

func (r *repository) FindByIDs(ctx context.Context, kind Kind, ids []uuid.UUID) ([]Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []Item
	err := r.db.WithContext(ctx).
		Table(kind.table()).
		Where("id IN ?", ids).
		Find(&items).Error
	return items, err
}

func (r *repository) Create(ctx context.Context, kind Kind, item *Item) error {
	return r.db.WithContext(ctx).Table(kind.table()).Create(item).Error
}

func (r *repository) Update(ctx context.Context, kind Kind, item *Item) error {
	return r.db.WithContext(ctx).
		Table(kind.table()).
		Where("id = ?", item.ID).
		Updates(map[string]any{"name": item.Name, "updated_at": time.Now().UTC()}).Error
}

func (r *repository) Delete(ctx context.Context, kind Kind, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Table(kind.table()).
		Where("id = ?", id).
		Delete(&Item{}).Error
}
