package resume

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=resume_repo.go -destination=mock/resume_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Resume) error
	FindByID(ctx context.Context, id uuid.UUID) (*Resume, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Resume, error)
	Update(ctx context.Context, r *Resume) error
	Delete(ctx context.Context, id uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, res *Resume) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var res Resume
	err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error
	return &res, err
}

func (r *repository) FindByUser(ctx context.Context, userID uuid.UUID) ([]Resume, error) {
	var resumes []Resume
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&resumes).Error
	return resumes, err
}

func (r *repository) Update(ctx context.Context, res *Resume) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Resume{}, "id = ?", id).Error
}
