package company

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Company, error)
	Update(ctx context.Context, c *Company) error
	ReplaceCategories(ctx context.Context, c *Company, categoryIDs []uuid.UUID) error
	Search(ctx context.Context, keyword string, offset, limit int) ([]Company, int64, error)

	UpsertReview(ctx context.Context, r *Review) error
	FindReviews(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]Review, int64, error)
	ReviewStats(ctx context.Context, companyID uuid.UUID) (avg float64, count int64, err error)
	DeleteReview(ctx context.Context, userID, companyID uuid.UUID) error

	Follow(ctx context.Context, userID, companyID uuid.UUID) error
	Unfollow(ctx context.Context, userID, companyID uuid.UUID) error
	FollowerCount(ctx context.Context, companyID uuid.UUID) (int64, error)
	IsFollowing(ctx context.Context, userID, companyID uuid.UUID) (bool, error)
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

func (r *repository) Create(ctx context.Context, c *Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var c Company
	err := r.db.WithContext(ctx).Preload("Categories").First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*Company, error) {
	var c Company
	err := r.db.WithContext(ctx).Preload("Categories").First(&c, "user_id = ?", userID).Error
	return &c, err
}

func (r *repository) Update(ctx context.Context, c *Company) error {
	return r.db.WithContext(ctx).Omit("Categories").Save(c).Error
}

func (r *repository) ReplaceCategories(ctx context.Context, c *Company, categoryIDs []uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Exec("DELETE FROM categories_companies WHERE company_id = ?", c.ID).Error; err != nil {
		return err
	}
	for _, cid := range categoryIDs {
		if err := r.db.WithContext(ctx).
			Exec("INSERT INTO categories_companies (company_id, category_id) VALUES (?, ?)", c.ID, cid).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) Search(ctx context.Context, keyword string, offset, limit int) ([]Company, int64, error) {
	db := r.db.WithContext(ctx).Model(&Company{}).Where("active = ?", true)
	if keyword != "" {
		db = db.Where("LOWER(name) LIKE ?", "%"+keyword+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []Company
	err := db.
		Preload("Categories").
		Order("name ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&companies).Error
	return companies, total, err
}

// UpsertReview inserts or, on the composite-key conflict, replaces the
// existing rating and comment.
func (r *repository) UpsertReview(ctx context.Context, rev *Review) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
		}).
		Create(rev).Error
}

func (r *repository) FindReviews(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]Review, int64, error) {
	db := r.db.WithContext(ctx).Model(&Review{}).Where("company_id = ?", companyID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []Review
	err := db.Order("updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error
	return reviews, total, err
}

func (r *repository) ReviewStats(ctx context.Context, companyID uuid.UUID) (float64, int64, error) {
	var stats struct {
		Avg   sql.NullFloat64
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&Review{}).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Where("company_id = ?", companyID).
		Scan(&stats).Error
	if err != nil {
		return 0, 0, err
	}
	return stats.Avg.Float64, stats.Count, nil
}

func (r *repository) DeleteReview(ctx context.Context, userID, companyID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Delete(&Review{}).Error
}

func (r *repository) Follow(ctx context.Context, userID, companyID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&FollowCompany{UserID: userID, CompanyID: companyID}).Error
}

func (r *repository) Unfollow(ctx context.Context, userID, companyID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Delete(&FollowCompany{}).Error
}

func (r *repository) FollowerCount(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&FollowCompany{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count, err
}

func (r *repository) IsFollowing(ctx context.Context, userID, companyID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&FollowCompany{}).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Count(&count).Error
	return count > 0, err
}
