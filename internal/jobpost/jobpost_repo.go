package jobpost

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SearchFilter is the repository-level shape of a search: ids already parsed,
// keyword already lowercased, paging already converted to offset/limit.
type SearchFilter struct {
	Keyword     string
	Location    string
	JobTypeIDs  []uuid.UUID
	JobLevelIDs []uuid.UUID
	SkillIDs    []uuid.UUID
	CompanyID   *uuid.UUID
	Salary      string
	Experience  string
	Status      string
	FutureOnly  bool

	SortBy  string
	SortDir string
	Offset  int
	Limit   int
}

//go:generate mockgen -source=jobpost_repo.go -destination=mock/jobpost_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *JobPost) error
	FindByID(ctx context.Context, id uuid.UUID) (*JobPost, error)
	FindByCompany(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]JobPost, int64, error)
	Update(ctx context.Context, p *JobPost) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ReplaceSkills(ctx context.Context, p *JobPost, skillIDs []uuid.UUID) error
	Search(ctx context.Context, filter SearchFilter) ([]JobPost, int64, error)
	FindActiveForMatching(ctx context.Context, limit int) ([]JobPost, error)

	IncrementAppliedCount(ctx context.Context, id uuid.UUID) error
	DecrementAppliedCount(ctx context.Context, id uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, p *JobPost) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*JobPost, error) {
	var p JobPost
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("JobType").
		Preload("JobLevel").
		Preload("Skills").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindByCompany(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]JobPost, int64, error) {
	db := r.db.WithContext(ctx).Model(&JobPost{}).Where("company_id = ?", companyID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []JobPost
	err := db.
		Preload("JobType").
		Preload("JobLevel").
		Preload("Skills").
		Order("created_at DESC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *repository) Update(ctx context.Context, p *JobPost) error {
	return r.db.WithContext(ctx).Omit("Skills", "Company", "JobType", "JobLevel").Save(p).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).
		Model(&JobPost{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) ReplaceSkills(ctx context.Context, p *JobPost, skillIDs []uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Exec("DELETE FROM job_post_skills WHERE job_post_id = ?", p.ID).Error; err != nil {
		return err
	}
	for _, sid := range skillIDs {
		if err := r.db.WithContext(ctx).
			Exec("INSERT INTO job_post_skills (job_post_id, skill_id) VALUES (?, ?)", p.ID, sid).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) Search(ctx context.Context, filter SearchFilter) ([]JobPost, int64, error) {
	db := r.applyFilter(r.db.WithContext(ctx).Model(&JobPost{}), filter)

	var total int64
	if err := db.Distinct("job_posts.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []JobPost
	err := r.applyFilter(r.db.WithContext(ctx).Model(&JobPost{}), filter).
		Distinct("job_posts.*").
		Preload("Company").
		Preload("JobType").
		Preload("JobLevel").
		Preload("Skills").
		Order(orderClause(filter.SortBy, filter.SortDir)).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *repository) applyFilter(db *gorm.DB, filter SearchFilter) *gorm.DB {
	db = db.Joins("JOIN companies ON companies.id = job_posts.company_id AND companies.active AND companies.deleted_at IS NULL")

	if filter.Keyword != "" {
		kw := "%" + strings.ToLower(filter.Keyword) + "%"
		db = db.Where(
			"LOWER(job_posts.title) LIKE ? OR LOWER(job_posts.description) LIKE ? OR LOWER(job_posts.requirements) LIKE ? OR LOWER(job_posts.benefits) LIKE ?",
			kw, kw, kw, kw,
		)
	}
	if filter.Location != "" {
		db = db.Where("LOWER(job_posts.location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
	}
	if len(filter.JobTypeIDs) > 0 {
		db = db.Where("job_posts.job_type_id IN ?", filter.JobTypeIDs)
	}
	if len(filter.JobLevelIDs) > 0 {
		db = db.Where("job_posts.job_level_id IN ?", filter.JobLevelIDs)
	}
	if len(filter.SkillIDs) > 0 {
		// At-least-one-of semantics over the join table.
		db = db.Joins("JOIN job_post_skills ON job_post_skills.job_post_id = job_posts.id").
			Where("job_post_skills.skill_id IN ?", filter.SkillIDs)
	}
	if filter.CompanyID != nil {
		db = db.Where("job_posts.company_id = ?", *filter.CompanyID)
	}
	if filter.Salary != "" {
		db = db.Where("job_posts.salary = ?", filter.Salary)
	}
	if filter.Experience != "" {
		db = db.Where("LOWER(job_posts.experience_required) LIKE ?", "%"+strings.ToLower(filter.Experience)+"%")
	}
	if filter.Status != "" {
		db = db.Where("job_posts.status = ?", filter.Status)
	}
	if filter.FutureOnly {
		db = db.Where("job_posts.deadline >= CURRENT_DATE")
	}
	return db
}

// orderClause maps the request sort to a whitelisted column. Callers validate
// the sort name first; an unexpected value still falls back to created_at so
// user input can never reach the ORDER BY raw.
func orderClause(sortBy, sortDir string) string {
	column := "job_posts.created_at"
	switch sortBy {
	case "title":
		column = "job_posts.title"
	case "salary":
		column = "job_posts.salary"
	case "deadline":
		column = "job_posts.deadline"
	case "created_at", "":
	}

	dir := "DESC"
	if strings.EqualFold(sortDir, "asc") {
		dir = "ASC"
	}
	return column + " " + dir + ", job_posts.id ASC"
}

func (r *repository) FindActiveForMatching(ctx context.Context, limit int) ([]JobPost, error) {
	var posts []JobPost
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("JobType").
		Preload("JobLevel").
		Preload("Skills").
		Where("status = ? AND deadline >= CURRENT_DATE", StatusActive).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// IncrementAppliedCount is a single atomic UPDATE. When a transaction is
// attached it runs inside it, so the counter commits or rolls back together
// with the application insert.
func (r *repository) IncrementAppliedCount(ctx context.Context, id uuid.UUID) error {
	const q = "UPDATE job_posts SET applied_count = applied_count + 1, updated_at = now() WHERE id = $1"
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, q, id)
		return err
	}
	return r.db.WithContext(ctx).
		Exec("UPDATE job_posts SET applied_count = applied_count + 1, updated_at = now() WHERE id = ?", id).Error
}

// DecrementAppliedCount floors at zero.
func (r *repository) DecrementAppliedCount(ctx context.Context, id uuid.UUID) error {
	const q = "UPDATE job_posts SET applied_count = GREATEST(applied_count - 1, 0), updated_at = now() WHERE id = $1"
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, q, id)
		return err
	}
	return r.db.WithContext(ctx).
		Exec("UPDATE job_posts SET applied_count = GREATEST(applied_count - 1, 0), updated_at = now() WHERE id = ?", id).Error
}
