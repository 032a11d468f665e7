package application

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=application_repo.go -destination=mock/application_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*Application, error)
	ExistsActiveByUserAndJob(ctx context.Context, applicantID, jobPostID uuid.UUID) (bool, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error)

	ListByApplicant(ctx context.Context, applicantID uuid.UUID, offset, limit int) ([]Application, int64, error)
	ListByJobPost(ctx context.Context, jobPostID uuid.UUID, offset, limit int) ([]Application, int64, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID, offset, limit int) ([]Application, int64, error)
	SearchForEmployer(ctx context.Context, employerID uuid.UUID, keyword string, offset, limit int) ([]Application, int64, error)
	SearchAll(ctx context.Context, keyword string, offset, limit int) ([]Application, int64, error)
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

// Create inserts on the attached transaction when one is set, so the row
// commits or rolls back together with the applied-count increment.
func (r *repository) Create(ctx context.Context, a *Application) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO applications
				(id, job_post_id, applicant_id, employer_id, resume_id, cover_letter, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		`, a.ID, a.JobPostID, a.ApplicantID, a.EmployerID, a.ResumeID, a.CoverLetter, a.Status)
		return err
	}
	return r.db.WithContext(ctx).Omit("JobPost", "Applicant", "Resume").Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Application, error) {
	var a Application
	err := r.db.WithContext(ctx).
		Preload("JobPost").
		Preload("JobPost.Company").
		Preload("JobPost.JobType").
		Preload("JobPost.JobLevel").
		Preload("Applicant").
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) ExistsActiveByUserAndJob(ctx context.Context, applicantID, jobPostID uuid.UUID) (bool, error) {
	if r.tx != nil {
		var count int64
		err := r.tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM applications
			WHERE applicant_id = $1 AND job_post_id = $2 AND status <> $3
		`, applicantID, jobPostID, StatusWithdrawn).Scan(&count)
		return count > 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&Application{}).
		Where("applicant_id = ? AND job_post_id = ? AND status <> ?", applicantID, jobPostID, StatusWithdrawn).
		Count(&count).Error
	return count > 0, err
}

// TransitionStatus is a single conditional UPDATE: the write only lands when
// the row is still in the expected source status, so a concurrent transition
// cannot be overwritten. Returns false when the guard missed.
func (r *repository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx,
			"UPDATE applications SET status = $1, updated_at = now() WHERE id = $2 AND status = $3",
			to, id, from,
		)
		if err != nil {
			return false, err
		}
		n, err := res.RowsAffected()
		return n > 0, err
	}

	res := r.db.WithContext(ctx).
		Model(&Application{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) ListByApplicant(ctx context.Context, applicantID uuid.UUID, offset, limit int) ([]Application, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&Application{}).
		Where("applicant_id = ?", applicantID), offset, limit)
}

func (r *repository) ListByJobPost(ctx context.Context, jobPostID uuid.UUID, offset, limit int) ([]Application, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&Application{}).
		Where("job_post_id = ?", jobPostID), offset, limit)
}

func (r *repository) ListByEmployer(ctx context.Context, employerID uuid.UUID, offset, limit int) ([]Application, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&Application{}).
		Where("employer_id = ?", employerID), offset, limit)
}

func (r *repository) SearchForEmployer(ctx context.Context, employerID uuid.UUID, keyword string, offset, limit int) ([]Application, int64, error) {
	db := r.db.WithContext(ctx).Model(&Application{}).
		Joins("JOIN users ON users.id = applications.applicant_id").
		Joins("JOIN job_posts ON job_posts.id = applications.job_post_id").
		Where("applications.employer_id = ?", employerID)

	if keyword != "" {
		kw := "%" + strings.ToLower(keyword) + "%"
		db = db.Where("LOWER(users.full_name) LIKE ? OR LOWER(job_posts.title) LIKE ?", kw, kw)
	}

	return r.list(ctx, db, offset, limit)
}

func (r *repository) SearchAll(ctx context.Context, keyword string, offset, limit int) ([]Application, int64, error) {
	db := r.db.WithContext(ctx).Model(&Application{}).
		Joins("JOIN users ON users.id = applications.applicant_id").
		Joins("JOIN job_posts ON job_posts.id = applications.job_post_id")

	if keyword != "" {
		kw := "%" + strings.ToLower(keyword) + "%"
		db = db.Where("LOWER(users.full_name) LIKE ? OR LOWER(job_posts.title) LIKE ?", kw, kw)
	}

	return r.list(ctx, db, offset, limit)
}

func (r *repository) list(ctx context.Context, db *gorm.DB, offset, limit int) ([]Application, int64, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []Application
	err := db.
		Preload("JobPost").
		Preload("JobPost.Company").
		Preload("JobPost.JobType").
		Preload("JobPost.JobLevel").
		Preload("Applicant").
		Order("applications.created_at DESC, applications.id ASC").
		Offset(offset).
		Limit(limit).
		Find(&apps).Error
	return apps, total, err
}
