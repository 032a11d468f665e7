package jobpost

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"topcv/internal/company"
	companyerrors "topcv/internal/company/errors"
	jobposterrors "topcv/internal/jobpost/errors"
	"topcv/internal/shared/apperror"
	"topcv/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=jobpost_service.go -destination=mock/jobpost_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID string, req CreateJobPostRequest) (JobPostResponse, error)
	Update(ctx context.Context, userID, jobID string, req UpdateJobPostRequest) (JobPostResponse, error)
	UpdateStatus(ctx context.Context, userID, role, jobID string, target string) (JobPostResponse, error)
	GetByID(ctx context.Context, viewerID, role, jobID string) (JobPostResponse, error)
	ListMine(ctx context.Context, userID string, page, size int) ([]JobPostResponse, int64, error)
	Search(ctx context.Context, req SearchRequest) ([]JobPostResponse, int64, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	companies company.Repository
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, companies company.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("jobpost.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("jobpost.service")
	}
	return &service{db: db, repo: repo, companies: companies, logger: l}
}

// Status edges: admins approve, reject and suspend; owners close; a suspended
// post can be reinstated. CLOSED, EXPIRED and REJECTED are terminal.
func isAllowedStatusTransition(from, to, role string) bool {
	switch from {
	case StatusPending:
		return (to == StatusActive || to == StatusRejected) && role == user.RoleAdmin
	case StatusActive:
		switch to {
		case StatusClosed:
			return role == user.RoleEmployer || role == user.RoleAdmin
		case StatusSuspended, StatusExpired:
			return role == user.RoleAdmin
		}
	case StatusSuspended:
		return to == StatusActive && role == user.RoleAdmin
	}
	return false
}

func (s *service) Create(ctx context.Context, userID string, req CreateJobPostRequest) (JobPostResponse, error) {
	comp, err := s.ownerCompany(ctx, userID)
	if err != nil {
		return JobPostResponse{}, err
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return JobPostResponse{}, err
	}

	typeID, err := uuid.Parse(req.JobTypeID)
	if err != nil {
		return JobPostResponse{}, apperror.InvalidField("job_type_id")
	}
	levelID, err := uuid.Parse(req.JobLevelID)
	if err != nil {
		return JobPostResponse{}, apperror.InvalidField("job_level_id")
	}
	skillIDs, err := parseIDs("skill_ids", req.SkillIDs)
	if err != nil {
		return JobPostResponse{}, err
	}

	quota := req.HiringQuota
	if quota < 1 {
		quota = 1
	}

	p := &JobPost{
		ID:                 uuid.New(),
		CompanyID:          comp.ID,
		Title:              req.Title,
		Description:        req.Description,
		Requirements:       req.Requirements,
		Benefits:           req.Benefits,
		Location:           req.Location,
		WorkingTime:        req.WorkingTime,
		Salary:             req.Salary,
		ExperienceRequired: req.ExperienceRequired,
		Deadline:           deadline,
		HiringQuota:        quota,
		Status:             StatusPending,
		JobTypeID:          typeID,
		JobLevelID:         levelID,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JobPostResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("create job post failed", zap.String("user_id", userID), zap.Error(err))
		return JobPostResponse{}, err
	}
	if err := qtx.ReplaceSkills(ctx, p, skillIDs); err != nil {
		return JobPostResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return JobPostResponse{}, err
	}

	s.logger.Info("job post created",
		zap.String("job_post_id", p.ID.String()),
		zap.String("company_id", comp.ID.String()),
	)

	created, err := s.repo.FindByID(ctx, p.ID)
	if err != nil {
		return JobPostResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*created), nil
}

func (s *service) Update(ctx context.Context, userID, jobID string, req UpdateJobPostRequest) (JobPostResponse, error) {
	p, err := s.ownedPost(ctx, userID, jobID)
	if err != nil {
		return JobPostResponse{}, err
	}

	if req.Title != "" {
		p.Title = req.Title
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Requirements != "" {
		p.Requirements = req.Requirements
	}
	if req.Benefits != "" {
		p.Benefits = req.Benefits
	}
	if req.Location != "" {
		p.Location = req.Location
	}
	if req.WorkingTime != "" {
		p.WorkingTime = req.WorkingTime
	}
	if req.Salary != "" {
		p.Salary = req.Salary
	}
	if req.ExperienceRequired != "" {
		p.ExperienceRequired = req.ExperienceRequired
	}
	if req.Deadline != "" {
		deadline, err := parseDeadline(req.Deadline)
		if err != nil {
			return JobPostResponse{}, err
		}
		p.Deadline = deadline
	}
	if req.HiringQuota > 0 {
		p.HiringQuota = req.HiringQuota
	}
	if req.JobTypeID != "" {
		typeID, err := uuid.Parse(req.JobTypeID)
		if err != nil {
			return JobPostResponse{}, apperror.InvalidField("job_type_id")
		}
		p.JobTypeID = typeID
	}
	if req.JobLevelID != "" {
		levelID, err := uuid.Parse(req.JobLevelID)
		if err != nil {
			return JobPostResponse{}, apperror.InvalidField("job_level_id")
		}
		p.JobLevelID = levelID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JobPostResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update job post failed", zap.String("job_post_id", jobID), zap.Error(err))
		return JobPostResponse{}, mapRepositoryError(err)
	}
	if req.SkillIDs != nil {
		skillIDs, err := parseIDs("skill_ids", req.SkillIDs)
		if err != nil {
			return JobPostResponse{}, err
		}
		if err := qtx.ReplaceSkills(ctx, p, skillIDs); err != nil {
			return JobPostResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return JobPostResponse{}, err
	}

	updated, err := s.repo.FindByID(ctx, p.ID)
	if err != nil {
		return JobPostResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*updated), nil
}

func (s *service) UpdateStatus(ctx context.Context, userID, role, jobID, target string) (JobPostResponse, error) {
	if !isValidStatus(target) {
		return JobPostResponse{}, jobposterrors.ErrInvalidStatus
	}

	id, err := uuid.Parse(jobID)
	if err != nil {
		return JobPostResponse{}, jobposterrors.ErrJobPostNotFound
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return JobPostResponse{}, mapRepositoryError(err)
	}

	if role == user.RoleEmployer && p.Company.UserID.String() != userID {
		return JobPostResponse{}, jobposterrors.ErrNotJobPostOwner
	}
	if !isAllowedStatusTransition(p.Status, target, role) {
		return JobPostResponse{}, jobposterrors.ErrInvalidStatusTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, target); err != nil {
		return JobPostResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("job post status changed",
		zap.String("job_post_id", jobID),
		zap.String("from", p.Status),
		zap.String("to", target),
		zap.String("role", role),
	)

	p.Status = target
	return mapToResponse(*p), nil
}

func (s *service) GetByID(ctx context.Context, viewerID, role, jobID string) (JobPostResponse, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return JobPostResponse{}, jobposterrors.ErrJobPostNotFound
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return JobPostResponse{}, mapRepositoryError(err)
	}

	// Non-active posts are visible only to the owning employer and admins.
	if p.Status != StatusActive && role != user.RoleAdmin && p.Company.UserID.String() != viewerID {
		return JobPostResponse{}, jobposterrors.ErrJobPostNotFound
	}

	return mapToResponse(*p), nil
}

func (s *service) ListMine(ctx context.Context, userID string, page, size int) ([]JobPostResponse, int64, error) {
	comp, err := s.ownerCompany(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	posts, total, err := s.repo.FindByCompany(ctx, comp.ID, (page-1)*size, size)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(posts), total, nil
}

func (s *service) Search(ctx context.Context, req SearchRequest) ([]JobPostResponse, int64, error) {
	if req.SortBy != "" {
		switch req.SortBy {
		case "title", "salary", "created_at", "deadline":
		default:
			return nil, 0, jobposterrors.ErrInvalidSortColumn
		}
	}

	typeIDs, err := parseIDs("job_type_ids", req.JobTypeIDs)
	if err != nil {
		return nil, 0, err
	}
	levelIDs, err := parseIDs("job_level_ids", req.JobLevelIDs)
	if err != nil {
		return nil, 0, err
	}
	skillIDs, err := parseIDs("skill_ids", req.SkillIDs)
	if err != nil {
		return nil, 0, err
	}

	var companyID *uuid.UUID
	if req.CompanyID != "" {
		cid, err := uuid.Parse(req.CompanyID)
		if err != nil {
			return nil, 0, companyerrors.ErrCompanyNotFound
		}
		companyID = &cid
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.Size
	if size < 1 {
		size = 10
	}

	posts, total, err := s.repo.Search(ctx, SearchFilter{
		Keyword:     req.Keyword,
		Location:    req.Location,
		JobTypeIDs:  typeIDs,
		JobLevelIDs: levelIDs,
		SkillIDs:    skillIDs,
		CompanyID:   companyID,
		Salary:      req.Salary,
		Experience:  req.Experience,
		// Anonymous search never sees drafts, suspended posts, or expired
		// deadlines. Employers read their own posts through ListMine.
		Status:     StatusActive,
		FutureOnly: true,
		SortBy:     req.SortBy,
		SortDir:    req.SortDir,
		Offset:     (page - 1) * size,
		Limit:      size,
	})
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(posts), total, nil
}

func (s *service) ownerCompany(ctx context.Context, userID string) (*company.Company, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, companyerrors.ErrCompanyNotFound
	}
	comp, err := s.companies.FindByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}
	return comp, nil
}

func (s *service) ownedPost(ctx context.Context, userID, jobID string) (*JobPost, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, jobposterrors.ErrJobPostNotFound
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if p.Company.UserID.String() != userID {
		return nil, jobposterrors.ErrNotJobPostOwner
	}
	return p, nil
}

func parseDeadline(s string) (time.Time, error) {
	deadline, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, jobposterrors.ErrInvalidDeadline
	}
	if deadline.Before(time.Now().Truncate(24 * time.Hour)) {
		return time.Time{}, jobposterrors.ErrInvalidDeadline
	}
	return deadline, nil
}

func parseIDs(field string, raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, apperror.InvalidField(field)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func mapToResponse(p JobPost) JobPostResponse {
	skills := make([]SkillResponse, len(p.Skills))
	for i, sk := range p.Skills {
		skills[i] = SkillResponse{ID: sk.ID.String(), Name: sk.Name}
	}

	return JobPostResponse{
		ID:                 p.ID.String(),
		Title:              p.Title,
		Description:        p.Description,
		Requirements:       p.Requirements,
		Benefits:           p.Benefits,
		Location:           p.Location,
		WorkingTime:        p.WorkingTime,
		Salary:             p.Salary,
		ExperienceRequired: p.ExperienceRequired,
		Deadline:           p.Deadline.Format("2006-01-02"),
		AppliedCount:       p.AppliedCount,
		HiringQuota:        p.HiringQuota,
		Status:             p.Status,
		CompanyID:          p.CompanyID.String(),
		CompanyName:        p.Company.Name,
		CompanyLogo:        p.Company.Logo,
		JobType:            p.JobType.Name,
		JobLevel:           p.JobLevel.Name,
		Skills:             skills,
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(posts []JobPost) []JobPostResponse {
	resp := make([]JobPostResponse, len(posts))
	for i, p := range posts {
		resp[i] = mapToResponse(p)
	}
	return resp
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return jobposterrors.ErrJobPostNotFound
	}
	return err
}
