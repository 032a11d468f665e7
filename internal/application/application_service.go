package application

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	applicationerrors "topcv/internal/application/errors"
	"topcv/internal/events"
	"topcv/internal/jobpost"
	jobposterrors "topcv/internal/jobpost/errors"
	"topcv/internal/messaging/kafka"
	"topcv/internal/resume"
	resumeerrors "topcv/internal/resume/errors"
	"topcv/internal/shared/contextutil"
	"topcv/internal/user"
	usererrors "topcv/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=application_service.go -destination=mock/application_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, userID string, req SubmitRequest) (ApplicationResponse, error)
	UpdateStatus(ctx context.Context, actorID, role, applicationID, target string) (ApplicationResponse, error)
	BulkUpdateStatus(ctx context.Context, actorID, role string, req BulkUpdateStatusRequest) (BulkUpdateResult, error)
	Withdraw(ctx context.Context, userID, applicationID string) (ApplicationResponse, error)

	ListMine(ctx context.Context, userID string, page, size int) ([]ApplicationResponse, int64, error)
	ListByJobPost(ctx context.Context, actorID, role, jobPostID string, page, size int) ([]ApplicationResponse, int64, error)
	SearchForEmployer(ctx context.Context, actorID, role, keyword string, page, size int) ([]ApplicationResponse, int64, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	jobPosts jobpost.Repository
	resumes  resume.Repository
	users    user.Repository
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	jobPosts jobpost.Repository,
	resumes resume.Repository,
	users user.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("application.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("application.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		jobPosts: jobPosts,
		resumes:  resumes,
		users:    users,
		outbox:   outbox,
		logger:   l,
	}
}

// Submit runs the duplicate check, the insert, the applied-count increment
// and the outbox write inside one transaction. The partial unique index backs
// the check up under concurrent submissions: the loser of the race gets a
// constraint violation which maps to DUPLICATE_APPLICATION.
func (s *service) Submit(ctx context.Context, userID string, req SubmitRequest) (ApplicationResponse, error) {
	applicantID, err := uuid.Parse(userID)
	if err != nil {
		return ApplicationResponse{}, usererrors.ErrInvalidUserID
	}
	jobID, err := uuid.Parse(req.JobPostID)
	if err != nil {
		return ApplicationResponse{}, jobposterrors.ErrJobPostNotFound
	}
	resumeID, err := uuid.Parse(req.ResumeID)
	if err != nil {
		return ApplicationResponse{}, resumeerrors.ErrResumeNotFound
	}

	res, err := s.resumes.FindByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApplicationResponse{}, resumeerrors.ErrResumeNotFound
		}
		return ApplicationResponse{}, err
	}
	if res.UserID != applicantID {
		return ApplicationResponse{}, resumeerrors.ErrNotResumeOwner
	}

	job, err := s.jobPosts.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApplicationResponse{}, jobposterrors.ErrJobPostNotFound
		}
		return ApplicationResponse{}, err
	}
	if job.Status != jobpost.StatusActive || job.Deadline.Before(time.Now().Truncate(24*time.Hour)) {
		return ApplicationResponse{}, jobposterrors.ErrJobPostNotOpen
	}

	applicant, err := s.users.FindByID(ctx, applicantID)
	if err != nil {
		return ApplicationResponse{}, mapRepositoryError(err)
	}
	employer, err := s.users.FindByID(ctx, job.Company.UserID)
	if err != nil {
		return ApplicationResponse{}, mapRepositoryError(err)
	}

	a := &Application{
		ID:          uuid.New(),
		JobPostID:   job.ID,
		ApplicantID: applicantID,
		EmployerID:  employer.ID,
		ResumeID:    res.ID,
		CoverLetter: req.CoverLetter,
		Status:      StatusPending,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsActiveByUserAndJob(ctx, applicantID, job.ID)
	if err != nil {
		return ApplicationResponse{}, err
	}
	if exists {
		return ApplicationResponse{}, applicationerrors.ErrDuplicateApplication
	}

	if err := qtx.Create(ctx, a); err != nil {
		s.logger.Error("persist application failed",
			zap.String("applicant_id", userID),
			zap.String("job_post_id", req.JobPostID),
			zap.Error(err),
		)
		return ApplicationResponse{}, mapRepositoryError(err)
	}

	if err := s.jobPosts.WithTx(tx).IncrementAppliedCount(ctx, job.ID); err != nil {
		return ApplicationResponse{}, err
	}

	if err := s.queueSubmittedEvent(ctx, tx, a, job, applicant, employer); err != nil {
		return ApplicationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ApplicationResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("application submitted",
		zap.String("application_id", a.ID.String()),
		zap.String("applicant_id", userID),
		zap.String("job_post_id", req.JobPostID),
	)

	a.JobPost = *job
	a.JobPost.AppliedCount++
	a.Applicant = *applicant
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	return buildResponse(*a, false), nil
}

func (s *service) queueSubmittedEvent(ctx context.Context, tx *sql.Tx, a *Application, job *jobpost.JobPost, applicant, employer *user.User) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.ApplicationSubmittedEvent{
		EventType:     "application_submitted",
		RequestID:     rid,
		ApplicationID: a.ID.String(),
		JobPostID:     job.ID.String(),
		JobTitle:      job.Title,
		ApplicantID:   applicant.ID.String(),
		ApplicantName: applicant.FullName,
		EmployerID:    employer.ID.String(),
		EmployerEmail: employer.Email,
		OccurredAt:    time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "application",
		AggregateID:   a.ID.String(),
		EventType:     event.EventType,
		Topic:         events.ApplicationSubmittedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) UpdateStatus(ctx context.Context, actorID, role, applicationID, target string) (ApplicationResponse, error) {
	if !isValidStatus(target) {
		return ApplicationResponse{}, applicationerrors.ErrInvalidStatus
	}

	id, err := uuid.Parse(applicationID)
	if err != nil {
		return ApplicationResponse{}, applicationerrors.ErrApplicationNotFound
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ApplicationResponse{}, mapRepositoryError(err)
	}
	if role == user.RoleEmployer && a.EmployerID.String() != actorID {
		return ApplicationResponse{}, applicationerrors.ErrNotApplicationEmployer
	}
	if !CanTransition(a.Status, target, role) {
		return ApplicationResponse{}, applicationerrors.ErrInvalidTransition
	}

	moved, err := s.repo.TransitionStatus(ctx, id, a.Status, target)
	if err != nil {
		return ApplicationResponse{}, mapRepositoryError(err)
	}
	if !moved {
		// Lost a race against a concurrent transition.
		return ApplicationResponse{}, applicationerrors.ErrInvalidTransition
	}

	s.logger.Info("application status changed",
		zap.String("application_id", applicationID),
		zap.String("from", a.Status),
		zap.String("to", target),
		zap.String("role", role),
	)

	a.Status = target
	return buildResponse(*a, role != user.RoleSeeker), nil
}

// BulkUpdateStatus evaluates every id independently: successes land, failures
// are reported per id, and one bad id never aborts the batch.
func (s *service) BulkUpdateStatus(ctx context.Context, actorID, role string, req BulkUpdateStatusRequest) (BulkUpdateResult, error) {
	result := BulkUpdateResult{Failed: map[string]string{}}

	for _, id := range req.ApplicationIDs {
		if _, err := s.UpdateStatus(ctx, actorID, role, id, req.Status); err != nil {
			result.Failed[id] = err.Error()
			continue
		}
		result.Updated = append(result.Updated, id)
	}

	if len(result.Failed) == 0 {
		result.Failed = nil
	}
	return result, nil
}

// Withdraw pairs the guarded status flip with the applied-count decrement in
// one transaction.
func (s *service) Withdraw(ctx context.Context, userID, applicationID string) (ApplicationResponse, error) {
	id, err := uuid.Parse(applicationID)
	if err != nil {
		return ApplicationResponse{}, applicationerrors.ErrApplicationNotFound
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ApplicationResponse{}, mapRepositoryError(err)
	}
	if a.ApplicantID.String() != userID {
		return ApplicationResponse{}, applicationerrors.ErrNotApplicationOwner
	}
	if !CanTransition(a.Status, StatusWithdrawn, user.RoleSeeker) {
		return ApplicationResponse{}, applicationerrors.ErrInvalidTransition
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ApplicationResponse{}, err
	}
	defer tx.Rollback()

	moved, err := s.repo.WithTx(tx).TransitionStatus(ctx, id, a.Status, StatusWithdrawn)
	if err != nil {
		return ApplicationResponse{}, mapRepositoryError(err)
	}
	if !moved {
		return ApplicationResponse{}, applicationerrors.ErrInvalidTransition
	}

	if err := s.jobPosts.WithTx(tx).DecrementAppliedCount(ctx, a.JobPostID); err != nil {
		return ApplicationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ApplicationResponse{}, err
	}

	s.logger.Info("application withdrawn",
		zap.String("application_id", applicationID),
		zap.String("applicant_id", userID),
	)

	a.Status = StatusWithdrawn
	return buildResponse(*a, false), nil
}

func (s *service) ListMine(ctx context.Context, userID string, page, size int) ([]ApplicationResponse, int64, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, usererrors.ErrInvalidUserID
	}
	offset, limit := pageToRange(page, size)

	apps, total, err := s.repo.ListByApplicant(ctx, uid, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return buildListResponse(apps, false), total, nil
}

func (s *service) ListByJobPost(ctx context.Context, actorID, role, jobPostID string, page, size int) ([]ApplicationResponse, int64, error) {
	jobID, err := uuid.Parse(jobPostID)
	if err != nil {
		return nil, 0, jobposterrors.ErrJobPostNotFound
	}

	job, err := s.jobPosts.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, jobposterrors.ErrJobPostNotFound
		}
		return nil, 0, err
	}
	if role == user.RoleEmployer && job.Company.UserID.String() != actorID {
		return nil, 0, jobposterrors.ErrNotJobPostOwner
	}

	offset, limit := pageToRange(page, size)
	apps, total, err := s.repo.ListByJobPost(ctx, jobID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return buildListResponse(apps, true), total, nil
}

// SearchForEmployer scopes to the employer's own posts; an admin sees every
// application.
func (s *service) SearchForEmployer(ctx context.Context, actorID, role, keyword string, page, size int) ([]ApplicationResponse, int64, error) {
	offset, limit := pageToRange(page, size)

	if role == user.RoleAdmin {
		apps, total, err := s.repo.SearchAll(ctx, keyword, offset, limit)
		if err != nil {
			return nil, 0, err
		}
		return buildListResponse(apps, true), total, nil
	}

	uid, err := uuid.Parse(actorID)
	if err != nil {
		return nil, 0, usererrors.ErrInvalidUserID
	}

	// The plain list view needs no applicant/title join.
	if keyword == "" {
		apps, total, err := s.repo.ListByEmployer(ctx, uid, offset, limit)
		if err != nil {
			return nil, 0, err
		}
		return buildListResponse(apps, true), total, nil
	}

	apps, total, err := s.repo.SearchForEmployer(ctx, uid, keyword, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return buildListResponse(apps, true), total, nil
}

func pageToRange(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	return (page - 1) * size, size
}
