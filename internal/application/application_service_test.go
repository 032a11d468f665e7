package application_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"topcv/internal/application"
	applicationerrors "topcv/internal/application/errors"
	"topcv/internal/company"
	"topcv/internal/jobpost"
	jobposterrors "topcv/internal/jobpost/errors"
	"topcv/internal/messaging/kafka"
	"topcv/internal/resume"
	resumeerrors "topcv/internal/resume/errors"
	"topcv/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeApplicationRepository struct {
	createFn            func(ctx context.Context, a *application.Application) error
	findByIDFn          func(ctx context.Context, id uuid.UUID) (*application.Application, error)
	existsFn            func(ctx context.Context, applicantID, jobPostID uuid.UUID) (bool, error)
	transitionFn        func(ctx context.Context, id uuid.UUID, from, to string) (bool, error)
	listByApplicantFn   func(ctx context.Context, applicantID uuid.UUID, offset, limit int) ([]application.Application, int64, error)
	listByJobPostFn     func(ctx context.Context, jobPostID uuid.UUID, offset, limit int) ([]application.Application, int64, error)
	listByEmployerFn    func(ctx context.Context, employerID uuid.UUID, offset, limit int) ([]application.Application, int64, error)
	searchForEmployerFn func(ctx context.Context, employerID uuid.UUID, keyword string, offset, limit int) ([]application.Application, int64, error)
	searchAllFn         func(ctx context.Context, keyword string, offset, limit int) ([]application.Application, int64, error)
}

func (f *fakeApplicationRepository) WithTx(tx *sql.Tx) application.Repository { return f }

func (f *fakeApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*application.Application, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeApplicationRepository) ExistsActiveByUserAndJob(ctx context.Context, applicantID, jobPostID uuid.UUID) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, applicantID, jobPostID)
	}
	return false, nil
}

func (f *fakeApplicationRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	if f.transitionFn != nil {
		return f.transitionFn(ctx, id, from, to)
	}
	return true, nil
}

func (f *fakeApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID, offset, limit int) ([]application.Application, int64, error) {
	if f.listByApplicantFn != nil {
		return f.listByApplicantFn(ctx, applicantID, offset, limit)
	}
	return nil, 0, nil
}

func (f *fakeApplicationRepository) ListByJobPost(ctx context.Context, jobPostID uuid.UUID, offset, limit int) ([]application.Application, int64, error) {
	if f.listByJobPostFn != nil {
		return f.listByJobPostFn(ctx, jobPostID, offset, limit)
	}
	return nil, 0, nil
}

func (f *fakeApplicationRepository) ListByEmployer(ctx context.Context, employerID uuid.UUID, offset, limit int) ([]application.Application, int64, error) {
	if f.listByEmployerFn != nil {
		return f.listByEmployerFn(ctx, employerID, offset, limit)
	}
	return nil, 0, nil
}

func (f *fakeApplicationRepository) SearchForEmployer(ctx context.Context, employerID uuid.UUID, keyword string, offset, limit int) ([]application.Application, int64, error) {
	if f.searchForEmployerFn != nil {
		return f.searchForEmployerFn(ctx, employerID, keyword, offset, limit)
	}
	return nil, 0, nil
}

func (f *fakeApplicationRepository) SearchAll(ctx context.Context, keyword string, offset, limit int) ([]application.Application, int64, error) {
	if f.searchAllFn != nil {
		return f.searchAllFn(ctx, keyword, offset, limit)
	}
	return nil, 0, nil
}

type fakeJobPostRepo struct {
	jobpost.Repository
	findByIDFn  func(ctx context.Context, id uuid.UUID) (*jobpost.JobPost, error)
	incrementFn func(ctx context.Context, id uuid.UUID) error
	decrementFn func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeJobPostRepo) WithTx(tx *sql.Tx) jobpost.Repository { return f }

func (f *fakeJobPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*jobpost.JobPost, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeJobPostRepo) IncrementAppliedCount(ctx context.Context, id uuid.UUID) error {
	if f.incrementFn != nil {
		return f.incrementFn(ctx, id)
	}
	return nil
}

func (f *fakeJobPostRepo) DecrementAppliedCount(ctx context.Context, id uuid.UUID) error {
	if f.decrementFn != nil {
		return f.decrementFn(ctx, id)
	}
	return nil
}

type fakeResumeRepo struct {
	resume.Repository
	findByIDFn func(ctx context.Context, id uuid.UUID) (*resume.Resume, error)
}

func (f *fakeResumeRepo) WithTx(tx *sql.Tx) resume.Repository { return f }

func (f *fakeResumeRepo) FindByID(ctx context.Context, id uuid.UUID) (*resume.Resume, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeUserRepo struct {
	user.Repository
	findByIDFn func(ctx context.Context, id uuid.UUID) (*user.User, error)
}

func (f *fakeUserRepo) WithTx(tx *sql.Tx) user.Repository { return f }

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &user.User{ID: id, FullName: "Someone", Role: user.RoleSeeker}, nil
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

type applicationServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  application.Service
	repo     *fakeApplicationRepository
	jobPosts *fakeJobPostRepo
	resumes  *fakeResumeRepo
	users    *fakeUserRepo
	outbox   *fakeOutbox
}

func setupApplicationServiceTest(t *testing.T) *applicationServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	deps := &applicationServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		repo:     &fakeApplicationRepository{},
		jobPosts: &fakeJobPostRepo{},
		resumes:  &fakeResumeRepo{},
		users:    &fakeUserRepo{},
		outbox:   &fakeOutbox{},
	}
	deps.service = application.NewService(db, deps.repo, deps.jobPosts, deps.resumes, deps.users, deps.outbox)
	return deps
}

func openJob(jobID, employerUserID uuid.UUID) *jobpost.JobPost {
	return &jobpost.JobPost{
		ID:       jobID,
		Company:  company.Company{ID: uuid.New(), UserID: employerUserID, Name: "Acme Corp"},
		Title:    "Backend Engineer",
		Status:   jobpost.StatusActive,
		Deadline: time.Now().AddDate(0, 1, 0),
	}
}

func TestApplicationService_Submit(t *testing.T) {
	ctx := context.Background()
	applicantID := uuid.New()
	employerUserID := uuid.New()
	jobID := uuid.New()
	resumeID := uuid.New()

	ownResume := func(ctx context.Context, id uuid.UUID) (*resume.Resume, error) {
		return &resume.Resume{ID: id, UserID: applicantID}, nil
	}

	t.Run("success creates pending and increments counter", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.resumes.findByIDFn = ownResume
		deps.jobPosts.findByIDFn = func(ctx context.Context, id uuid.UUID) (*jobpost.JobPost, error) {
			return openJob(jobID, employerUserID), nil
		}

		incremented := 0
		deps.jobPosts.incrementFn = func(ctx context.Context, id uuid.UUID) error {
			assert.Equal(t, jobID, id)
			incremented++
			return nil
		}
		deps.repo.createFn = func(ctx context.Context, a *application.Application) error {
			assert.Equal(t, application.StatusPending, a.Status)
			assert.Equal(t, applicantID, a.ApplicantID)
			assert.Equal(t, employerUserID, a.EmployerID)
			return nil
		}

		resp, err := deps.service.Submit(ctx, applicantID.String(), application.SubmitRequest{
			JobPostID: jobID.String(),
			ResumeID:  resumeID.String(),
		})

		assert.NoError(t, err)
		assert.Equal(t, application.StatusPending, resp.Status)
		assert.Equal(t, 1, incremented)
		assert.Nil(t, resp.Applicant)
		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, "application_submitted", deps.outbox.created[0].EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative duplicate application", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.resumes.findByIDFn = ownResume
		deps.jobPosts.findByIDFn = func(ctx context.Context, id uuid.UUID) (*jobpost.JobPost, error) {
			return openJob(jobID, employerUserID), nil
		}
		deps.repo.existsFn = func(ctx context.Context, aid, jid uuid.UUID) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Submit(ctx, applicantID.String(), application.SubmitRequest{
			JobPostID: jobID.String(),
			ResumeID:  resumeID.String(),
		})

		assert.ErrorIs(t, err, applicationerrors.ErrDuplicateApplication)
		assert.Empty(t, deps.outbox.created)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unique index race maps to duplicate", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.resumes.findByIDFn = ownResume
		deps.jobPosts.findByIDFn = func(ctx context.Context, id uuid.UUID) (*jobpost.JobPost, error) {
			return openJob(jobID, employerUserID), nil
		}
		deps.repo.createFn = func(ctx context.Context, a *application.Application) error {
			return &mockPgError{}
		}

		_, err := deps.service.Submit(ctx, applicantID.String(), application.SubmitRequest{
			JobPostID: jobID.String(),
			ResumeID:  resumeID.String(),
		})

		assert.ErrorIs(t, err, applicationerrors.ErrDuplicateApplication)
	})

	t.Run("negative job not active", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		deps.resumes.findByIDFn = ownResume
		deps.jobPosts.findByIDFn = func(ctx context.Context, id uuid.UUID) (*jobpost.JobPost, error) {
			job := openJob(jobID, employerUserID)
			job.Status = jobpost.StatusClosed
			return job, nil
		}

		_, err := deps.service.Submit(ctx, applicantID.String(), application.SubmitRequest{
			JobPostID: jobID.String(),
			ResumeID:  resumeID.String(),
		})

		assert.ErrorIs(t, err, jobposterrors.ErrJobPostNotOpen)
	})

	t.Run("negative deadline passed", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		deps.resumes.findByIDFn = ownResume
		deps.jobPosts.findByIDFn = func(ctx context.Context, id uuid.UUID) (*jobpost.JobPost, error) {
			job := openJob(jobID, employerUserID)
			job.Deadline = time.Now().AddDate(0, 0, -1)
			return job, nil
		}

		_, err := deps.service.Submit(ctx, applicantID.String(), application.SubmitRequest{
			JobPostID: jobID.String(),
			ResumeID:  resumeID.String(),
		})

		assert.ErrorIs(t, err, jobposterrors.ErrJobPostNotOpen)
	})

	t.Run("negative foreign resume", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		deps.resumes.findByIDFn = func(ctx context.Context, id uuid.UUID) (*resume.Resume, error) {
			return &resume.Resume{ID: id, UserID: uuid.New()}, nil
		}

		_, err := deps.service.Submit(ctx, applicantID.String(), application.SubmitRequest{
			JobPostID: jobID.String(),
			ResumeID:  resumeID.String(),
		})

		assert.ErrorIs(t, err, resumeerrors.ErrNotResumeOwner)
	})

	t.Run("negative missing job", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		deps.resumes.findByIDFn = ownResume

		_, err := deps.service.Submit(ctx, applicantID.String(), application.SubmitRequest{
			JobPostID: jobID.String(),
			ResumeID:  resumeID.String(),
		})

		assert.ErrorIs(t, err, jobposterrors.ErrJobPostNotFound)
	})
}

// mockPgError mimics the storage driver's constraint violation for the live
// applications index.
type mockPgError struct{}

func (e *mockPgError) Error() string {
	return `ERROR: duplicate key value violates unique constraint "uq_applications_live" (SQLSTATE 23505)`
}

func storedApp(id uuid.UUID, applicantID, employerID uuid.UUID, status string) *application.Application {
	jobID := uuid.New()
	return &application.Application{
		ID:          id,
		JobPostID:   jobID,
		JobPost: jobpost.JobPost{
			ID:      jobID,
			Title:   "Backend Engineer",
			Company: company.Company{Name: "Acme Corp"},
		},
		ApplicantID: applicantID,
		Applicant:   user.User{ID: applicantID, FullName: "Jane Doe", Role: user.RoleSeeker},
		EmployerID:  employerID,
		ResumeID:    uuid.New(),
		Status:      status,
	}
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	appID := uuid.New()
	applicantID := uuid.New()
	employerID := uuid.New()

	allowed := []struct{ from, to string }{
		{application.StatusPending, application.StatusReviewing},
		{application.StatusReviewing, application.StatusShortlisted},
		{application.StatusShortlisted, application.StatusInterviewed},
		{application.StatusInterviewed, application.StatusHired},
		{application.StatusPending, application.StatusRejected},
		{application.StatusReviewing, application.StatusRejected},
		{application.StatusShortlisted, application.StatusRejected},
		{application.StatusInterviewed, application.StatusRejected},
	}

	t.Run("allowed employer transitions succeed", func(t *testing.T) {
		for _, tc := range allowed {
			deps := setupApplicationServiceTest(t)

			deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*application.Application, error) {
				return storedApp(id, applicantID, employerID, tc.from), nil
			}
			deps.repo.transitionFn = func(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
				assert.Equal(t, tc.from, from)
				assert.Equal(t, tc.to, to)
				return true, nil
			}

			resp, err := deps.service.UpdateStatus(ctx, employerID.String(), user.RoleEmployer, appID.String(), tc.to)

			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.to, resp.Status)
			assert.NotNil(t, resp.Applicant)
			deps.db.Close()
		}
	})

	t.Run("disallowed transitions fail", func(t *testing.T) {
		denied := []struct{ from, to string }{
			{application.StatusPending, application.StatusShortlisted},
			{application.StatusPending, application.StatusHired},
			{application.StatusReviewing, application.StatusInterviewed},
			{application.StatusHired, application.StatusRejected},
			{application.StatusRejected, application.StatusReviewing},
			{application.StatusWithdrawn, application.StatusReviewing},
			{application.StatusHired, application.StatusReviewing},
		}
		for _, tc := range denied {
			deps := setupApplicationServiceTest(t)

			deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*application.Application, error) {
				return storedApp(id, applicantID, employerID, tc.from), nil
			}

			_, err := deps.service.UpdateStatus(ctx, employerID.String(), user.RoleEmployer, appID.String(), tc.to)

			assert.ErrorIs(t, err, applicationerrors.ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
			deps.db.Close()
		}
	})

	t.Run("negative seeker cannot run employer edges", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*application.Application, error) {
			return storedApp(id, applicantID, employerID, application.StatusPending), nil
		}

		_, err := deps.service.UpdateStatus(ctx, applicantID.String(), user.RoleSeeker, appID.String(), application.StatusReviewing)

		assert.ErrorIs(t, err, applicationerrors.ErrInvalidTransition)
	})

	t.Run("negative foreign employer", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*application.Application, error) {
			return storedApp(id, applicantID, employerID, application.StatusPending), nil
		}

		_, err := deps.service.UpdateStatus(ctx, uuid.New().String(), user.RoleEmployer, appID.String(), application.StatusReviewing)

		assert.ErrorIs(t, err, applicationerrors.ErrNotApplicationEmployer)
	})

	t.Run("negative lost transition race", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*application.Application, error) {
			return storedApp(id, applicantID, employerID, application.StatusPending), nil
		}
		deps.repo.transitionFn = func(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.UpdateStatus(ctx, employerID.String(), user.RoleEmployer, appID.String(), application.StatusReviewing)

		assert.ErrorIs(t, err, applicationerrors.ErrInvalidTransition)
	})

	t.Run("negative unknown status", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.UpdateStatus(ctx, employerID.String(), user.RoleEmployer, appID.String(), "ARCHIVED")

		assert.ErrorIs(t, err, applicationerrors.ErrInvalidStatus)
	})
}

func TestApplicationService_BulkUpdateStatus(t *testing.T) {
	ctx := context.Background()
	applicantID := uuid.New()
	employerID := uuid.New()

	t.Run("partial failure reports per id", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		okID := uuid.New()
		badID := uuid.New()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*application.Application, error) {
			if id == okID {
				return storedApp(id, applicantID, employerID, application.StatusPending), nil
			}
			return storedApp(id, applicantID, employerID, application.StatusHired), nil
		}

		result, err := deps.service.BulkUpdateStatus(ctx, employerID.String(), user.RoleEmployer, application.BulkUpdateStatusRequest{
			ApplicationIDs: []string{okID.String(), badID.String()},
			Status:         application.StatusReviewing,
		})

		assert.NoError(t, err)
		assert.Equal(t, []string{okID.String()}, result.Updated)
		assert.Contains(t, result.Failed, badID.String())
	})

	t.Run("all successes omit the failed map", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*application.Application, error) {
			return storedApp(id, applicantID, employerID, application.StatusPending), nil
		}

		result, err := deps.service.BulkUpdateStatus(ctx, employerID.String(), user.RoleEmployer, application.BulkUpdateStatusRequest{
			ApplicationIDs: []string{uuid.New().String(), uuid.New().String()},
			Status:         application.StatusReviewing,
		})

		assert.NoError(t, err)
		assert.Len(t, result.Updated, 2)
		assert.Nil(t, result.Failed)
	})
}

func TestApplicationService_Withdraw(t *testing.T) {
	ctx := context.Background()
	appID := uuid.New()
	applicantID := uuid.New()
	employerID := uuid.New()

	t.Run("success from pending decrements counter", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		app := storedApp(appID, applicantID, employerID, application.StatusPending)
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*application.Application, error) {
			return app, nil
		}

		decremented := 0
		deps.jobPosts.decrementFn = func(ctx context.Context, id uuid.UUID) error {
			assert.Equal(t, app.JobPostID, id)
			decremented++
			return nil
		}

		resp, err := deps.service.Withdraw(ctx, applicantID.String(), appID.String())

		assert.NoError(t, err)
		assert.Equal(t, application.StatusWithdrawn, resp.Status)
		assert.Equal(t, 1, decremented)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success from reviewing", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*application.Application, error) {
			return storedApp(id, applicantID, employerID, application.StatusReviewing), nil
		}

		_, err := deps.service.Withdraw(ctx, applicantID.String(), appID.String())

		assert.NoError(t, err)
	})

	t.Run("negative late statuses", func(t *testing.T) {
		for _, status := range []string{
			application.StatusShortlisted,
			application.StatusInterviewed,
			application.StatusHired,
			application.StatusRejected,
			application.StatusWithdrawn,
		} {
			deps := setupApplicationServiceTest(t)

			deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*application.Application, error) {
				return storedApp(id, applicantID, employerID, status), nil
			}

			_, err := deps.service.Withdraw(ctx, applicantID.String(), appID.String())

			assert.ErrorIs(t, err, applicationerrors.ErrInvalidTransition, status)
			deps.db.Close()
		}
	})

	t.Run("negative not owner", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*application.Application, error) {
			return storedApp(id, applicantID, employerID, application.StatusPending), nil
		}

		_, err := deps.service.Withdraw(ctx, uuid.New().String(), appID.String())

		assert.ErrorIs(t, err, applicationerrors.ErrNotApplicationOwner)
	})
}

func TestApplicationService_Projections(t *testing.T) {
	ctx := context.Background()
	applicantID := uuid.New()
	employerID := uuid.New()

	apps := []application.Application{
		*storedApp(uuid.New(), applicantID, employerID, application.StatusPending),
	}

	t.Run("seeker list never exposes applicant", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		deps.repo.listByApplicantFn = func(ctx context.Context, aid uuid.UUID, offset, limit int) ([]application.Application, int64, error) {
			return apps, 1, nil
		}

		resp, _, err := deps.service.ListMine(ctx, applicantID.String(), 1, 10)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Nil(t, resp[0].Applicant)
		assert.Equal(t, "Acme Corp", resp[0].Job.CompanyName)
	})

	t.Run("employer search always exposes applicant identity", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		deps.repo.searchForEmployerFn = func(ctx context.Context, eid uuid.UUID, keyword string, offset, limit int) ([]application.Application, int64, error) {
			assert.Equal(t, "jane", keyword)
			return apps, 1, nil
		}

		resp, _, err := deps.service.SearchForEmployer(ctx, employerID.String(), user.RoleEmployer, "jane", 1, 10)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.NotNil(t, resp[0].Applicant)
		assert.Equal(t, "Jane Doe", resp[0].Applicant.FullName)
		assert.Empty(t, resp[0].Applicant.Avatar)
	})

	t.Run("keyword-less employer view takes the plain list path", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		deps.repo.searchForEmployerFn = func(ctx context.Context, eid uuid.UUID, keyword string, offset, limit int) ([]application.Application, int64, error) {
			t.Fatal("empty keyword must not reach the search join")
			return nil, 0, nil
		}
		deps.repo.listByEmployerFn = func(ctx context.Context, eid uuid.UUID, offset, limit int) ([]application.Application, int64, error) {
			assert.Equal(t, employerID, eid)
			return apps, 1, nil
		}

		resp, total, err := deps.service.SearchForEmployer(ctx, employerID.String(), user.RoleEmployer, "", 1, 10)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.NotNil(t, resp[0].Applicant)
	})

	t.Run("admin search spans all employers", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		deps.repo.searchForEmployerFn = func(ctx context.Context, eid uuid.UUID, keyword string, offset, limit int) ([]application.Application, int64, error) {
			t.Fatal("admin search must not be employer-scoped")
			return nil, 0, nil
		}
		deps.repo.searchAllFn = func(ctx context.Context, keyword string, offset, limit int) ([]application.Application, int64, error) {
			return apps, 1, nil
		}

		resp, _, err := deps.service.SearchForEmployer(ctx, uuid.New().String(), user.RoleAdmin, "", 1, 10)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.NotNil(t, resp[0].Applicant)
	})

	t.Run("per-job list checks ownership", func(t *testing.T) {
		deps := setupApplicationServiceTest(t)
		defer deps.db.Close()

		jobID := uuid.New()
		deps.jobPosts.findByIDFn = func(ctx context.Context, id uuid.UUID) (*jobpost.JobPost, error) {
			return openJob(jobID, employerID), nil
		}

		_, _, err := deps.service.ListByJobPost(ctx, uuid.New().String(), user.RoleEmployer, jobID.String(), 1, 10)

		assert.ErrorIs(t, err, jobposterrors.ErrNotJobPostOwner)
	})
}
