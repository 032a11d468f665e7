package resume

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	resumeerrors "topcv/internal/resume/errors"
	usererrors "topcv/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=resume_service.go -destination=mock/resume_service_mock.go -package=mock
type Service interface {
	Upload(ctx context.Context, userID, fileName string, file io.Reader) (ResumeResponse, error)
	ListMine(ctx context.Context, userID string) ([]ResumeResponse, error)
	GetByID(ctx context.Context, userID, resumeID string) (ResumeResponse, error)
	Rename(ctx context.Context, userID, resumeID string, req UpdateResumeRequest) (ResumeResponse, error)
	Delete(ctx context.Context, userID, resumeID string) error
}

type service struct {
	repo    Repository
	storage Storage
	logger  *zap.Logger
}

func NewService(repo Repository, storage Storage, logger ...*zap.Logger) Service {
	l := zap.L().Named("resume.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("resume.service")
	}
	return &service{repo: repo, storage: storage, logger: l}
}

func (s *service) Upload(ctx context.Context, userID, fileName string, file io.Reader) (ResumeResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return ResumeResponse{}, usererrors.ErrInvalidUserID
	}

	if _, ok := ContentTypeFor(fileName); !ok {
		return ResumeResponse{}, resumeerrors.ErrUnsupportedFileType
	}

	id := uuid.New()
	key := fmt.Sprintf("%s/%s_%s", uid, id, fileName)
	path, err := s.storage.Save(ctx, key, file)
	if err != nil {
		s.logger.Error("store resume file failed",
			zap.String("user_id", userID),
			zap.String("file", fileName),
			zap.Error(err),
		)
		return ResumeResponse{}, err
	}

	res := &Resume{
		ID:         id,
		UserID:     uid,
		ResumeName: fileName,
		FilePath:   path,
	}
	if err := s.repo.Create(ctx, res); err != nil {
		// Keep storage and rows consistent when the insert fails.
		_ = s.storage.Remove(ctx, path)
		s.logger.Error("persist resume failed", zap.String("user_id", userID), zap.Error(err))
		return ResumeResponse{}, err
	}

	s.logger.Info("resume uploaded",
		zap.String("resume_id", res.ID.String()),
		zap.String("user_id", userID),
	)
	return mapToResponse(*res), nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]ResumeResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	resumes, err := s.repo.FindByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	resp := make([]ResumeResponse, len(resumes))
	for i, r := range resumes {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, userID, resumeID string) (ResumeResponse, error) {
	res, err := s.ownedResume(ctx, userID, resumeID)
	if err != nil {
		return ResumeResponse{}, err
	}
	return mapToResponse(*res), nil
}

func (s *service) Rename(ctx context.Context, userID, resumeID string, req UpdateResumeRequest) (ResumeResponse, error) {
	res, err := s.ownedResume(ctx, userID, resumeID)
	if err != nil {
		return ResumeResponse{}, err
	}

	res.ResumeName = req.ResumeName
	if err := s.repo.Update(ctx, res); err != nil {
		return ResumeResponse{}, err
	}
	return mapToResponse(*res), nil
}

func (s *service) Delete(ctx context.Context, userID, resumeID string) error {
	res, err := s.ownedResume(ctx, userID, resumeID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, res.ID); err != nil {
		return err
	}
	if err := s.storage.Remove(ctx, res.FilePath); err != nil {
		s.logger.Warn("remove resume file failed",
			zap.String("resume_id", resumeID),
			zap.Error(err),
		)
	}
	return nil
}

func (s *service) ownedResume(ctx context.Context, userID, resumeID string) (*Resume, error) {
	id, err := uuid.Parse(resumeID)
	if err != nil {
		return nil, resumeerrors.ErrResumeNotFound
	}

	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, resumeerrors.ErrResumeNotFound
		}
		return nil, err
	}
	if res.UserID.String() != userID {
		return nil, resumeerrors.ErrNotResumeOwner
	}
	return res, nil
}

func mapToResponse(r Resume) ResumeResponse {
	return ResumeResponse{
		ID:         r.ID.String(),
		ResumeName: r.ResumeName,
		FilePath:   r.FilePath,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  r.UpdatedAt.Format(time.RFC3339),
	}
}
