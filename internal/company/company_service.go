package company

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"topcv/internal/catalog"
	catalogerrors "topcv/internal/catalog/errors"
	companyerrors "topcv/internal/company/errors"
	"topcv/internal/shared/apperror"
	usererrors "topcv/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID string, req CreateCompanyRequest) (CompanyResponse, error)
	Update(ctx context.Context, userID, companyID string, req UpdateCompanyRequest) (CompanyResponse, error)
	GetByID(ctx context.Context, companyID string) (CompanyResponse, error)
	GetMine(ctx context.Context, userID string) (CompanyResponse, error)
	Search(ctx context.Context, keyword string, page, size int) ([]CompanyResponse, int64, error)

	SubmitReview(ctx context.Context, userID, companyID string, req ReviewRequest) (ReviewResponse, error)
	GetReviews(ctx context.Context, companyID string, page, size int) ([]ReviewResponse, int64, error)
	DeleteReview(ctx context.Context, userID, companyID string) error

	Follow(ctx context.Context, userID, companyID string) error
	Unfollow(ctx context.Context, userID, companyID string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	catalogs catalog.Repository
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, catalogs catalog.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{db: db, repo: repo, catalogs: catalogs, logger: l}
}

func (s *service) Create(ctx context.Context, userID string, req CreateCompanyRequest) (CompanyResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return CompanyResponse{}, usererrors.ErrInvalidUserID
	}

	if _, err := s.repo.FindByUserID(ctx, uid); err == nil {
		return CompanyResponse{}, companyerrors.ErrCompanyAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return CompanyResponse{}, err
	}

	cats, catIDs, err := s.resolveCategories(ctx, req.CategoryIDs)
	if err != nil {
		return CompanyResponse{}, err
	}

	c := &Company{
		ID:            uuid.New(),
		UserID:        uid,
		Name:          req.Name,
		Description:   req.Description,
		Logo:          req.Logo,
		Website:       req.Website,
		Address:       req.Address,
		EmployeeRange: req.EmployeeRange,
		Active:        true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("create company failed", zap.String("user_id", userID), zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}
	if len(catIDs) > 0 {
		if err := s.repo.ReplaceCategories(ctx, c, catIDs); err != nil {
			return CompanyResponse{}, err
		}
		c.Categories = cats
	}

	s.logger.Info("company created",
		zap.String("company_id", c.ID.String()),
		zap.String("user_id", userID),
	)
	return s.buildResponse(ctx, c)
}

func (s *service) Update(ctx context.Context, userID, companyID string, req UpdateCompanyRequest) (CompanyResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return CompanyResponse{}, usererrors.ErrInvalidUserID
	}
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return CompanyResponse{}, companyerrors.ErrCompanyNotFound
	}

	c, err := s.repo.FindByID(ctx, cid)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}
	if c.UserID != uid {
		return CompanyResponse{}, companyerrors.ErrNotCompanyOwner
	}

	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Description != "" {
		c.Description = req.Description
	}
	if req.Logo != "" {
		c.Logo = req.Logo
	}
	if req.Website != "" {
		c.Website = req.Website
	}
	if req.Address != "" {
		c.Address = req.Address
	}
	if req.EmployeeRange != "" {
		c.EmployeeRange = req.EmployeeRange
	}

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("update company failed", zap.String("company_id", companyID), zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}

	// nil leaves the assignment untouched; an empty list clears it
	if req.CategoryIDs != nil {
		cats, catIDs, err := s.resolveCategories(ctx, req.CategoryIDs)
		if err != nil {
			return CompanyResponse{}, err
		}
		if err := s.repo.ReplaceCategories(ctx, c, catIDs); err != nil {
			return CompanyResponse{}, err
		}
		c.Categories = cats
	}

	s.logger.Info("company updated", zap.String("company_id", companyID))
	return s.buildResponse(ctx, c)
}

func (s *service) GetByID(ctx context.Context, companyID string) (CompanyResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return CompanyResponse{}, companyerrors.ErrCompanyNotFound
	}

	c, err := s.repo.FindByID(ctx, cid)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}
	return s.buildResponse(ctx, c)
}

func (s *service) GetMine(ctx context.Context, userID string) (CompanyResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return CompanyResponse{}, usererrors.ErrInvalidUserID
	}

	c, err := s.repo.FindByUserID(ctx, uid)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}
	return s.buildResponse(ctx, c)
}

func (s *service) Search(ctx context.Context, keyword string, page, size int) ([]CompanyResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	companies, total, err := s.repo.Search(ctx, strings.ToLower(strings.TrimSpace(keyword)), (page-1)*size, size)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]CompanyResponse, len(companies))
	for i := range companies {
		r, err := s.buildResponse(ctx, &companies[i])
		if err != nil {
			return nil, 0, err
		}
		resp[i] = r
	}
	return resp, total, nil
}

func (s *service) SubmitReview(ctx context.Context, userID, companyID string, req ReviewRequest) (ReviewResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return ReviewResponse{}, usererrors.ErrInvalidUserID
	}
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return ReviewResponse{}, companyerrors.ErrCompanyNotFound
	}

	if _, err := s.repo.FindByID(ctx, cid); err != nil {
		return ReviewResponse{}, mapRepositoryError(err)
	}

	rev := &Review{
		UserID:    uid,
		CompanyID: cid,
		Rating:    req.Rating,
		Comment:   req.Comment,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.UpsertReview(ctx, rev); err != nil {
		s.logger.Error("submit review failed",
			zap.String("company_id", companyID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return ReviewResponse{}, err
	}

	s.logger.Info("review submitted",
		zap.String("company_id", companyID),
		zap.String("user_id", userID),
		zap.Int("rating", req.Rating),
	)
	return mapReviewToResponse(*rev), nil
}

func (s *service) GetReviews(ctx context.Context, companyID string, page, size int) ([]ReviewResponse, int64, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return nil, 0, companyerrors.ErrCompanyNotFound
	}
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	reviews, total, err := s.repo.FindReviews(ctx, cid, (page-1)*size, size)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		resp[i] = mapReviewToResponse(r)
	}
	return resp, total, nil
}

func (s *service) DeleteReview(ctx context.Context, userID, companyID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return companyerrors.ErrCompanyNotFound
	}
	return s.repo.DeleteReview(ctx, uid, cid)
}

func (s *service) Follow(ctx context.Context, userID, companyID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return companyerrors.ErrCompanyNotFound
	}

	if _, err := s.repo.FindByID(ctx, cid); err != nil {
		return mapRepositoryError(err)
	}
	return s.repo.Follow(ctx, uid, cid)
}

func (s *service) Unfollow(ctx context.Context, userID, companyID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return companyerrors.ErrCompanyNotFound
	}
	return s.repo.Unfollow(ctx, uid, cid)
}

func (s *service) buildResponse(ctx context.Context, c *Company) (CompanyResponse, error) {
	avg, count, err := s.repo.ReviewStats(ctx, c.ID)
	if err != nil {
		return CompanyResponse{}, err
	}
	followers, err := s.repo.FollowerCount(ctx, c.ID)
	if err != nil {
		return CompanyResponse{}, err
	}

	return CompanyResponse{
		ID:            c.ID.String(),
		Name:          c.Name,
		Description:   c.Description,
		Logo:          c.Logo,
		Website:       c.Website,
		Address:       c.Address,
		EmployeeRange: c.EmployeeRange,
		Active:        c.Active,
		Categories:    mapCategories(c.Categories),
		AverageRating: avg,
		ReviewCount:   count,
		FollowerCount: followers,
	}, nil
}

// resolveCategories parses and verifies every referenced company category.
func (s *service) resolveCategories(ctx context.Context, raw []string) ([]catalog.CompanyCategory, []uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil, nil
	}

	ids := make([]uuid.UUID, 0, len(raw))
	for _, v := range raw {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, nil, apperror.InvalidField("category_ids")
		}
		ids = append(ids, id)
	}

	items, err := s.catalogs.FindByIDs(ctx, catalog.KindCompanyCategory, ids)
	if err != nil {
		return nil, nil, err
	}
	if len(items) != len(ids) {
		return nil, nil, catalogerrors.ErrItemNotFound
	}

	cats := make([]catalog.CompanyCategory, len(items))
	for i, item := range items {
		cats[i] = catalog.CompanyCategory{ID: item.ID, Name: item.Name}
	}
	return cats, ids, nil
}

func mapCategories(cats []catalog.CompanyCategory) []CategoryResponse {
	if len(cats) == 0 {
		return nil
	}
	resp := make([]CategoryResponse, len(cats))
	for i, c := range cats {
		resp[i] = CategoryResponse{ID: c.ID.String(), Name: c.Name}
	}
	return resp
}

func mapReviewToResponse(r Review) ReviewResponse {
	return ReviewResponse{
		UserID:    r.UserID.String(),
		CompanyID: r.CompanyID.String(),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
	}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}
	return err
}
