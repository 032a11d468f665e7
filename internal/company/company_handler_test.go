package company_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"topcv/internal/company"
	companyerrors "topcv/internal/company/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeCompanyService struct {
	CreateFn       func(ctx context.Context, userID string, req company.CreateCompanyRequest) (company.CompanyResponse, error)
	UpdateFn       func(ctx context.Context, userID, companyID string, req company.UpdateCompanyRequest) (company.CompanyResponse, error)
	GetByIDFn      func(ctx context.Context, companyID string) (company.CompanyResponse, error)
	GetMineFn      func(ctx context.Context, userID string) (company.CompanyResponse, error)
	SearchFn       func(ctx context.Context, keyword string, page, size int) ([]company.CompanyResponse, int64, error)
	SubmitReviewFn func(ctx context.Context, userID, companyID string, req company.ReviewRequest) (company.ReviewResponse, error)
	GetReviewsFn   func(ctx context.Context, companyID string, page, size int) ([]company.ReviewResponse, int64, error)
	DeleteReviewFn func(ctx context.Context, userID, companyID string) error
	FollowFn       func(ctx context.Context, userID, companyID string) error
	UnfollowFn     func(ctx context.Context, userID, companyID string) error
}

func (f *fakeCompanyService) Create(ctx context.Context, userID string, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
	return f.CreateFn(ctx, userID, req)
}
func (f *fakeCompanyService) Update(ctx context.Context, userID, companyID string, req company.UpdateCompanyRequest) (company.CompanyResponse, error) {
	return f.UpdateFn(ctx, userID, companyID, req)
}
func (f *fakeCompanyService) GetByID(ctx context.Context, companyID string) (company.CompanyResponse, error) {
	return f.GetByIDFn(ctx, companyID)
}
func (f *fakeCompanyService) GetMine(ctx context.Context, userID string) (company.CompanyResponse, error) {
	return f.GetMineFn(ctx, userID)
}
func (f *fakeCompanyService) Search(ctx context.Context, keyword string, page, size int) ([]company.CompanyResponse, int64, error) {
	return f.SearchFn(ctx, keyword, page, size)
}
func (f *fakeCompanyService) SubmitReview(ctx context.Context, userID, companyID string, req company.ReviewRequest) (company.ReviewResponse, error) {
	return f.SubmitReviewFn(ctx, userID, companyID, req)
}
func (f *fakeCompanyService) GetReviews(ctx context.Context, companyID string, page, size int) ([]company.ReviewResponse, int64, error) {
	return f.GetReviewsFn(ctx, companyID, page, size)
}
func (f *fakeCompanyService) DeleteReview(ctx context.Context, userID, companyID string) error {
	return f.DeleteReviewFn(ctx, userID, companyID)
}
func (f *fakeCompanyService) Follow(ctx context.Context, userID, companyID string) error {
	return f.FollowFn(ctx, userID, companyID)
}
func (f *fakeCompanyService) Unfollow(ctx context.Context, userID, companyID string) error {
	return f.UnfollowFn(ctx, userID, companyID)
}

func TestCompanyHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		userID := uuid.New().String()
		svc := &fakeCompanyService{
			CreateFn: func(ctx context.Context, uid string, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
				assert.Equal(t, userID, uid)
				assert.Equal(t, "Acme Corp", req.Name)
				return company.CompanyResponse{ID: uuid.New().String(), Name: req.Name, Active: true}, nil
			},
		}

		h := company.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"name":"Acme Corp"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id_validated", userID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		h := company.NewHandler(&fakeCompanyService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conflict error", func(t *testing.T) {
		svc := &fakeCompanyService{
			CreateFn: func(ctx context.Context, uid string, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
				return company.CompanyResponse{}, companyerrors.ErrCompanyAlreadyExists
			},
		}

		h := company.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(`{"name":"X"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id_validated", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestCompanyHandler_GetByID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()
		svc := &fakeCompanyService{
			GetByIDFn: func(ctx context.Context, cid string) (company.CompanyResponse, error) {
				assert.Equal(t, companyID, cid)
				return company.CompanyResponse{ID: cid, Name: "Acme Corp"}, nil
			},
		}

		h := company.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/companies/"+companyID, nil)
		c.Params = []gin.Param{{Key: "id", Value: companyID}}

		h.GetByID(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeCompanyService{
			GetByIDFn: func(ctx context.Context, cid string) (company.CompanyResponse, error) {
				return company.CompanyResponse{}, companyerrors.ErrCompanyNotFound
			},
		}

		h := company.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/companies/missing", nil)
		c.Params = []gin.Param{{Key: "id", Value: "missing"}}

		h.GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCompanyHandler_SubmitReview(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		userID := uuid.New().String()
		companyID := uuid.New().String()
		svc := &fakeCompanyService{
			SubmitReviewFn: func(ctx context.Context, uid, cid string, req company.ReviewRequest) (company.ReviewResponse, error) {
				assert.Equal(t, userID, uid)
				assert.Equal(t, companyID, cid)
				assert.Equal(t, 5, req.Rating)
				return company.ReviewResponse{UserID: uid, CompanyID: cid, Rating: req.Rating}, nil
			},
		}

		h := company.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"rating":5,"comment":"Great"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/companies/"+companyID+"/reviews", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{{Key: "id", Value: companyID}}
		c.Set("user_id_validated", userID)

		h.SubmitReview(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rating out of range", func(t *testing.T) {
		h := company.NewHandler(&fakeCompanyService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"rating":9}`
		c.Request = httptest.NewRequest(http.MethodPost, "/companies/x/reviews", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.SubmitReview(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCompanyHandler_Search(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success with pagination meta", func(t *testing.T) {
		svc := &fakeCompanyService{
			SearchFn: func(ctx context.Context, keyword string, page, size int) ([]company.CompanyResponse, int64, error) {
				assert.Equal(t, "acme", keyword)
				assert.Equal(t, 2, page)
				assert.Equal(t, 5, size)
				return []company.CompanyResponse{{ID: uuid.New().String(), Name: "Acme Corp"}}, 6, nil
			},
		}

		h := company.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/companies?keyword=acme&page=2&page_size=5", nil)

		h.Search(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total":6`)
	})
}
