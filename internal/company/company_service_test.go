package company_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"topcv/internal/catalog"
	catalogerrors "topcv/internal/catalog/errors"
	"topcv/internal/company"
	companyerrors "topcv/internal/company/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeCompanyRepository struct {
	createFn        func(ctx context.Context, c *company.Company) error
	findByIDFn      func(ctx context.Context, id uuid.UUID) (*company.Company, error)
	findByUserIDFn  func(ctx context.Context, userID uuid.UUID) (*company.Company, error)
	updateFn        func(ctx context.Context, c *company.Company) error
	replaceCatsFn   func(ctx context.Context, c *company.Company, categoryIDs []uuid.UUID) error
	searchFn        func(ctx context.Context, keyword string, offset, limit int) ([]company.Company, int64, error)
	upsertReviewFn  func(ctx context.Context, r *company.Review) error
	findReviewsFn   func(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]company.Review, int64, error)
	reviewStatsFn   func(ctx context.Context, companyID uuid.UUID) (float64, int64, error)
	deleteReviewFn  func(ctx context.Context, userID, companyID uuid.UUID) error
	followFn        func(ctx context.Context, userID, companyID uuid.UUID) error
	unfollowFn      func(ctx context.Context, userID, companyID uuid.UUID) error
	followerCountFn func(ctx context.Context, companyID uuid.UUID) (int64, error)
	isFollowingFn   func(ctx context.Context, userID, companyID uuid.UUID) (bool, error)
}

func (f *fakeCompanyRepository) WithTx(tx *sql.Tx) company.Repository { return f }

func (f *fakeCompanyRepository) Create(ctx context.Context, c *company.Company) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

func (f *fakeCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*company.Company, error) {
	if f.findByUserIDFn != nil {
		return f.findByUserIDFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepository) Update(ctx context.Context, c *company.Company) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, c)
	}
	return nil
}

func (f *fakeCompanyRepository) ReplaceCategories(ctx context.Context, c *company.Company, categoryIDs []uuid.UUID) error {
	if f.replaceCatsFn != nil {
		return f.replaceCatsFn(ctx, c, categoryIDs)
	}
	return nil
}

func (f *fakeCompanyRepository) Search(ctx context.Context, keyword string, offset, limit int) ([]company.Company, int64, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, keyword, offset, limit)
	}
	return nil, 0, nil
}

func (f *fakeCompanyRepository) UpsertReview(ctx context.Context, r *company.Review) error {
	if f.upsertReviewFn != nil {
		return f.upsertReviewFn(ctx, r)
	}
	return nil
}

func (f *fakeCompanyRepository) FindReviews(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]company.Review, int64, error) {
	if f.findReviewsFn != nil {
		return f.findReviewsFn(ctx, companyID, offset, limit)
	}
	return nil, 0, nil
}

func (f *fakeCompanyRepository) ReviewStats(ctx context.Context, companyID uuid.UUID) (float64, int64, error) {
	if f.reviewStatsFn != nil {
		return f.reviewStatsFn(ctx, companyID)
	}
	return 0, 0, nil
}

func (f *fakeCompanyRepository) DeleteReview(ctx context.Context, userID, companyID uuid.UUID) error {
	if f.deleteReviewFn != nil {
		return f.deleteReviewFn(ctx, userID, companyID)
	}
	return nil
}

func (f *fakeCompanyRepository) Follow(ctx context.Context, userID, companyID uuid.UUID) error {
	if f.followFn != nil {
		return f.followFn(ctx, userID, companyID)
	}
	return nil
}

func (f *fakeCompanyRepository) Unfollow(ctx context.Context, userID, companyID uuid.UUID) error {
	if f.unfollowFn != nil {
		return f.unfollowFn(ctx, userID, companyID)
	}
	return nil
}

func (f *fakeCompanyRepository) FollowerCount(ctx context.Context, companyID uuid.UUID) (int64, error) {
	if f.followerCountFn != nil {
		return f.followerCountFn(ctx, companyID)
	}
	return 0, nil
}

func (f *fakeCompanyRepository) IsFollowing(ctx context.Context, userID, companyID uuid.UUID) (bool, error) {
	if f.isFollowingFn != nil {
		return f.isFollowingFn(ctx, userID, companyID)
	}
	return false, nil
}

type fakeCatalogRepository struct {
	catalog.Repository
	findByIDsFn func(ctx context.Context, kind catalog.Kind, ids []uuid.UUID) ([]catalog.Item, error)
}

func (f *fakeCatalogRepository) FindByIDs(ctx context.Context, kind catalog.Kind, ids []uuid.UUID) ([]catalog.Item, error) {
	if f.findByIDsFn != nil {
		return f.findByIDsFn(ctx, kind, ids)
	}
	items := make([]catalog.Item, len(ids))
	for i, id := range ids {
		items[i] = catalog.Item{ID: id, Name: "IT"}
	}
	return items, nil
}

type companyServiceDeps struct {
	db       *sql.DB
	service  company.Service
	repo     *fakeCompanyRepository
	catalogs *fakeCatalogRepository
}

func setupCompanyServiceTest(t *testing.T) *companyServiceDeps {
	t.Helper()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeCompanyRepository{}
	catalogs := &fakeCatalogRepository{}
	svc := company.NewService(db, repo, catalogs)

	return &companyServiceDeps{db: db, service: svc, repo: repo, catalogs: catalogs}
}

func TestCompanyService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		deps.repo.createFn = func(ctx context.Context, c *company.Company) error {
			assert.Equal(t, userID, c.UserID.String())
			assert.Equal(t, "Acme Corp", c.Name)
			assert.True(t, c.Active)
			return nil
		}

		resp, err := deps.service.Create(ctx, userID, company.CreateCompanyRequest{
			Name:    "Acme Corp",
			Website: "https://acme.example",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Acme Corp", resp.Name)
		assert.True(t, resp.Active)
	})

	t.Run("success attaches categories", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		catID := uuid.New()
		var replaced []uuid.UUID
		deps.catalogs.findByIDsFn = func(ctx context.Context, kind catalog.Kind, ids []uuid.UUID) ([]catalog.Item, error) {
			assert.Equal(t, catalog.KindCompanyCategory, kind)
			return []catalog.Item{{ID: catID, Name: "Software"}}, nil
		}
		deps.repo.replaceCatsFn = func(ctx context.Context, c *company.Company, categoryIDs []uuid.UUID) error {
			replaced = categoryIDs
			return nil
		}

		resp, err := deps.service.Create(ctx, userID, company.CreateCompanyRequest{
			Name:        "Acme Corp",
			CategoryIDs: []string{catID.String()},
		})

		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{catID}, replaced)
		assert.Len(t, resp.Categories, 1)
		assert.Equal(t, "Software", resp.Categories[0].Name)
	})

	t.Run("negative unknown category", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		deps.catalogs.findByIDsFn = func(ctx context.Context, kind catalog.Kind, ids []uuid.UUID) ([]catalog.Item, error) {
			return nil, nil
		}
		deps.repo.createFn = func(ctx context.Context, c *company.Company) error {
			t.Fatal("company must not be created with unknown categories")
			return nil
		}

		_, err := deps.service.Create(ctx, userID, company.CreateCompanyRequest{
			Name:        "Acme Corp",
			CategoryIDs: []string{uuid.New().String()},
		})

		assert.ErrorIs(t, err, catalogerrors.ErrItemNotFound)
	})

	t.Run("negative second profile for same user", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByUserIDFn = func(ctx context.Context, uid uuid.UUID) (*company.Company, error) {
			return &company.Company{ID: uuid.New(), UserID: uid}, nil
		}

		_, err := deps.service.Create(ctx, userID, company.CreateCompanyRequest{Name: "Second"})

		assert.ErrorIs(t, err, companyerrors.ErrCompanyAlreadyExists)
	})

	t.Run("negative invalid user id", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, "not-a-uuid", company.CreateCompanyRequest{Name: "X"})

		assert.Error(t, err)
	})
}

func TestCompanyService_Update(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	companyID := uuid.New()

	t.Run("success partial update", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*company.Company, error) {
			return &company.Company{ID: id, UserID: ownerID, Name: "Old Name", Address: "Old address"}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, c *company.Company) error {
			assert.Equal(t, "New Name", c.Name)
			assert.Equal(t, "Old address", c.Address)
			return nil
		}

		resp, err := deps.service.Update(ctx, ownerID.String(), companyID.String(), company.UpdateCompanyRequest{
			Name: "New Name",
		})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", resp.Name)
	})

	t.Run("negative not owner", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*company.Company, error) {
			return &company.Company{ID: id, UserID: uuid.New()}, nil
		}

		_, err := deps.service.Update(ctx, ownerID.String(), companyID.String(), company.UpdateCompanyRequest{
			Name: "Hijack",
		})

		assert.ErrorIs(t, err, companyerrors.ErrNotCompanyOwner)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*company.Company, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Update(ctx, ownerID.String(), companyID.String(), company.UpdateCompanyRequest{
			Name: "X",
		})

		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})
}

func TestCompanyService_GetByID(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("success with aggregates", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*company.Company, error) {
			return &company.Company{ID: id, UserID: uuid.New(), Name: "Acme Corp", Active: true}, nil
		}
		deps.repo.reviewStatsFn = func(ctx context.Context, cid uuid.UUID) (float64, int64, error) {
			return 4.5, 12, nil
		}
		deps.repo.followerCountFn = func(ctx context.Context, cid uuid.UUID) (int64, error) {
			return 37, nil
		}

		resp, err := deps.service.GetByID(ctx, companyID.String())

		assert.NoError(t, err)
		assert.Equal(t, 4.5, resp.AverageRating)
		assert.Equal(t, int64(12), resp.ReviewCount)
		assert.Equal(t, int64(37), resp.FollowerCount)
	})

	t.Run("negative malformed id maps to not found", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetByID(ctx, "nope")

		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})
}

func TestCompanyService_SubmitReview(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()
	companyID := uuid.New()

	t.Run("success upsert", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*company.Company, error) {
			return &company.Company{ID: id, UserID: uuid.New()}, nil
		}
		deps.repo.upsertReviewFn = func(ctx context.Context, r *company.Review) error {
			assert.Equal(t, userID, r.UserID.String())
			assert.Equal(t, companyID, r.CompanyID)
			assert.Equal(t, 5, r.Rating)
			return nil
		}

		resp, err := deps.service.SubmitReview(ctx, userID, companyID.String(), company.ReviewRequest{
			Rating:  5,
			Comment: "Great place",
		})

		assert.NoError(t, err)
		assert.Equal(t, 5, resp.Rating)
		assert.Equal(t, "Great place", resp.Comment)
	})

	t.Run("negative company missing", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*company.Company, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.SubmitReview(ctx, userID, companyID.String(), company.ReviewRequest{Rating: 4})

		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})

	t.Run("negative repo failure surfaces", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*company.Company, error) {
			return &company.Company{ID: id}, nil
		}
		deps.repo.upsertReviewFn = func(ctx context.Context, r *company.Review) error {
			return errors.New("db error")
		}

		_, err := deps.service.SubmitReview(ctx, userID, companyID.String(), company.ReviewRequest{Rating: 4})

		assert.Error(t, err)
	})
}

func TestCompanyService_Follow(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()
	companyID := uuid.New()

	t.Run("success idempotent follow", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		called := 0
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*company.Company, error) {
			return &company.Company{ID: id}, nil
		}
		deps.repo.followFn = func(ctx context.Context, uid, cid uuid.UUID) error {
			called++
			return nil
		}

		assert.NoError(t, deps.service.Follow(ctx, userID, companyID.String()))
		assert.NoError(t, deps.service.Follow(ctx, userID, companyID.String()))
		assert.Equal(t, 2, called)
	})

	t.Run("negative company missing", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*company.Company, error) {
			return nil, gorm.ErrRecordNotFound
		}

		err := deps.service.Follow(ctx, userID, companyID.String())

		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})
}

func TestCompanyService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("success normalizes keyword and pages", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		deps.repo.searchFn = func(ctx context.Context, keyword string, offset, limit int) ([]company.Company, int64, error) {
			assert.Equal(t, "acme", keyword)
			assert.Equal(t, 10, offset)
			assert.Equal(t, 10, limit)
			return []company.Company{{ID: uuid.New(), Name: "Acme Corp", Active: true}}, 11, nil
		}

		resp, total, err := deps.service.Search(ctx, "  Acme ", 2, 10)

		assert.NoError(t, err)
		assert.Equal(t, int64(11), total)
		assert.Len(t, resp, 1)
	})

	t.Run("success defaults page and size", func(t *testing.T) {
		deps := setupCompanyServiceTest(t)
		defer deps.db.Close()

		deps.repo.searchFn = func(ctx context.Context, keyword string, offset, limit int) ([]company.Company, int64, error) {
			assert.Equal(t, 0, offset)
			assert.Equal(t, 10, limit)
			return nil, 0, nil
		}

		_, _, err := deps.service.Search(ctx, "", 0, 0)

		assert.NoError(t, err)
	})
}
