package catalog

import (
	"context"
	"encoding/json"
	"time"

	catalogerrors "topcv/internal/catalog/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const OptionsKeyPrefix = "catalog:options:"

func OptionsKey(kind Kind) string {
	return OptionsKeyPrefix + string(kind)
}

//go:generate mockgen -source=catalog_service.go -destination=mock/catalog_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, kind Kind) ([]ItemResponse, error)
	Create(ctx context.Context, kind Kind, req CreateItemRequest) (ItemResponse, error)
	Update(ctx context.Context, kind Kind, id string, req UpdateItemRequest) (ItemResponse, error)
	Delete(ctx context.Context, kind Kind, id string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("catalog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("catalog.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindJobType, KindJobLevel, KindSkill, KindJobCategory, KindCompanyCategory:
		return Kind(s), nil
	}
	return "", catalogerrors.ErrUnknownKind
}

func (s *service) List(ctx context.Context, kind Kind) ([]ItemResponse, error) {
	cacheKey := OptionsKey(kind)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []ItemResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Collapse a stampede of cold-cache readers into one query per kind.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		items, err := s.repo.List(ctx, kind)
		if err != nil {
			return nil, mapRepositoryError(err, kind)
		}

		resp := mapToListResponse(items)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]ItemResponse), nil
}

func (s *service) Create(ctx context.Context, kind Kind, req CreateItemRequest) (ItemResponse, error) {
	item := &Item{ID: uuid.New(), Name: req.Name}
	if err := s.repo.Create(ctx, kind, item); err != nil {
		s.logger.Error("create catalog item failed",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return ItemResponse{}, mapRepositoryError(err, kind)
	}

	s.invalidate(ctx, kind)
	s.logger.Info("catalog item created",
		zap.String("kind", string(kind)),
		zap.String("id", item.ID.String()),
	)
	return mapToResponse(*item), nil
}

func (s *service) Update(ctx context.Context, kind Kind, id string, req UpdateItemRequest) (ItemResponse, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return ItemResponse{}, catalogerrors.ErrItemNotFound
	}

	item, err := s.repo.FindByID(ctx, kind, itemID)
	if err != nil {
		return ItemResponse{}, mapRepositoryError(err, kind)
	}

	item.Name = req.Name
	if err := s.repo.Update(ctx, kind, item); err != nil {
		s.logger.Error("update catalog item failed",
			zap.String("kind", string(kind)),
			zap.String("id", id),
			zap.Error(err),
		)
		return ItemResponse{}, mapRepositoryError(err, kind)
	}

	s.invalidate(ctx, kind)
	return mapToResponse(*item), nil
}

func (s *service) Delete(ctx context.Context, kind Kind, id string) error {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return catalogerrors.ErrItemNotFound
	}

	if _, err := s.repo.FindByID(ctx, kind, itemID); err != nil {
		return mapRepositoryError(err, kind)
	}

	if err := s.repo.Delete(ctx, kind, itemID); err != nil {
		return mapRepositoryError(err, kind)
	}

	s.invalidate(ctx, kind)
	return nil
}

func (s *service) invalidate(ctx context.Context, kind Kind) {
	if s.rdb == nil {
		return
	}
	cacheKey := OptionsKey(kind)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate catalog cache",
			zap.String("key", cacheKey),
			zap.Error(err),
		)
	}
}

func mapToResponse(item Item) ItemResponse {
	return ItemResponse{ID: item.ID.String(), Name: item.Name}
}

func mapToListResponse(items []Item) []ItemResponse {
	resp := make([]ItemResponse, len(items))
	for i, item := range items {
		resp[i] = mapToResponse(item)
	}
	return resp
}
