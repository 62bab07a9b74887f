package stores

import (
	"context"
	"errors"

	"github.com/BonJenn/fanfiles/apperrors"
	"github.com/BonJenn/fanfiles/models"

	"gorm.io/gorm"
)

type GormContentStore struct {
	db *gorm.DB
}

func NewGormContentStore(db *gorm.DB) *GormContentStore {
	return &GormContentStore{db: db}
}

// orderClauses are the stable sort orders the feed exposes. Every order ends
// with id ASC so ties are deterministic across pages.
var orderClauses = map[ContentSort]string{
	SortNewest:    "created_at DESC, id ASC",
	SortOldest:    "created_at ASC, id ASC",
	SortPriceDesc: "price_minor_units DESC, id ASC",
	SortPriceAsc:  "price_minor_units ASC, id ASC",
}

func (s *GormContentStore) List(ctx context.Context, q ContentQuery) ([]models.ContentItem, error) {
	order, ok := orderClauses[q.Sort]
	if !ok {
		return nil, apperrors.Validation("unknown sort %q", string(q.Sort))
	}

	tx := s.db.WithContext(ctx).Model(&models.ContentItem{})
	if q.MediaType != nil {
		tx = tx.Where("media_type = ?", *q.MediaType)
	}
	if q.Search != "" {
		tx = tx.Where("description ILIKE ?", "%"+q.Search+"%")
	}
	if q.CreatorID != "" {
		tx = tx.Where("creator_id = ?", q.CreatorID)
	}
	if q.CreatorIDs != nil {
		tx = tx.Where("creator_id IN ?", q.CreatorIDs)
	}

	var items []models.ContentItem
	err := tx.Order(order).Offset(q.Offset).Limit(q.Limit).Find(&items).Error
	if err != nil {
		return nil, apperrors.Upstream("content list", err)
	}
	return items, nil
}

func (s *GormContentStore) Get(ctx context.Context, id string) (models.ContentItem, error) {
	var item models.ContentItem
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ContentItem{}, apperrors.NotFound("content item", id)
	}
	if err != nil {
		return models.ContentItem{}, apperrors.Upstream("content get", err)
	}
	return item, nil
}

func (s *GormContentStore) CountByCreator(ctx context.Context, creatorID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ContentItem{}).
		Where("creator_id = ?", creatorID).Count(&count).Error
	if err != nil {
		return 0, apperrors.Upstream("content count", err)
	}
	return count, nil
}
