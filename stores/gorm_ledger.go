package stores

import (
	"context"
	"time"

	"github.com/BonJenn/fanfiles/apperrors"
	"github.com/BonJenn/fanfiles/models"

	"gorm.io/gorm"
)

type GormLedgerStore struct {
	db *gorm.DB
}

func NewGormLedgerStore(db *gorm.DB) *GormLedgerStore {
	return &GormLedgerStore{db: db}
}

// activeSubscriptions is the one place the ACTIVE filter is written for SQL
// reads. Both the access-gate snapshot and the dashboard subscriber count go
// through it, mirroring models.Subscription.IsActive.
func activeSubscriptions(tx *gorm.DB) *gorm.DB {
	return tx.Where("status = ?", models.SubscriptionActive)
}

func (s *GormLedgerStore) ViewsSince(ctx context.Context, creatorID string, since time.Time) ([]models.ViewEvent, error) {
	var rows []models.ViewEvent
	err := s.db.WithContext(ctx).
		Where("creator_id = ? AND created_at >= ?", creatorID, since).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Upstream("views since", err)
	}
	return rows, nil
}

func (s *GormLedgerStore) PurchasesSince(ctx context.Context, creatorID string, since time.Time) ([]models.Purchase, error) {
	var rows []models.Purchase
	err := s.db.WithContext(ctx).
		Where("creator_id = ? AND created_at >= ?", creatorID, since).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Upstream("purchases since", err)
	}
	return rows, nil
}

// SubscriptionsSince returns subscription creation events. Status is not
// filtered here: a canceled subscription was still created inside the window
// and counts toward that day's new-subscriber bucket.
func (s *GormLedgerStore) SubscriptionsSince(ctx context.Context, creatorID string, since time.Time) ([]models.Subscription, error) {
	var rows []models.Subscription
	err := s.db.WithContext(ctx).
		Where("creator_id = ? AND created_at >= ?", creatorID, since).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Upstream("subscriptions since", err)
	}
	return rows, nil
}

func (s *GormLedgerStore) PurchasedItemIDs(ctx context.Context, buyerID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("buyer_id = ?", buyerID).
		Pluck("content_item_id", &ids).Error
	if err != nil {
		return nil, apperrors.Upstream("purchased item ids", err)
	}
	return ids, nil
}

func (s *GormLedgerStore) ActiveSubscriptionCreatorIDs(ctx context.Context, subscriberID string) ([]string, error) {
	var ids []string
	tx := s.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("subscriber_id = ?", subscriberID)
	err := activeSubscriptions(tx).Pluck("creator_id", &ids).Error
	if err != nil {
		return nil, apperrors.Upstream("active subscription creators", err)
	}
	return ids, nil
}

func (s *GormLedgerStore) ActiveSubscriberCount(ctx context.Context, creatorID string) (int64, error) {
	var count int64
	tx := s.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("creator_id = ?", creatorID)
	err := activeSubscriptions(tx).Count(&count).Error
	if err != nil {
		return 0, apperrors.Upstream("active subscriber count", err)
	}
	return count, nil
}

func (s *GormLedgerStore) ViewCountSince(ctx context.Context, creatorID string, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ViewEvent{}).
		Where("creator_id = ? AND created_at >= ?", creatorID, since).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Upstream("view count since", err)
	}
	return count, nil
}

func (s *GormLedgerStore) LifetimeEarnings(ctx context.Context, creatorID string) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("creator_id = ?", creatorID).
		Select("COALESCE(SUM(amount_minor_units), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Upstream("lifetime earnings", err)
	}
	return total, nil
}

func (s *GormLedgerStore) RecentPurchases(ctx context.Context, creatorID string, limit int) ([]models.Purchase, error) {
	var rows []models.Purchase
	err := s.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC, id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Upstream("recent purchases", err)
	}
	return rows, nil
}
