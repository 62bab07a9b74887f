// Package stores holds the narrow read interfaces the core services consume,
// plus their gorm-backed implementations. The ledgers (views, purchases,
// subscriptions) are append-only: every method here is a read.
package stores

import (
	"context"
	"time"

	"github.com/BonJenn/fanfiles/models"
)

type ContentSort string

const (
	SortNewest    ContentSort = "newest"
	SortOldest    ContentSort = "oldest"
	SortPriceDesc ContentSort = "price_desc"
	SortPriceAsc  ContentSort = "price_asc"
)

// ContentQuery describes one filtered, sorted, offset-paginated read of
// content items. Zero-value fields are unconstrained.
type ContentQuery struct {
	MediaType  *models.MediaType
	Search     string
	CreatorID  string
	CreatorIDs []string
	Sort       ContentSort
	Offset     int
	Limit      int
}

type ContentStore interface {
	List(ctx context.Context, q ContentQuery) ([]models.ContentItem, error)
	Get(ctx context.Context, id string) (models.ContentItem, error)
	CountByCreator(ctx context.Context, creatorID string) (int64, error)
}

type LedgerStore interface {
	// Per-creator rows since a bound, for the analytics buckets.
	ViewsSince(ctx context.Context, creatorID string, since time.Time) ([]models.ViewEvent, error)
	PurchasesSince(ctx context.Context, creatorID string, since time.Time) ([]models.Purchase, error)
	SubscriptionsSince(ctx context.Context, creatorID string, since time.Time) ([]models.Subscription, error)

	// Per-viewer unlock sets, for the access gate snapshot.
	PurchasedItemIDs(ctx context.Context, buyerID string) ([]string, error)
	ActiveSubscriptionCreatorIDs(ctx context.Context, subscriberID string) ([]string, error)

	// Scalar rollups, for the dashboard summary.
	ActiveSubscriberCount(ctx context.Context, creatorID string) (int64, error)
	ViewCountSince(ctx context.Context, creatorID string, since time.Time) (int64, error)
	LifetimeEarnings(ctx context.Context, creatorID string) (int64, error)
	RecentPurchases(ctx context.Context, creatorID string, limit int) ([]models.Purchase, error)
}
