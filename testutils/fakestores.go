package testutils

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/BonJenn/fanfiles/apperrors"
	"github.com/BonJenn/fanfiles/models"
	"github.com/BonJenn/fanfiles/stores"
)

// FakeContentStore is an in-memory ContentStore for service-level tests.
// It applies the same filter, sort and offset semantics as the SQL store.
type FakeContentStore struct {
	Items []models.ContentItem
	// Err, when set, fails every call with an UpstreamUnavailable.
	Err error
	// OnList, when set, runs at the start of every List call. Tests use it
	// to block a fetch in flight.
	OnList func(q stores.ContentQuery)
}

func (f *FakeContentStore) List(ctx context.Context, q stores.ContentQuery) ([]models.ContentItem, error) {
	if f.OnList != nil {
		f.OnList(q)
	}
	if f.Err != nil {
		return nil, apperrors.Upstream("content list", f.Err)
	}

	var filtered []models.ContentItem
	for _, item := range f.Items {
		if q.MediaType != nil && item.MediaType != *q.MediaType {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(item.Description), strings.ToLower(q.Search)) {
			continue
		}
		if q.CreatorID != "" && item.CreatorID != q.CreatorID {
			continue
		}
		if q.CreatorIDs != nil && !containsString(q.CreatorIDs, item.CreatorID) {
			continue
		}
		filtered = append(filtered, item)
	}

	less, ok := sortFuncs[q.Sort]
	if !ok {
		return nil, apperrors.Validation("unknown sort %q", string(q.Sort))
	}
	sort.SliceStable(filtered, func(i, j int) bool { return less(filtered[i], filtered[j]) })

	if q.Offset >= len(filtered) {
		return []models.ContentItem{}, nil
	}
	end := q.Offset + q.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[q.Offset:end], nil
}

var sortFuncs = map[stores.ContentSort]func(a, b models.ContentItem) bool{
	stores.SortNewest: func(a, b models.ContentItem) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	},
	stores.SortOldest: func(a, b models.ContentItem) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	},
	stores.SortPriceDesc: func(a, b models.ContentItem) bool {
		if a.PriceMinorUnits != b.PriceMinorUnits {
			return a.PriceMinorUnits > b.PriceMinorUnits
		}
		return a.ID < b.ID
	},
	stores.SortPriceAsc: func(a, b models.ContentItem) bool {
		if a.PriceMinorUnits != b.PriceMinorUnits {
			return a.PriceMinorUnits < b.PriceMinorUnits
		}
		return a.ID < b.ID
	},
}

func (f *FakeContentStore) Get(ctx context.Context, id string) (models.ContentItem, error) {
	if f.Err != nil {
		return models.ContentItem{}, apperrors.Upstream("content get", f.Err)
	}
	for _, item := range f.Items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.ContentItem{}, apperrors.NotFound("content item", id)
}

func (f *FakeContentStore) CountByCreator(ctx context.Context, creatorID string) (int64, error) {
	if f.Err != nil {
		return 0, apperrors.Upstream("content count", f.Err)
	}
	var count int64
	for _, item := range f.Items {
		if item.CreatorID == creatorID {
			count++
		}
	}
	return count, nil
}

// FakeLedgerStore is an in-memory LedgerStore. Each ledger leg can be failed
// independently to exercise partial-data handling.
type FakeLedgerStore struct {
	Views         []models.ViewEvent
	Purchases     []models.Purchase
	Subscriptions []models.Subscription

	ViewsErr         error
	PurchasesErr     error
	SubscriptionsErr error
}

// ErrStoreDown is a stand-in transient failure for tests.
var ErrStoreDown = errors.New("store down")

func (f *FakeLedgerStore) ViewsSince(ctx context.Context, creatorID string, since time.Time) ([]models.ViewEvent, error) {
	if f.ViewsErr != nil {
		return nil, apperrors.Upstream("views since", f.ViewsErr)
	}
	var rows []models.ViewEvent
	for _, v := range f.Views {
		if v.CreatorID == creatorID && !v.CreatedAt.Before(since) {
			rows = append(rows, v)
		}
	}
	return rows, nil
}

func (f *FakeLedgerStore) PurchasesSince(ctx context.Context, creatorID string, since time.Time) ([]models.Purchase, error) {
	if f.PurchasesErr != nil {
		return nil, apperrors.Upstream("purchases since", f.PurchasesErr)
	}
	var rows []models.Purchase
	for _, p := range f.Purchases {
		if p.CreatorID == creatorID && !p.CreatedAt.Before(since) {
			rows = append(rows, p)
		}
	}
	return rows, nil
}

func (f *FakeLedgerStore) SubscriptionsSince(ctx context.Context, creatorID string, since time.Time) ([]models.Subscription, error) {
	if f.SubscriptionsErr != nil {
		return nil, apperrors.Upstream("subscriptions since", f.SubscriptionsErr)
	}
	var rows []models.Subscription
	for _, s := range f.Subscriptions {
		if s.CreatorID == creatorID && !s.CreatedAt.Before(since) {
			rows = append(rows, s)
		}
	}
	return rows, nil
}

func (f *FakeLedgerStore) PurchasedItemIDs(ctx context.Context, buyerID string) ([]string, error) {
	if f.PurchasesErr != nil {
		return nil, apperrors.Upstream("purchased item ids", f.PurchasesErr)
	}
	var ids []string
	for _, p := range f.Purchases {
		if p.BuyerID == buyerID {
			ids = append(ids, p.ContentItemID)
		}
	}
	return ids, nil
}

func (f *FakeLedgerStore) ActiveSubscriptionCreatorIDs(ctx context.Context, subscriberID string) ([]string, error) {
	if f.SubscriptionsErr != nil {
		return nil, apperrors.Upstream("active subscription creators", f.SubscriptionsErr)
	}
	var ids []string
	for _, s := range f.Subscriptions {
		if s.SubscriberID == subscriberID && s.IsActive() {
			ids = append(ids, s.CreatorID)
		}
	}
	return ids, nil
}

func (f *FakeLedgerStore) ActiveSubscriberCount(ctx context.Context, creatorID string) (int64, error) {
	if f.SubscriptionsErr != nil {
		return 0, apperrors.Upstream("active subscriber count", f.SubscriptionsErr)
	}
	var count int64
	for _, s := range f.Subscriptions {
		if s.CreatorID == creatorID && s.IsActive() {
			count++
		}
	}
	return count, nil
}

func (f *FakeLedgerStore) ViewCountSince(ctx context.Context, creatorID string, since time.Time) (int64, error) {
	if f.ViewsErr != nil {
		return 0, apperrors.Upstream("view count since", f.ViewsErr)
	}
	var count int64
	for _, v := range f.Views {
		if v.CreatorID == creatorID && !v.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (f *FakeLedgerStore) LifetimeEarnings(ctx context.Context, creatorID string) (int64, error) {
	if f.PurchasesErr != nil {
		return 0, apperrors.Upstream("lifetime earnings", f.PurchasesErr)
	}
	var total int64
	for _, p := range f.Purchases {
		if p.CreatorID == creatorID {
			total += p.AmountMinorUnits
		}
	}
	return total, nil
}

func (f *FakeLedgerStore) RecentPurchases(ctx context.Context, creatorID string, limit int) ([]models.Purchase, error) {
	if f.PurchasesErr != nil {
		return nil, apperrors.Upstream("recent purchases", f.PurchasesErr)
	}
	var rows []models.Purchase
	for _, p := range f.Purchases {
		if p.CreatorID == creatorID {
			rows = append(rows, p)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID < rows[j].ID
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
