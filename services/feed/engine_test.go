package feed

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/BonJenn/fanfiles/apperrors"
	"github.com/BonJenn/fanfiles/models"
	"github.com/BonJenn/fanfiles/services/access"
	"github.com/BonJenn/fanfiles/stores"
	"github.com/BonJenn/fanfiles/testutils"

	"github.com/stretchr/testify/assert"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// seedItems builds n items for creator, alternating image/video and
// public/paid, each one hour newer than the last.
func seedItems(creator string, n int) []models.ContentItem {
	items := make([]models.ContentItem, 0, n)
	for i := 0; i < n; i++ {
		item := models.ContentItem{
			ID:          fmt.Sprintf("item-%03d", i),
			CreatorID:   creator,
			MediaType:   models.MediaImage,
			Visibility:  models.VisibilityPublic,
			MediaURL:    fmt.Sprintf("https://cdn.example.com/%03d.jpg", i),
			Description: fmt.Sprintf("post number %d", i),
			CreatedAt:   baseTime.Add(time.Duration(i) * time.Hour),
		}
		if i%2 == 1 {
			item.MediaType = models.MediaVideo
		}
		if i%3 == 0 {
			item.Visibility = models.VisibilityPaid
			item.PriceMinorUnits = int64(100 * (i + 1))
		}
		items = append(items, item)
	}
	return items
}

func newTestEngine(items []models.ContentItem, ledger *testutils.FakeLedgerStore) *Engine {
	if ledger == nil {
		ledger = &testutils.FakeLedgerStore{}
	}
	gate := access.NewGate(ledger, access.Policy{})
	return NewEngine(&testutils.FakeContentStore{Items: items}, gate)
}

func baseQuery() Query {
	return Query{
		ContentType: ContentTypeAll,
		Sort:        stores.SortNewest,
		PageIndex:   0,
		PageSize:    9,
	}
}

func TestFetchPage_NewestSortIsDescendingWithIDTieBreak(t *testing.T) {
	items := seedItems("creator-1", 12)
	// Two items sharing a timestamp must come back ordered by id.
	items[4].CreatedAt = items[5].CreatedAt
	engine := newTestEngine(items, nil)

	page, err := engine.FetchPage(context.Background(), "", baseQuery())
	assert.NoError(t, err)
	assert.Len(t, page.Items, 9)
	assert.True(t, page.HasMore)

	for i := 1; i < len(page.Items); i++ {
		prev, cur := page.Items[i-1], page.Items[i]
		assert.False(t, cur.CreatedAt.After(prev.CreatedAt), "createdAt must not increase")
		if cur.CreatedAt.Equal(prev.CreatedAt) {
			assert.Less(t, prev.ID, cur.ID, "ties break by ascending id")
		}
	}
}

func TestFetchPage_DisjointPages(t *testing.T) {
	engine := newTestEngine(seedItems("creator-1", 25), nil)

	seen := make(map[string]int)
	for pageIndex := 0; pageIndex < 3; pageIndex++ {
		q := baseQuery()
		q.PageIndex = pageIndex
		page, err := engine.FetchPage(context.Background(), "", q)
		assert.NoError(t, err)
		for _, item := range page.Items {
			seen[item.ID]++
		}
	}

	assert.Len(t, seen, 25)
	for id, count := range seen {
		assert.Equalf(t, 1, count, "item %s appeared %d times", id, count)
	}
}

func TestFetchPage_HasMore(t *testing.T) {
	engine := newTestEngine(seedItems("creator-1", 10), nil)

	q := baseQuery()
	page, err := engine.FetchPage(context.Background(), "", q)
	assert.NoError(t, err)
	assert.True(t, page.HasMore)

	q.PageIndex = 1
	page, err = engine.FetchPage(context.Background(), "", q)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.False(t, page.HasMore)
}

func TestFetchPage_PriceSort(t *testing.T) {
	engine := newTestEngine(seedItems("creator-1", 12), nil)

	q := baseQuery()
	q.Sort = stores.SortPriceDesc
	page, err := engine.FetchPage(context.Background(), "", q)
	assert.NoError(t, err)
	for i := 1; i < len(page.Items); i++ {
		assert.GreaterOrEqual(t, page.Items[i-1].PriceMinorUnits, page.Items[i].PriceMinorUnits)
	}
}

func TestFetchPage_ContentTypeAndSearchFilters(t *testing.T) {
	engine := newTestEngine(seedItems("creator-1", 12), nil)

	q := baseQuery()
	q.ContentType = string(models.MediaVideo)
	page, err := engine.FetchPage(context.Background(), "", q)
	assert.NoError(t, err)
	assert.NotEmpty(t, page.Items)
	for _, item := range page.Items {
		assert.Equal(t, models.MediaVideo, item.MediaType)
	}

	q = baseQuery()
	q.SearchText = "number 7"
	page, err = engine.FetchPage(context.Background(), "", q)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, "item-007", page.Items[0].ID)
}

func TestFetchPage_LockedItemsLeaveWithoutMediaURL(t *testing.T) {
	engine := newTestEngine(seedItems("creator-1", 12), nil)

	page, err := engine.FetchPage(context.Background(), "", baseQuery())
	assert.NoError(t, err)

	var lockedSeen bool
	for _, item := range page.Items {
		switch item.Access {
		case models.AccessLocked:
			lockedSeen = true
			assert.Empty(t, item.MediaURL, "locked item %s leaked its media URL", item.ID)
		case models.AccessFull:
			assert.NotEmpty(t, item.MediaURL)
		}
	}
	assert.True(t, lockedSeen, "fixture must include paid items")
}

func TestFetchPage_CreatorSeesOwnPaidItems(t *testing.T) {
	engine := newTestEngine(seedItems("creator-1", 12), nil)

	q := baseQuery()
	q.Scope = Scope{Kind: ScopeCreator, CreatorID: "creator-1"}
	page, err := engine.FetchPage(context.Background(), "creator-1", q)
	assert.NoError(t, err)
	for _, item := range page.Items {
		assert.Equal(t, models.AccessFull, item.Access)
	}
}

func TestFetchPage_SubscribedScope(t *testing.T) {
	items := append(seedItems("creator-1", 4), seedItems("creator-2", 4)...)
	for i := range items[4:] {
		items[4+i].ID = fmt.Sprintf("other-%03d", i)
	}
	ledger := &testutils.FakeLedgerStore{
		Subscriptions: []models.Subscription{
			{ID: "s-1", CreatorID: "creator-1", SubscriberID: "viewer-1", Status: models.SubscriptionActive},
			{ID: "s-2", CreatorID: "creator-2", SubscriberID: "viewer-1", Status: models.SubscriptionCanceled},
		},
	}
	engine := newTestEngine(items, ledger)

	q := baseQuery()
	q.Scope = Scope{Kind: ScopeSubscribed}
	page, err := engine.FetchPage(context.Background(), "viewer-1", q)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 4)
	for _, item := range page.Items {
		assert.Equal(t, "creator-1", item.CreatorID)
	}
}

func TestFetchPage_SubscribedScopeWithNoSubscriptionsIsEmpty(t *testing.T) {
	engine := newTestEngine(seedItems("creator-1", 4), nil)

	q := baseQuery()
	q.Scope = Scope{Kind: ScopeSubscribed}
	page, err := engine.FetchPage(context.Background(), "viewer-1", q)
	assert.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasMore)
}

func TestFetchPage_Validation(t *testing.T) {
	engine := newTestEngine(nil, nil)

	cases := []struct {
		name   string
		mutate func(*Query)
	}{
		{"unknown sort", func(q *Query) { q.Sort = "by_vibes" }},
		{"unknown content type", func(q *Query) { q.ContentType = "audio" }},
		{"negative page", func(q *Query) { q.PageIndex = -1 }},
		{"zero page size", func(q *Query) { q.PageSize = 0 }},
		{"oversized page", func(q *Query) { q.PageSize = 101 }},
		{"creator scope without id", func(q *Query) { q.Scope = Scope{Kind: ScopeCreator} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := baseQuery()
			tc.mutate(&q)
			_, err := engine.FetchPage(context.Background(), "", q)
			var validation *apperrors.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestFetchPage_SubscribedScopeRequiresViewer(t *testing.T) {
	engine := newTestEngine(nil, nil)

	q := baseQuery()
	q.Scope = Scope{Kind: ScopeSubscribed}
	_, err := engine.FetchPage(context.Background(), "", q)
	var authErr *apperrors.AuthRequiredError
	assert.ErrorAs(t, err, &authErr)
}

func TestFetchPage_UpstreamFailurePropagates(t *testing.T) {
	gate := access.NewGate(&testutils.FakeLedgerStore{}, access.Policy{})
	engine := NewEngine(&testutils.FakeContentStore{Err: testutils.ErrStoreDown}, gate)

	_, err := engine.FetchPage(context.Background(), "", baseQuery())
	var upstream *apperrors.UpstreamUnavailable
	assert.ErrorAs(t, err, &upstream)
}
