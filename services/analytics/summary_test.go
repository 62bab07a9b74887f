package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/BonJenn/fanfiles/apperrors"
	"github.com/BonJenn/fanfiles/models"
	"github.com/BonJenn/fanfiles/services/access"
	"github.com/BonJenn/fanfiles/testutils"

	"github.com/stretchr/testify/assert"
)

func newTestSummaryService(content *testutils.FakeContentStore, ledger *testutils.FakeLedgerStore) *SummaryService {
	svc := NewSummaryService(content, ledger)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestSummarize(t *testing.T) {
	content := &testutils.FakeContentStore{
		Items: []models.ContentItem{
			{ID: "i-1", CreatorID: "creator-1"},
			{ID: "i-2", CreatorID: "creator-1"},
			{ID: "i-3", CreatorID: "someone-else"},
		},
	}
	ledger := &testutils.FakeLedgerStore{
		Subscriptions: []models.Subscription{
			{ID: "s-1", CreatorID: "creator-1", SubscriberID: "a", Status: models.SubscriptionActive},
			{ID: "s-2", CreatorID: "creator-1", SubscriberID: "b", Status: models.SubscriptionCanceled},
			{ID: "s-3", CreatorID: "creator-1", SubscriberID: "c", Status: models.SubscriptionActive},
		},
		Purchases: []models.Purchase{
			{ID: "p-1", CreatorID: "creator-1", BuyerID: "a", AmountMinorUnits: 1200, CreatedAt: testNow.AddDate(-1, 0, 0)},
			{ID: "p-2", CreatorID: "creator-1", BuyerID: "b", AmountMinorUnits: 800, CreatedAt: testNow.AddDate(0, 0, -2)},
		},
		Views: []models.ViewEvent{
			// Within the current UTC month (June 2025).
			{ID: "v-1", CreatorID: "creator-1", CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "v-2", CreatorID: "creator-1", CreatedAt: time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)},
			// Previous month, excluded.
			{ID: "v-3", CreatorID: "creator-1", CreatedAt: time.Date(2025, 5, 31, 23, 59, 0, 0, time.UTC)},
		},
	}

	summary, err := newTestSummaryService(content, ledger).Summarize(context.Background(), "creator-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalPosts)
	assert.Equal(t, int64(2), summary.TotalActiveSubscribers)
	assert.Equal(t, int64(2000), summary.LifetimeEarningsMinorUnits)
	assert.Equal(t, int64(2), summary.MonthlyViews)
}

// The dashboard subscriber count and the paywall's subscription rule must
// agree: the count equals the number of subscribers for whom the gate's
// subscription rule would evaluate true against the same rows.
func TestSummarize_ActiveSubscribersMatchesGatePredicate(t *testing.T) {
	ledger := &testutils.FakeLedgerStore{
		Subscriptions: []models.Subscription{
			{ID: "s-1", CreatorID: "creator-1", SubscriberID: "a", Status: models.SubscriptionActive},
			{ID: "s-2", CreatorID: "creator-1", SubscriberID: "b", Status: models.SubscriptionCanceled},
			{ID: "s-3", CreatorID: "creator-1", SubscriberID: "c", Status: models.SubscriptionActive},
			{ID: "s-4", CreatorID: "other", SubscriberID: "d", Status: models.SubscriptionActive},
		},
	}

	summary, err := newTestSummaryService(&testutils.FakeContentStore{}, ledger).Summarize(context.Background(), "creator-1")
	assert.NoError(t, err)

	gate := access.NewGate(ledger, access.Policy{SubscriptionUnlocksPaidItems: true})
	paidItem := models.ContentItem{ID: "item-1", CreatorID: "creator-1", Visibility: models.VisibilityPaid, PriceMinorUnits: 100}

	var unlockedBySubscription int64
	for _, subscriberID := range []string{"a", "b", "c", "d"} {
		snap, err := gate.SnapshotFor(context.Background(), subscriberID)
		assert.NoError(t, err)
		if gate.Decide(snap, paidItem) == models.AccessFull {
			unlockedBySubscription++
		}
	}
	assert.Equal(t, summary.TotalActiveSubscribers, unlockedBySubscription)
}

func TestSummarize_StoreFailure(t *testing.T) {
	ledger := &testutils.FakeLedgerStore{PurchasesErr: testutils.ErrStoreDown}

	_, err := newTestSummaryService(&testutils.FakeContentStore{}, ledger).Summarize(context.Background(), "creator-1")
	var upstream *apperrors.UpstreamUnavailable
	assert.ErrorAs(t, err, &upstream)
}

func TestRecentPurchases_NewestFirstWithDefaultLimit(t *testing.T) {
	ledger := &testutils.FakeLedgerStore{}
	for i := 0; i < 15; i++ {
		ledger.Purchases = append(ledger.Purchases, models.Purchase{
			ID:               string(rune('a' + i)),
			CreatorID:        "creator-1",
			AmountMinorUnits: 100,
			CreatedAt:        testNow.Add(-time.Duration(i) * time.Hour),
		})
	}

	rows, err := newTestSummaryService(&testutils.FakeContentStore{}, ledger).RecentPurchases(context.Background(), "creator-1", 0)
	assert.NoError(t, err)
	assert.Len(t, rows, 10)
	for i := 1; i < len(rows); i++ {
		assert.True(t, !rows[i].CreatedAt.After(rows[i-1].CreatedAt))
	}
}
