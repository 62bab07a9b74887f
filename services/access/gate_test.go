package access

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/BonJenn/fanfiles/models"
	"github.com/BonJenn/fanfiles/testutils"

	"github.com/stretchr/testify/assert"
)

const (
	creatorID = "creator-1"
	viewerID  = "viewer-1"
	itemID    = "item-1"
)

func buildItem(public bool, owner bool) models.ContentItem {
	item := models.ContentItem{
		ID:              itemID,
		CreatorID:       creatorID,
		MediaType:       models.MediaImage,
		Visibility:      models.VisibilityPaid,
		PriceMinorUnits: 500,
		MediaURL:        "https://cdn.example.com/item-1.jpg",
		Description:     "a paid picture",
		CreatedAt:       time.Now(),
	}
	if public {
		item.Visibility = models.VisibilityPublic
		item.PriceMinorUnits = 0
	}
	if owner {
		item.CreatorID = viewerID
	}
	return item
}

func buildLedger(hasPurchase, hasActiveSub bool) *testutils.FakeLedgerStore {
	ledger := &testutils.FakeLedgerStore{}
	if hasPurchase {
		ledger.Purchases = append(ledger.Purchases, models.Purchase{
			ID: "p-1", ContentItemID: itemID, BuyerID: viewerID, CreatorID: creatorID, AmountMinorUnits: 500,
		})
	}
	if hasActiveSub {
		ledger.Subscriptions = append(ledger.Subscriptions, models.Subscription{
			ID: "s-1", CreatorID: creatorID, SubscriberID: viewerID, Status: models.SubscriptionActive,
		})
	}
	return ledger
}

// Every combination of {public, owner, purchase, active sub}, under both
// settings of the subscription-unlock policy.
func TestDecide_TruthTable(t *testing.T) {
	for _, subUnlocks := range []bool{false, true} {
		for caseBits := 0; caseBits < 16; caseBits++ {
			public := caseBits&1 != 0
			owner := caseBits&2 != 0
			hasPurchase := caseBits&4 != 0
			hasActiveSub := caseBits&8 != 0

			expected := models.AccessLocked
			if public || owner || hasPurchase || (subUnlocks && hasActiveSub) {
				expected = models.AccessFull
			}

			gate := NewGate(buildLedger(hasPurchase, hasActiveSub), Policy{SubscriptionUnlocksPaidItems: subUnlocks})
			snap, err := gate.SnapshotFor(context.Background(), viewerID)
			assert.NoError(t, err)

			got := gate.Decide(snap, buildItem(public, owner))
			assert.Equalf(t, expected, got,
				"public=%v owner=%v purchase=%v activeSub=%v subUnlocks=%v",
				public, owner, hasPurchase, hasActiveSub, subUnlocks)
		}
	}
}

func TestDecide_CanceledSubscriptionDoesNotUnlock(t *testing.T) {
	ledger := &testutils.FakeLedgerStore{
		Subscriptions: []models.Subscription{
			{ID: "s-1", CreatorID: creatorID, SubscriberID: viewerID, Status: models.SubscriptionCanceled},
		},
	}
	gate := NewGate(ledger, Policy{SubscriptionUnlocksPaidItems: true})

	snap, err := gate.SnapshotFor(context.Background(), viewerID)
	assert.NoError(t, err)
	assert.Equal(t, models.AccessLocked, gate.Decide(snap, buildItem(false, false)))
}

func TestSnapshotFor_AnonymousReadsNothing(t *testing.T) {
	// A failing ledger proves no store call is made for anonymous viewers.
	ledger := &testutils.FakeLedgerStore{
		PurchasesErr:     testutils.ErrStoreDown,
		SubscriptionsErr: testutils.ErrStoreDown,
	}
	gate := NewGate(ledger, Policy{})

	snap, err := gate.SnapshotFor(context.Background(), "")
	assert.NoError(t, err)
	assert.Equal(t, models.AccessLocked, gate.Decide(snap, buildItem(false, false)))
	assert.Equal(t, models.AccessFull, gate.Decide(snap, buildItem(true, false)))
}

func TestShape_LockedStripsMediaReference(t *testing.T) {
	item := buildItem(false, false)
	item.Description = strings.Repeat("x", 200)

	shaped := Shape(item, models.AccessLocked)
	assert.Empty(t, shaped.MediaURL)
	assert.Equal(t, models.AccessLocked, shaped.Access)
	assert.Equal(t, int64(500), shaped.PriceMinorUnits)
	assert.Equal(t, models.MediaImage, shaped.MediaType)
	assert.True(t, len([]rune(shaped.Description)) < len([]rune(item.Description)))
}

func TestShape_FullKeepsMediaReference(t *testing.T) {
	item := buildItem(false, false)

	shaped := Shape(item, models.AccessFull)
	assert.Equal(t, item.MediaURL, shaped.MediaURL)
	assert.Equal(t, item.Description, shaped.Description)
	assert.Equal(t, models.AccessFull, shaped.Access)
}
