// Package access decides whether a content item renders in full or locked
// form for a viewer, and shapes locked items so the media reference never
// leaves the service. Hiding is done here, at the data boundary, not in the
// presentation layer.
package access

import (
	"context"
	"os"

	"github.com/BonJenn/fanfiles/models"
	"github.com/BonJenn/fanfiles/stores"
)

// Policy configures whether an active subscription unlocks individually
// priced items. Defaults to false: subscriptions and per-item purchases are
// independent monetization tracks.
type Policy struct {
	SubscriptionUnlocksPaidItems bool
}

// PolicyFromEnv reads the unlock policy from the environment. Anything but
// "true" keeps the restrictive default.
func PolicyFromEnv() Policy {
	return Policy{
		SubscriptionUnlocksPaidItems: os.Getenv("SUBSCRIPTION_UNLOCKS_PAID_ITEMS") == "true",
	}
}

type Gate struct {
	ledger stores.LedgerStore
	policy Policy
}

func NewGate(ledger stores.LedgerStore, policy Policy) *Gate {
	return &Gate{ledger: ledger, policy: policy}
}

// Snapshot is everything about a viewer the decision rule needs: the set of
// item ids they purchased and the set of creator ids they hold an ACTIVE
// subscription with. An anonymous viewer has the zero Snapshot.
type Snapshot struct {
	ViewerID     string
	purchased    map[string]struct{}
	subscribedTo map[string]struct{}
}

// SnapshotFor loads a viewer's unlock sets. The empty viewer id means
// anonymous: no store reads, nothing unlocked.
func (g *Gate) SnapshotFor(ctx context.Context, viewerID string) (Snapshot, error) {
	if viewerID == "" {
		return Snapshot{}, nil
	}

	itemIDs, err := g.ledger.PurchasedItemIDs(ctx, viewerID)
	if err != nil {
		return Snapshot{}, err
	}
	creatorIDs, err := g.ledger.ActiveSubscriptionCreatorIDs(ctx, viewerID)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		ViewerID:     viewerID,
		purchased:    make(map[string]struct{}, len(itemIDs)),
		subscribedTo: make(map[string]struct{}, len(creatorIDs)),
	}
	for _, id := range itemIDs {
		snap.purchased[id] = struct{}{}
	}
	for _, id := range creatorIDs {
		snap.subscribedTo[id] = struct{}{}
	}
	return snap, nil
}

func (s Snapshot) HasPurchased(itemID string) bool {
	_, ok := s.purchased[itemID]
	return ok
}

func (s Snapshot) SubscribesTo(creatorID string) bool {
	_, ok := s.subscribedTo[creatorID]
	return ok
}

// SubscribedCreatorIDs returns the creators the viewer holds an active
// subscription with. The subscribed-only feed scope is driven by this, so it
// agrees with the unlock rule by construction.
func (s Snapshot) SubscribedCreatorIDs() []string {
	if len(s.subscribedTo) == 0 {
		return nil
	}
	ids := make([]string, 0, len(s.subscribedTo))
	for id := range s.subscribedTo {
		ids = append(ids, id)
	}
	return ids
}

// Decide applies the unlock rules in order: public, owner, purchase, then
// (only when the policy allows it) active subscription. It is a pure function
// of the snapshot and the item.
func (g *Gate) Decide(snap Snapshot, item models.ContentItem) models.AccessDecision {
	if item.Visibility == models.VisibilityPublic {
		return models.AccessFull
	}
	if snap.ViewerID != "" && snap.ViewerID == item.CreatorID {
		return models.AccessFull
	}
	if snap.HasPurchased(item.ID) {
		return models.AccessFull
	}
	if g.policy.SubscriptionUnlocksPaidItems && snap.SubscribesTo(item.CreatorID) {
		return models.AccessFull
	}
	return models.AccessLocked
}

const lockedDescriptionLimit = 80

// Shape converts an item to its outbound representation. A LOCKED item keeps
// its price and media type so the paywall can render, but its media URL is
// stripped and its description truncated.
func Shape(item models.ContentItem, decision models.AccessDecision) models.ShapedContentItem {
	shaped := models.ShapedContentItem{
		ID:              item.ID,
		CreatorID:       item.CreatorID,
		MediaType:       item.MediaType,
		Visibility:      item.Visibility,
		PriceMinorUnits: item.PriceMinorUnits,
		Description:     item.Description,
		Access:          decision,
		CreatedAt:       item.CreatedAt,
	}
	if decision == models.AccessFull {
		shaped.MediaURL = item.MediaURL
		return shaped
	}
	shaped.MediaURL = ""
	shaped.Description = truncate(item.Description, lockedDescriptionLimit)
	return shaped
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
