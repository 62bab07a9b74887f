package analytics

import (
	"context"
	"time"

	"github.com/BonJenn/fanfiles/models"
	"github.com/BonJenn/fanfiles/stores"

	"golang.org/x/sync/errgroup"
)

const defaultRecentPurchases = 10

// Summary is the scalar dashboard rollup, independent of bucket granularity.
type Summary struct {
	TotalPosts                 int64 `json:"totalPosts"`
	TotalActiveSubscribers     int64 `json:"totalActiveSubscribers"`
	LifetimeEarningsMinorUnits int64 `json:"lifetimeEarningsMinorUnits"`
	MonthlyViews               int64 `json:"monthlyViews"`
}

type SummaryService struct {
	content stores.ContentStore
	ledger  stores.LedgerStore
	now     func() time.Time
}

func NewSummaryService(content stores.ContentStore, ledger stores.LedgerStore) *SummaryService {
	return &SummaryService{content: content, ledger: ledger, now: time.Now}
}

// Summarize computes the four rollups concurrently. The active-subscriber
// count reads through the same ACTIVE scope the access gate's snapshot uses,
// so the dashboard and the paywall cannot disagree on who is subscribed.
// MonthlyViews counts views since the first day of the current UTC month.
func (s *SummaryService) Summarize(ctx context.Context, creatorID string) (Summary, error) {
	y, m, _ := s.now().UTC().Date()
	monthStart := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)

	var summary Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.content.CountByCreator(gctx, creatorID)
		summary.TotalPosts = n
		return err
	})
	g.Go(func() error {
		n, err := s.ledger.ActiveSubscriberCount(gctx, creatorID)
		summary.TotalActiveSubscribers = n
		return err
	})
	g.Go(func() error {
		n, err := s.ledger.LifetimeEarnings(gctx, creatorID)
		summary.LifetimeEarningsMinorUnits = n
		return err
	})
	g.Go(func() error {
		n, err := s.ledger.ViewCountSince(gctx, creatorID, monthStart)
		summary.MonthlyViews = n
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

// RecentPurchases returns the creator's latest purchases, newest first, for
// the dashboard transactions table.
func (s *SummaryService) RecentPurchases(ctx context.Context, creatorID string, limit int) ([]models.Purchase, error) {
	if limit <= 0 {
		limit = defaultRecentPurchases
	}
	return s.ledger.RecentPurchases(ctx, creatorID, limit)
}
