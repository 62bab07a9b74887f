// Package analytics builds the creator dashboard: a fixed-length daily time
// series over a window, plus scalar rollups. All monetary values are integer
// minor currency units; converting to a display unit is the caller's problem.
package analytics

import (
	"context"
	"time"

	"github.com/BonJenn/fanfiles/apperrors"
	"github.com/BonJenn/fanfiles/models"
	"github.com/BonJenn/fanfiles/stores"

	"golang.org/x/sync/errgroup"
)

const (
	maxWindowDays  = 366
	defaultTimeout = 10 * time.Second
)

// Series is one creator's daily buckets, oldest first. The four slices are
// parallel and always exactly windowDays long; days without activity hold
// explicit zeros so chart continuity survives quiet stretches.
type Series struct {
	Dates             []time.Time `json:"dates"`
	Views             []int64     `json:"views"`
	RevenueMinorUnits []int64     `json:"revenueMinorUnits"`
	NewSubscribers    []int64     `json:"newSubscribers"`
}

type Aggregator struct {
	ledger  stores.LedgerStore
	timeout time.Duration
	now     func() time.Time
}

func NewAggregator(ledger stores.LedgerStore) *Aggregator {
	return &Aggregator{ledger: ledger, timeout: defaultTimeout, now: time.Now}
}

// bucketDate truncates a timestamp to its UTC calendar day. Bucket generation
// and event assignment both go through here; mixing day conventions within
// one window produces off-by-one buckets near midnight.
func bucketDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Aggregate buckets the creator's ledger rows into windowDays daily buckets
// ending yesterday. The three ledger fetches fan out concurrently under one
// shared timeout; if any of them fails the whole call fails with a
// PartialDataError naming the source, never a series mixing real buckets
// with zero-filled ones.
func (a *Aggregator) Aggregate(ctx context.Context, creatorID string, windowDays int) (Series, error) {
	if windowDays < 1 || windowDays > maxWindowDays {
		return Series{}, apperrors.Validation("window must be in [1,%d] days, got %d", maxWindowDays, windowDays)
	}

	today := bucketDate(a.now())
	windowStart := today.AddDate(0, 0, -windowDays)

	series := Series{
		Dates:             make([]time.Time, windowDays),
		Views:             make([]int64, windowDays),
		RevenueMinorUnits: make([]int64, windowDays),
		NewSubscribers:    make([]int64, windowDays),
	}
	for i := range series.Dates {
		series.Dates[i] = windowStart.AddDate(0, 0, i)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var (
		views         []models.ViewEvent
		purchases     []models.Purchase
		subscriptions []models.Subscription
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := a.ledger.ViewsSince(gctx, creatorID, windowStart)
		if err != nil {
			return apperrors.PartialData("views", err)
		}
		views = rows
		return nil
	})
	g.Go(func() error {
		rows, err := a.ledger.PurchasesSince(gctx, creatorID, windowStart)
		if err != nil {
			return apperrors.PartialData("purchases", err)
		}
		purchases = rows
		return nil
	})
	g.Go(func() error {
		rows, err := a.ledger.SubscriptionsSince(gctx, creatorID, windowStart)
		if err != nil {
			return apperrors.PartialData("subscriptions", err)
		}
		subscriptions = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return Series{}, err
	}

	bucket := func(t time.Time) (int, bool) {
		idx := int(bucketDate(t).Sub(windowStart).Hours() / 24)
		// Rows dated today fall past the last bucket and are skipped.
		return idx, idx >= 0 && idx < windowDays
	}
	for _, v := range views {
		if i, ok := bucket(v.CreatedAt); ok {
			series.Views[i]++
		}
	}
	for _, p := range purchases {
		if i, ok := bucket(p.CreatedAt); ok {
			series.RevenueMinorUnits[i] += p.AmountMinorUnits
		}
	}
	for _, s := range subscriptions {
		// Creation events only: a since-canceled subscription still counts
		// toward the day it was created.
		if i, ok := bucket(s.CreatedAt); ok {
			series.NewSubscribers[i]++
		}
	}
	return series, nil
}
