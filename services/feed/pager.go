package feed

import (
	"context"
	"sync"

	"github.com/BonJenn/fanfiles/models"
)

// Pager is the per-feed-instance "load more" controller. At most one fetch is
// in flight: a trigger arriving while one is pending is dropped, not queued,
// so pages are always applied in order. Changing the query supersedes any
// pending fetch; its result is discarded on arrival via a generation check
// rather than any assumption about completion order.
type Pager struct {
	engine *Engine

	mu       sync.Mutex
	gen      uint64
	inflight bool
	viewerID string
	query    Query
	nextPage int
	items    []models.ShapedContentItem
	hasMore  bool
}

func NewPager(engine *Engine, viewerID string, query Query) *Pager {
	query.PageIndex = 0
	return &Pager{
		engine:   engine,
		viewerID: viewerID,
		query:    query,
		hasMore:  true,
	}
}

// SetQuery replaces the filter/sort/scope and resets accumulated pages. Any
// in-flight fetch for the previous parameters is stale from this point on.
func (p *Pager) SetQuery(query Query) {
	query.PageIndex = 0

	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.inflight = false
	p.query = query
	p.nextPage = 0
	p.items = nil
	p.hasMore = true
}

// LoadNext fetches the next page and appends it to the visible list. It
// returns false without fetching when a fetch is already pending or the last
// page was reached, and false when the completed fetch turned out stale.
func (p *Pager) LoadNext(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if p.inflight || !p.hasMore {
		p.mu.Unlock()
		return false, nil
	}
	p.inflight = true
	gen := p.gen
	viewerID := p.viewerID
	query := p.query
	query.PageIndex = p.nextPage
	p.mu.Unlock()

	page, err := p.engine.FetchPage(ctx, viewerID, query)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen != gen {
		// Superseded by SetQuery while fetching; a newer generation owns
		// the state now, drop this result.
		return false, nil
	}
	p.inflight = false
	if err != nil {
		return false, err
	}
	p.items = append(p.items, page.Items...)
	p.hasMore = page.HasMore
	p.nextPage++
	return true, nil
}

// Items returns a copy of the currently applied list.
func (p *Pager) Items() []models.ShapedContentItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.ShapedContentItem, len(p.items))
	copy(out, p.items)
	return out
}

func (p *Pager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}
