package feed

import (
	"context"
	"sync"
	"time"

	"github.com/BonJenn/fanfiles/models"
)

// Searcher debounces keystrokes into single-flight searches keyed by the
// latest query string. Each keystroke supersedes the previous one; a
// superseded search's result is discarded when it arrives, never applied.
type Searcher struct {
	engine *Engine
	delay  time.Duration

	mu       sync.Mutex
	gen      uint64
	timer    *time.Timer
	viewerID string
	base     Query
	results  []models.ShapedContentItem
	err      error
}

func NewSearcher(engine *Engine, viewerID string, base Query, delay time.Duration) *Searcher {
	base.PageIndex = 0
	return &Searcher{
		engine:   engine,
		delay:    delay,
		viewerID: viewerID,
		base:     base,
	}
}

// Search registers a new query string. The fetch runs after the debounce
// delay unless another keystroke supersedes it first; with zero delay it runs
// before Search returns.
func (s *Searcher) Search(ctx context.Context, text string) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.delay <= 0 {
		s.mu.Unlock()
		s.run(ctx, text, gen)
		return
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.run(ctx, text, gen)
	})
	s.mu.Unlock()
}

func (s *Searcher) run(ctx context.Context, text string, gen uint64) {
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	query := s.base
	query.SearchText = text
	viewerID := s.viewerID
	s.mu.Unlock()

	page, err := s.engine.FetchPage(ctx, viewerID, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		// A newer keystroke arrived while fetching.
		return
	}
	if err != nil {
		s.err = err
		return
	}
	s.results = page.Items
	s.err = nil
}

// Results returns the items from the latest applied search.
func (s *Searcher) Results() ([]models.ShapedContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.ShapedContentItem, len(s.results))
	copy(out, s.results)
	return out, nil
}
