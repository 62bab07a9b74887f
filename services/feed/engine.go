// Package feed composes filtered, sorted, paginated pages of content items,
// each annotated with an access decision and shaped accordingly.
package feed

import (
	"context"

	"github.com/BonJenn/fanfiles/apperrors"
	"github.com/BonJenn/fanfiles/models"
	"github.com/BonJenn/fanfiles/services/access"
	"github.com/BonJenn/fanfiles/stores"
)

type ScopeKind int

const (
	// ScopeAll is the platform-wide feed. Paid items still appear, locked.
	ScopeAll ScopeKind = iota
	// ScopeCreator restricts the feed to one creator's items.
	ScopeCreator
	// ScopeSubscribed restricts the feed to creators the viewer holds an
	// active subscription with. Requires a viewer identity.
	ScopeSubscribed
)

type Scope struct {
	Kind      ScopeKind
	CreatorID string
}

const (
	ContentTypeAll  = "all"
	DefaultPageSize = 9
	maxPageSize     = 100
)

// Query is one page request. ContentType is "all", "image" or "video";
// SearchText is a case-insensitive substring match on descriptions.
type Query struct {
	ContentType string
	SearchText  string
	Scope       Scope
	Sort        stores.ContentSort
	PageIndex   int
	PageSize    int
}

type Page struct {
	Items   []models.ShapedContentItem `json:"items"`
	HasMore bool                       `json:"hasMore"`
}

type Engine struct {
	content stores.ContentStore
	gate    *access.Gate
}

func NewEngine(content stores.ContentStore, gate *access.Gate) *Engine {
	return &Engine{content: content, gate: gate}
}

func (q Query) validate() error {
	switch q.Sort {
	case stores.SortNewest, stores.SortOldest, stores.SortPriceDesc, stores.SortPriceAsc:
	default:
		return apperrors.Validation("unknown sort %q", string(q.Sort))
	}
	switch q.ContentType {
	case ContentTypeAll, string(models.MediaImage), string(models.MediaVideo):
	default:
		return apperrors.Validation("unknown content type %q", q.ContentType)
	}
	if q.PageIndex < 0 {
		return apperrors.Validation("page index must not be negative, got %d", q.PageIndex)
	}
	if q.PageSize < 1 || q.PageSize > maxPageSize {
		return apperrors.Validation("page size must be in [1,%d], got %d", maxPageSize, q.PageSize)
	}
	if q.Scope.Kind == ScopeCreator && q.Scope.CreatorID == "" {
		return apperrors.Validation("creator scope requires a creator id")
	}
	return nil
}

// FetchPage returns page PageIndex of the filtered, sorted result. Every
// returned item has been through the access gate; locked items leave with no
// media URL. Pagination is plain offset/limit with no snapshot isolation:
// inserts between two fetches under the newest sort can shift rows across
// page boundaries.
func (e *Engine) FetchPage(ctx context.Context, viewerID string, q Query) (Page, error) {
	if err := q.validate(); err != nil {
		return Page{}, err
	}
	if q.Scope.Kind == ScopeSubscribed && viewerID == "" {
		return Page{}, apperrors.AuthRequired("subscribed feed")
	}

	snap, err := e.gate.SnapshotFor(ctx, viewerID)
	if err != nil {
		return Page{}, err
	}

	cq := stores.ContentQuery{
		Search: q.SearchText,
		Sort:   q.Sort,
		Offset: q.PageIndex * q.PageSize,
		Limit:  q.PageSize,
	}
	if q.ContentType != ContentTypeAll {
		mt := models.MediaType(q.ContentType)
		cq.MediaType = &mt
	}
	switch q.Scope.Kind {
	case ScopeCreator:
		cq.CreatorID = q.Scope.CreatorID
	case ScopeSubscribed:
		creatorIDs := snap.SubscribedCreatorIDs()
		if len(creatorIDs) == 0 {
			return Page{Items: []models.ShapedContentItem{}, HasMore: false}, nil
		}
		cq.CreatorIDs = creatorIDs
	}

	items, err := e.content.List(ctx, cq)
	if err != nil {
		return Page{}, err
	}

	shaped := make([]models.ShapedContentItem, 0, len(items))
	for _, item := range items {
		shaped = append(shaped, access.Shape(item, e.gate.Decide(snap, item)))
	}
	return Page{Items: shaped, HasMore: len(shaped) == q.PageSize}, nil
}
