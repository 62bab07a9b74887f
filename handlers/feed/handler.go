package feed

import (
	"net/http"
	"strconv"

	"github.com/BonJenn/fanfiles/apperrors"
	"github.com/BonJenn/fanfiles/db"
	"github.com/BonJenn/fanfiles/middleware"
	"github.com/BonJenn/fanfiles/services/access"
	feedsvc "github.com/BonJenn/fanfiles/services/feed"
	"github.com/BonJenn/fanfiles/stores"
	"github.com/BonJenn/fanfiles/utils"

	"github.com/gin-gonic/gin"
)

func newEngine() *feedsvc.Engine {
	ledger := stores.NewGormLedgerStore(db.DB)
	gate := access.NewGate(ledger, access.PolicyFromEnv())
	return feedsvc.NewEngine(stores.NewGormContentStore(db.DB), gate)
}

// GetFeed returns one page of the content feed
// @Summary Browse the content feed
// @Description Returns a filtered, sorted, paginated page of content items, each shaped by the viewer's access decision. Locked items carry no media URL.
// @Tags feed
// @Produce json
// @Param page query int false "Page index, starting at 0"
// @Param pageSize query int false "Items per page (default 9, max 100)"
// @Param sort query string false "newest | oldest | price_desc | price_asc"
// @Param type query string false "all | image | video"
// @Param search query string false "Substring match on descriptions"
// @Param creatorId query string false "Restrict to one creator"
// @Param scope query string false "subscribed: only creators the viewer subscribes to"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response "error: invalid filter or sort"
// @Failure 401 {object} utils.Response "error: subscribed scope needs a viewer"
// @Router /feed [get]
func GetFeed(c *gin.Context) {
	q, err := queryFromRequest(c)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	viewerID := middleware.ViewerID(c)
	page, err := newEngine().FetchPage(c.Request.Context(), viewerID, q)
	if err != nil {
		utils.LogErrorWithUser(viewerID, err, "Error fetching feed page")
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Feed page fetched", page)
}

func queryFromRequest(c *gin.Context) (feedsvc.Query, error) {
	pageIndex, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		return feedsvc.Query{}, apperrors.Validation("page must be an integer, got %q", c.Query("page"))
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(feedsvc.DefaultPageSize)))
	if err != nil {
		return feedsvc.Query{}, apperrors.Validation("pageSize must be an integer, got %q", c.Query("pageSize"))
	}

	scope := feedsvc.Scope{Kind: feedsvc.ScopeAll}
	creatorID := c.Query("creatorId")
	subscribed := c.Query("scope") == "subscribed"
	switch {
	case subscribed && creatorID != "":
		return feedsvc.Query{}, apperrors.Validation("creatorId and scope=subscribed are mutually exclusive")
	case subscribed:
		scope = feedsvc.Scope{Kind: feedsvc.ScopeSubscribed}
	case creatorID != "":
		scope = feedsvc.Scope{Kind: feedsvc.ScopeCreator, CreatorID: creatorID}
	}

	return feedsvc.Query{
		ContentType: c.DefaultQuery("type", feedsvc.ContentTypeAll),
		SearchText:  c.Query("search"),
		Scope:       scope,
		Sort:        stores.ContentSort(c.DefaultQuery("sort", string(stores.SortNewest))),
		PageIndex:   pageIndex,
		PageSize:    pageSize,
	}, nil
}
