package dashboard

import (
	"net/http"
	"strconv"

	"github.com/BonJenn/fanfiles/apperrors"
	"github.com/BonJenn/fanfiles/db"
	"github.com/BonJenn/fanfiles/services/analytics"
	"github.com/BonJenn/fanfiles/stores"
	"github.com/BonJenn/fanfiles/utils"

	"github.com/gin-gonic/gin"
)

// Dashboards are owner-only: the creator id always comes from the token,
// never from a request parameter.

func newAggregator() *analytics.Aggregator {
	return analytics.NewAggregator(stores.NewGormLedgerStore(db.DB))
}

func newSummaryService() *analytics.SummaryService {
	return analytics.NewSummaryService(stores.NewGormContentStore(db.DB), stores.NewGormLedgerStore(db.DB))
}

// GetAnalytics returns the creator's daily analytics series
// @Summary Daily analytics buckets
// @Description Views, revenue (minor units) and new subscribers bucketed per UTC day over the requested window, oldest first. Quiet days hold explicit zeros.
// @Tags dashboard
// @Produce json
// @Param days query int false "Window length in days (default 30)"
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response "error: invalid window"
// @Failure 401 {object} utils.Response "error: Unauthorized"
// @Failure 502 {object} utils.Response "error: a ledger source failed"
// @Router /dashboard/analytics [get]
func GetAnalytics(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil {
		utils.SendAppError(c, apperrors.Validation("days must be an integer, got %q", c.Query("days")))
		return
	}

	series, err := newAggregator().Aggregate(c.Request.Context(), userID.(string), days)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error aggregating analytics")
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Analytics aggregated", series)
}

// GetSummary returns the creator's scalar dashboard rollups
// @Summary Dashboard summary
// @Description Total posts, active subscribers, lifetime earnings (minor units) and views since the first of the current UTC month.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response "error: Unauthorized"
// @Failure 503 {object} utils.Response "error: store unavailable"
// @Router /dashboard/summary [get]
func GetSummary(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	summary, err := newSummaryService().Summarize(c.Request.Context(), userID.(string))
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error computing dashboard summary")
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Summary computed", summary)
}

// GetTransactions returns the creator's latest purchases
// @Summary Recent transactions
// @Description The creator's most recent purchases, newest first.
// @Tags dashboard
// @Produce json
// @Param limit query int false "Maximum rows (default 10)"
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response "error: Unauthorized"
// @Router /dashboard/transactions [get]
func GetTransactions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		utils.SendAppError(c, apperrors.Validation("limit must be an integer, got %q", c.Query("limit")))
		return
	}

	purchases, err := newSummaryService().RecentPurchases(c.Request.Context(), userID.(string), limit)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error fetching recent purchases")
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Transactions fetched", purchases)
}
