package routes

import (
	"github.com/BonJenn/fanfiles/handlers/feed"
	"github.com/BonJenn/fanfiles/middleware"

	"github.com/gin-gonic/gin"
)

func FeedRoutes(r *gin.Engine) {
	// Public with optional identity: anonymous viewers browse, identified
	// viewers get their unlocks applied.
	r.GET("/feed", middleware.OptionalAuth(), feed.GetFeed)
}
