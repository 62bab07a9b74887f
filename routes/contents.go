package routes

import (
	"github.com/BonJenn/fanfiles/handlers/contents"
	"github.com/BonJenn/fanfiles/middleware"

	"github.com/gin-gonic/gin"
)

func ContentsRoutes(r *gin.Engine) {
	// Public routes
	r.GET("/contents/:id", middleware.OptionalAuth(), contents.GetContentByID)
	r.POST("/contents/:id/view", middleware.OptionalAuth(), contents.RecordView)

	// Protected routes
	contentsRoutes := r.Group("/contents")
	contentsRoutes.Use(middleware.JWTAuth())
	{
		contentsRoutes.POST("", contents.CreateContent)
		contentsRoutes.PATCH("/:id", contents.UpdateContent)
		contentsRoutes.DELETE("/:id", contents.DeleteContent)
	}
}
