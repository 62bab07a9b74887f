package routes

import (
	"github.com/BonJenn/fanfiles/handlers/dashboard"
	"github.com/BonJenn/fanfiles/middleware"

	"github.com/gin-gonic/gin"
)

func DashboardRoutes(r *gin.Engine) {
	dashboardRoutes := r.Group("/dashboard")
	dashboardRoutes.Use(middleware.JWTAuth())
	{
		dashboardRoutes.GET("/analytics", dashboard.GetAnalytics)
		dashboardRoutes.GET("/summary", dashboard.GetSummary)
		dashboardRoutes.GET("/transactions", dashboard.GetTransactions)
	}
}
