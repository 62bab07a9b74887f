package routes

import (
	"github.com/BonJenn/fanfiles/handlers/checkout"
	"github.com/BonJenn/fanfiles/middleware"

	"github.com/gin-gonic/gin"
)

func CheckoutRoutes(r *gin.Engine) {
	// Stripe calls this one; signature verification replaces auth.
	r.POST("/webhooks/stripe", checkout.HandleStripeWebhook)

	protected := r.Group("/")
	protected.Use(middleware.JWTAuth())
	{
		protected.POST("/contents/:id/checkout", checkout.CreateContentCheckoutSession)
		protected.POST("/creators/:id/subscribe", checkout.CreateSubscriptionCheckoutSession)
		protected.DELETE("/subscriptions/:subscriptionId", checkout.CancelSubscription)
	}
}
