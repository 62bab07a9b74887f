package checkout

import (
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/BonJenn/fanfiles/db"
	"github.com/BonJenn/fanfiles/models"
	"github.com/BonJenn/fanfiles/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v82"
	session "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
	stripeSubscription "github.com/stripe/stripe-go/v82/subscription"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Stripe performs the actual charge; this package only starts Checkout
// sessions and turns completed ones into ledger rows (purchases and
// subscriptions). Ledger rows are written here and nowhere else read-side.

func ensureStripeCustomer(payer *models.User) (string, error) {
	if payer.StripeCustomerID != "" {
		if _, err := customer.Get(payer.StripeCustomerID, nil); err == nil {
			return payer.StripeCustomerID, nil
		}
		payer.StripeCustomerID = ""
	}

	custParams := &stripe.CustomerParams{
		Name: stripe.String(payer.UserName),
	}
	cust, err := customer.New(custParams)
	if err != nil {
		return "", err
	}
	db.DB.Model(payer).Update("stripe_customer_id", cust.ID)
	payer.StripeCustomerID = cust.ID
	return cust.ID, nil
}

// CreateContentCheckoutSession starts a one-off purchase of a paid item
// @Summary Create a Stripe Checkout session for a paid item
// @Description Start a Stripe payment unlocking a single paid item for the viewer. Returns the session ID and URL for the frontend.
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Content item ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "sessionId, url"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Content item not found"
// @Failure 409 {object} map[string]string "error: Already purchased"
// @Failure 500 {object} map[string]string "error: Stripe error"
// @Router /contents/{id}/checkout [post]
func CreateContentCheckoutSession(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var payer models.User
	if err := db.DB.First(&payer, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var item models.ContentItem
	if err := db.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content item not found"})
		return
	}
	if item.Visibility != models.VisibilityPaid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This item is not for sale"})
		return
	}
	if item.CreatorID == payer.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You already own this item"})
		return
	}

	var existing int64
	db.DB.Model(&models.Purchase{}).
		Where("content_item_id = ? AND buyer_id = ?", item.ID, payer.ID).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "You already purchased this item"})
		return
	}

	customerID, err := ensureStripeCustomer(&payer)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the Stripe customer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the Stripe customer"})
		return
	}

	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(customerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(item.PriceMinorUnits),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Content unlock"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(os.Getenv("CHECKOUT_SUCCESS_URL")),
		CancelURL:         stripe.String(os.Getenv("CHECKOUT_CANCEL_URL")),
		ClientReferenceID: stripe.String(item.ID),
		Metadata: map[string]string{
			"buyer_id":   payer.ID,
			"creator_id": item.CreatorID,
		},
	}

	s, err := session.New(params)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the Stripe session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	utils.LogSuccessWithUser(userID, "Stripe purchase session created")
	c.JSON(http.StatusOK, gin.H{"sessionId": s.ID, "url": s.URL})
}

// CreateSubscriptionCheckoutSession starts a subscription to a creator
// @Summary Create a Stripe Checkout session for a subscription
// @Description Start a Stripe payment subscribing the viewer to a creator. Returns the session ID and URL for the frontend.
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Creator ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "sessionId, url"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Creator not found"
// @Failure 409 {object} map[string]string "error: Already subscribed"
// @Failure 500 {object} map[string]string "error: Stripe error"
// @Router /creators/{id}/subscribe [post]
func CreateSubscriptionCheckoutSession(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var payer models.User
	if err := db.DB.First(&payer, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var creator models.User
	if err := db.DB.First(&creator, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Creator not found"})
		return
	}
	if creator.ID == payer.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot subscribe to yourself"})
		return
	}

	var existing models.Subscription
	err := db.DB.Where("subscriber_id = ? AND creator_id = ? AND status = ?",
		payer.ID, creator.ID, models.SubscriptionActive).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You already have an active subscription with this creator"})
		return
	}

	customerID, err := ensureStripeCustomer(&payer)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the Stripe customer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the Stripe customer"})
		return
	}

	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(customerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(os.Getenv("STRIPE_SUBSCRIPTION_PRICE_ID")),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(os.Getenv("CHECKOUT_SUCCESS_URL")),
		CancelURL:         stripe.String(os.Getenv("CHECKOUT_CANCEL_URL")),
		ClientReferenceID: stripe.String(creator.ID),
		Metadata: map[string]string{
			"subscriber_id": payer.ID,
		},
	}

	s, err := session.New(params)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the Stripe session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	utils.LogSuccessWithUser(userID, "Stripe subscription session created")
	c.JSON(http.StatusOK, gin.H{"sessionId": s.ID, "url": s.URL})
}

// HandleStripeWebhook turns completed Checkout sessions into ledger rows
// @Summary Stripe webhook
// @Description Verifies the event signature and appends a purchase or activates a subscription when a Checkout session completes.
// @Tags checkout
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool "received: true"
// @Failure 400 {object} map[string]string "error: Invalid payload or signature"
// @Router /webhooks/stripe [post]
func HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), os.Getenv("STRIPE_WEBHOOK_SECRET"))
	if err != nil {
		utils.LogError(err, "Invalid Stripe webhook signature")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	if event.Type != "checkout.session.completed" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		utils.LogError(err, "Error parsing the checkout session")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing webhook payload"})
		return
	}

	switch sess.Mode {
	case stripe.CheckoutSessionModePayment:
		recordPurchase(c, sess)
	case stripe.CheckoutSessionModeSubscription:
		activateSubscription(c, sess)
	default:
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

func recordPurchase(c *gin.Context, sess stripe.CheckoutSession) {
	purchase := models.Purchase{
		ContentItemID:    sess.ClientReferenceID,
		BuyerID:          sess.Metadata["buyer_id"],
		CreatorID:        sess.Metadata["creator_id"],
		AmountMinorUnits: sess.AmountTotal,
		StripePaymentID:  sess.ID,
	}
	if purchase.ContentItemID == "" || purchase.BuyerID == "" || purchase.CreatorID == "" {
		utils.LogError(nil, "Checkout session missing purchase references")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing purchase references"})
		return
	}

	if err := db.DB.Create(&purchase).Error; err != nil {
		utils.LogError(err, "Error recording purchase from webhook")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording purchase"})
		return
	}
	utils.LogSuccessWithUser(purchase.BuyerID, "Purchase recorded")
	c.JSON(http.StatusOK, gin.H{"received": true})
}

func activateSubscription(c *gin.Context, sess stripe.CheckoutSession) {
	subscriberID := sess.Metadata["subscriber_id"]
	creatorID := sess.ClientReferenceID
	if subscriberID == "" || creatorID == "" {
		utils.LogError(nil, "Checkout session missing subscription references")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing subscription references"})
		return
	}

	// One row per subscription lifetime: a resubscribe after cancellation
	// gets a fresh row, the canceled one stays terminal.
	sub := models.Subscription{
		CreatorID:    creatorID,
		SubscriberID: subscriberID,
		Status:       models.SubscriptionActive,
	}
	if sess.Subscription != nil {
		sub.StripeSubscriptionID = sess.Subscription.ID
	}

	if err := db.DB.Create(&sub).Error; err != nil {
		utils.LogError(err, "Error recording subscription from webhook")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording subscription"})
		return
	}
	utils.LogSuccessWithUser(subscriberID, "Subscription activated")
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// CancelSubscription cancels a subscription
// @Summary Cancel a subscription
// @Description Cancel the Stripe subscription and flip the row ACTIVE -> CANCELED. The transition happens once; a canceled row is terminal.
// @Tags checkout
// @Produce json
// @Param subscriptionId path string true "Subscription ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Subscription canceled successfully"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not your subscription"
// @Failure 404 {object} map[string]string "error: Subscription not found"
// @Failure 409 {object} map[string]string "error: Already canceled"
// @Router /subscriptions/{subscriptionId} [delete]
func CancelSubscription(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	subscriptionID := c.Param("subscriptionId")

	if _, err := uuid.Parse(subscriptionID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var sub models.Subscription
	if err := db.DB.First(&sub, "id = ?", subscriptionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}
	if sub.SubscriberID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to cancel this subscription"})
		return
	}
	if sub.Status == models.SubscriptionCanceled {
		c.JSON(http.StatusConflict, gin.H{"error": "Subscription is already canceled"})
		return
	}

	if sub.StripeSubscriptionID != "" {
		_, err := stripeSubscription.Cancel(sub.StripeSubscriptionID, &stripe.SubscriptionCancelParams{
			Prorate: stripe.Bool(false),
		})
		if err != nil {
			utils.LogErrorWithUser(userID, err, "Error canceling the Stripe subscription")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error canceling the Stripe subscription"})
			return
		}
	}

	if err := db.DB.Model(&sub).Update("status", models.SubscriptionCanceled).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error updating the subscription status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating the subscription status"})
		return
	}

	utils.LogSuccessWithUser(userID, "Subscription canceled")
	c.JSON(http.StatusOK, gin.H{"message": "Subscription canceled successfully"})
}
