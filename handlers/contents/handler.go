package contents

import (
	"net/http"
	"strconv"

	"github.com/BonJenn/fanfiles/db"
	"github.com/BonJenn/fanfiles/middleware"
	"github.com/BonJenn/fanfiles/models"
	"github.com/BonJenn/fanfiles/services/access"
	"github.com/BonJenn/fanfiles/stores"
	"github.com/BonJenn/fanfiles/utils"

	"github.com/gin-gonic/gin"
)

func newGate() *access.Gate {
	return access.NewGate(stores.NewGormLedgerStore(db.DB), access.PolicyFromEnv())
}

// CreateContent creates a new content item
// @Summary Create a content item
// @Description Upload a media file and publish it as a public or paid item. Public items must be free; paid items need a positive price in minor currency units.
// @Tags contents
// @Accept multipart/form-data
// @Produce json
// @Param mediaType formData string true "image or video"
// @Param visibility formData string true "public or paid"
// @Param priceMinorUnits formData int false "Price in minor units; required positive for paid items"
// @Param description formData string false "Description"
// @Param media formData file true "Media file"
// @Security BearerAuth
// @Success 201 {object} models.ContentItem
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /contents [post]
func CreateContent(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	mediaType := models.MediaType(c.Request.FormValue("mediaType"))
	if mediaType != models.MediaImage && mediaType != models.MediaVideo {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mediaType must be image or video"})
		return
	}

	visibility := models.Visibility(c.Request.FormValue("visibility"))
	if visibility != models.VisibilityPublic && visibility != models.VisibilityPaid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "visibility must be public or paid"})
		return
	}

	var price int64
	if priceStr := c.Request.FormValue("priceMinorUnits"); priceStr != "" {
		var err error
		price, err = strconv.ParseInt(priceStr, 10, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "priceMinorUnits must be a non-negative integer"})
			return
		}
	}
	// Public items are free; a "paid" item priced at zero is a
	// misconfigured paywall and rejected outright.
	if visibility == models.VisibilityPublic && price != 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "public items must have priceMinorUnits = 0"})
		return
	}
	if visibility == models.VisibilityPaid && price == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paid items need a positive priceMinorUnits"})
		return
	}

	file, err := c.FormFile("media")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Media file is required"})
		return
	}
	mediaURL, err := utils.UploadMedia(file, "content_media", string(mediaType))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading media: " + err.Error()})
		return
	}

	item := models.ContentItem{
		CreatorID:       userID.(string),
		MediaType:       mediaType,
		Visibility:      visibility,
		PriceMinorUnits: price,
		MediaURL:        mediaURL,
		Description:     c.Request.FormValue("description"),
	}

	if err := db.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating content item: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Content item created")
	c.JSON(http.StatusCreated, item)
}

// GetContentByID returns one shaped content item
// @Summary Get a content item by ID
// @Description Retrieve a single item shaped by the viewer's access decision. A locked item carries price and media type but no media URL.
// @Tags contents
// @Produce json
// @Param id path string true "Content item ID"
// @Success 200 {object} models.ShapedContentItem
// @Failure 404 {object} map[string]string "error: Content item not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /contents/{id} [get]
func GetContentByID(c *gin.Context) {
	content := stores.NewGormContentStore(db.DB)
	item, err := content.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	viewerID := middleware.ViewerID(c)
	gate := newGate()
	snap, err := gate.SnapshotFor(c.Request.Context(), viewerID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, access.Shape(item, gate.Decide(snap, item)))
}

// UpdateContent edits a content item
// @Summary Update a content item
// @Description Edit the description of an owned item. Price and visibility are frozen once any purchase references the item.
// @Tags contents
// @Accept json
// @Produce json
// @Param id path string true "Content item ID"
// @Security BearerAuth
// @Success 200 {object} models.ContentItem
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not the owner"
// @Failure 404 {object} map[string]string "error: Content item not found"
// @Failure 409 {object} map[string]string "error: Item already purchased"
// @Router /contents/{id} [patch]
func UpdateContent(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var item models.ContentItem
	if err := db.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content item not found"})
		return
	}
	if item.CreatorID != userID.(string) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this item"})
		return
	}

	var body struct {
		Description     *string `json:"description"`
		PriceMinorUnits *int64  `json:"priceMinorUnits"`
	}
	if !utils.ValidateRequestBody(c, &body) {
		return
	}

	if body.PriceMinorUnits != nil {
		var purchases int64
		if err := db.DB.Model(&models.Purchase{}).Where("content_item_id = ?", item.ID).Count(&purchases).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking purchases: " + err.Error()})
			return
		}
		if purchases > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Price is frozen once the item has been purchased"})
			return
		}
		if item.Visibility == models.VisibilityPaid && *body.PriceMinorUnits <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "paid items need a positive priceMinorUnits"})
			return
		}
		if item.Visibility == models.VisibilityPublic && *body.PriceMinorUnits != 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "public items must have priceMinorUnits = 0"})
			return
		}
		item.PriceMinorUnits = *body.PriceMinorUnits
	}
	if body.Description != nil {
		item.Description = *body.Description
	}

	if err := db.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating content item: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteContent removes a content item
// @Summary Delete a content item
// @Description Delete an owned item and its media asset. An item referenced by any purchase cannot be deleted; the purchase ledger stays intact.
// @Tags contents
// @Produce json
// @Param id path string true "Content item ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Content item deleted"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not the owner"
// @Failure 404 {object} map[string]string "error: Content item not found"
// @Failure 409 {object} map[string]string "error: Item has purchases"
// @Router /contents/{id} [delete]
func DeleteContent(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var item models.ContentItem
	if err := db.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content item not found"})
		return
	}
	if item.CreatorID != userID.(string) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this item"})
		return
	}

	var purchases int64
	if err := db.DB.Model(&models.Purchase{}).Where("content_item_id = ?", item.ID).Count(&purchases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking purchases: " + err.Error()})
		return
	}
	if purchases > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Purchased items cannot be deleted"})
		return
	}

	if err := db.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting content item: " + err.Error()})
		return
	}

	if item.MediaURL != "" {
		if err := utils.DeleteMedia(item.MediaURL); err != nil {
			// The row is gone; a stranded asset is logged, not surfaced.
			utils.LogErrorWithUser(userID, err, "Error deleting media asset")
		}
	}

	utils.LogSuccessWithUser(userID, "Content item deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Content item deleted"})
}

// RecordView appends a view event
// @Summary Record a view
// @Description Append a view event to the ledger. Anonymous viewers are recorded without a viewer id.
// @Tags contents
// @Produce json
// @Param id path string true "Content item ID"
// @Success 201 {object} map[string]bool "success: true"
// @Failure 404 {object} map[string]string "error: Content item not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /contents/{id}/view [post]
func RecordView(c *gin.Context) {
	var item models.ContentItem
	if err := db.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content item not found"})
		return
	}

	event := models.ViewEvent{
		ContentItemID: item.ID,
		CreatorID:     item.CreatorID,
	}
	if viewerID := middleware.ViewerID(c); viewerID != "" {
		event.ViewerID = &viewerID
	}

	if err := db.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording view: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}
