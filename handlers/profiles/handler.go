package profiles

import (
	"net/http"

	"github.com/BonJenn/fanfiles/db"
	"github.com/BonJenn/fanfiles/models"

	"github.com/gin-gonic/gin"
)

// GetProfileByID returns a creator profile
// @Summary Get a profile by ID
// @Description Return the public profile of a user. Profiles are owned by the external identity provider; this is a read-only surface.
// @Tags profiles
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]string "error: Profile not found"
// @Router /profiles/{id} [get]
func GetProfileByID(c *gin.Context) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}
