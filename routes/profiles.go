package routes

import (
	"github.com/BonJenn/fanfiles/handlers/profiles"

	"github.com/gin-gonic/gin"
)

func ProfilesRoutes(r *gin.Engine) {
	r.GET("/profiles/:id", profiles.GetProfileByID)
}
