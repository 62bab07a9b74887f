package main

import (
	"log"
	"os"

	"github.com/BonJenn/fanfiles/db"
	_ "github.com/BonJenn/fanfiles/docs"
	"github.com/BonJenn/fanfiles/routes"
	"github.com/BonJenn/fanfiles/utils"

	"github.com/gin-gonic/gin"
)

// @title FanFiles API
// @version 1.0
// @description Creator-subscription content platform: feed, paywall and creator dashboards
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the JWT with the Bearer prefix: Bearer <JWT>
func main() {

	gin.SetMode(gin.ReleaseMode)

	db.InitDB()

	if err := utils.InitCloudinary(); err != nil {
		log.Printf("Warning: Cloudinary initialization failed: %v", err)
		log.Println("Media upload will not work correctly.")
	}

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Error starting the server:", err)
	}
}
