package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"cafewifi/auth"
	"cafewifi/config"
	"cafewifi/controller"
	"cafewifi/database"
	"cafewifi/route"
	"cafewifi/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf(".env load warning: %v", err)
	}

	cfg, err := config.LoadAPI()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	log.Println("Database connected and migrated")

	mode := os.Getenv("GIN_MODE")
	if mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Println("Running in debug mode")
	}

	router := gin.Default()

	origins := []string{"http://localhost:8080"}
	origins = append(origins, cfg.AllowedOrigins...)
	router.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	ctl := controller.NewCafeController(store.New(db), auth.NewGuard(cfg.APIKey))
	route.CafeRoutes(router, ctl)
	log.Println("Routes configured successfully")

	log.Printf("Starting cafe API on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
