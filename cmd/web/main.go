package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"cafewifi/client"
	"cafewifi/config"
	"cafewifi/web"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf(".env load warning: %v", err)
	}

	cfg, err := config.LoadWeb()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	mode := os.Getenv("GIN_MODE")
	if mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Println("Running in debug mode")
	}

	router := gin.Default()
	router.LoadHTMLGlob(filepath.Join(cfg.TemplatesDir, "*.html"))

	api := client.New(cfg.APIBaseURL, cfg.APITimeout)
	web.Routes(router, web.NewHandler(api))
	log.Printf("Using cafe API at %s", cfg.APIBaseURL)

	log.Printf("Starting web front end on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
