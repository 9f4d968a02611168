package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"campusbites_back_end/internal/config"
	"campusbites_back_end/internal/database"
	"campusbites_back_end/internal/routes"
)

func main() {
	config.Load()

	db := database.Connect()

	r := gin.Default()
	routes.RegisterRoutes(r, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur CampusBites lancé sur le port", port)
	r.Run(":" + port)
}
