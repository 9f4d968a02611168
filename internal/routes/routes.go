package routes

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"campusbites_back_end/internal/auth"
	"campusbites_back_end/internal/cache"
	"campusbites_back_end/internal/captcha"
	"campusbites_back_end/internal/database"
	"campusbites_back_end/internal/handlers"
	"campusbites_back_end/internal/handlers/order"
	"campusbites_back_end/internal/handlers/reference"
	"campusbites_back_end/internal/middleware"
	"campusbites_back_end/internal/models"
	"campusbites_back_end/internal/profile"
	"campusbites_back_end/internal/search"
	"campusbites_back_end/internal/store"
	"campusbites_back_end/internal/utils"
)

// RegisterRoutes construit les handlers avec leurs dépendances injectées et
// enregistre toutes les routes. Les handles de connexion viennent d'en haut :
// aucun état global.
func RegisterRoutes(r *gin.Engine, db *database.Databases) {
	r.Use(cors.New(corsConfig()))

	verifier := auth.NewJWTVerifierFromEnv()
	profiles := profile.NewLoader(db.Mongo)
	audit := utils.NewAuditRecorder(db.Mongo)

	orderHandler := &order.Handler{
		Orders:      store.NewOrderStore(db.Mongo),
		Restaurants: store.NewRestaurantStore(db.Mongo),
		Captcha:     captcha.NewVerifier(),
		Audit:       audit,
		Notify: func(o models.Order) {
			if err := utils.SendOrderConfirmation(o); err != nil {
				log.Println("⚠️ Échec envoi e-mail de confirmation:", err)
			}
		},
	}
	refHandler := &reference.Handler{
		DB:       db.Mongo,
		Menu:     search.NewMenuIndex(db.Elastic),
		Settings: cache.NewSettingsCache(db.Redis, db.Mongo),
		Audit:    audit,
	}
	uploadHandler := &handlers.UploadHandler{MinIO: db.MinIO, Audit: audit}

	authRequired := middleware.Authenticated(verifier, profiles)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Lectures publiques (les étudiants parcourent le catalogue avant connexion)
	api.GET("/universities", refHandler.ListUniversities)
	api.GET("/campuses", refHandler.ListCampuses)
	api.GET("/campuses/:id/settings", refHandler.GetCampusSettings)
	api.GET("/restaurants", refHandler.ListRestaurants)
	api.GET("/menu", refHandler.ListMenuItems)
	api.GET("/menu/search", refHandler.SearchMenu)
	api.GET("/mart", refHandler.ListMartItems)

	// Tout le reste exige credential + profil
	protected := api.Group("", authRequired)

	protected.POST("/orders", middleware.OrderRateLimit(db.Redis), orderHandler.Create)
	protected.GET("/orders", orderHandler.List)
	protected.GET("/orders/all", orderHandler.ListAll)
	protected.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	protected.GET("/restaurants/:id/orders", orderHandler.RestaurantOrders)

	protected.POST("/uploads/payment-proof", uploadHandler.PaymentProof)

	protected.POST("/universities", refHandler.CreateUniversity)
	protected.DELETE("/universities/:id", refHandler.DeleteUniversity)
	protected.POST("/campuses", refHandler.CreateCampus)
	protected.PUT("/campuses/:id/settings", refHandler.UpdateCampusSettings)
	protected.POST("/restaurants", refHandler.CreateRestaurant)
	protected.PUT("/restaurants/:id", refHandler.UpdateRestaurant)
	protected.DELETE("/restaurants/:id", refHandler.DeleteRestaurant)
	protected.POST("/menu", refHandler.CreateMenuItem)
	protected.DELETE("/menu/:id", refHandler.DeleteMenuItem)
	protected.POST("/mart", refHandler.CreateMartItem)
	protected.DELETE("/mart/:id", refHandler.DeleteMartItem)
}

func corsConfig() cors.Config {
	origins := os.Getenv("CORS_ORIGINS")
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origins == "" {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = strings.Split(origins, ",")
	}
	return cfg
}
