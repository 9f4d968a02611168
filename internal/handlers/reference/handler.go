// Package reference porte le CRUD des données de référence (universités,
// campus, restaurants, menu, mart, settings). Pas d'invariant au-delà du
// modèle d'autorisation : vérification de périmètre puis écriture.
package reference

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"campusbites_back_end/internal/cache"
	"campusbites_back_end/internal/middleware"
	"campusbites_back_end/internal/models"
	"campusbites_back_end/internal/search"
	"campusbites_back_end/internal/utils"
)

type Handler struct {
	DB       *mongo.Database
	Menu     *search.MenuIndex
	Settings *cache.SettingsCache
	Audit    *utils.AuditRecorder
}

// requireProfile relit le profil ou répond 401
func requireProfile(c *gin.Context) (models.Profile, bool) {
	p, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié", "code": "UNAUTHENTICATED"})
	}
	return p, ok
}

// requireSuperAdmin : écriture des entités globales (universités, campus)
func requireSuperAdmin(c *gin.Context) (models.Profile, bool) {
	p, ok := requireProfile(c)
	if !ok {
		return p, false
	}
	if p.Role != models.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé au super administrateur", "code": "FORBIDDEN"})
		return p, false
	}
	return p, true
}
