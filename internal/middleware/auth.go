package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campusbites_back_end/internal/auth"
	"campusbites_back_end/internal/models"
	"campusbites_back_end/internal/profile"
)

// ProfileLoader résout un sujet vérifié vers son profil
type ProfileLoader interface {
	Load(ctx context.Context, uid string) (models.Profile, error)
}

// Authenticated vérifie la credential bearer puis charge le profil, et pose
// les deux dans le contexte Gin. Profil inconnu ou rôle non reconnu → 403
// (jamais 404 : on ne confirme pas l'existence des comptes).
func Authenticated(verifier auth.TokenVerifier, profiles ProfileLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := verifier.Verify(c.GetHeader("Authorization"))
		if err != nil {
			code := "INVALID_CREDENTIAL"
			if errors.Is(err, auth.ErrMissingToken) {
				code = "UNAUTHENTICATED"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentification requise", "code": code})
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		p, err := profiles.Load(ctx, identity.UID)
		if err != nil {
			if errors.Is(err, profile.ErrProfileNotFound) || errors.Is(err, profile.ErrRoleNotRecognized) {
				log.Printf("🚫 Accès refusé pour %s: %v", identity.UID, err)
				c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé", "code": "FORBIDDEN"})
				c.Abort()
				return
			}
			log.Println("❌ Erreur chargement profil:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur", "code": "PERSISTENCE_ERROR"})
			c.Abort()
			return
		}

		c.Set("identity", identity)
		c.Set("profile", p)
		c.Next()
	}
}

// ProfileFrom relit le profil posé par Authenticated
func ProfileFrom(c *gin.Context) (models.Profile, bool) {
	v, ok := c.Get("profile")
	if !ok {
		return models.Profile{}, false
	}
	p, ok := v.(models.Profile)
	return p, ok
}

// IdentityFrom relit l'identité posée par Authenticated
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get("identity")
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}
