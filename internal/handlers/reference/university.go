package reference

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusbites_back_end/internal/database"
	"campusbites_back_end/internal/models"
	"campusbites_back_end/internal/utils"
)

// ListUniversities — GET /api/universities (public)
func (h *Handler) ListUniversities(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := h.DB.Collection(database.CollUniversities).Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération universités", "code": "PERSISTENCE_ERROR"})
		return
	}
	defer cursor.Close(ctx)

	universities := []models.University{}
	if err := cursor.All(ctx, &universities); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage", "code": "PERSISTENCE_ERROR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"universities": universities})
}

// CreateUniversity — POST /api/universities (superAdmin)
func (h *Handler) CreateUniversity(c *gin.Context) {
	if _, ok := requireSuperAdmin(c); !ok {
		return
	}

	var u models.University
	if err := c.ShouldBindJSON(&u); err != nil || u.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'name' est obligatoire", "code": "VALIDATION_FAILED"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	u.ID = primitive.NewObjectID()
	if _, err := h.DB.Collection(database.CollUniversities).InsertOne(ctx, u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création université", "code": "PERSISTENCE_ERROR"})
		return
	}

	h.Audit.LogAction(c, utils.ActionReferenceWrite, utils.ResourceReference, u.ID.Hex())
	c.JSON(http.StatusCreated, u)
}

// DeleteUniversity — DELETE /api/universities/:id (superAdmin)
func (h *Handler) DeleteUniversity(c *gin.Context) {
	if _, ok := requireSuperAdmin(c); !ok {
		return
	}

	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide", "code": "VALIDATION_FAILED"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	res, err := h.DB.Collection(database.CollUniversities).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression", "code": "PERSISTENCE_ERROR"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Université introuvable", "code": "NOT_FOUND"})
		return
	}

	h.Audit.LogAction(c, utils.ActionReferenceWrite, utils.ResourceReference, c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
