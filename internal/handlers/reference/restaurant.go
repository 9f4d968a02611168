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
	"campusbites_back_end/internal/policy"
	"campusbites_back_end/internal/store"
	"campusbites_back_end/internal/utils"
)

// ListRestaurants — GET /api/restaurants?campusId= (public)
func (h *Handler) ListRestaurants(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if campusID := c.Query("campusId"); campusID != "" {
		filter["campusId"] = campusID
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := h.DB.Collection(database.CollRestaurants).Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération restaurants", "code": "PERSISTENCE_ERROR"})
		return
	}
	defer cursor.Close(ctx)

	restaurants := []models.Restaurant{}
	if err := cursor.All(ctx, &restaurants); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage", "code": "PERSISTENCE_ERROR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// CreateRestaurant — POST /api/restaurants (campusAdmin du campus ou superAdmin)
func (h *Handler) CreateRestaurant(c *gin.Context) {
	p, ok := requireProfile(c)
	if !ok {
		return
	}

	var r models.Restaurant
	if err := c.ShouldBindJSON(&r); err != nil || r.Name == "" || r.CampusID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les champs 'name' et 'campusId' sont obligatoires", "code": "VALIDATION_FAILED"})
		return
	}

	if denial := policy.CanManageCampus(p, r.CampusID); denial != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": denial.Message, "code": denial.Code})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	oid := primitive.NewObjectID()
	r.ID = oid
	if _, err := h.DB.Collection(database.CollRestaurants).InsertOne(ctx, r); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création restaurant", "code": "PERSISTENCE_ERROR"})
		return
	}

	h.Audit.LogAction(c, utils.ActionReferenceWrite, utils.ResourceRestaurant, oid.Hex())
	c.JSON(http.StatusCreated, r)
}

// UpdateRestaurant — PUT /api/restaurants/:id (campusAdmin du campus ou superAdmin)
// Lookup avec tolérance des deux encodages d'_id
func (h *Handler) UpdateRestaurant(c *gin.Context) {
	p, ok := requireProfile(c)
	if !ok {
		return
	}
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var existing models.Restaurant
	if err := h.DB.Collection(database.CollRestaurants).FindOne(ctx, store.IDFilter(id)).Decode(&existing); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant introuvable", "code": "NOT_FOUND"})
		return
	}

	if denial := policy.CanManageCampus(p, existing.CampusID); denial != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": denial.Message, "code": denial.Code})
		return
	}

	var input struct {
		Name     string `json:"name"`
		ImageURL string `json:"imageUrl"`
		Timing   string `json:"timing"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "code": "VALIDATION_FAILED"})
		return
	}

	update := bson.M{}
	if input.Name != "" {
		update["name"] = input.Name
	}
	if input.ImageURL != "" {
		update["imageUrl"] = input.ImageURL
	}
	if input.Timing != "" {
		update["timing"] = input.Timing
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun champ à mettre à jour", "code": "VALIDATION_FAILED"})
		return
	}

	if _, err := h.DB.Collection(database.CollRestaurants).UpdateOne(ctx, store.IDFilter(id), bson.M{"$set": update}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour restaurant", "code": "PERSISTENCE_ERROR"})
		return
	}

	h.Audit.LogAction(c, utils.ActionReferenceWrite, utils.ResourceRestaurant, id)
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DeleteRestaurant — DELETE /api/restaurants/:id (campusAdmin du campus ou superAdmin)
func (h *Handler) DeleteRestaurant(c *gin.Context) {
	p, ok := requireProfile(c)
	if !ok {
		return
	}
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var existing models.Restaurant
	if err := h.DB.Collection(database.CollRestaurants).FindOne(ctx, store.IDFilter(id)).Decode(&existing); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant introuvable", "code": "NOT_FOUND"})
		return
	}

	if denial := policy.CanManageCampus(p, existing.CampusID); denial != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": denial.Message, "code": denial.Code})
		return
	}

	if _, err := h.DB.Collection(database.CollRestaurants).DeleteOne(ctx, store.IDFilter(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression restaurant", "code": "PERSISTENCE_ERROR"})
		return
	}

	h.Audit.LogAction(c, utils.ActionReferenceWrite, utils.ResourceRestaurant, id)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
