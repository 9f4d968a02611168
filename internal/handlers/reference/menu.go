package reference

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusbites_back_end/internal/database"
	"campusbites_back_end/internal/models"
	"campusbites_back_end/internal/policy"
	"campusbites_back_end/internal/store"
	"campusbites_back_end/internal/utils"
)

// ListMenuItems — GET /api/menu?restaurantId= (public)
func (h *Handler) ListMenuItems(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if restaurantID := c.Query("restaurantId"); restaurantID != "" {
		filter["restaurantId"] = restaurantID
	}

	cursor, err := h.DB.Collection(database.CollMenuItems).Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération menu", "code": "PERSISTENCE_ERROR"})
		return
	}
	defer cursor.Close(ctx)

	items := []models.MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage", "code": "PERSISTENCE_ERROR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateMenuItem — POST /api/menu (campusAdmin du campus ou superAdmin)
// Chaîne de possession : l'article doit référencer un restaurant existant
func (h *Handler) CreateMenuItem(c *gin.Context) {
	p, ok := requireProfile(c)
	if !ok {
		return
	}

	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil || item.Name == "" || item.RestaurantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les champs 'name' et 'restaurantId' sont obligatoires", "code": "VALIDATION_FAILED"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var r models.Restaurant
	if err := h.DB.Collection(database.CollRestaurants).FindOne(ctx, store.IDFilter(item.RestaurantID)).Decode(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant introuvable", "code": "NOT_FOUND"})
		return
	}
	item.CampusID = r.CampusID

	if denial := policy.CanManageCampus(p, r.CampusID); denial != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": denial.Message, "code": denial.Code})
		return
	}

	item.ID = primitive.NewObjectID()
	if _, err := h.DB.Collection(database.CollMenuItems).InsertOne(ctx, item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création article", "code": "PERSISTENCE_ERROR"})
		return
	}

	// Indexation Elasticsearch en arrière-plan
	go h.Menu.IndexItem(item)

	h.Audit.LogAction(c, utils.ActionReferenceWrite, utils.ResourceReference, item.ID.Hex())
	c.JSON(http.StatusCreated, item)
}

// DeleteMenuItem — DELETE /api/menu/:id (campusAdmin du campus ou superAdmin)
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	p, ok := requireProfile(c)
	if !ok {
		return
	}

	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide", "code": "VALIDATION_FAILED"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var item models.MenuItem
	if err := h.DB.Collection(database.CollMenuItems).FindOne(ctx, bson.M{"_id": oid}).Decode(&item); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable", "code": "NOT_FOUND"})
		return
	}

	if denial := policy.CanManageCampus(p, item.CampusID); denial != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": denial.Message, "code": denial.Code})
		return
	}

	if _, err := h.DB.Collection(database.CollMenuItems).DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression article", "code": "PERSISTENCE_ERROR"})
		return
	}

	go h.Menu.RemoveItem(oid.Hex())

	h.Audit.LogAction(c, utils.ActionReferenceWrite, utils.ResourceReference, oid.Hex())
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// SearchMenu — GET /api/menu/search?q= (public, Elasticsearch)
func (h *Handler) SearchMenu(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre 'q' requis", "code": "VALIDATION_FAILED"})
		return
	}

	results, err := h.Menu.Search(query)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Recherche indisponible", "code": "EXTERNAL_SERVICE_FAILURE"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
