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
	"campusbites_back_end/internal/utils"
)

// ListMartItems — GET /api/mart?campusId= (public)
// ⚠️ Le stock affiché est indicatif : aucune garantie de cohérence d'inventaire
func (h *Handler) ListMartItems(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if campusID := c.Query("campusId"); campusID != "" {
		filter["campusId"] = campusID
	}

	cursor, err := h.DB.Collection(database.CollMartItems).Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération articles mart", "code": "PERSISTENCE_ERROR"})
		return
	}
	defer cursor.Close(ctx)

	items := []models.MartItem{}
	if err := cursor.All(ctx, &items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage", "code": "PERSISTENCE_ERROR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateMartItem — POST /api/mart (campusAdmin du campus ou superAdmin)
func (h *Handler) CreateMartItem(c *gin.Context) {
	p, ok := requireProfile(c)
	if !ok {
		return
	}

	var item models.MartItem
	if err := c.ShouldBindJSON(&item); err != nil || item.Name == "" || item.CampusID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les champs 'name' et 'campusId' sont obligatoires", "code": "VALIDATION_FAILED"})
		return
	}

	if denial := policy.CanManageCampus(p, item.CampusID); denial != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": denial.Message, "code": denial.Code})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	item.ID = primitive.NewObjectID()
	if _, err := h.DB.Collection(database.CollMartItems).InsertOne(ctx, item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création article", "code": "PERSISTENCE_ERROR"})
		return
	}

	h.Audit.LogAction(c, utils.ActionReferenceWrite, utils.ResourceReference, item.ID.Hex())
	c.JSON(http.StatusCreated, item)
}

// DeleteMartItem — DELETE /api/mart/:id (campusAdmin du campus ou superAdmin)
func (h *Handler) DeleteMartItem(c *gin.Context) {
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

	var item models.MartItem
	if err := h.DB.Collection(database.CollMartItems).FindOne(ctx, bson.M{"_id": oid}).Decode(&item); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable", "code": "NOT_FOUND"})
		return
	}

	if denial := policy.CanManageCampus(p, item.CampusID); denial != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": denial.Message, "code": denial.Code})
		return
	}

	if _, err := h.DB.Collection(database.CollMartItems).DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression article", "code": "PERSISTENCE_ERROR"})
		return
	}

	h.Audit.LogAction(c, utils.ActionReferenceWrite, utils.ResourceReference, oid.Hex())
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
