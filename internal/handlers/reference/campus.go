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
	"campusbites_back_end/internal/utils"
)

// ListCampuses — GET /api/campuses?universityId= (public)
func (h *Handler) ListCampuses(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if universityID := c.Query("universityId"); universityID != "" {
		filter["universityId"] = universityID
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := h.DB.Collection(database.CollCampuses).Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération campus", "code": "PERSISTENCE_ERROR"})
		return
	}
	defer cursor.Close(ctx)

	campuses := []models.Campus{}
	if err := cursor.All(ctx, &campuses); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage", "code": "PERSISTENCE_ERROR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"campuses": campuses})
}

// CreateCampus — POST /api/campuses (superAdmin)
// Chaîne de possession : un campus référence son université
func (h *Handler) CreateCampus(c *gin.Context) {
	if _, ok := requireSuperAdmin(c); !ok {
		return
	}

	var campus models.Campus
	if err := c.ShouldBindJSON(&campus); err != nil || campus.Name == "" || campus.UniversityID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les champs 'name' et 'universityId' sont obligatoires", "code": "VALIDATION_FAILED"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	// Vérifie que l'université existe
	oid, err := primitive.ObjectIDFromHex(campus.UniversityID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID université invalide", "code": "VALIDATION_FAILED"})
		return
	}
	var u models.University
	if err := h.DB.Collection(database.CollUniversities).FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Université introuvable", "code": "NOT_FOUND"})
		return
	}
	campus.UniversityName = u.Name

	campus.ID = primitive.NewObjectID()
	if _, err := h.DB.Collection(database.CollCampuses).InsertOne(ctx, campus); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création campus", "code": "PERSISTENCE_ERROR"})
		return
	}

	h.Audit.LogAction(c, utils.ActionReferenceWrite, utils.ResourceReference, campus.ID.Hex())
	c.JSON(http.StatusCreated, campus)
}

// GetCampusSettings — GET /api/campuses/:id/settings
// Passe par le cache Redis ; défaut appliqué si aucun document
func (h *Handler) GetCampusSettings(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	settings, err := h.Settings.Get(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération configuration", "code": "PERSISTENCE_ERROR"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateCampusSettings — PUT /api/campuses/:id/settings (campusAdmin du campus ou superAdmin)
func (h *Handler) UpdateCampusSettings(c *gin.Context) {
	p, ok := requireProfile(c)
	if !ok {
		return
	}
	campusID := c.Param("id")

	if denial := policy.CanManageCampus(p, campusID); denial != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": denial.Message, "code": denial.Code})
		return
	}

	var settings models.CampusSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "code": "VALIDATION_FAILED"})
		return
	}
	settings.CampusID = campusID

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := h.DB.Collection(database.CollSettings).ReplaceOne(ctx, bson.M{"campusId": campusID}, settings, opts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour configuration", "code": "PERSISTENCE_ERROR"})
		return
	}

	h.Settings.Invalidate(ctx, campusID)
	h.Audit.LogAction(c, utils.ActionReferenceWrite, utils.ResourceReference, campusID)
	c.JSON(http.StatusOK, settings)
}
