package utils

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"campusbites_back_end/internal/database"
	"campusbites_back_end/internal/models"
)

// Actions d'audit prédéfinies
const (
	ActionOrderCreate       = "order.create"
	ActionOrderStatusUpdate = "order.status_update"
	ActionUploadProof       = "upload.payment_proof"
	ActionReferenceWrite    = "reference.write"
)

// Resources d'audit
const (
	ResourceOrder      = "order"
	ResourceUpload     = "upload"
	ResourceRestaurant = "restaurant"
	ResourceReference  = "reference"
)

// AuditRecorder écrit la collection "logs". Best effort : l'écriture part en
// goroutine et un échec n'interrompt jamais l'opération principale.
type AuditRecorder struct {
	db *mongo.Database
}

func NewAuditRecorder(db *mongo.Database) *AuditRecorder {
	return &AuditRecorder{db: db}
}

// LogAction enregistre une action réussie
func (a *AuditRecorder) LogAction(c *gin.Context, action, resource, resourceID string) {
	a.record(c, action, resource, resourceID, true, "")
}

// LogFailedAction enregistre une action échouée
func (a *AuditRecorder) LogFailedAction(c *gin.Context, action, resource, resourceID, errorMsg string) {
	a.record(c, action, resource, resourceID, false, errorMsg)
}

func (a *AuditRecorder) record(c *gin.Context, action, resource, resourceID string, success bool, errorMsg string) {
	if a == nil || a.db == nil {
		return
	}

	// On capture tout avant la goroutine : le contexte Gin n'est pas sûr
	// hors du cycle de la requête
	entry := models.AuditLog{
		ID:         uuid.NewString(),
		UID:        c.GetString("uid"),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
		Success:    success,
		ErrorMsg:   errorMsg,
		Timestamp:  time.Now(),
	}
	if p, ok := c.Get("profile"); ok {
		if prof, ok := p.(models.Profile); ok {
			entry.UID = prof.UID
			entry.UserEmail = prof.Email
		}
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := a.db.Collection(database.CollLogs).InsertOne(ctx, entry); err != nil {
			log.Printf("❌ Erreur enregistrement log audit: %v", err)
		}
	}()
}
