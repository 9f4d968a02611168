package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"campusbites_back_end/internal/middleware"
	"campusbites_back_end/internal/utils"
)

// UploadHandler reçoit les captures d'écran de virement. L'URL rendue est
// ensuite soumise telle quelle dans la commande — jamais vérifiée comme un
// vrai paiement.
type UploadHandler struct {
	MinIO *minio.Client
	Audit *utils.AuditRecorder
}

// PaymentProof — POST /api/uploads/payment-proof (multipart, champ "file")
func (h *UploadHandler) PaymentProof(c *gin.Context) {
	p, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié", "code": "UNAUTHENTICATED"})
		return
	}

	if h.MinIO == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Stockage de fichiers indisponible", "code": "EXTERNAL_SERVICE_FAILURE"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun fichier reçu", "code": "VALIDATION_FAILED"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur ouverture fichier", "code": "PERSISTENCE_ERROR"})
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	bucket := os.Getenv("MINIO_BUCKET")
	objectName := fmt.Sprintf("payment-proofs/%s/%s%s", p.UID, uuid.NewString(), filepath.Ext(fileHeader.Filename))

	_, err = h.MinIO.PutObject(ctx, bucket, objectName, file, fileHeader.Size,
		minio.PutObjectOptions{ContentType: fileHeader.Header.Get("Content-Type")})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload", "code": "EXTERNAL_SERVICE_FAILURE"})
		return
	}

	url := fmt.Sprintf("http://%s/%s/%s", os.Getenv("MINIO_ENDPOINT"), bucket, objectName)

	h.Audit.LogAction(c, utils.ActionUploadProof, utils.ResourceUpload, objectName)
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
