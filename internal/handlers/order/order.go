// Package order porte le pipeline central : validation → identité →
// reCAPTCHA → politique d'accès → normalisation → persistance, puis les
// règles de visibilité campus/restaurant en lecture et mutation.
package order

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"campusbites_back_end/internal/captcha"
	"campusbites_back_end/internal/middleware"
	"campusbites_back_end/internal/models"
	"campusbites_back_end/internal/orders"
	"campusbites_back_end/internal/policy"
	"campusbites_back_end/internal/store"
	"campusbites_back_end/internal/utils"
)

// OrderRepo est le contrat de persistance des commandes
type OrderRepo interface {
	Insert(ctx context.Context, o models.Order) (string, error)
	Find(ctx context.Context, filter bson.M, limit int64) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, scope bson.M, status string) (models.Order, error)
}

// RestaurantRepo résout un restaurant (nom + campus) par identifiant
type RestaurantRepo interface {
	Get(ctx context.Context, id string) (models.Restaurant, error)
}

// Handler reçoit ses dépendances à la construction : pas d'état global,
// une seule connexion physique partagée via le store injecté.
type Handler struct {
	Orders      OrderRepo
	Restaurants RestaurantRepo
	Captcha     captcha.Checker
	Audit       *utils.AuditRecorder
	Notify      func(models.Order) // confirmation best effort, nil = désactivé
}

// Create — POST /api/orders
func (h *Handler) Create(c *gin.Context) {
	p, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié", "code": "UNAUTHENTICATED"})
		return
	}
	identity, _ := middleware.IdentityFrom(c)

	var req orders.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champs obligatoires manquants ou invalides", "code": "VALIDATION_FAILED", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if err := h.Captcha.Check(ctx, req.CaptchaToken); err != nil {
		h.Audit.LogFailedAction(c, utils.ActionOrderCreate, utils.ResourceOrder, "", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vérification reCAPTCHA échouée", "code": "VERIFICATION_FAILED"})
		return
	}

	if denial := policy.CanCreateOrder(p, req.CampusID); denial != nil {
		log.Printf("🚫 Création refusée pour %s (%s): %s", p.UID, p.Role, denial.Code)
		h.Audit.LogFailedAction(c, utils.ActionOrderCreate, utils.ResourceOrder, "", denial.Code)
		c.JSON(http.StatusForbidden, gin.H{"error": denial.Message, "code": denial.Code})
		return
	}

	order := orders.Normalize(req, p, identity.Email, time.Now())

	id, err := h.Orders.Insert(ctx, order)
	if err != nil {
		// Pas de retry : une réinsertion pourrait dupliquer la commande
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement commande", "code": "PERSISTENCE_ERROR"})
		return
	}
	order.ID = id

	h.Audit.LogAction(c, utils.ActionOrderCreate, utils.ResourceOrder, id)
	if h.Notify != nil {
		go h.Notify(order)
	}

	resp := gin.H{"id": id, "status": order.Status}
	if order.BankName != "" || order.AccountTitle != "" {
		if qr, err := utils.PaymentQR(order.BankName, order.AccountTitle, id, order.GrandTotal); err == nil {
			resp["paymentQr"] = qr
		}
	}

	log.Printf("✅ Commande %s créée pour %s (campus %s)", id, p.UID, order.CampusID)
	c.JSON(http.StatusCreated, resp)
}

// List — GET /api/orders : périmètre dérivé du rôle, jamais des paramètres
func (h *Handler) List(c *gin.Context) {
	p, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié", "code": "UNAUTHENTICATED"})
		return
	}

	scope, denial := policy.CanListOrders(p)
	if denial != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": denial.Message, "code": denial.Code})
		return
	}

	filter := bson.M{}
	if !scope.All {
		filter = store.CampusScope(scope.CampusID)
	}

	h.findAndRespond(c, filter)
}

// ListAll — GET /api/orders/all : superAdmin uniquement
func (h *Handler) ListAll(c *gin.Context) {
	p, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié", "code": "UNAUTHENTICATED"})
		return
	}

	if denial := policy.CanListAll(p); denial != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": denial.Message, "code": denial.Code})
		return
	}

	h.findAndRespond(c, bson.M{})
}

func (h *Handler) findAndRespond(c *gin.Context, filter bson.M) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)

	list, err := h.Orders.Find(ctx, filter, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes", "code": "PERSISTENCE_ERROR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": list})
}

// UpdateStatus — PATCH /api/orders/:id/status
// Mutation atomique du seul champ status ; le scope du rôle fait partie du
// filtre de lookup (une commande hors périmètre ressort en 404).
func (h *Handler) UpdateStatus(c *gin.Context) {
	p, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié", "code": "UNAUTHENTICATED"})
		return
	}
	orderID := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'status' est obligatoire", "code": "VALIDATION_FAILED"})
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu: " + req.Status, "code": "VALIDATION_FAILED"})
		return
	}

	scope, denial := policy.CanUpdateStatus(p)
	if denial != nil {
		log.Printf("🚫 Mise à jour de statut refusée pour %s (%s)", p.UID, p.Role)
		c.JSON(http.StatusForbidden, gin.H{"error": denial.Message, "code": denial.Code})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var scopeFilter bson.M
	if scope.CampusID != "" {
		scopeFilter = store.CampusScope(scope.CampusID)
	} else {
		// Le nom du restaurant élargit le match aux commandes qui ne
		// portent que le set dénormalisé restaurantNames
		name := ""
		if r, err := h.Restaurants.Get(ctx, scope.RestaurantID); err == nil {
			name = r.Name
		}
		scopeFilter = store.RestaurantScope(scope.RestaurantID, name)
	}

	updated, err := h.Orders.UpdateStatus(ctx, orderID, scopeFilter, req.Status)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable", "code": "NOT_FOUND"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour commande", "code": "PERSISTENCE_ERROR"})
		return
	}

	h.Audit.LogAction(c, utils.ActionOrderStatusUpdate, utils.ResourceOrder, orderID)
	log.Printf("✅ Commande %s → statut %s (par %s)", orderID, req.Status, p.UID)
	c.JSON(http.StatusOK, updated)
}

// RestaurantOrders — GET /api/restaurants/:id/orders
// Vue d'un restaurant : panier réduit à ses lignes, itemsTotal recalculé.
func (h *Handler) RestaurantOrders(c *gin.Context) {
	p, ok := middleware.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié", "code": "UNAUTHENTICATED"})
		return
	}
	restaurantID := c.Param("id")

	if denial := policy.CanViewRestaurantOrders(p, restaurantID); denial != nil {
		log.Printf("🚫 Listing restaurant %s refusé pour %s", restaurantID, p.UID)
		c.JSON(http.StatusForbidden, gin.H{"error": denial.Message, "code": denial.Code})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	r, err := h.Restaurants.Get(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, store.ErrRestaurantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant introuvable", "code": "NOT_FOUND"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur", "code": "PERSISTENCE_ERROR"})
		return
	}

	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
	list, err := h.Orders.Find(ctx, store.RestaurantScope(restaurantID, r.Name), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes", "code": "PERSISTENCE_ERROR"})
		return
	}

	filtered := make([]models.Order, 0, len(list))
	for _, o := range list {
		filtered = append(filtered, orders.FilterForRestaurant(o, restaurantID, r.Name))
	}

	c.JSON(http.StatusOK, gin.H{"orders": filtered, "restaurant": r.Name})
}
