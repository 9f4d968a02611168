// Package orders met en forme les commandes soumises par des clients
// hétérogènes (panier structuré ou chaîne legacy) vers l'unique schéma
// persisté. Après normalisation, plus aucun branchement sur la forme.
package orders

import (
	"fmt"
	"log"
	"strings"
	"time"

	"campusbites_back_end/internal/models"
)

// displayLocation fige le fuseau d'affichage des commandes. Chargé une fois :
// l'horodatage affiché est gelé à l'écriture, jamais recalculé en lecture.
var displayLocation = loadDisplayLocation()

func loadDisplayLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Karachi")
	if err != nil {
		log.Println("⚠️ Fuseau Asia/Karachi indisponible, fallback UTC+5")
		return time.FixedZone("PKT", 5*60*60)
	}
	return loc
}

// CreateOrderRequest est la forme brute soumise par le client.
// firstName, phone, gender et grandTotal sont obligatoires ; tout le reste
// est cosmétique et défaulte à vide plutôt que de rejeter la commande.
type CreateOrderRequest struct {
	UniversityID   string `json:"universityId"`
	UniversityName string `json:"universityName"`
	CampusID       string `json:"campusId"`
	CampusName     string `json:"campusName"`

	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email"`
	Gender    string `json:"gender" binding:"required,oneof=male female"`

	Persons             int      `json:"persons"`
	DeliveryCharge      float64  `json:"deliveryCharge"`
	ItemsTotal          float64  `json:"itemsTotal"`
	GrandTotal          *float64 `json:"grandTotal" binding:"required"`
	SpecialInstructions string   `json:"specialInstructions"`

	OrderItems      string            `json:"orderItems"`
	Cart            []models.CartItem `json:"cart"`
	RestaurantNames []string          `json:"restaurantNames"`

	AccountTitle  string `json:"accountTitle"`
	BankName      string `json:"bankName"`
	ScreenshotURL string `json:"screenshotUrl"`

	CaptchaToken string `json:"captchaToken"`
}

// Normalize produit le document persisté. Statut initial toujours "pending" ;
// l'horodatage machine et la chaîne d'affichage localisée sont générés ici,
// tous deux figés à l'écriture.
func Normalize(req CreateOrderRequest, p models.Profile, identityEmail string, now time.Time) models.Order {
	email := req.Email
	if email == "" {
		email = identityEmail
	}

	cart := req.Cart
	if cart == nil {
		// Soumission legacy (chaîne seule) : liste structurée vide. Le
		// filtrage par restaurant dégradera alors vers la commande entière.
		cart = []models.CartItem{}
	}

	orderItems := req.OrderItems
	if orderItems == "" && len(cart) > 0 {
		orderItems = renderCart(cart)
	}

	var grandTotal float64
	if req.GrandTotal != nil {
		grandTotal = *req.GrandTotal
	}

	return models.Order{
		UID:            p.UID,
		UniversityID:   req.UniversityID,
		UniversityName: req.UniversityName,
		CampusID:       req.CampusID,
		CampusName:     req.CampusName,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Email:          email,
		Gender:         req.Gender,

		Persons:             req.Persons,
		DeliveryCharge:      req.DeliveryCharge,
		ItemsTotal:          req.ItemsTotal,
		GrandTotal:          grandTotal,
		SpecialInstructions: req.SpecialInstructions,

		OrderItems:      orderItems,
		Cart:            cart,
		RestaurantNames: dedupeNames(req.RestaurantNames),

		AccountTitle:  req.AccountTitle,
		BankName:      req.BankName,
		ScreenshotURL: req.ScreenshotURL,

		CreatedAt:        now,
		CreatedAtDisplay: now.In(displayLocation).Format("02/01/2006, 3:04:05 pm"),
		Status:           models.OrderStatusPending,
	}
}

// renderCart synthétise la forme affichable quand le client n'en a pas fourni
func renderCart(cart []models.CartItem) string {
	lines := make([]string, 0, len(cart))
	for _, item := range cart {
		lines = append(lines, fmt.Sprintf("%dx %s (Rs %.0f)", item.Quantity, item.Name, item.Price))
	}
	return strings.Join(lines, ", ")
}

// dedupeNames trie les doublons et les entrées vides ; rend nil quand il ne
// reste rien (le champ est alors omis du document, jamais stocké vide)
func dedupeNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
