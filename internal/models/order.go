package models

import (
	"time"
)

// Statuts du cycle de vie d'une commande
const (
	OrderStatusPending        = "pending"
	OrderStatusAccepted       = "accepted"
	OrderStatusPreparing      = "preparing"
	OrderStatusReady          = "ready"
	OrderStatusOutForDelivery = "out-for-delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// ValidOrderStatus vérifie qu'un statut fait partie du cycle de vie connu
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusPreparing,
		OrderStatusReady, OrderStatusOutForDelivery, OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	}
	return false
}

// CartItem est une ligne de panier structurée (le filtrage par restaurant en dépend)
type CartItem struct {
	RestaurantID   string  `bson:"restaurantId" json:"restaurantId"`
	RestaurantName string  `bson:"restaurantName,omitempty" json:"restaurantName,omitempty"`
	Name           string  `bson:"name" json:"name"`
	Price          float64 `bson:"price" json:"price"`
	Quantity       int     `bson:"quantity" json:"quantity"`
}

// Order est le document central de la collection "orders".
// ⚠️ L'_id est interface{} : les anciennes commandes ont un _id string brut,
// les nouvelles un ObjectID. Le lookup doit tolérer les deux formes.
type Order struct {
	ID interface{} `bson:"_id,omitempty" json:"id"`

	// Identité du demandeur
	UID            string `bson:"uid" json:"uid"`
	UniversityID   string `bson:"universityId" json:"universityId"`
	UniversityName string `bson:"universityName" json:"universityName"`
	CampusID       string `bson:"campusId" json:"campusId"`
	CampusName     string `bson:"campusName" json:"campusName"`
	FirstName      string `bson:"firstName" json:"firstName"`
	LastName       string `bson:"lastName" json:"lastName"`
	Phone          string `bson:"phone" json:"phone"`
	Email          string `bson:"email" json:"email"`
	Gender         string `bson:"gender" json:"gender"`

	// Champs commerciaux
	Persons             int     `bson:"persons" json:"persons"`
	DeliveryCharge      float64 `bson:"deliveryCharge" json:"deliveryCharge"`
	ItemsTotal          float64 `bson:"itemsTotal" json:"itemsTotal"`
	GrandTotal          float64 `bson:"grandTotal" json:"grandTotal"`
	SpecialInstructions string  `bson:"specialInstructions" json:"specialInstructions"`

	// Double représentation du panier : chaîne legacy pour l'affichage,
	// liste structurée pour le filtrage par restaurant
	OrderItems      string     `bson:"orderItems" json:"orderItems"`
	Cart            []CartItem `bson:"cart" json:"cart"`
	RestaurantNames []string   `bson:"restaurantNames,omitempty" json:"restaurantNames,omitempty"`

	// Preuve de paiement (purement déclarative, jamais vérifiée)
	AccountTitle  string `bson:"accountTitle" json:"accountTitle"`
	BankName      string `bson:"bankName" json:"bankName"`
	ScreenshotURL string `bson:"screenshotUrl" json:"screenshotUrl"`

	// CreatedAtDisplay est figé à l'écriture : le fuseau de l'époque est conservé
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	CreatedAtDisplay string    `bson:"createdAtDisplay" json:"createdAtDisplay"`
	Status           string    `bson:"status" json:"status"`
}
