package orders

import (
	"campusbites_back_end/internal/models"
	"campusbites_back_end/internal/store"
)

// FilterForRestaurant réduit une commande à la vue d'un restaurant : seules
// ses lignes de panier sont conservées et itemsTotal est recalculé sur
// exactement ces lignes.
//
// Limitation assumée : une commande legacy au panier structuré vide est
// rendue telle quelle (impossible de découper une chaîne affichable).
func FilterForRestaurant(o models.Order, restaurantID, restaurantName string) models.Order {
	if len(o.Cart) == 0 {
		return o
	}

	kept := make([]models.CartItem, 0, len(o.Cart))
	var total float64
	for _, item := range o.Cart {
		if !itemBelongsTo(item, restaurantID, restaurantName) {
			continue
		}
		kept = append(kept, item)
		total += item.Price * float64(item.Quantity)
	}

	o.Cart = kept
	o.ItemsTotal = total
	return o
}

func itemBelongsTo(item models.CartItem, restaurantID, restaurantName string) bool {
	if item.RestaurantID != "" && store.SameID(item.RestaurantID, restaurantID) {
		return true
	}
	return restaurantName != "" && item.RestaurantName == restaurantName
}
