package orders_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"campusbites_back_end/internal/models"
	"campusbites_back_end/internal/orders"
)

func grandTotal(v float64) *float64 { return &v }

func baseRequest() orders.CreateOrderRequest {
	return orders.CreateOrderRequest{
		CampusID:   "C1",
		CampusName: "Campus Nord",
		FirstName:  "Ali",
		Phone:      "03001234567",
		Gender:     "male",
		GrandTotal: grandTotal(850),
	}
}

func testProfile() models.Profile {
	return models.Profile{UID: "uid-1", Role: models.RoleUser, CampusID: "C1", Email: "profil@campus.edu"}
}

func TestNormalize_InitialStatusPending(t *testing.T) {
	o := orders.Normalize(baseRequest(), testProfile(), "", time.Now())
	require.Equal(t, models.OrderStatusPending, o.Status)
	require.Equal(t, "uid-1", o.UID)
	require.Equal(t, 850.0, o.GrandTotal)
}

func TestNormalize_LegacyStringCart_EmptyStructuredList(t *testing.T) {
	req := baseRequest()
	req.OrderItems = "2x Chicken Biryani, 1x Raita"

	o := orders.Normalize(req, testProfile(), "", time.Now())

	// Liste structurée vide (jamais nil) : le filtrage par restaurant
	// dégradera vers la commande entière
	require.NotNil(t, o.Cart)
	require.Empty(t, o.Cart)
	require.Equal(t, "2x Chicken Biryani, 1x Raita", o.OrderItems)
}

func TestNormalize_StructuredCart_SynthesizesDisplayString(t *testing.T) {
	req := baseRequest()
	req.Cart = []models.CartItem{
		{RestaurantID: "R1", Name: "Burger", Price: 350, Quantity: 2},
		{RestaurantID: "R2", Name: "Fries", Price: 150, Quantity: 1},
	}

	o := orders.Normalize(req, testProfile(), "", time.Now())

	require.Len(t, o.Cart, 2)
	require.Equal(t, "2x Burger (Rs 350), 1x Fries (Rs 150)", o.OrderItems)
}

func TestNormalize_CallerDisplayStringWins(t *testing.T) {
	req := baseRequest()
	req.Cart = []models.CartItem{{RestaurantID: "R1", Name: "Burger", Price: 350, Quantity: 2}}
	req.OrderItems = "Burger x2 — offre spéciale"

	o := orders.Normalize(req, testProfile(), "", time.Now())
	require.Equal(t, "Burger x2 — offre spéciale", o.OrderItems)
}

func TestNormalize_RestaurantNames_DedupedTrimmed(t *testing.T) {
	req := baseRequest()
	req.RestaurantNames = []string{" KFC ", "KFC", "", "Subway", "Subway "}

	o := orders.Normalize(req, testProfile(), "", time.Now())
	require.Equal(t, []string{"KFC", "Subway"}, o.RestaurantNames)
}

func TestNormalize_RestaurantNames_OmittedWhenEmpty(t *testing.T) {
	req := baseRequest()
	req.RestaurantNames = []string{"", "   "}

	o := orders.Normalize(req, testProfile(), "", time.Now())
	// nil, jamais un tableau vide stocké
	require.Nil(t, o.RestaurantNames)
}

func TestNormalize_DisplayTimestampFrozen(t *testing.T) {
	// 10:30 UTC = 15:30 à Karachi (UTC+5)
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	o := orders.Normalize(baseRequest(), testProfile(), "", now)

	require.Equal(t, now, o.CreatedAt)
	require.Equal(t, "15/03/2024, 3:30:00 pm", o.CreatedAtDisplay)
}

func TestNormalize_EmailFallsBackToIdentity(t *testing.T) {
	o := orders.Normalize(baseRequest(), testProfile(), "token@campus.edu", time.Now())
	require.Equal(t, "token@campus.edu", o.Email)

	req := baseRequest()
	req.Email = "fourni@campus.edu"
	o = orders.Normalize(req, testProfile(), "token@campus.edu", time.Now())
	require.Equal(t, "fourni@campus.edu", o.Email)
}

func TestFilterForRestaurant(t *testing.T) {
	o := models.Order{
		Cart: []models.CartItem{
			{RestaurantID: "R1", Name: "Burger", Price: 350, Quantity: 2},
			{RestaurantID: "R2", Name: "Pizza", Price: 900, Quantity: 1},
			{RestaurantID: "R1", Name: "Fries", Price: 150, Quantity: 3},
		},
		ItemsTotal: 2050,
	}

	filtered := orders.FilterForRestaurant(o, "R1", "Burger Hub")

	require.Len(t, filtered.Cart, 2)
	for _, item := range filtered.Cart {
		require.Equal(t, "R1", item.RestaurantID)
	}
	// itemsTotal recalculé sur exactement les lignes conservées
	require.Equal(t, 350.0*2+150.0*3, filtered.ItemsTotal)
}

func TestFilterForRestaurant_MatchesByName(t *testing.T) {
	o := models.Order{
		Cart: []models.CartItem{
			{RestaurantName: "Burger Hub", Name: "Burger", Price: 350, Quantity: 1},
			{RestaurantID: "R2", Name: "Pizza", Price: 900, Quantity: 1},
		},
	}

	filtered := orders.FilterForRestaurant(o, "R1", "Burger Hub")
	require.Len(t, filtered.Cart, 1)
	require.Equal(t, 350.0, filtered.ItemsTotal)
}

func TestFilterForRestaurant_LegacyEmptyCartUntouched(t *testing.T) {
	o := models.Order{
		OrderItems: "2x Chicken Biryani",
		Cart:       []models.CartItem{},
		ItemsTotal: 700,
	}

	filtered := orders.FilterForRestaurant(o, "R1", "Biryani House")

	// Limitation assumée : impossible de découper une soumission legacy
	require.Equal(t, o.OrderItems, filtered.OrderItems)
	require.Equal(t, 700.0, filtered.ItemsTotal)
	require.Empty(t, filtered.Cart)
}
