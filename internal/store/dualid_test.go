package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusbites_back_end/internal/store"
)

const validHex = "64a1b2c3d4e5f6a7b8c9d0e1"

func TestIDFilter_ValidHex_TriesBothEncodings(t *testing.T) {
	filter := store.IDFilter(validHex)

	clauses, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, clauses, 2)

	oid, _ := primitive.ObjectIDFromHex(validHex)
	require.Equal(t, bson.M{"_id": oid}, clauses[0])
	require.Equal(t, bson.M{"_id": validHex}, clauses[1])
}

func TestIDFilter_LegacyString_RawMatchOnly(t *testing.T) {
	filter := store.IDFilter("commande-legacy-42")
	require.Equal(t, bson.M{"_id": "commande-legacy-42"}, filter)
}

func TestIDVariants(t *testing.T) {
	variants := store.IDVariants(validHex)
	require.Len(t, variants, 2)
	require.Equal(t, validHex, variants[0])

	variants = store.IDVariants("pas-un-hex")
	require.Equal(t, bson.A{"pas-un-hex"}, variants)
}

func TestSameID(t *testing.T) {
	require.True(t, store.SameID("abc", "abc"))
	require.True(t, store.SameID(validHex, validHex))
	// Même ObjectID, casse différente de l'hex
	require.True(t, store.SameID(validHex, "64A1B2C3D4E5F6A7B8C9D0E1"))

	require.False(t, store.SameID(validHex, "64a1b2c3d4e5f6a7b8c9d0e2"))
	require.False(t, store.SameID("abc", "def"))
	require.False(t, store.SameID(validHex, "pas-un-hex"))
}

func TestRestaurantScope(t *testing.T) {
	scope := store.RestaurantScope(validHex, "Burger Hub")

	clauses, ok := scope["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, clauses, 2)
	require.Equal(t, bson.M{"restaurantNames": "Burger Hub"}, clauses[1])

	// Sans nom résolu, seul le match par lignes de panier subsiste
	scope = store.RestaurantScope(validHex, "")
	clauses = scope["$or"].(bson.A)
	require.Len(t, clauses, 1)
}

func TestCampusScope(t *testing.T) {
	require.Equal(t, bson.M{"campusId": "C1"}, store.CampusScope("C1"))
}
