package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"campusbites_back_end/internal/database"
	"campusbites_back_end/internal/models"
)

// ErrRestaurantNotFound : l'identifiant (sous ses deux formes) ne résout rien
var ErrRestaurantNotFound = errors.New("restaurant introuvable")

// RestaurantStore : le coeur n'a besoin que de "ce restaurant existe-t-il,
// quel est son nom, à quel campus appartient-il"
type RestaurantStore struct {
	db *mongo.Database
}

func NewRestaurantStore(db *mongo.Database) *RestaurantStore {
	return &RestaurantStore{db: db}
}

func (s *RestaurantStore) Get(ctx context.Context, id string) (models.Restaurant, error) {
	var r models.Restaurant
	err := s.db.Collection(database.CollRestaurants).FindOne(ctx, IDFilter(id)).Decode(&r)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Restaurant{}, ErrRestaurantNotFound
		}
		return models.Restaurant{}, err
	}
	return r, nil
}
