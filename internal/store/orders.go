package store

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusbites_back_end/internal/database"
	"campusbites_back_end/internal/models"
)

// ErrOrderNotFound : aucun document ne correspond au filtre (id + scope)
var ErrOrderNotFound = errors.New("commande introuvable")

// OrderStore est la persistance des commandes. Insertion at-most-once :
// jamais de retry automatique (un retry pourrait dupliquer la commande).
type OrderStore struct {
	db *mongo.Database
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{db: db}
}

// Insert persiste une commande et rend l'identifiant créé
func (s *OrderStore) Insert(ctx context.Context, order models.Order) (string, error) {
	res, err := s.db.Collection(database.CollOrders).InsertOne(ctx, order)
	if err != nil {
		log.Println("❌ Erreur MongoDB InsertOne (orders):", err)
		return "", err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	// _id legacy fourni en chaîne brute
	if raw, ok := res.InsertedID.(string); ok {
		return raw, nil
	}
	return "", nil
}

// Find liste les commandes d'un scope, triées par date de création
// décroissante. limit <= 0 signifie "sans limite".
func (s *OrderStore) Find(ctx context.Context, filter bson.M, limit int64) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.db.Collection(database.CollOrders).Find(ctx, filter, opts)
	if err != nil {
		log.Println("❌ Erreur MongoDB Find (orders):", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		log.Println("❌ Erreur décodage commandes:", err)
		return nil, err
	}

	return orders, nil
}

// UpdateStatus pose le nouveau statut d'une commande — et rien d'autre :
// seul le champ status est mutable après création. Le lookup combine le
// filtre d'identifiant (double encodage) et le scope du rôle appelant.
func (s *OrderStore) UpdateStatus(ctx context.Context, orderID string, scope bson.M, status string) (models.Order, error) {
	filter := IDFilter(orderID)
	if len(scope) > 0 {
		filter = bson.M{"$and": bson.A{filter, scope}}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"status": status}}

	var updated models.Order
	err := s.db.Collection(database.CollOrders).FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Order{}, ErrOrderNotFound
		}
		log.Println("❌ Erreur MongoDB FindOneAndUpdate (orders):", err)
		return models.Order{}, err
	}

	return updated, nil
}

// CampusScope : filtre implicite d'un campusAdmin, dérivé du profil et
// jamais des paramètres client
func CampusScope(campusID string) bson.M {
	return bson.M{"campusId": campusID}
}

// RestaurantScope : commandes contenant des lignes du restaurant, via le
// set dénormalisé restaurantNames ou les lignes structurées du panier
func RestaurantScope(restaurantID, restaurantName string) bson.M {
	clauses := bson.A{
		bson.M{"cart.restaurantId": bson.M{"$in": IDVariants(restaurantID)}},
	}
	if restaurantName != "" {
		clauses = append(clauses, bson.M{"restaurantNames": restaurantName})
	}
	return bson.M{"$or": clauses}
}
