package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"campusbites_back_end/internal/database"
	"campusbites_back_end/internal/models"
)

const (
	SettingsCacheTTL = 10 * time.Minute

	// DefaultDeliveryChargePerPerson s'applique quand un campus n'a pas de
	// document de configuration
	DefaultDeliveryChargePerPerson = 50.0
)

// SettingsCache sert la configuration de livraison d'un campus : Redis
// d'abord, MongoDB ensuite, défaut si le document est absent. Les profils,
// eux, ne passent jamais par ici — ils exigent des lectures fraîches.
type SettingsCache struct {
	redis *redis.Client
	db    *mongo.Database
}

func NewSettingsCache(rdb *redis.Client, db *mongo.Database) *SettingsCache {
	return &SettingsCache{redis: rdb, db: db}
}

func (s *SettingsCache) Get(ctx context.Context, campusID string) (models.CampusSettings, error) {
	key := "campus_settings:" + campusID

	if data, err := s.redis.Get(ctx, key).Result(); err == nil {
		var settings models.CampusSettings
		if json.Unmarshal([]byte(data), &settings) == nil {
			return settings, nil
		}
	}

	var settings models.CampusSettings
	err := s.db.Collection(database.CollSettings).FindOne(ctx, bson.M{"campusId": campusID}).Decode(&settings)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return models.CampusSettings{}, err
		}
		settings = models.CampusSettings{
			CampusID:                campusID,
			DeliveryChargePerPerson: DefaultDeliveryChargePerPerson,
			OrderingEnabled:         true,
		}
	}

	if data, err := json.Marshal(settings); err == nil {
		s.redis.Set(ctx, key, data, SettingsCacheTTL)
	}

	return settings, nil
}

// Invalidate purge l'entrée après une mise à jour des settings
func (s *SettingsCache) Invalidate(ctx context.Context, campusID string) {
	s.redis.Del(ctx, "campus_settings:"+campusID)
}
