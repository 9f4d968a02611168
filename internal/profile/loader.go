package profile

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"campusbites_back_end/internal/database"
	"campusbites_back_end/internal/models"
)

var (
	// ErrProfileNotFound est exposé en 403, pas en 404 : on ne distingue pas
	// "pas de compte" de "pas de permission" (anti-énumération de comptes)
	ErrProfileNotFound = errors.New("profil introuvable")
	// ErrRoleNotRecognized : rôle hors de l'ensemble connu
	ErrRoleNotRecognized = errors.New("rôle non reconnu")
)

// Loader résout un sujet vérifié vers son profil rôle/campus.
// Lecture fraîche à chaque requête, jamais de cache : une réaffectation de
// campus doit être visible dès la requête suivante.
type Loader struct {
	db *mongo.Database
}

func NewLoader(db *mongo.Database) *Loader {
	return &Loader{db: db}
}

func (l *Loader) Load(ctx context.Context, uid string) (models.Profile, error) {
	var p models.Profile
	err := l.db.Collection(database.CollUsers).FindOne(ctx, bson.M{"uid": uid}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Profile{}, ErrProfileNotFound
		}
		return models.Profile{}, err
	}

	if !p.KnownRole() {
		return models.Profile{}, ErrRoleNotRecognized
	}

	return p, nil
}
