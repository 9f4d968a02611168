package store

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDFilter construit un filtre _id tolérant les deux encodages historiques :
// ObjectID quand l'hex est valide, chaîne brute dans tous les cas. Les
// anciens documents non migrés portent encore des _id string.
func IDFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"$or": bson.A{
			bson.M{"_id": oid},
			bson.M{"_id": id},
		}}
	}
	return bson.M{"_id": id}
}

// IDVariants rend les valeurs sous lesquelles un identifiant peut être stocké
// dans un champ ordinaire (pas _id) : la chaîne brute, plus l'ObjectID typé
// si l'hex est valide.
func IDVariants(id string) bson.A {
	variants := bson.A{id}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		variants = append(variants, oid)
	}
	return variants
}

// SameID compare deux identifiants en tolérant les deux encodages : égalité
// brute, ou égalité des ObjectID quand les deux hex sont valides.
func SameID(a, b string) bool {
	if a == b {
		return true
	}
	oa, errA := primitive.ObjectIDFromHex(a)
	ob, errB := primitive.ObjectIDFromHex(b)
	return errA == nil && errB == nil && oa == ob
}
