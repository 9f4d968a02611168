package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type University struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}

type Campus struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	UniversityID   string             `bson:"universityId" json:"universityId"`
	UniversityName string             `bson:"universityName" json:"universityName"`
}

// Restaurant : même tolérance d'_id que les commandes (anciens documents
// avec _id string brut)
type Restaurant struct {
	ID       interface{} `bson:"_id,omitempty" json:"id"`
	Name     string      `bson:"name" json:"name"`
	CampusID string      `bson:"campusId" json:"campusId"`
	ImageURL string      `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Timing   string      `bson:"timing,omitempty" json:"timing,omitempty"`
}

type MenuItem struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Price        float64            `bson:"price" json:"price"`
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`
	RestaurantID string             `bson:"restaurantId" json:"restaurantId"`
	CampusID     string             `bson:"campusId" json:"campusId"`
	ImageURL     string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

type MartItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Stock    int                `bson:"stock" json:"stock"`
	CampusID string             `bson:"campusId" json:"campusId"`
	ImageURL string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// CampusSettings : configuration de livraison d'un campus.
// DeliveryChargePerPerson est défaulté côté lecture si le document est absent.
type CampusSettings struct {
	CampusID                string  `bson:"campusId" json:"campusId"`
	DeliveryChargePerPerson float64 `bson:"deliveryChargePerPerson" json:"deliveryChargePerPerson"`
	OrderingEnabled         bool    `bson:"orderingEnabled" json:"orderingEnabled"`
}
