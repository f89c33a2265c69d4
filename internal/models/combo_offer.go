package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ComboOffer bundles several products under one price. The combo price must
// stay below the sum of the member products' discounted prices.
type ComboOffer struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name       string               `bson:"name" json:"name"`
	ProductIDs []primitive.ObjectID `bson:"productIds" json:"productIds"`
	ComboPrice float64              `bson:"comboPrice" json:"comboPrice"`
	ImageURL   string               `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	IsActive   bool                 `bson:"isActive" json:"isActive"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
}
