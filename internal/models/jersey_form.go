package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JerseyFormSettings is a singleton document controlling the jersey
// customization form shown at checkout.
type JerseyFormSettings struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	NameEnabled      bool               `bson:"nameEnabled" json:"nameEnabled"`
	NumberEnabled    bool               `bson:"numberEnabled" json:"numberEnabled"`
	NamePrice        float64            `bson:"namePrice" json:"namePrice"`
	NumberPrice      float64            `bson:"numberPrice" json:"numberPrice"`
	MaxNameLength    int                `bson:"maxNameLength" json:"maxNameLength"`
	InstructionsText string             `bson:"instructionsText,omitempty" json:"instructionsText,omitempty"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
