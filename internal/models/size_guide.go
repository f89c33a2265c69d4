package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SizeGuideRow maps one size name to its measurements (e.g. chest, length).
type SizeGuideRow struct {
	Size         string             `bson:"size" json:"size"`
	Measurements map[string]float64 `bson:"measurements" json:"measurements"`
}

type SizeGuide struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Rows      []SizeGuideRow     `bson:"rows" json:"rows"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
