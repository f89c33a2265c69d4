package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is one node of the three-level catalog tree. Level-1 categories
// have no parent; a level-2 parent must be level-1 and a level-3 parent must
// be level-2. Slug is optional because legacy documents predate slugs.
type Category struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Slug               string              `bson:"slug,omitempty" json:"slug,omitempty"`
	Name               string              `bson:"name" json:"name"`
	Level              int                 `bson:"level" json:"level"`
	ParentCategory     *primitive.ObjectID `bson:"parentCategory,omitempty" json:"parentCategory,omitempty"`
	ImageURL           string              `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Description        string              `bson:"description,omitempty" json:"description,omitempty"`
	FeaturedInCarousel bool                `bson:"featuredInCarousel" json:"featuredInCarousel"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
}
