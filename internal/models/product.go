package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductSize holds the stock for one size inside one colorway.
type ProductSize struct {
	Name     string `bson:"name" json:"name"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// ProductColor is one colorway with its images and per-size stock.
// Order of images and sizes is preserved as entered by the admin.
type ProductColor struct {
	Name   string        `bson:"name" json:"name"`
	Images []string      `bson:"images" json:"images"`
	Sizes  []ProductSize `bson:"sizes" json:"sizes"`
}

type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Slug            string             `bson:"slug,omitempty" json:"slug,omitempty"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Price           float64            `bson:"price" json:"price"`
	DiscountedPrice float64            `bson:"discountedPrice" json:"discountedPrice"`
	// Field name keeps the historical spelling used by existing clients.
	DiscountPercent int                 `bson:"discountPersent" json:"discountPersent"`
	Category        primitive.ObjectID  `bson:"category" json:"category"`
	Colors          []ProductColor      `bson:"colors" json:"colors"`
	SizeGuide       *primitive.ObjectID `bson:"sizeGuide,omitempty" json:"sizeGuide,omitempty"`
	IsNewArrival    bool                `bson:"isNewArrival" json:"isNewArrival"`
	IsFeatured      bool                `bson:"isFeatured" json:"isFeatured"`
	// Quantity is the derived sum of all color/size quantities.
	Quantity   int       `bson:"quantity" json:"quantity"`
	AvgRating  float64   `bson:"avgRating" json:"avgRating"`
	NumRatings int       `bson:"numRatings" json:"numRatings"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
