package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem represents a single product entry within an order.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Title     string             `bson:"title" json:"title"`
	Color     string             `bson:"color,omitempty" json:"color,omitempty"`
	Size      string             `bson:"size,omitempty" json:"size,omitempty"`
	// Jersey customization, when the jersey form is enabled.
	JerseyName   string  `bson:"jerseyName,omitempty" json:"jerseyName,omitempty"`
	JerseyNumber string  `bson:"jerseyNumber,omitempty" json:"jerseyNumber,omitempty"`
	Price        float64 `bson:"price" json:"price"`
	Quantity     int     `bson:"quantity" json:"quantity"`
}

// OrderCustomer captures contact and delivery details for an order.
type OrderCustomer struct {
	Name    string `bson:"name" json:"name"`
	Phone   string `bson:"phone" json:"phone"`
	Address string `bson:"address" json:"address"`
	// Pathao delivery area, resolved through the courier proxy.
	CityID int    `bson:"cityId,omitempty" json:"cityId,omitempty"`
	ZoneID int    `bson:"zoneId,omitempty" json:"zoneId,omitempty"`
	AreaID int    `bson:"areaId,omitempty" json:"areaId,omitempty"`
	Note   string `bson:"note,omitempty" json:"note,omitempty"`
}

// Order defines the persisted order document.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Items         []OrderItem        `bson:"items" json:"items"`
	TotalPrice    float64            `bson:"totalPrice" json:"totalPrice"`
	Customer      OrderCustomer      `bson:"customer" json:"customer"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
