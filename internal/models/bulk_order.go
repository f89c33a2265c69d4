package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BulkOrderItem is one requested line of a team/club bulk order.
type BulkOrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Color     string             `bson:"color,omitempty" json:"color,omitempty"`
	Size      string             `bson:"size" json:"size"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// BulkOrder is a quote request for a large quantity, handled manually by the
// back office. TrackingCode is the customer-facing reference.
type BulkOrder struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrackingCode string             `bson:"trackingCode" json:"trackingCode"`
	CustomerName string             `bson:"customerName" json:"customerName"`
	Phone        string             `bson:"phone" json:"phone"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	Items        []BulkOrderItem    `bson:"items" json:"items"`
	Note         string             `bson:"note,omitempty" json:"note,omitempty"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
