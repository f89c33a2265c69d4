package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/protyayrd/tweestbd-sub003/internal/models"
)

// defaultMaxJerseyName caps the printed jersey name before the settings
// document is first written.
const defaultMaxJerseyName = 12

func jerseyNameLimit(settings models.JerseyFormSettings) int {
	if settings.MaxNameLength > 0 {
		return settings.MaxNameLength
	}
	return defaultMaxJerseyName
}

func validateJerseyName(name string, settings models.JerseyFormSettings) error {
	if limit := jerseyNameLimit(settings); utf8.RuneCountInString(name) > limit {
		return fmt.Errorf("jerseyName exceeds the %d character limit", limit)
	}
	return nil
}

var orderStatuses = map[string]bool{
	"pending":   true,
	"confirmed": true,
	"shipped":   true,
	"delivered": true,
	"cancelled": true,
}

type OrderItemRequest struct {
	ProductID    string `json:"productId" binding:"required"`
	Color        string `json:"color"`
	Size         string `json:"size"`
	JerseyName   string `json:"jerseyName"`
	JerseyNumber string `json:"jerseyNumber"`
	Quantity     int    `json:"quantity" binding:"required"`
}

type OrderCreateRequest struct {
	Items         []OrderItemRequest   `json:"items" binding:"required"`
	Customer      models.OrderCustomer `json:"customer" binding:"required"`
	PaymentMethod string               `json:"paymentMethod"`
}

/*
POST /api/orders
- prices are re-read server-side; the client total is never trusted
*/
func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		var req OrderCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		if len(req.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at least one item is required"})
			return
		}
		if strings.TrimSpace(req.Customer.Name) == "" || strings.TrimSpace(req.Customer.Phone) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "customer name and phone are required"})
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var settings models.JerseyFormSettings
		if err := db.Collection("jerseyFormSettings").FindOne(ctx, bson.M{}).Decode(&settings); err != nil && err != mongo.ErrNoDocuments {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		total := 0.0
		for _, item := range req.Items {
			if item.Quantity < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "item quantity must be at least 1"})
				return
			}

			productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(item.ProductID))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid productId"})
				return
			}

			var product models.Product
			err = db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusBadRequest, gin.H{"error": "product not found: " + item.ProductID})
				return
			}
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}

			jerseyName := strings.TrimSpace(item.JerseyName)
			jerseyNumber := strings.TrimSpace(item.JerseyNumber)
			if err := validateJerseyName(jerseyName, settings); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			unitPrice := product.DiscountedPrice
			if jerseyName != "" && settings.NameEnabled {
				unitPrice += settings.NamePrice
			}
			if jerseyNumber != "" && settings.NumberEnabled {
				unitPrice += settings.NumberPrice
			}

			items = append(items, models.OrderItem{
				ProductID:    product.ID,
				Title:        product.Title,
				Color:        strings.TrimSpace(item.Color),
				Size:         strings.TrimSpace(item.Size),
				JerseyName:   jerseyName,
				JerseyNumber: jerseyNumber,
				Price:        unitPrice,
				Quantity:     item.Quantity,
			})
			total += unitPrice * float64(item.Quantity)
		}

		paymentMethod := strings.TrimSpace(req.PaymentMethod)
		if paymentMethod == "" {
			paymentMethod = "cash_on_delivery"
		}

		order := models.Order{
			Items:         items,
			TotalPrice:    total,
			Customer:      req.Customer,
			PaymentMethod: paymentMethod,
			Status:        "pending",
			CreatedAt:     time.Now(),
		}

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		order.ID = res.InsertedID.(primitive.ObjectID)
		log.Printf("[%s] created order %s total=%.2f", route, order.ID.Hex(), total)
		c.JSON(http.StatusCreated, order)
	}
}

/*
GET /api/orders/admin/all
*/
func GetAllOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/admin/all"
		defer handlePanic(c, route)

		page, size, err := parsePageParams(c.Query("pageNumber"), c.Query("pageSize"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = status
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		total, err := db.Collection("orders").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		opts := options.Find().
			SetSkip((page - 1) * size).
			SetLimit(size).
			SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})

		cursor, err := db.Collection("orders").Find(ctx, filter, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data": orders,
			"pagination": gin.H{
				"page":       page,
				"pageSize":   size,
				"total":      total,
				"totalPages": totalPages(total, size),
			},
		})
	}
}

/*
PUT /api/orders/admin/:id/status
*/
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/orders/admin/:id/status"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c)
		if !ok {
			return
		}

		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		status := strings.TrimSpace(req.Status)
		if !orderStatuses[status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var updated models.Order
		err := db.Collection("orders").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": bson.M{"status": status}},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

/*
DELETE /api/orders/admin/:id
*/
func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/orders/admin/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		result, err := db.Collection("orders").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}
