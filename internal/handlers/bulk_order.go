package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/protyayrd/tweestbd-sub003/internal/models"
)

var bulkOrderStatuses = map[string]bool{
	"requested": true,
	"quoted":    true,
	"accepted":  true,
	"rejected":  true,
	"completed": true,
}

type BulkOrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Color     string `json:"color"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type BulkOrderCreateRequest struct {
	CustomerName string                 `json:"customerName" binding:"required"`
	Phone        string                 `json:"phone" binding:"required"`
	Email        string                 `json:"email"`
	Items        []BulkOrderItemRequest `json:"items" binding:"required"`
	Note         string                 `json:"note"`
}

/*
POST /api/bulk-orders
*/
func CreateBulkOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/bulk-orders"
		defer handlePanic(c, route)

		var req BulkOrderCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		if len(req.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at least one item is required"})
			return
		}

		items := make([]models.BulkOrderItem, 0, len(req.Items))
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
			items = append(items, models.BulkOrderItem{
				ProductID: productID,
				Color:     strings.TrimSpace(item.Color),
				Size:      strings.TrimSpace(item.Size),
				Quantity:  item.Quantity,
			})
		}

		bulkOrder := models.BulkOrder{
			TrackingCode: uuid.NewString(),
			CustomerName: strings.TrimSpace(req.CustomerName),
			Phone:        strings.TrimSpace(req.Phone),
			Email:        strings.TrimSpace(req.Email),
			Items:        items,
			Note:         strings.TrimSpace(req.Note),
			Status:       "requested",
			CreatedAt:    time.Now(),
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := db.Collection("bulkOrders").InsertOne(ctx, bulkOrder)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		bulkOrder.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, bulkOrder)
	}
}

/*
GET /api/bulk-orders/admin/all
*/
func GetAllBulkOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/bulk-orders/admin/all"
		defer handlePanic(c, route)

		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = status
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		cursor, err := db.Collection("bulkOrders").Find(
			ctx,
			filter,
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		bulkOrders := make([]models.BulkOrder, 0)
		if err := cursor.All(ctx, &bulkOrders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, bulkOrders)
	}
}

/*
PUT /api/bulk-orders/admin/:id/status
*/
func UpdateBulkOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/bulk-orders/admin/:id/status"
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
		if !bulkOrderStatuses[status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var updated models.BulkOrder
		err := db.Collection("bulkOrders").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": bson.M{"status": status}},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "bulk order not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}
