package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureCategoryIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("categories").Indexes()

	// slug is unique only where present; legacy documents have no slug
	slugIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().
			SetName("slug_unique").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"slug": bson.M{"$exists": true},
			}),
	}

	parentIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "parentCategory", Value: 1}},
		Options: options.Index().SetName("parentCategory_index"),
	}

	log.Println("EnsureCategoryIndexes: creating indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{slugIndex, parentIndex})
	if err != nil {
		log.Println("EnsureCategoryIndexes: index error:", err)
		return err
	}
	return nil
}

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("products").Indexes()

	slugIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().
			SetName("slug_unique").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"slug": bson.M{"$exists": true},
			}),
	}

	categoryIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("category_createdAt_index"),
	}

	log.Println("EnsureProductIndexes: creating indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{slugIndex, categoryIndex})
	if err != nil {
		log.Println("EnsureProductIndexes: index error:", err)
		return err
	}
	return nil
}

func EnsureReviewIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("reviews").Indexes()

	productIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "productId", Value: 1}},
		Options: options.Index().SetName("productId_index"),
	}

	log.Println("EnsureReviewIndexes: creating productId_index")
	_, err := indexes.CreateOne(ctx, productIndex)
	if err != nil {
		log.Println("EnsureReviewIndexes: index error:", err)
		return err
	}
	return nil
}

func EnsureAdminIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("admins").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureAdminIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureAdminIndexes: index error:", err)
		return err
	}
	return nil
}
