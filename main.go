package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/protyayrd/tweestbd-sub003/internal/config"
	"github.com/protyayrd/tweestbd-sub003/internal/database"
	"github.com/protyayrd/tweestbd-sub003/internal/handlers"
	"github.com/protyayrd/tweestbd-sub003/internal/middleware"
	"github.com/protyayrd/tweestbd-sub003/internal/pathao"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureCategoryIndexes(db); err != nil {
		log.Printf("category index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureReviewIndexes(db); err != nil {
		log.Printf("review index warning: %v", err)
	}
	if err := database.EnsureAdminIndexes(db); err != nil {
		log.Printf("admin index warning: %v", err)
	}

	courier := pathao.NewClient(config.AppEnv.PathaoBaseURL, pathao.Credentials{
		ClientID:     config.AppEnv.PathaoClientID,
		ClientSecret: config.AppEnv.PathaoClientSecret,
		Username:     config.AppEnv.PathaoUsername,
		Password:     config.AppEnv.PathaoPassword,
	})

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = config.AppEnv.CORSOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")
	{
		api.POST("/auth/login", handlers.AdminLogin(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

		api.GET("/categories", handlers.GetCategories(db))
		api.GET("/categories/resolve/:token", handlers.ResolveCategory(db))

		api.GET("/products", handlers.GetProducts(db))
		api.GET("/products/id/:id", handlers.GetProductByID(db))
		api.GET("/products/slug/:slug", handlers.GetProductBySlug(db))

		api.GET("/reviews", handlers.GetReviews(db))
		api.POST("/reviews", handlers.CreateReview(db))

		api.GET("/combo-offers", handlers.GetComboOffers(db))

		api.GET("/size-guides", handlers.GetSizeGuides(db))
		api.GET("/size-guides/:id", handlers.GetSizeGuideByID(db))

		api.GET("/jersey-form-settings", handlers.GetJerseyFormSettings(db))

		api.POST("/orders", handlers.CreateOrder(db))
		api.POST("/bulk-orders", handlers.CreateBulkOrder(db))

		api.GET("/pathao/city-list", handlers.GetCityList(courier))
		api.GET("/pathao/cities/:id/zone-list", handlers.GetZoneList(courier))
		api.GET("/pathao/zones/:id/area-list", handlers.GetAreaList(courier))
	}

	admin := api.Group("")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.POST("/categories", handlers.CreateCategory(db))
		admin.PUT("/categories/:id", handlers.UpdateCategory(db))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(db))

		admin.GET("/admin/products", handlers.GetAllProducts(db))
		admin.POST("/admin/products", handlers.CreateProduct(db))
		admin.PUT("/admin/products/:id", handlers.UpdateProduct(db))
		admin.DELETE("/admin/products/:id", handlers.DeleteProduct(db))

		admin.PUT("/reviews/:id", handlers.UpdateReview(db))
		admin.DELETE("/reviews/:id", handlers.DeleteReview(db))

		admin.POST("/combo-offers", handlers.CreateComboOffer(db))
		admin.PUT("/combo-offers/:id", handlers.UpdateComboOffer(db))
		admin.DELETE("/combo-offers/:id", handlers.DeleteComboOffer(db))

		admin.PUT("/size-guides/:id", handlers.UpdateSizeGuide(db))
		admin.DELETE("/size-guides/:id", handlers.DeleteSizeGuide(db))

		admin.PUT("/jersey-form-settings", handlers.UpdateJerseyFormSettings(db))

		admin.GET("/orders/admin/all", handlers.GetAllOrders(db))
		admin.PUT("/orders/admin/:id/status", handlers.UpdateOrderStatus(db))
		admin.DELETE("/orders/admin/:id", handlers.DeleteOrder(db))

		admin.GET("/bulk-orders/admin/all", handlers.GetAllBulkOrders(db))
		admin.PUT("/bulk-orders/admin/:id/status", handlers.UpdateBulkOrderStatus(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
