package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/protyayrd/tweestbd-sub003/internal/pathao"
)

func relayCourierResponse(c *gin.Context, route string, status int, body []byte, contentType string, err error) {
	if err != nil {
		log.Printf("[%s] courier call failed: %v", route, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "courier service unavailable"})
		return
	}
	if contentType == "" {
		contentType = "application/json"
	}
	// upstream status and body are relayed unchanged, including errors
	c.Data(status, contentType, body)
}

/*
GET /api/pathao/city-list
*/
func GetCityList(client *pathao.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/pathao/city-list"
		defer handlePanic(c, route)

		status, body, contentType, err := client.CityList(c.Request.Context())
		relayCourierResponse(c, route, status, body, contentType, err)
	}
}

/*
GET /api/pathao/cities/:id/zone-list
*/
func GetZoneList(client *pathao.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/pathao/cities/:id/zone-list"
		defer handlePanic(c, route)

		status, body, contentType, err := client.ZoneList(c.Request.Context(), c.Param("id"))
		relayCourierResponse(c, route, status, body, contentType, err)
	}
}

/*
GET /api/pathao/zones/:id/area-list
*/
func GetAreaList(client *pathao.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/pathao/zones/:id/area-list"
		defer handlePanic(c, route)

		status, body, contentType, err := client.AreaList(c.Request.Context(), c.Param("id"))
		relayCourierResponse(c, route, status, body, contentType, err)
	}
}
