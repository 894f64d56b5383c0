package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"thunderbuddy/services"
)

type WeatherHandler struct {
	weather *services.WeatherService
}

func NewWeatherHandler(weather *services.WeatherService) *WeatherHandler {
	return &WeatherHandler{weather: weather}
}

// Current - GET /weather?zip=30152&country=US
func (h *WeatherHandler) Current(c *gin.Context) {
	zip := c.DefaultQuery("zip", "30152")
	country := c.DefaultQuery("country", "US")
	if zip == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ZIP code is required"})
		return
	}

	data, err := h.weather.Current(c.Request.Context(), zip, country)
	if err != nil {
		var upstream *services.WeatherUpstreamError
		switch {
		case errors.As(err, &upstream):
			// Статус Weatherbit отдаем клиенту без изменений
			c.JSON(upstream.StatusCode, gin.H{"error": "Failed to fetch weather data"})
		case errors.Is(err, services.ErrBadWeatherPayload):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid response format"})
		default:
			log.Printf("Weather request failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "API request failed"})
		}
		return
	}

	c.JSON(http.StatusOK, data)
}
