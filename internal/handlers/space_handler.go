package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"spaceexplorer/internal/normalize"
	"spaceexplorer/internal/service"
)

type SpaceHandler struct {
	service service.SpaceService
}

func NewSpaceHandler(service service.SpaceService) *SpaceHandler {
	return &SpaceHandler{service: service}
}

func (h *SpaceHandler) GetAPOD(c *gin.Context) {
	date := c.Query("date")
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "invalid date format, use YYYY-MM-DD",
			})
			return
		}
	}

	apod, err := h.service.GetAPOD(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, apod)
}

func (h *SpaceHandler) GetLaunches(c *gin.Context) {
	launches, err := h.service.GetLaunches(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": launches})
}

func (h *SpaceHandler) GetMarsWeather(c *gin.Context) {
	sols, err := h.service.GetMarsWeather(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sols)
}

func (h *SpaceHandler) GetAsteroids(c *gin.Context) {
	asteroids, err := h.service.GetAsteroids(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, asteroids)
}

// respondError транслирует таксономию ошибок сервиса в HTTP-статусы.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUpstreamUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{
			"status":  "error",
			"message": "upstream data provider is unavailable",
		})
	case errors.Is(err, service.ErrNoData):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "upstream returned no data",
		})
	case errors.Is(err, normalize.ErrMalformedPayload):
		log.Printf("Malformed upstream payload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "upstream payload could not be processed",
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "not found",
		})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "authentication required",
		})
	default:
		log.Printf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "internal server error",
		})
	}
}
