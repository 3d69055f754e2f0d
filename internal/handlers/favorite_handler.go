package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"spaceexplorer/internal/middleware"
	"spaceexplorer/internal/models"
	"spaceexplorer/internal/service"
)

type FavoriteHandler struct {
	service service.FavoriteService
}

func NewFavoriteHandler(service service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

type favoriteRequest struct {
	Date        string `json:"date" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Explanation string `json:"explanation"`
	URL         string `json:"url" binding:"required"`
	HDURL       string `json:"hdurl"`
	MediaType   string `json:"media_type"`
	Copyright   string `json:"copyright"`
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "date, title and url are required",
		})
		return
	}

	user := currentUser(c)
	if user == nil {
		return
	}

	favorite, err := h.service.AddFavorite(c.Request.Context(), user.ID, service.APODInput{
		Date:        req.Date,
		Title:       req.Title,
		Explanation: req.Explanation,
		URL:         req.URL,
		HDURL:       req.HDURL,
		MediaType:   req.MediaType,
		Copyright:   req.Copyright,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"favorite_id": favorite.ID,
	})
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	favorites, err := h.service.ListFavorites(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"favorites": favorites,
	})
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	apodID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "invalid apod id",
		})
		return
	}

	if err := h.service.RemoveFavorite(c.Request.Context(), user.ID, uint(apodID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "favorite removed",
	})
}

func (h *FavoriteHandler) ExportFavorites(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	path, err := h.service.ExportFavorites(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}

// currentUser достает пользователя, положенного AuthRequired;
// его отсутствие — ошибка подключения middleware.
func currentUser(c *gin.Context) *models.User {
	val, ok := c.Get(middleware.UserKey)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "authentication required",
		})
		c.Abort()
		return nil
	}
	return val.(*models.User)
}
