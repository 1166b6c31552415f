package handlers

import (
	"errors"
	"net/http"

	"github.com/andresuchdata/panaderia-reports/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type FavoriteHandler struct {
	service *service.FavoriteService
}

func NewFavoriteHandler(service *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

func (h *FavoriteHandler) GetFavorites(c *gin.Context) {
	ctx := c.Request.Context()
	keys, err := h.service.Keys(ctx)
	if err != nil {
		log.Error().Err(err).Msg("list favorites failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch favorites"})
		return
	}
	reports, err := h.service.Reports(ctx)
	if err != nil {
		log.Error().Err(err).Msg("list favorite reports failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch favorites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"keys": keys, "reports": reports})
}

func (h *FavoriteHandler) ToggleFavorite(c *gin.Context) {
	toggle, err := h.service.Toggle(c.Request.Context(), c.Param("id"), c.Param("kind"))
	switch {
	case errors.Is(err, service.ErrInvalidKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrReportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
	case err != nil:
		log.Error().Err(err).Msg("toggle favorite failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle favorite"})
	default:
		c.JSON(http.StatusOK, toggle)
	}
}
