package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/andresuchdata/panaderia-reports/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type SnapshotHandler struct {
	service *service.SnapshotService
}

func NewSnapshotHandler(service *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{service: service}
}

func (h *SnapshotHandler) GetSnapshot(c *gin.Context) {
	kind := domain.ReportKind(strings.ToLower(strings.TrimSpace(c.Query("kind"))))
	reports, err := h.service.Stored(c.Request.Context(), kind)
	switch {
	case errors.Is(err, service.ErrInvalidKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be one of daily, monthly, material"})
	case err != nil:
		log.Error().Err(err).Msg("list snapshot failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch snapshot"})
	default:
		c.JSON(http.StatusOK, reports)
	}
}

func (h *SnapshotHandler) Sync(c *gin.Context) {
	result, err := h.service.Sync(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("snapshot sync failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to sync snapshot"})
		return
	}
	c.JSON(http.StatusOK, result)
}
