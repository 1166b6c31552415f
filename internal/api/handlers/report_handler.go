package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/andresuchdata/panaderia-reports/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ReportHandler struct {
	service   *service.ReportService
	favorites *service.FavoriteService
}

// NewReportHandler creates the report handler. favorites may be nil, in which case report
// listings are not annotated.
func NewReportHandler(service *service.ReportService, favorites *service.FavoriteService) *ReportHandler {
	return &ReportHandler{service: service, favorites: favorites}
}

// annotate marks favorite reports. A failing favorites store degrades to the plain list.
func (h *ReportHandler) annotate(c *gin.Context, list []domain.Report) []domain.Report {
	if h.favorites == nil {
		return list
	}
	marked, err := h.favorites.Annotate(c.Request.Context(), list)
	if err != nil {
		log.Warn().Err(err).Msg("annotate favorites failed")
		return list
	}
	return marked
}

// parseKind reads the optional kind query parameter. It writes a 400 and returns false when
// the value is not a known kind.
func parseKind(c *gin.Context) (domain.ReportKind, bool) {
	label := strings.TrimSpace(c.Query("kind"))
	if label == "" {
		return "", true
	}
	kind, ok := domain.ParseReportKind(label)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be one of daily, monthly, material"})
		return "", false
	}
	return kind, true
}

func (h *ReportHandler) GetReports(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	if kind == "" {
		collections := h.service.Collections()
		if h.favorites != nil {
			marked, err := h.favorites.AnnotateCollections(c.Request.Context(), collections)
			if err != nil {
				log.Warn().Err(err).Msg("annotate favorites failed")
			} else {
				collections = marked
			}
		}
		c.JSON(http.StatusOK, collections)
		return
	}

	reports, err := h.service.Reports(kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.annotate(c, reports))
}

func (h *ReportHandler) GetYears(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"years": h.service.AvailableYears()})
}

func (h *ReportHandler) GetReportsForYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.annotate(c, h.service.ReportsForYear(year, kind)))
}

func (h *ReportHandler) GetReportsForMonth(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.annotate(c, h.service.ReportsForDateKey(c.Param("dateKey"), kind)))
}

func (h *ReportHandler) GetChart(c *gin.Context) {
	var year int
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		year = parsed
	} else if years := h.service.AvailableYears(); len(years) > 0 {
		year = years[0]
	}

	view := domain.ChartView(c.DefaultQuery("view", string(domain.ChartViewSales)))
	c.JSON(http.StatusOK, gin.H{
		"year":   year,
		"view":   view,
		"series": h.service.ChartSeries(c.Request.Context(), year, view),
	})
}

func (h *ReportHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Stats(c.Request.Context()))
}

func (h *ReportHandler) Search(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.annotate(c, h.service.Search(c.Query("q"), kind)))
}

func (h *ReportHandler) GetTopProducts(c *gin.Context) {
	mode := domain.TopProductMode(c.DefaultQuery("mode", string(domain.TopProductsByMonth)))
	switch mode {
	case domain.TopProductsByDay, domain.TopProductsByMonth, domain.TopProductsByYear:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be one of day, month, year"})
		return
	}
	c.JSON(http.StatusOK, h.service.TopProducts(c.Request.Context(), mode, strings.TrimSpace(c.Query("period"))))
}

func (h *ReportHandler) GetInsight(c *gin.Context) {
	insight, err := h.service.Insight(c.Param("id"))
	if errors.Is(err, service.ErrReportNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build insight"})
		return
	}
	c.JSON(http.StatusOK, insight)
}

func (h *ReportHandler) GetCollisions(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Collisions())
}

func (h *ReportHandler) Reload(c *gin.Context) {
	summary, err := h.service.Reload(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("reload failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to reload reports"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
