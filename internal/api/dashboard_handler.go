package api

import (
	"coachdesk/coach-console/internal/service"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the headline stats and the yearly sales view.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats godoc
// @Summary Dashboard statistics
// @Description Student counts plus estimated MRR (monthly-equivalent value of active and renewal plans).
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DashboardStats "Stats"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute stats.")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetYearlyFinance godoc
// @Summary Yearly sales view
// @Description Raw plan values bucketed by entry month for the selected year. Not MRR: sale events are never cadence-normalized.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param year query int false "Calendar year (defaults to the current year)"
// @Success 200 {object} service.YearlyFinance "Yearly sales"
// @Failure 400 {object} gin.H "Invalid year"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /finance/yearly [get]
func (h *DashboardHandler) GetYearlyFinance(c *gin.Context) {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid year.")
			return
		}
		year = parsed
	}

	finance, err := h.dashboardService.YearlyFinance(c.Request.Context(), year)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute yearly finance.")
		return
	}
	c.JSON(http.StatusOK, finance)
}
