package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/application/dashboard/usecases"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils"
)

// DashboardResponseCache is the read-through cache for rendered dashboard
// payloads. Keys are derived from the endpoint name and the raw query
// string, so distinct filters never share an entry.
type DashboardResponseCache interface {
	Key(endpoint, query string) string
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte) error
}

type DashboardHandler struct {
	overviewUC           usecases.GetOverviewExecutor
	timeSeriesUC         usecases.GetTimeSeriesExecutor
	heatmapUC            usecases.GetHeatmapExecutor
	categoriesUC         usecases.GetCategoryBreakdownExecutor
	demographicsUC       usecases.GetDemographicsExecutor
	topRegionsUC         usecases.GetTopRegionsExecutor
	refreshViewsUC       usecases.RefreshViewsExecutor
	viewStatsUC          usecases.GetViewStatsExecutor
	triageCountsUC       usecases.ListTriageCountsExecutor
	complaintDistrictsUC usecases.ListComplaintsByDistrictExecutor
	symptomHeatmapUC     usecases.ListSymptomHeatmapExecutor
	slaBreachesUC        usecases.ListSLABreachesExecutor
	cache                DashboardResponseCache
	logger               logger.Interface
}

func NewDashboardHandler(
	overviewUC usecases.GetOverviewExecutor,
	timeSeriesUC usecases.GetTimeSeriesExecutor,
	heatmapUC usecases.GetHeatmapExecutor,
	categoriesUC usecases.GetCategoryBreakdownExecutor,
	demographicsUC usecases.GetDemographicsExecutor,
	topRegionsUC usecases.GetTopRegionsExecutor,
	refreshViewsUC usecases.RefreshViewsExecutor,
	viewStatsUC usecases.GetViewStatsExecutor,
	triageCountsUC usecases.ListTriageCountsExecutor,
	complaintDistrictsUC usecases.ListComplaintsByDistrictExecutor,
	symptomHeatmapUC usecases.ListSymptomHeatmapExecutor,
	slaBreachesUC usecases.ListSLABreachesExecutor,
	cache DashboardResponseCache,
) *DashboardHandler {
	return &DashboardHandler{
		overviewUC:           overviewUC,
		timeSeriesUC:         timeSeriesUC,
		heatmapUC:            heatmapUC,
		categoriesUC:         categoriesUC,
		demographicsUC:       demographicsUC,
		topRegionsUC:         topRegionsUC,
		refreshViewsUC:       refreshViewsUC,
		viewStatsUC:          viewStatsUC,
		triageCountsUC:       triageCountsUC,
		complaintDistrictsUC: complaintDistrictsUC,
		symptomHeatmapUC:     symptomHeatmapUC,
		slaBreachesUC:        slaBreachesUC,
		cache:                cache,
		logger:               logger.NewLogger(),
	}
}

// Summary handles GET /dashboard/summary
// @Summary Dashboard overview counters
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param days query int false "Trailing window in days"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	query := usecases.OverviewQuery{Days: queryInt(c, "days")}
	h.respondCached(c, "summary", func(ctx context.Context) (any, error) {
		return h.overviewUC.Execute(ctx, query)
	})
}

// TimeSeries handles GET /dashboard/timeseries
// @Summary Event counts over time
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param event_type query string false "Event type filter"
// @Param category query string false "Category filter"
// @Param from query string false "Window start, RFC3339"
// @Param to query string false "Window end, RFC3339"
// @Success 200 {object} utils.APIResponse
// @Router /dashboard/timeseries [get]
func (h *DashboardHandler) TimeSeries(c *gin.Context) {
	query := usecases.TimeSeriesQuery{
		EventType: c.Query("event_type"),
		Category:  c.Query("category"),
		From:      c.Query("from"),
		To:        c.Query("to"),
	}
	h.respondCached(c, "timeseries", func(ctx context.Context) (any, error) {
		return h.timeSeriesUC.Execute(ctx, query)
	})
}

// Heatmap handles GET /dashboard/heatmap
// @Summary Per-region event counts for map rendering
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param event_type query string false "Event type filter"
// @Param category query string false "Category filter"
// @Param days query int false "Trailing window in days"
// @Success 200 {object} utils.APIResponse
// @Router /dashboard/heatmap [get]
func (h *DashboardHandler) Heatmap(c *gin.Context) {
	query := usecases.HeatmapQuery{
		EventType: c.Query("event_type"),
		Category:  c.Query("category"),
		Days:      queryInt(c, "days"),
	}
	h.respondCached(c, "heatmap", func(ctx context.Context) (any, error) {
		return h.heatmapUC.Execute(ctx, query)
	})
}

// Categories handles GET /dashboard/categories
// @Summary Category distribution
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param event_type query string false "Event type filter"
// @Param from query string false "Window start, RFC3339"
// @Param to query string false "Window end, RFC3339"
// @Success 200 {object} utils.APIResponse
// @Router /dashboard/categories [get]
func (h *DashboardHandler) Categories(c *gin.Context) {
	query := usecases.CategoryBreakdownQuery{
		EventType: c.Query("event_type"),
		From:      c.Query("from"),
		To:        c.Query("to"),
	}
	h.respondCached(c, "categories", func(ctx context.Context) (any, error) {
		return h.categoriesUC.Execute(ctx, query)
	})
}

// Demographics handles GET /dashboard/demographics
// @Summary Age-band and gender distributions
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param event_type query string false "Event type filter"
// @Param category query string false "Category filter"
// @Param from query string false "Window start, RFC3339"
// @Param to query string false "Window end, RFC3339"
// @Success 200 {object} utils.APIResponse
// @Router /dashboard/demographics [get]
func (h *DashboardHandler) Demographics(c *gin.Context) {
	query := usecases.DemographicsQuery{
		EventType: c.Query("event_type"),
		Category:  c.Query("category"),
		From:      c.Query("from"),
		To:        c.Query("to"),
	}
	h.respondCached(c, "demographics", func(ctx context.Context) (any, error) {
		return h.demographicsUC.Execute(ctx, query)
	})
}

// TopRegions handles GET /dashboard/top-regions
// @Summary Regions ranked by event volume
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param event_type query string false "Event type filter"
// @Param category query string false "Category filter"
// @Param days query int false "Trailing window in days"
// @Param limit query int false "Number of regions to return"
// @Success 200 {object} utils.APIResponse
// @Router /dashboard/top-regions [get]
func (h *DashboardHandler) TopRegions(c *gin.Context) {
	query := usecases.TopRegionsQuery{
		EventType: c.Query("event_type"),
		Category:  c.Query("category"),
		Days:      queryInt(c, "days"),
		Limit:     queryInt(c, "limit"),
	}
	h.respondCached(c, "top-regions", func(ctx context.Context) (any, error) {
		return h.topRegionsUC.Execute(ctx, query)
	})
}

// RefreshViews handles POST /dashboard/materialized-views/refresh
// @Summary Rebuild the materialized views now
// @Description Manual trigger for the scheduled rebuild. Cached dashboard responses are dropped afterwards.
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /dashboard/materialized-views/refresh [post]
func (h *DashboardHandler) RefreshViews(c *gin.Context) {
	result, err := h.refreshViewsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "views refreshed", result)
}

// ViewStats handles GET /dashboard/materialized-views/stats
// @Summary Materialized view freshness
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Router /dashboard/materialized-views/stats [get]
func (h *DashboardHandler) ViewStats(c *gin.Context) {
	result, err := h.viewStatsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// TriageCounts handles GET /dashboard/mv/triage-counts
// @Summary Daily triage counts view
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param start_date query string false "Start date, YYYY-MM-DD"
// @Param end_date query string false "End date, YYYY-MM-DD"
// @Param geo_cell query string false "Region filter"
// @Success 200 {object} utils.APIResponse
// @Router /dashboard/mv/triage-counts [get]
func (h *DashboardHandler) TriageCounts(c *gin.Context) {
	query := usecases.TriageCountsQuery{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		GeoCell:   c.Query("geo_cell"),
	}
	h.respondCached(c, "mv-triage-counts", func(ctx context.Context) (any, error) {
		return h.triageCountsUC.Execute(ctx, query)
	})
}

// ComplaintCategories handles GET /dashboard/mv/complaint-categories
// @Summary Complaint distribution by district view
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param geo_cell query string false "Region filter"
// @Param category query string false "Category filter"
// @Success 200 {object} utils.APIResponse
// @Router /dashboard/mv/complaint-categories [get]
func (h *DashboardHandler) ComplaintCategories(c *gin.Context) {
	query := usecases.ComplaintsByDistrictQuery{
		GeoCell:  c.Query("geo_cell"),
		Category: c.Query("category"),
	}
	h.respondCached(c, "mv-complaint-categories", func(ctx context.Context) (any, error) {
		return h.complaintDistrictsUC.Execute(ctx, query)
	})
}

// SymptomHeatmap handles GET /dashboard/mv/symptom-heatmap
// @Summary Symptom cluster view
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param days query int false "Trailing window in days"
// @Success 200 {object} utils.APIResponse
// @Router /dashboard/mv/symptom-heatmap [get]
func (h *DashboardHandler) SymptomHeatmap(c *gin.Context) {
	query := usecases.SymptomHeatmapQuery{Days: queryInt(c, "days")}
	h.respondCached(c, "mv-symptom-heatmap", func(ctx context.Context) (any, error) {
		return h.symptomHeatmapUC.Execute(ctx, query)
	})
}

// SLABreaches handles GET /dashboard/mv/sla-breaches
// @Summary SLA breach counts view
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param geo_cell query string false "Region filter"
// @Param min_escalation_rate query number false "Minimum escalation rate"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /dashboard/mv/sla-breaches [get]
func (h *DashboardHandler) SLABreaches(c *gin.Context) {
	query := usecases.SLABreachQuery{GeoCell: c.Query("geo_cell")}
	if raw := c.Query("min_escalation_rate"); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "min_escalation_rate must be a number")
			return
		}
		query.MinEscalationRate = &rate
	}
	h.respondCached(c, "mv-sla-breaches", func(ctx context.Context) (any, error) {
		return h.slaBreachesUC.Execute(ctx, query)
	})
}

// respondCached serves the endpoint from the response cache when it can,
// and fills the cache on a miss. Cache failures degrade to a live read.
func (h *DashboardHandler) respondCached(c *gin.Context, endpoint string, load func(ctx context.Context) (any, error)) {
	ctx := c.Request.Context()

	var key string
	if h.cache != nil {
		key = h.cache.Key(endpoint, c.Request.URL.RawQuery)
		payload, found, err := h.cache.Get(ctx, key)
		if err != nil {
			h.logger.Warnw("dashboard cache read failed", "endpoint", endpoint, "error", err)
		} else if found {
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			return
		}
	}

	result, err := load(ctx)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	payload, err := json.Marshal(utils.APIResponse{Success: true, Data: result})
	if err != nil {
		h.logger.Errorw("failed to encode dashboard payload", "endpoint", endpoint, "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to encode response")
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, key, payload); err != nil {
			h.logger.Warnw("dashboard cache write failed", "endpoint", endpoint, "error", err)
		}
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// queryInt parses a non-negative integer query parameter. Absent or
// malformed values come back as zero and take the use case default.
func queryInt(c *gin.Context, key string) int {
	if raw := c.Query(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
