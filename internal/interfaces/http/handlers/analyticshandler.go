package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/application/analytics/usecases"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils"
)

type AnalyticsHandler struct {
	emitUC    usecases.EmitEventExecutor
	summaryUC usecases.GetSummaryExecutor
	logger    logger.Interface
}

func NewAnalyticsHandler(
	emitUC usecases.EmitEventExecutor,
	summaryUC usecases.GetSummaryExecutor,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		emitUC:    emitUC,
		summaryUC: summaryUC,
		logger:    logger.NewLogger(),
	}
}

// EmitEventRequest carries one raw analytics event. Identifying
// attributes are bucketed server-side before anything is stored.
type EmitEventRequest struct {
	EventType string         `json:"event_type" binding:"required"`
	Category  string         `json:"category" binding:"required"`
	Metadata  map[string]any `json:"metadata"`
}

// Emit handles POST /analytics/events
// @Summary Record an analytics event
// @Description Consent-gated. The event is de-identified on ingestion; raw location and age never reach storage.
// @Tags analytics
// @Accept json
// @Produce json
// @Security Bearer
// @Param event body EmitEventRequest true "Event data"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /analytics/events [post]
func (h *AnalyticsHandler) Emit(c *gin.Context) {
	var req EmitEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, err)
		return
	}

	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.EmitEventCommand{
		CallerID:  utils.GetCallerID(c),
		CallerSID: utils.GetUserID(c),
		EventType: req.EventType,
		Category:  req.Category,
		Metadata:  req.Metadata,
		IP:        meta.ClientIP,
		Device:    meta.DeviceID,
	}

	result, err := h.emitUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "event recorded")
}

// Summary handles GET /analytics/summary
// @Summary Aggregated event counts
// @Description Officer read over the k-anonymised aggregates; cells below the privacy floor are suppressed
// @Tags analytics
// @Produce json
// @Security Bearer
// @Param event_type query string false "Event type filter"
// @Param from query string false "Window start, RFC3339"
// @Param to query string false "Window end, RFC3339"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	query := usecases.GetSummaryQuery{
		EventType: c.Query("event_type"),
		From:      c.Query("from"),
		To:        c.Query("to"),
	}

	result, err := h.summaryUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
