package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/application/triage/usecases"
	"github.com/sahay-inc/sahay/internal/shared/id"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils"
)

// TriageAnalytics records triage outcomes for consenting users. The
// emission never fails the request.
type TriageAnalytics interface {
	EmitTriage(ctx context.Context, userID uint, userSID string, category string, hasRedFlags bool)
}

type TriageHandler struct {
	createUC  usecases.CreateSessionExecutor
	getUC     usecases.GetSessionExecutor
	analytics TriageAnalytics
	logger    logger.Interface
}

func NewTriageHandler(
	createUC usecases.CreateSessionExecutor,
	getUC usecases.GetSessionExecutor,
	analytics TriageAnalytics,
) *TriageHandler {
	return &TriageHandler{
		createUC:  createUC,
		getUC:     getUC,
		analytics: analytics,
		logger:    logger.NewLogger(),
	}
}

// CreateSessionRequest carries the symptom input for one triage run.
type CreateSessionRequest struct {
	SymptomsText string `json:"symptoms_text" binding:"required"`
	Age          int    `json:"age" binding:"required,min=0,max=120"`
	Sex          string `json:"sex" binding:"required"`
	Pregnancy    bool   `json:"pregnancy"`
	Language     string `json:"language"`
}

// CreateSession handles POST /triage/sessions
// @Summary Run symptom triage
// @Description Evaluates free-text symptoms against the rulebook and stores the session with its guidance
// @Tags triage
// @Accept json
// @Produce json
// @Security Bearer
// @Param session body CreateSessionRequest true "Symptom input"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /triage/sessions [post]
func (h *TriageHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, err)
		return
	}

	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.CreateSessionCommand{
		CallerID:     utils.GetCallerID(c),
		CallerSID:    utils.GetUserID(c),
		SymptomsText: req.SymptomsText,
		Age:          req.Age,
		Sex:          req.Sex,
		Pregnancy:    req.Pregnancy,
		Language:     req.Language,
		IP:           meta.ClientIP,
		Device:       meta.DeviceID,
	}

	result, err := h.createUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.analytics.EmitTriage(c.Request.Context(), cmd.CallerID, cmd.CallerSID, result.Category, len(result.RedFlags) > 0)

	utils.CreatedResponse(c, result, "triage session recorded")
}

// GetSession handles GET /triage/sessions/:id
// @Summary Read one triage session
// @Description Owners read their own sessions only
// @Tags triage
// @Produce json
// @Security Bearer
// @Param id path string true "Session SID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /triage/sessions/{id} [get]
func (h *TriageHandler) GetSession(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixTriage, "triage session")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetSessionQuery{
		CallerID:   utils.GetCallerID(c),
		SessionSID: sid,
	}

	result, err := h.getUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
