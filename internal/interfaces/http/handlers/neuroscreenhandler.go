package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/application/neuroscreen/usecases"
	"github.com/sahay-inc/sahay/internal/shared/id"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils"
)

// NeuroscreenAnalytics records completed screenings for consenting users.
// The emission never fails the request.
type NeuroscreenAnalytics interface {
	EmitNeuroscreen(ctx context.Context, userID uint, userSID string, band string)
}

type NeuroscreenHandler struct {
	submitUC  usecases.SubmitScreeningExecutor
	getUC     usecases.GetResultExecutor
	analytics NeuroscreenAnalytics
	logger    logger.Interface
}

func NewNeuroscreenHandler(
	submitUC usecases.SubmitScreeningExecutor,
	getUC usecases.GetResultExecutor,
	analytics NeuroscreenAnalytics,
) *NeuroscreenHandler {
	return &NeuroscreenHandler{
		submitUC:  submitUC,
		getUC:     getUC,
		analytics: analytics,
		logger:    logger.NewLogger(),
	}
}

// SubmitScreeningRequest carries the questionnaire answers, keyed by
// question ID.
type SubmitScreeningRequest struct {
	Responses map[string]int `json:"responses" binding:"required"`
}

// SubmitScreening handles POST /neuroscreen/results
// @Summary Record a developmental screening
// @Description Scores the responses against the active instrument and stores the banded result
// @Tags neuroscreen
// @Accept json
// @Produce json
// @Security Bearer
// @Param screening body SubmitScreeningRequest true "Questionnaire responses"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /neuroscreen/results [post]
func (h *NeuroscreenHandler) SubmitScreening(c *gin.Context) {
	var req SubmitScreeningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, err)
		return
	}

	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.SubmitScreeningCommand{
		CallerID:  utils.GetCallerID(c),
		CallerSID: utils.GetUserID(c),
		Responses: req.Responses,
		IP:        meta.ClientIP,
		Device:    meta.DeviceID,
	}

	result, err := h.submitUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.analytics.EmitNeuroscreen(c.Request.Context(), cmd.CallerID, cmd.CallerSID, result.Band)

	utils.CreatedResponse(c, result, "screening recorded")
}

// GetResult handles GET /neuroscreen/results/:id
// @Summary Read one screening result
// @Description Owners read their own results only
// @Tags neuroscreen
// @Produce json
// @Security Bearer
// @Param id path string true "Result SID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /neuroscreen/results/{id} [get]
func (h *NeuroscreenHandler) GetResult(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixNeuroscreen, "screening result")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetResultQuery{
		CallerID:  utils.GetCallerID(c),
		ResultSID: sid,
	}

	result, err := h.getUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
