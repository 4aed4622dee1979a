package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/application/vaccination/usecases"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils"
)

// VaccinationAnalytics records administered doses for consenting users.
// The emission never fails the request.
type VaccinationAnalytics interface {
	EmitVaccination(ctx context.Context, userID uint, userSID string, vaccineName string, doseNumber int)
}

type VaccinationHandler struct {
	recordUC  usecases.RecordVaccinationExecutor
	nextDueUC usecases.NextDueExecutor
	analytics VaccinationAnalytics
	logger    logger.Interface
}

func NewVaccinationHandler(
	recordUC usecases.RecordVaccinationExecutor,
	nextDueUC usecases.NextDueExecutor,
	analytics VaccinationAnalytics,
) *VaccinationHandler {
	return &VaccinationHandler{
		recordUC:  recordUC,
		nextDueUC: nextDueUC,
		analytics: analytics,
		logger:    logger.NewLogger(),
	}
}

// RecordVaccinationRequest carries one administered dose.
type RecordVaccinationRequest struct {
	VaccineName    string `json:"vaccine_name" binding:"required"`
	DoseNumber     int    `json:"dose_number" binding:"required,min=1"`
	AdministeredAt string `json:"administered_at" binding:"required"`
}

// RecordVaccination handles POST /vax/records
// @Summary Record an administered dose
// @Description Stores the dose against the caller and feeds the aggregate analytics pipeline
// @Tags vaccination
// @Accept json
// @Produce json
// @Security Bearer
// @Param record body RecordVaccinationRequest true "Administered dose"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /vax/records [post]
func (h *VaccinationHandler) RecordVaccination(c *gin.Context) {
	var req RecordVaccinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, err)
		return
	}

	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.RecordVaccinationCommand{
		CallerID:       utils.GetCallerID(c),
		CallerSID:      utils.GetUserID(c),
		VaccineName:    req.VaccineName,
		DoseNumber:     req.DoseNumber,
		AdministeredAt: req.AdministeredAt,
		IP:             meta.ClientIP,
		Device:         meta.DeviceID,
	}

	result, err := h.recordUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.analytics.EmitVaccination(c.Request.Context(), cmd.CallerID, cmd.CallerSID, result.VaccineName, result.DoseNumber)

	utils.CreatedResponse(c, result, "vaccination recorded")
}

// NextDue handles GET /vax/next-due
// @Summary Read the next due vaccine
// @Description Returns the earliest unadministered dose on the schedule, derived from the profile's date of birth
// @Tags vaccination
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /vax/next-due [get]
func (h *VaccinationHandler) NextDue(c *gin.Context) {
	query := usecases.NextDueQuery{
		CallerID: utils.GetCallerID(c),
	}

	result, err := h.nextDueUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
