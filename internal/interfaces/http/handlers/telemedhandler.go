package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/application/telemed/usecases"
	"github.com/sahay-inc/sahay/internal/domain/telemed"
	"github.com/sahay-inc/sahay/internal/shared/id"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils"
)

type TelemedHandler struct {
	createRequestUC      usecases.CreateTeleRequestExecutor
	updateRequestUC      usecases.UpdateTeleRequestExecutor
	createPrescriptionUC usecases.CreatePrescriptionExecutor
	logger               logger.Interface
}

func NewTelemedHandler(
	createRequestUC usecases.CreateTeleRequestExecutor,
	updateRequestUC usecases.UpdateTeleRequestExecutor,
	createPrescriptionUC usecases.CreatePrescriptionExecutor,
) *TelemedHandler {
	return &TelemedHandler{
		createRequestUC:      createRequestUC,
		updateRequestUC:      updateRequestUC,
		createPrescriptionUC: createPrescriptionUC,
		logger:               logger.NewLogger(),
	}
}

type CreateTeleRequestRequest struct {
	SymptomSummary string  `json:"symptom_summary" binding:"required"`
	PreferredTime  *string `json:"preferred_time,omitempty"`
}

type UpdateTeleRequestRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreatePrescriptionRequest struct {
	RequestSID string                     `json:"request_sid" binding:"required"`
	Items      []telemed.PrescriptionItem `json:"items" binding:"required,min=1"`
	Advice     string                     `json:"advice"`
}

// CreateRequest handles POST /tele/requests
// @Summary Request a teleconsultation
// @Tags telemedicine
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateTeleRequestRequest true "Consultation request"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /tele/requests [post]
func (h *TelemedHandler) CreateRequest(c *gin.Context) {
	var req CreateTeleRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, err)
		return
	}

	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.CreateTeleRequestCommand{
		CallerID:       utils.GetCallerID(c),
		CallerSID:      utils.GetUserID(c),
		SymptomSummary: req.SymptomSummary,
		PreferredTime:  req.PreferredTime,
		IP:             meta.ClientIP,
		Device:         meta.DeviceID,
	}

	result, err := h.createRequestUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "teleconsultation requested")
}

// UpdateRequest handles PATCH /tele/requests/:id
// @Summary Move a teleconsultation through its lifecycle
// @Description Clinician-only status transitions: requested, scheduled, completed, cancelled
// @Tags telemedicine
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Request SID"
// @Param update body UpdateTeleRequestRequest true "New status"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tele/requests/{id} [patch]
func (h *TelemedHandler) UpdateRequest(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixTeleRequest, "teleconsultation request")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTeleRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, err)
		return
	}

	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.UpdateTeleRequestCommand{
		CallerID:   utils.GetCallerID(c),
		CallerSID:  utils.GetUserID(c),
		RequestSID: sid,
		Status:     req.Status,
		IP:         meta.ClientIP,
		Device:     meta.DeviceID,
	}

	result, err := h.updateRequestUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "request updated", result)
}

// CreatePrescription handles POST /prescriptions
// @Summary Write a prescription
// @Description Clinician-only. The generated summary is queued for SMS delivery to the patient.
// @Tags telemedicine
// @Accept json
// @Produce json
// @Security Bearer
// @Param prescription body CreatePrescriptionRequest true "Prescription payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /prescriptions [post]
func (h *TelemedHandler) CreatePrescription(c *gin.Context) {
	var req CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, err)
		return
	}

	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.CreatePrescriptionCommand{
		CallerID:   utils.GetCallerID(c),
		CallerSID:  utils.GetUserID(c),
		RequestSID: req.RequestSID,
		Items:      req.Items,
		Advice:     req.Advice,
		IP:         meta.ClientIP,
		Device:     meta.DeviceID,
	}

	result, err := h.createPrescriptionUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "prescription recorded")
}
