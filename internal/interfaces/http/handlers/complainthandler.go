package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/application/complaint/usecases"
	"github.com/sahay-inc/sahay/internal/domain/user"
	"github.com/sahay-inc/sahay/internal/shared/id"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils"
)

// maxEvidenceUpload bounds one attachment before it is read into memory.
// The use case enforces the same limit on the stored bytes.
const maxEvidenceUpload = 10 << 20

type ComplaintHandler struct {
	createUC       usecases.CreateComplaintExecutor
	getUC          usecases.GetComplaintExecutor
	listUC         usecases.ListComplaintsExecutor
	updateStatusUC usecases.UpdateStatusExecutor
	closeUC        usecases.CloseComplaintExecutor
	evidenceUC     usecases.UploadEvidenceExecutor
	historyUC      usecases.GetHistoryExecutor
	sweepUC        usecases.EscalationSweeper
	logger         logger.Interface
}

func NewComplaintHandler(
	createUC usecases.CreateComplaintExecutor,
	getUC usecases.GetComplaintExecutor,
	listUC usecases.ListComplaintsExecutor,
	updateStatusUC usecases.UpdateStatusExecutor,
	closeUC usecases.CloseComplaintExecutor,
	evidenceUC usecases.UploadEvidenceExecutor,
	historyUC usecases.GetHistoryExecutor,
	sweepUC usecases.EscalationSweeper,
) *ComplaintHandler {
	return &ComplaintHandler{
		createUC:       createUC,
		getUC:          getUC,
		listUC:         listUC,
		updateStatusUC: updateStatusUC,
		closeUC:        closeUC,
		evidenceUC:     evidenceUC,
		historyUC:      historyUC,
		sweepUC:        sweepUC,
		logger:         logger.NewLogger(),
	}
}

type CreateComplaintRequest struct {
	Category    string `json:"category" binding:"required"`
	Description string `json:"description" binding:"required"`
	Anonymous   bool   `json:"anonymous"`
}

type UpdateComplaintStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

type CloseComplaintRequest struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comments string `json:"comments"`
}

// Create handles POST /complaints
// @Summary File a complaint
// @Description Anonymous filing is allowed; an authenticated caller may still request anonymity
// @Tags complaints
// @Accept json
// @Produce json
// @Param complaint body CreateComplaintRequest true "Complaint data"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /complaints [post]
func (h *ComplaintHandler) Create(c *gin.Context) {
	var req CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, err)
		return
	}

	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.CreateComplaintCommand{
		CallerSID:   utils.GetUserID(c),
		Category:    req.Category,
		Description: req.Description,
		Anonymous:   req.Anonymous,
		IP:          meta.ClientIP,
		Device:      meta.DeviceID,
	}
	if callerID := utils.GetCallerID(c); callerID != 0 {
		cmd.CallerID = &callerID
	}

	result, err := h.createUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "complaint filed")
}

// Get handles GET /complaints/:id
// @Summary Read one complaint
// @Description Owners read their own complaints; officers read any
// @Tags complaints
// @Produce json
// @Security Bearer
// @Param id path string true "Complaint SID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /complaints/{id} [get]
func (h *ComplaintHandler) Get(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixComplaint, "complaint")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetComplaintQuery{
		CallerID:        utils.GetCallerID(c),
		CallerIsOfficer: callerIsOfficer(c),
		ComplaintSID:    sid,
	}

	result, err := h.getUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List handles GET /complaints
// @Summary List complaints
// @Description Citizens see their own filings; officers see all, filterable by status, category, and escalation level
// @Tags complaints
// @Produce json
// @Security Bearer
// @Param status query string false "Status filter"
// @Param category query string false "Category filter"
// @Param escalation_level query string false "Escalation level filter"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /complaints [get]
func (h *ComplaintHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	query := usecases.ListComplaintsQuery{
		CallerID:        utils.GetCallerID(c),
		CallerIsOfficer: callerIsOfficer(c),
		Status:          c.Query("status"),
		Category:        c.Query("category"),
		EscalationLevel: c.Query("escalation_level"),
		Page:            pagination.Page,
		PageSize:        pagination.PageSize,
	}

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Complaints, result.Total, result.Page, result.PageSize)
}

// UpdateStatus handles PATCH /complaints/:id/status
// @Summary Move a complaint through its lifecycle
// @Description Officer-only transitions: submitted, in_review, resolved, rejected
// @Tags complaints
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Complaint SID"
// @Param update body UpdateComplaintStatusRequest true "New status with an optional note"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /complaints/{id}/status [patch]
func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixComplaint, "complaint")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateComplaintStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, err)
		return
	}

	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.UpdateStatusCommand{
		CallerID:     utils.GetCallerID(c),
		CallerSID:    utils.GetUserID(c),
		ComplaintSID: sid,
		Status:       req.Status,
		Note:         req.Note,
		IP:           meta.ClientIP,
		Device:       meta.DeviceID,
	}

	result, err := h.updateStatusUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "status updated", result)
}

// Close handles POST /complaints/:id/close
// @Summary Close a resolved complaint with feedback
// @Tags complaints
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Complaint SID"
// @Param feedback body CloseComplaintRequest true "Citizen feedback"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /complaints/{id}/close [post]
func (h *ComplaintHandler) Close(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixComplaint, "complaint")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CloseComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, err)
		return
	}

	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.CloseComplaintCommand{
		CallerID:     utils.GetCallerID(c),
		CallerSID:    utils.GetUserID(c),
		ComplaintSID: sid,
		Rating:       req.Rating,
		Comments:     req.Comments,
		IP:           meta.ClientIP,
		Device:       meta.DeviceID,
	}

	result, err := h.closeUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "complaint closed", result)
}

// History handles GET /complaints/:id/history
// @Summary Read a complaint's status history
// @Tags complaints
// @Produce json
// @Security Bearer
// @Param id path string true "Complaint SID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /complaints/{id}/history [get]
func (h *ComplaintHandler) History(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixComplaint, "complaint")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetHistoryQuery{
		CallerID:        utils.GetCallerID(c),
		CallerIsOfficer: callerIsOfficer(c),
		ComplaintSID:    sid,
	}

	result, err := h.historyUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UploadEvidence handles POST /complaints/:id/evidence
// @Summary Attach evidence to a complaint
// @Description Multipart upload, one file per request, 10 MiB cap
// @Tags complaints
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param id path string true "Complaint SID"
// @Param file formData file true "Evidence file"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /complaints/{id}/evidence [post]
func (h *ComplaintHandler) UploadEvidence(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixComplaint, "complaint")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "evidence file is required")
		return
	}
	if fileHeader.Size > maxEvidenceUpload {
		utils.ErrorResponse(c, http.StatusBadRequest, "evidence file exceeds the 10 MiB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Errorw("failed to open evidence upload", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read evidence file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.logger.Errorw("failed to read evidence upload", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read evidence file")
		return
	}

	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.UploadEvidenceCommand{
		CallerID:     utils.GetCallerID(c),
		CallerSID:    utils.GetUserID(c),
		ComplaintSID: sid,
		Content:      content,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		IP:           meta.ClientIP,
		Device:       meta.DeviceID,
	}

	result, err := h.evidenceUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "evidence attached")
}

// RunEscalation handles POST /complaints/escalation/run
// @Summary Run the SLA escalation sweep now
// @Description Manual trigger for the scheduled sweep. National admin only.
// @Tags complaints
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /complaints/escalation/run [post]
func (h *ComplaintHandler) RunEscalation(c *gin.Context) {
	result, err := h.sweepUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "escalation sweep completed", result)
}

// callerIsOfficer reports whether any of the caller's roles is a
// government officer role.
func callerIsOfficer(c *gin.Context) bool {
	for _, r := range utils.GetUserRoles(c) {
		if user.Role(r).IsOfficer() {
			return true
		}
	}
	return false
}
