package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/application/anchor/usecases"
	"github.com/sahay-inc/sahay/internal/shared/id"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils"
)

type AnchorHandler struct {
	complaintAnchorsUC usecases.GetComplaintAnchorsExecutor
	verifyUC           usecases.VerifyAnchorExecutor
	retryUC            usecases.RetryAnchorsExecutor
	logger             logger.Interface
}

func NewAnchorHandler(
	complaintAnchorsUC usecases.GetComplaintAnchorsExecutor,
	verifyUC usecases.VerifyAnchorExecutor,
	retryUC usecases.RetryAnchorsExecutor,
) *AnchorHandler {
	return &AnchorHandler{
		complaintAnchorsUC: complaintAnchorsUC,
		verifyUC:           verifyUC,
		retryUC:            retryUC,
		logger:             logger.NewLogger(),
	}
}

// ComplaintAnchors handles GET /complaints/:id/anchors
// @Summary List a complaint's anchor records
// @Description Hashes and transaction references sealing the complaint's lifecycle
// @Tags anchors
// @Produce json
// @Security Bearer
// @Param id path string true "Complaint SID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /complaints/{id}/anchors [get]
func (h *AnchorHandler) ComplaintAnchors(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixComplaint, "complaint")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetComplaintAnchorsQuery{
		CallerID:        utils.GetCallerID(c),
		CallerIsOfficer: callerIsOfficer(c),
		ComplaintSID:    sid,
	}

	result, err := h.complaintAnchorsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Verify handles GET /anchors/:id/verify
// @Summary Verify an anchor against the complaint it seals
// @Description Recomputes the sealed hashes and compares them with the stored record
// @Tags anchors
// @Produce json
// @Security Bearer
// @Param id path string true "Anchor SID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /anchors/{id}/verify [get]
func (h *AnchorHandler) Verify(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixAnchor, "anchor")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.verifyUC.Execute(c.Request.Context(), usecases.VerifyAnchorQuery{AnchorSID: sid})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Retry handles POST /anchors/retry
// @Summary Drain the anchor queue now
// @Description Manual trigger for the scheduled submission job. Also requeues records abandoned after exhausting their attempts.
// @Tags anchors
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /anchors/retry [post]
func (h *AnchorHandler) Retry(c *gin.Context) {
	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.RetryAnchorsCommand{
		CallerSID: utils.GetUserID(c),
		IP:        meta.ClientIP,
		Device:    meta.DeviceID,
	}

	result, err := h.retryUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "anchor retry completed", result)
}
