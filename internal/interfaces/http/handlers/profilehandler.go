package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/application/profile/usecases"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils"
)

type ProfileHandler struct {
	getUC    usecases.GetProfileExecutor
	updateUC usecases.UpdateProfileExecutor
	exportUC usecases.ExportProfileExecutor
	logger   logger.Interface
}

func NewProfileHandler(
	getUC usecases.GetProfileExecutor,
	updateUC usecases.UpdateProfileExecutor,
	exportUC usecases.ExportProfileExecutor,
) *ProfileHandler {
	return &ProfileHandler{
		getUC:    getUC,
		updateUC: updateUC,
		exportUC: exportUC,
		logger:   logger.NewLogger(),
	}
}

// UpdateProfileRequest carries a partial profile write. Absent fields are
// left untouched; the sync pipeline is the canonical write path and this
// direct PATCH exists for clients without offline state.
type UpdateProfileRequest struct {
	NameAlias *string `json:"name_alias,omitempty"`
	DOB       *string `json:"dob,omitempty"`
	Sex       *string `json:"sex,omitempty"`
	Pincode   *string `json:"pincode,omitempty"`
}

// GetMe handles GET /profiles/me
// @Summary Read the caller's profile
// @Tags profiles
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /profiles/me [get]
func (h *ProfileHandler) GetMe(c *gin.Context) {
	query := usecases.GetProfileQuery{CallerID: utils.GetCallerID(c)}

	result, err := h.getUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateMe handles PATCH /profiles/me
// @Summary Update the caller's profile
// @Tags profiles
// @Accept json
// @Produce json
// @Security Bearer
// @Param profile body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /profiles/me [patch]
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, err)
		return
	}

	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.UpdateProfileCommand{
		CallerID:  utils.GetCallerID(c),
		CallerSID: utils.GetUserID(c),
		NameAlias: req.NameAlias,
		DOB:       req.DOB,
		Sex:       req.Sex,
		Pincode:   req.Pincode,
		IP:        meta.ClientIP,
		Device:    meta.DeviceID,
	}

	result, err := h.updateUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "profile updated", result)
}

// Export handles GET /export/profile
// @Summary Export the caller's profile
// @Description Portable copy of the stored profile, gated on a clinician-scope tracking consent
// @Tags profiles
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /export/profile [get]
func (h *ProfileHandler) Export(c *gin.Context) {
	meta := utils.ExtractRequestMeta(c)
	query := usecases.ExportProfileQuery{
		CallerID:  utils.GetCallerID(c),
		CallerSID: utils.GetUserID(c),
		IP:        meta.ClientIP,
		Device:    meta.DeviceID,
	}

	result, err := h.exportUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
