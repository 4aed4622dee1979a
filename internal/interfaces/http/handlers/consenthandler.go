package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/application/consent/usecases"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils"
)

type ConsentHandler struct {
	grantUC usecases.GrantConsentExecutor
	listUC  usecases.ListConsentsExecutor
	logger  logger.Interface
}

func NewConsentHandler(
	grantUC usecases.GrantConsentExecutor,
	listUC usecases.ListConsentsExecutor,
) *ConsentHandler {
	return &ConsentHandler{
		grantUC: grantUC,
		listUC:  listUC,
		logger:  logger.NewLogger(),
	}
}

// GrantConsentRequest records a grant or a revocation. Granted is a
// pointer so an explicit false is distinguishable from an absent field.
type GrantConsentRequest struct {
	Category string `json:"category" binding:"required"`
	Scope    string `json:"scope" binding:"required"`
	Granted  *bool  `json:"granted" binding:"required"`
}

// Grant handles POST /consents
// @Summary Record a consent decision
// @Description Grant or revoke consent for one category and scope
// @Tags consents
// @Accept json
// @Produce json
// @Security Bearer
// @Param consent body GrantConsentRequest true "Consent decision"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /consents [post]
func (h *ConsentHandler) Grant(c *gin.Context) {
	var req GrantConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, err)
		return
	}

	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.GrantConsentCommand{
		UserID:   utils.GetCallerID(c),
		ActorSID: utils.GetUserID(c),
		Category: req.Category,
		Scope:    req.Scope,
		Granted:  *req.Granted,
		IP:       meta.ClientIP,
		Device:   meta.DeviceID,
	}

	result, err := h.grantUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "consent recorded")
}

// List handles GET /consents
// @Summary List the caller's consent state
// @Description Current effective state per category and scope, or the full decision history with ?history=true
// @Tags consents
// @Produce json
// @Security Bearer
// @Param history query bool false "Return the full decision history"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /consents [get]
func (h *ConsentHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	query := usecases.ListConsentsQuery{
		UserID:   utils.GetCallerID(c),
		History:  c.Query("history") == "true",
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Consents, result.Total, pagination.Page, pagination.PageSize)
}
