package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/application/audit/usecases"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils"
)

type AuditHandler struct {
	listUC   usecases.ListEntriesExecutor
	verifyUC usecases.VerifyChainExecutor
	logger   logger.Interface
}

func NewAuditHandler(
	listUC usecases.ListEntriesExecutor,
	verifyUC usecases.VerifyChainExecutor,
) *AuditHandler {
	return &AuditHandler{
		listUC:   listUC,
		verifyUC: verifyUC,
		logger:   logger.NewLogger(),
	}
}

// Logs handles GET /audit/logs
// @Summary List audit entries
// @Description Citizens see entries about themselves; officers may filter across actors
// @Tags audit
// @Produce json
// @Security Bearer
// @Param actor_id query string false "Actor filter (officers only)"
// @Param action query string false "Action filter"
// @Param entity_type query string false "Entity type filter"
// @Param entity_id query string false "Entity SID filter"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /audit/logs [get]
func (h *AuditHandler) Logs(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	query := usecases.ListEntriesQuery{
		CallerSID:       utils.GetUserID(c),
		CallerIsOfficer: callerIsOfficer(c),
		ActorID:         c.Query("actor_id"),
		Action:          c.Query("action"),
		EntityType:      c.Query("entity_type"),
		EntityID:        c.Query("entity_id"),
		Page:            pagination.Page,
		PageSize:        pagination.PageSize,
	}

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Entries, result.Total, pagination.Page, pagination.PageSize)
}

// Verify handles GET /audit/verify
// @Summary Verify the audit chain
// @Description Walks the hash chain from the given sequence number and reports the first break, if any
// @Tags audit
// @Produce json
// @Security Bearer
// @Param from_seq query int false "Sequence number to start from" default(1)
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /audit/verify [get]
func (h *AuditHandler) Verify(c *gin.Context) {
	var fromSeq uint64
	if raw := c.Query("from_seq"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "from_seq must be a positive integer")
			return
		}
		fromSeq = parsed
	}

	result, err := h.verifyUC.Execute(c.Request.Context(), usecases.VerifyChainQuery{FromSeq: fromSeq})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
