package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/application/sync/usecases"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils"
)

type SyncHandler struct {
	submitUC usecases.SubmitBatchExecutor
	logger   logger.Interface
}

func NewSyncHandler(submitUC usecases.SubmitBatchExecutor) *SyncHandler {
	return &SyncHandler{
		submitUC: submitUC,
		logger:   logger.NewLogger(),
	}
}

// SyncItemRequest is one offline event envelope.
type SyncItemRequest struct {
	EventID    string         `json:"event_id" binding:"required"`
	DeviceID   string         `json:"device_id" binding:"required"`
	UserID     string         `json:"user_id"`
	EntityType string         `json:"entity_type" binding:"required"`
	Operation  string         `json:"operation" binding:"required"`
	ClientTime string         `json:"client_time" binding:"required"`
	Payload    map[string]any `json:"payload" binding:"required"`
}

type SubmitBatchRequest struct {
	Items []SyncItemRequest `json:"items" binding:"required"`
}

// SubmitBatch handles POST /sync/events:batch
// @Summary Submit a batch of offline events
// @Description Replays queued client events in order. Each item is answered accepted, duplicate, or rejected; one bad item never fails the batch.
// @Tags sync
// @Accept json
// @Produce json
// @Security Bearer
// @Param batch body SubmitBatchRequest true "Event batch, at most 500 items"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /sync/events:batch [post]
func (h *SyncHandler) SubmitBatch(c *gin.Context) {
	var req SubmitBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, err)
		return
	}

	items := make([]usecases.SyncItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecases.SyncItem{
			EventID:    item.EventID,
			DeviceID:   item.DeviceID,
			UserID:     item.UserID,
			EntityType: item.EntityType,
			Operation:  item.Operation,
			ClientTime: item.ClientTime,
			Payload:    item.Payload,
		})
	}

	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.SubmitBatchCommand{
		CallerID:  utils.GetCallerID(c),
		CallerSID: utils.GetUserID(c),
		IP:        meta.ClientIP,
		Device:    meta.DeviceID,
		Items:     items,
	}

	result, err := h.submitUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "batch processed", result)
}
