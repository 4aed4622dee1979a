package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/application/user/usecases"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils"
)

type UserHandler struct {
	eraseUC usecases.EraseUserExecutor
	logger  logger.Interface
}

func NewUserHandler(eraseUC usecases.EraseUserExecutor) *UserHandler {
	return &UserHandler{
		eraseUC: eraseUC,
		logger:  logger.NewLogger(),
	}
}

// EraseMe handles DELETE /users/me
// @Summary Erase the caller's account
// @Description Revokes sessions, scrubs the profile, deletes owned data, and anonymizes public records. Irreversible.
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 410 {object} utils.APIResponse
// @Router /users/me [delete]
func (h *UserHandler) EraseMe(c *gin.Context) {
	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.EraseUserCommand{
		UserID:   utils.GetCallerID(c),
		ActorSID: utils.GetUserID(c),
		IP:       meta.ClientIP,
		Device:   meta.DeviceID,
	}

	result, err := h.eraseUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "account erased", result)
}
