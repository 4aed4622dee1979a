package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/application/auth/usecases"
	"github.com/sahay-inc/sahay/internal/shared/constants"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils"
)

type AuthHandler struct {
	registerUC usecases.RegisterExecutor
	loginUC    usecases.LoginExecutor
	logoutUC   usecases.LogoutExecutor
	logger     logger.Interface
}

func NewAuthHandler(
	registerUC usecases.RegisterExecutor,
	loginUC usecases.LoginExecutor,
	logoutUC usecases.LogoutExecutor,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		logoutUC:   logoutUC,
		logger:     logger.NewLogger(),
	}
}

// RegisterRequest accepts phone, alias, or both. Alias-only accounts are
// assisted registrations a field worker creates on a shared device.
type RegisterRequest struct {
	Phone    *string `json:"phone,omitempty"`
	Alias    string  `json:"alias"`
	Password string  `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Register handles POST /auth/register
// @Summary Register a new account
// @Description Create an account with a phone number, an alias, or both
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body RegisterRequest true "Registration data"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, err)
		return
	}

	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.RegisterCommand{
		Phone:    req.Phone,
		Alias:    req.Alias,
		Password: req.Password,
		IP:       meta.ClientIP,
		Device:   meta.DeviceID,
	}

	result, err := h.registerUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "registration successful")
}

// Login handles POST /auth/login
// @Summary Log in with phone or alias
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, err)
		return
	}

	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.LoginCommand{
		Identifier: req.Identifier,
		Password:   req.Password,
		IP:         meta.ClientIP,
		Device:     meta.DeviceID,
	}

	result, err := h.loginUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", result)
}

// Logout handles POST /auth/logout
// @Summary Revoke the presented token
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.LogoutCommand{
		Token:    bearerFromHeader(c),
		ActorSID: utils.GetUserID(c),
		IP:       meta.ClientIP,
		Device:   meta.DeviceID,
	}

	if err := h.logoutUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "logged out", nil)
}

// bearerFromHeader returns the Authorization bearer token, or empty when
// the header is missing or malformed.
func bearerFromHeader(c *gin.Context) string {
	header := c.GetHeader(constants.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return ""
	}
	return parts[1]
}
