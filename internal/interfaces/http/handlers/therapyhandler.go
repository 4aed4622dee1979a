package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/application/therapy/usecases"
	"github.com/sahay-inc/sahay/internal/shared/id"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils"
)

type TherapyHandler struct {
	createUC usecases.CreateModuleExecutor
	listUC   usecases.ListModulesExecutor
	packUC   usecases.GeneratePackExecutor
	logger   logger.Interface
}

func NewTherapyHandler(
	createUC usecases.CreateModuleExecutor,
	listUC usecases.ListModulesExecutor,
	packUC usecases.GeneratePackExecutor,
) *TherapyHandler {
	return &TherapyHandler{
		createUC: createUC,
		listUC:   listUC,
		packUC:   packUC,
		logger:   logger.NewLogger(),
	}
}

// TherapyStepRequest is one authored step.
type TherapyStepRequest struct {
	StepNumber      int      `json:"step_number" binding:"required,min=1"`
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	MediaReferences []string `json:"media_references"`
	DurationMinutes int      `json:"duration_minutes" binding:"omitempty,min=0"`
}

// CreateModuleRequest carries one authored therapy module.
type CreateModuleRequest struct {
	Title       string               `json:"title" binding:"required"`
	Description string               `json:"description"`
	ModuleType  string               `json:"module_type" binding:"required"`
	AgeRangeMin *int                 `json:"age_range_min" binding:"omitempty,min=0"`
	AgeRangeMax *int                 `json:"age_range_max" binding:"omitempty,min=0"`
	Steps       []TherapyStepRequest `json:"steps" binding:"required,min=1,dive"`
}

// CreateModule handles POST /therapy/modules
// @Summary Author a therapy module
// @Description Creates a module with its ordered steps
// @Tags therapy
// @Accept json
// @Produce json
// @Security Bearer
// @Param module body CreateModuleRequest true "Module definition"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /therapy/modules [post]
func (h *TherapyHandler) CreateModule(c *gin.Context) {
	var req CreateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BindingErrorResponse(c, err)
		return
	}

	steps := make([]usecases.StepInput, 0, len(req.Steps))
	for _, step := range req.Steps {
		steps = append(steps, usecases.StepInput{
			Number:          step.StepNumber,
			Title:           step.Title,
			Description:     step.Description,
			MediaReferences: step.MediaReferences,
			DurationMinutes: step.DurationMinutes,
		})
	}

	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.CreateModuleCommand{
		CallerID:    utils.GetCallerID(c),
		CallerSID:   utils.GetUserID(c),
		Title:       req.Title,
		Description: req.Description,
		ModuleType:  req.ModuleType,
		AgeRangeMin: req.AgeRangeMin,
		AgeRangeMax: req.AgeRangeMax,
		Steps:       steps,
		IP:          meta.ClientIP,
		Device:      meta.DeviceID,
	}

	result, err := h.createUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "therapy module created")
}

// ListModules handles GET /therapy/modules
// @Summary Browse the module catalogue
// @Description Lists modules, optionally filtered by type and by the child's age in months
// @Tags therapy
// @Produce json
// @Security Bearer
// @Param module_type query string false "Module type filter"
// @Param age_months query int false "Age filter in months"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /therapy/modules [get]
func (h *TherapyHandler) ListModules(c *gin.Context) {
	query := usecases.ListModulesQuery{
		ModuleType: c.Query("module_type"),
	}
	if raw := c.Query("age_months"); raw != "" {
		months, err := strconv.Atoi(raw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "age_months must be an integer")
			return
		}
		query.AgeMonths = &months
	}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GeneratePackRequest names the pack version to build.
type GeneratePackRequest struct {
	Version string `json:"version"`
}

// GeneratePack handles POST /therapy/modules/:id/pack
// @Summary Build an offline pack from a module
// @Description Bundles the module into a ZIP archive, stores it content-addressed, and returns its SHA-256 checksum
// @Tags therapy
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Module SID"
// @Param pack body GeneratePackRequest false "Pack version"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /therapy/modules/{id}/pack [post]
func (h *TherapyHandler) GeneratePack(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixTherapyMod, "therapy module")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req GeneratePackRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BindingErrorResponse(c, err)
			return
		}
	}

	meta := utils.ExtractRequestMeta(c)
	cmd := usecases.GeneratePackCommand{
		CallerID:  utils.GetCallerID(c),
		CallerSID: utils.GetUserID(c),
		ModuleSID: sid,
		Version:   req.Version,
		IP:        meta.ClientIP,
		Device:    meta.DeviceID,
	}

	result, err := h.packUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "therapy pack generated")
}
