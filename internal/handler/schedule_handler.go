package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/dto"
	appErrors "github.com/Aplkalex/cuhk-scheduler-sub000/pkg/errors"
	"github.com/Aplkalex/cuhk-scheduler-sub000/pkg/response"
)

// ScheduleGenerator produces ranked schedule candidates.
type ScheduleGenerator interface {
	Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error)
	Preferences() []string
}

// ScheduleHandler exposes the schedule generation endpoints.
type ScheduleHandler struct {
	generator ScheduleGenerator
}

// NewScheduleHandler constructs a schedule handler.
func NewScheduleHandler(generator ScheduleGenerator) *ScheduleHandler {
	return &ScheduleHandler{generator: generator}
}

// Generate handles POST /schedules/generate.
//
// @Summary Generate ranked schedules
// @Description Enumerates conflict-free weekly schedules for the requested courses and ranks them by the chosen preference.
// @Tags schedules
// @Accept json
// @Produce json
// @Param request body dto.GenerateScheduleRequest true "Generation request"
// @Success 200 {object} response.Envelope{data=dto.GenerateScheduleResponse}
// @Failure 400 {object} response.Envelope
// @Router /schedules/generate [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed request body"))
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result, nil)
}

// Preferences handles GET /schedules/preferences.
//
// @Summary List ranking preferences
// @Tags schedules
// @Produce json
// @Success 200 {object} response.Envelope{data=[]string}
// @Router /schedules/preferences [get]
func (h *ScheduleHandler) Preferences(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.generator.Preferences(), nil)
}
