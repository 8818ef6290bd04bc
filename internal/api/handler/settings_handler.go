package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/NGOKrooz/SPIN-sub000/internal/dto"
	"github.com/NGOKrooz/SPIN-sub000/internal/service"
	"github.com/NGOKrooz/SPIN-sub000/pkg/response"
)

// SettingsHandler serves the rotation settings module.
type SettingsHandler struct {
	settingsSvc service.SettingsService
}

// NewSettingsHandler creates the SettingsHandler.
func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// Get returns the rotation settings.
// GET /api/v1/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsSvc.Get(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, settings)
}

// Update adjusts the rotation settings.
// PUT /api/v1/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateRotationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	settings, err := h.settingsSvc.Update(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrThresholdOrder) {
			response.BadRequest(c, 15001, "high patient threshold must exceed the medium threshold")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, settings)
}
