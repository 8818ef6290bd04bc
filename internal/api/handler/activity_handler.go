package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/NGOKrooz/SPIN-sub000/internal/dto"
	"github.com/NGOKrooz/SPIN-sub000/internal/service"
	"github.com/NGOKrooz/SPIN-sub000/pkg/response"
)

// ActivityHandler serves the audit trail.
type ActivityHandler struct {
	activitySvc service.ActivityService
}

// NewActivityHandler creates the ActivityHandler.
func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

// List returns audit trail entries, newest first.
// GET /api/v1/activity
func (h *ActivityHandler) List(c *gin.Context) {
	var req dto.ActivityLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	entries, total, err := h.activitySvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, entries, total, req.GetPage(), req.GetPageSize())
}
