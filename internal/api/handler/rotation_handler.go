package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NGOKrooz/SPIN-sub000/internal/calendar"
	"github.com/NGOKrooz/SPIN-sub000/internal/dto"
	"github.com/NGOKrooz/SPIN-sub000/internal/service"
	"github.com/NGOKrooz/SPIN-sub000/pkg/response"
)

// RotationHandler serves rotation rows and the schedule views.
type RotationHandler struct {
	rotationSvc service.RotationService
	loc         *time.Location
}

// NewRotationHandler creates the RotationHandler.
func NewRotationHandler(rotationSvc service.RotationService, loc *time.Location) *RotationHandler {
	return &RotationHandler{rotationSvc: rotationSvc, loc: loc}
}

// GetSchedule returns an intern's full schedule view. Reading it runs the
// lazy auto-advance first.
// GET /api/v1/interns/:id/schedule
func (h *RotationHandler) GetSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "intern id is required")
		return
	}

	sched, err := h.rotationSvc.GetSchedule(c.Request.Context(), id, calendar.Today(h.loc))
	if err != nil {
		h.handleRotationError(c, err)
		return
	}

	response.OK(c, sched)
}

// GetScheduleICS returns the schedule as an iCalendar feed.
// GET /api/v1/interns/:id/schedule.ics
func (h *RotationHandler) GetScheduleICS(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "intern id is required")
		return
	}

	feed, err := h.rotationSvc.ScheduleICS(c.Request.Context(), id, calendar.Today(h.loc))
	if err != nil {
		h.handleRotationError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="schedule.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// AvailableUnits lists the units an intern can still be assigned to.
// GET /api/v1/interns/:id/available-units
func (h *RotationHandler) AvailableUnits(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "intern id is required")
		return
	}

	units, err := h.rotationSvc.AvailableUnits(c.Request.Context(), id, calendar.Today(h.loc))
	if err != nil {
		h.handleRotationError(c, err)
		return
	}

	response.OK(c, gin.H{"list": units})
}

// Create creates a manual rotation assignment.
// POST /api/v1/rotations
func (h *RotationHandler) Create(c *gin.Context) {
	var req dto.CreateRotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	rotation, err := h.rotationSvc.CreateManual(c.Request.Context(), &req)
	if err != nil {
		h.handleRotationError(c, err)
		return
	}

	response.Created(c, rotation)
}

// Update reassigns a rotation's unit and/or dates.
// PUT /api/v1/rotations/:id
func (h *RotationHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "rotation id is required")
		return
	}

	var req dto.UpdateRotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	rotation, err := h.rotationSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleRotationError(c, err)
		return
	}

	response.OK(c, rotation)
}

// Delete removes a rotation row.
// DELETE /api/v1/rotations/:id
func (h *RotationHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "rotation id is required")
		return
	}

	if err := h.rotationSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleRotationError(c, err)
		return
	}

	response.OK(c, nil)
}

// CheckConflicts probes a candidate date range for overlaps.
// GET /api/v1/rotations/conflicts
func (h *RotationHandler) CheckConflicts(c *gin.Context) {
	var req dto.ConflictQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	result, err := h.rotationSvc.CheckConflicts(c.Request.Context(), &req)
	if err != nil {
		h.handleRotationError(c, err)
		return
	}

	response.OK(c, result)
}

// handleRotationError maps rotation module business errors.
func (h *RotationHandler) handleRotationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRotationNotFound):
		response.NotFound(c, 13001, "rotation not found")
	case errors.Is(err, service.ErrRotationOverlap):
		response.Conflict(c, 13002, "rotation overlaps an existing assignment")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 13003, "end date must be on or after the start date")
	case errors.Is(err, service.ErrInvalidStartDate):
		response.BadRequest(c, 11002, "start date must be a valid YYYY-MM-DD date")
	case errors.Is(err, service.ErrInternNotFound):
		response.NotFound(c, 11001, "intern not found")
	case errors.Is(err, service.ErrUnitNotFound):
		response.NotFound(c, 12001, "unit not found")
	default:
		response.InternalError(c)
	}
}
