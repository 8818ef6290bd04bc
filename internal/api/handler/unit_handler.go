package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NGOKrooz/SPIN-sub000/internal/calendar"
	"github.com/NGOKrooz/SPIN-sub000/internal/dto"
	"github.com/NGOKrooz/SPIN-sub000/internal/service"
	"github.com/NGOKrooz/SPIN-sub000/pkg/response"
)

// UnitHandler serves the unit catalog module.
type UnitHandler struct {
	unitSvc service.UnitService
	loc     *time.Location
}

// NewUnitHandler creates the UnitHandler.
func NewUnitHandler(unitSvc service.UnitService, loc *time.Location) *UnitHandler {
	return &UnitHandler{unitSvc: unitSvc, loc: loc}
}

// List returns the catalog in rotation order with workload and coverage.
// GET /api/v1/units
func (h *UnitHandler) List(c *gin.Context) {
	units, err := h.unitSvc.List(c.Request.Context(), calendar.Today(h.loc))
	if err != nil {
		h.handleUnitError(c, err)
		return
	}

	response.OK(c, gin.H{"list": units})
}

// Get returns one unit.
// GET /api/v1/units/:id
func (h *UnitHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "unit id is required")
		return
	}

	unit, err := h.unitSvc.GetByID(c.Request.Context(), id, calendar.Today(h.loc))
	if err != nil {
		h.handleUnitError(c, err)
		return
	}

	response.OK(c, unit)
}

// Create appends a unit to the catalog.
// POST /api/v1/units
func (h *UnitHandler) Create(c *gin.Context) {
	var req dto.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	unit, err := h.unitSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleUnitError(c, err)
		return
	}

	response.Created(c, unit)
}

// Update updates a unit's name, duration, or patient count.
// PUT /api/v1/units/:id
func (h *UnitHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "unit id is required")
		return
	}

	var req dto.UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	unit, err := h.unitSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleUnitError(c, err)
		return
	}

	response.OK(c, unit)
}

// Delete removes a unit with no current or future rotations.
// DELETE /api/v1/units/:id
func (h *UnitHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "unit id is required")
		return
	}

	if err := h.unitSvc.Delete(c.Request.Context(), id, calendar.Today(h.loc)); err != nil {
		h.handleUnitError(c, err)
		return
	}

	response.OK(c, nil)
}

// Reorder replaces the catalog order.
// PUT /api/v1/units/reorder
func (h *UnitHandler) Reorder(c *gin.Context) {
	var req dto.ReorderUnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	units, err := h.unitSvc.Reorder(c.Request.Context(), &req)
	if err != nil {
		h.handleUnitError(c, err)
		return
	}

	response.OK(c, gin.H{"list": units})
}

// handleUnitError maps unit module business errors.
func (h *UnitHandler) handleUnitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnitNotFound):
		response.NotFound(c, 12001, "unit not found")
	case errors.Is(err, service.ErrUnitNameExists):
		response.BadRequest(c, 12002, "unit name already exists")
	case errors.Is(err, service.ErrUnitHasRotations):
		response.BadRequest(c, 12003, "unit has current or future rotations")
	case errors.Is(err, service.ErrReorderIncomplete):
		response.BadRequest(c, 12004, "reorder must list every unit id exactly once")
	default:
		response.InternalError(c)
	}
}
