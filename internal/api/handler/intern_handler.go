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

// InternHandler serves the intern module, extensions included.
type InternHandler struct {
	internSvc service.InternService
	extSvc    service.ExtensionService
	loc       *time.Location
}

// NewInternHandler creates the InternHandler.
func NewInternHandler(internSvc service.InternService, extSvc service.ExtensionService, loc *time.Location) *InternHandler {
	return &InternHandler{internSvc: internSvc, extSvc: extSvc, loc: loc}
}

// Register registers an intern and seeds their first rotation.
// POST /api/v1/interns
func (h *InternHandler) Register(c *gin.Context) {
	var req dto.RegisterInternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	intern, err := h.internSvc.Register(c.Request.Context(), &req, calendar.Today(h.loc))
	if err != nil {
		h.handleInternError(c, err)
		return
	}

	response.Created(c, intern)
}

// List lists interns with optional batch and status filters.
// GET /api/v1/interns
func (h *InternHandler) List(c *gin.Context) {
	var req dto.InternListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	interns, total, err := h.internSvc.List(c.Request.Context(), &req, calendar.Today(h.loc))
	if err != nil {
		h.handleInternError(c, err)
		return
	}

	response.OKPage(c, interns, total, req.GetPage(), req.GetPageSize())
}

// Get returns one intern.
// GET /api/v1/interns/:id
func (h *InternHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "intern id is required")
		return
	}

	intern, err := h.internSvc.GetByID(c.Request.Context(), id, calendar.Today(h.loc))
	if err != nil {
		h.handleInternError(c, err)
		return
	}

	response.OK(c, intern)
}

// Update updates intern demographics.
// PUT /api/v1/interns/:id
func (h *InternHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "intern id is required")
		return
	}

	var req dto.UpdateInternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	intern, err := h.internSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleInternError(c, err)
		return
	}

	response.OK(c, intern)
}

// Delete removes an intern and their rotation history.
// DELETE /api/v1/interns/:id
func (h *InternHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "intern id is required")
		return
	}

	if err := h.internSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleInternError(c, err)
		return
	}

	response.OK(c, nil)
}

// Extend grants or adjusts an internship extension.
// POST /api/v1/interns/:id/extend
func (h *InternHandler) Extend(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "intern id is required")
		return
	}

	var req dto.ExtendInternshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	result, err := h.extSvc.Extend(c.Request.Context(), id, &req, calendar.Today(h.loc))
	if err != nil {
		h.handleInternError(c, err)
		return
	}

	response.OK(c, result)
}

// ListExtensions returns the intern's extension audit trail.
// GET /api/v1/interns/:id/extensions
func (h *InternHandler) ListExtensions(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "intern id is required")
		return
	}

	reasons, err := h.extSvc.ListByIntern(c.Request.Context(), id)
	if err != nil {
		h.handleInternError(c, err)
		return
	}

	response.OK(c, gin.H{"list": reasons})
}

// handleInternError maps intern module business errors.
func (h *InternHandler) handleInternError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInternNotFound):
		response.NotFound(c, 11001, "intern not found")
	case errors.Is(err, service.ErrInvalidStartDate):
		response.BadRequest(c, 11002, "start date must be a valid YYYY-MM-DD date")
	case errors.Is(err, service.ErrNoUnitsConfigured):
		response.BadRequest(c, 11003, "no units configured yet")
	case errors.Is(err, service.ErrExtensionOutOfRange):
		response.BadRequest(c, 14001, "cumulative extension must stay between 0 and 365 days")
	default:
		response.InternalError(c)
	}
}
