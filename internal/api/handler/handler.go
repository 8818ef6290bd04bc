package handler

import "github.com/NGOKrooz/SPIN-sub000/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Intern   *InternHandler
	Unit     *UnitHandler
	Rotation *RotationHandler
	Activity *ActivityHandler
	Settings *SettingsHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Intern:   NewInternHandler(svc.Intern, svc.Extension, svc.Loc),
		Unit:     NewUnitHandler(svc.Unit, svc.Loc),
		Rotation: NewRotationHandler(svc.Rotation, svc.Loc),
		Activity: NewActivityHandler(svc.Activity),
		Settings: NewSettingsHandler(svc.Settings),
	}
}
