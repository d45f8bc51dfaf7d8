package handler

import "github.com/hinterbergers/mycliniq-sub000/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	ServiceRole *ServiceRoleHandler
	Employee    *EmployeeHandler
	Wish        *WishHandler
	Lock        *LockHandler
	Plan        *PlanHandler
	Export      *ExportHandler
}

// NewHandler wires the handler graph.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		ServiceRole: NewServiceRoleHandler(svc.ServiceRole),
		Employee:    NewEmployeeHandler(svc.Employee),
		Wish:        NewWishHandler(svc.Wish),
		Lock:        NewLockHandler(svc.Lock),
		Plan:        NewPlanHandler(svc.Plan),
		Export:      NewExportHandler(svc.Export),
	}
}
