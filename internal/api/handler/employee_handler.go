package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hinterbergers/mycliniq-sub000/internal/dto"
	"github.com/hinterbergers/mycliniq-sub000/internal/service"
	"github.com/hinterbergers/mycliniq-sub000/pkg/response"
)

// EmployeeHandler serves staff and absence endpoints.
type EmployeeHandler struct {
	empSvc service.EmployeeService
}

func NewEmployeeHandler(empSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{empSvc: empSvc}
}

// Create registers a staff member.
// POST /api/v1/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "invalid request body")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	emp, err := h.empSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, emp)
}

// List returns the staff roster.
// GET /api/v1/employees?active_only=true
func (h *EmployeeHandler) List(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"
	emps, err := h.empSvc.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": emps})
}

// Get returns one staff member.
// GET /api/v1/employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
	emp, err := h.empSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, emp)
}

// Update modifies one staff member.
// PUT /api/v1/employees/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "invalid request body")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	emp, err := h.empSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, emp)
}

// Delete removes one staff member.
// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.empSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// CreateAbsence records an unavailable date range.
// POST /api/v1/absences
func (h *EmployeeHandler) CreateAbsence(c *gin.Context) {
	var req dto.CreateAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "invalid request body")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	ap, err := h.empSvc.CreateAbsence(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, ap)
}

// ListAbsences returns one employee's absences.
// GET /api/v1/employees/:id/absences
func (h *EmployeeHandler) ListAbsences(c *gin.Context) {
	aps, err := h.empSvc.ListAbsences(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": aps})
}

// DeleteAbsence removes one absence period.
// DELETE /api/v1/absences/:id
func (h *EmployeeHandler) DeleteAbsence(c *gin.Context) {
	if err := h.empSvc.DeleteAbsence(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *EmployeeHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 12101, "employee not found")
	case errors.Is(err, service.ErrEmployeeStale):
		response.Conflict(c, 12102, "employee was modified concurrently, please refresh")
	case errors.Is(err, service.ErrUnknownServiceRole):
		response.BadRequest(c, 12103, "role override references unknown service role")
	case errors.Is(err, service.ErrAbsenceNotFound):
		response.NotFound(c, 12104, "absence period not found")
	case errors.Is(err, service.ErrAbsenceBadDate):
		response.BadRequest(c, 12105, "absence date is not a valid calendar date")
	case errors.Is(err, service.ErrAbsenceBadRange):
		response.BadRequest(c, 12106, "absence end date precedes start date")
	default:
		response.InternalError(c)
	}
}
