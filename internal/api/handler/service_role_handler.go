package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hinterbergers/mycliniq-sub000/internal/dto"
	"github.com/hinterbergers/mycliniq-sub000/internal/service"
	"github.com/hinterbergers/mycliniq-sub000/pkg/response"
)

// ServiceRoleHandler serves the coverage catalog endpoints.
type ServiceRoleHandler struct {
	roleSvc service.ServiceRoleService
}

func NewServiceRoleHandler(roleSvc service.ServiceRoleService) *ServiceRoleHandler {
	return &ServiceRoleHandler{roleSvc: roleSvc}
}

// Create adds a duty kind to the catalog.
// POST /api/v1/service-roles
func (h *ServiceRoleHandler) Create(c *gin.Context) {
	var req dto.CreateServiceRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11001, "invalid request body")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	role, err := h.roleSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, role)
}

// List returns the catalog.
// GET /api/v1/service-roles?active_only=true
func (h *ServiceRoleHandler) List(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"
	roles, err := h.roleSvc.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": roles})
}

// Get returns one catalog entry.
// GET /api/v1/service-roles/:id
func (h *ServiceRoleHandler) Get(c *gin.Context) {
	role, err := h.roleSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, role)
}

// Update modifies one catalog entry.
// PUT /api/v1/service-roles/:id
func (h *ServiceRoleHandler) Update(c *gin.Context) {
	var req dto.UpdateServiceRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11001, "invalid request body")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	role, err := h.roleSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, role)
}

// Delete removes one catalog entry.
// DELETE /api/v1/service-roles/:id
func (h *ServiceRoleHandler) Delete(c *gin.Context) {
	if err := h.roleSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *ServiceRoleHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrServiceRoleNotFound):
		response.NotFound(c, 11101, "service role not found")
	case errors.Is(err, service.ErrServiceRoleCodeTaken):
		response.Conflict(c, 11102, "service role code already in use")
	case errors.Is(err, service.ErrServiceRoleStale):
		response.Conflict(c, 11103, "service role was modified concurrently, please refresh")
	case errors.Is(err, service.ErrServiceRoleReferenced):
		response.Conflict(c, 11104, "service role is referenced and cannot be deleted")
	default:
		response.InternalError(c)
	}
}
