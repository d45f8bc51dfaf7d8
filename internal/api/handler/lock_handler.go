package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hinterbergers/mycliniq-sub000/internal/dto"
	"github.com/hinterbergers/mycliniq-sub000/internal/service"
	"github.com/hinterbergers/mycliniq-sub000/pkg/response"
)

// LockHandler serves the manual slot-pin endpoints.
type LockHandler struct {
	lockSvc service.LockService
}

func NewLockHandler(lockSvc service.LockService) *LockHandler {
	return &LockHandler{lockSvc: lockSvc}
}

// Set creates or replaces one slot lock. A null (or absent) employee_id
// pins the slot deliberately open.
// PUT /api/v1/periods/:year/:month/locks/:slotId
func (h *LockHandler) Set(c *gin.Context) {
	period, ok := MustBindPeriod(c)
	if !ok {
		return
	}
	var req dto.SetLockRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, 14001, "invalid request body")
			return
		}
	}
	req.SlotID = c.Param("slotId")
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	lock, err := h.lockSvc.Set(c.Request.Context(), period.Year, period.Month, &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, lock)
}

// List returns every lock of the period.
// GET /api/v1/periods/:year/:month/locks
func (h *LockHandler) List(c *gin.Context) {
	period, ok := MustBindPeriod(c)
	if !ok {
		return
	}
	locks, err := h.lockSvc.List(c.Request.Context(), period.Year, period.Month)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": locks})
}

// Delete removes one lock, returning the slot to "engine decides".
// DELETE /api/v1/periods/:year/:month/locks/:slotId
func (h *LockHandler) Delete(c *gin.Context) {
	period, ok := MustBindPeriod(c)
	if !ok {
		return
	}
	if err := h.lockSvc.Delete(c.Request.Context(), period.Year, period.Month, c.Param("slotId")); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *LockHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLockNotFound):
		response.NotFound(c, 14101, "slot lock not found")
	case errors.Is(err, service.ErrLockBadSlotID):
		response.BadRequest(c, 14102, "slot id does not belong to the period")
	case errors.Is(err, service.ErrLockBadEmployee):
		response.BadRequest(c, 14103, "lock references unknown employee")
	default:
		response.InternalError(c)
	}
}
