package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hinterbergers/mycliniq-sub000/internal/dto"
	"github.com/hinterbergers/mycliniq-sub000/internal/service"
	"github.com/hinterbergers/mycliniq-sub000/pkg/response"
)

// WishHandler serves per-period shift-wish endpoints.
type WishHandler struct {
	wishSvc service.WishService
}

func NewWishHandler(wishSvc service.WishService) *WishHandler {
	return &WishHandler{wishSvc: wishSvc}
}

// Submit stores (or replaces) an employee's wish for the period.
// PUT /api/v1/periods/:year/:month/wishes
func (h *WishHandler) Submit(c *gin.Context) {
	period, ok := MustBindPeriod(c)
	if !ok {
		return
	}
	var req dto.SubmitWishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid request body")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	wish, err := h.wishSvc.Submit(c.Request.Context(), period.Year, period.Month, &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, wish)
}

// List returns every wish submitted for the period.
// GET /api/v1/periods/:year/:month/wishes
func (h *WishHandler) List(c *gin.Context) {
	period, ok := MustBindPeriod(c)
	if !ok {
		return
	}
	wishes, err := h.wishSvc.ListByPeriod(c.Request.Context(), period.Year, period.Month)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": wishes})
}

// GetForEmployee returns one employee's wish for the period.
// GET /api/v1/periods/:year/:month/wishes/:employeeId
func (h *WishHandler) GetForEmployee(c *gin.Context) {
	period, ok := MustBindPeriod(c)
	if !ok {
		return
	}
	wish, err := h.wishSvc.Get(c.Request.Context(), c.Param("employeeId"), period.Year, period.Month)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, wish)
}

func (h *WishHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWishNotFound):
		response.NotFound(c, 13101, "shift wish not found")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 13102, "employee not found")
	default:
		response.InternalError(c)
	}
}
