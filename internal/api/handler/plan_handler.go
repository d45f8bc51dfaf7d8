package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hinterbergers/mycliniq-sub000/internal/dto"
	"github.com/hinterbergers/mycliniq-sub000/internal/plan"
	"github.com/hinterbergers/mycliniq-sub000/internal/service"
	"github.com/hinterbergers/mycliniq-sub000/pkg/response"
)

// PlanHandler serves the roster pipeline endpoints: input building,
// preview, persisted runs and period state.
type PlanHandler struct {
	planSvc service.PlanService
}

func NewPlanHandler(planSvc service.PlanService) *PlanHandler {
	return &PlanHandler{planSvc: planSvc}
}

// BuildInput materializes and returns the planning input document.
// GET /api/v1/periods/:year/:month/input
func (h *PlanHandler) BuildInput(c *gin.Context) {
	period, ok := MustBindPeriod(c)
	if !ok {
		return
	}
	input, err := h.planSvc.BuildInput(c.Request.Context(), period.Year, period.Month)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, input)
}

// Preview solves the period without persisting anything.
// POST /api/v1/periods/:year/:month/preview
func (h *PlanHandler) Preview(c *gin.Context) {
	period, ok := MustBindPeriod(c)
	if !ok {
		return
	}
	req := h.bindRunRequest(c)
	if req == nil {
		return
	}

	output, err := h.planSvc.Preview(c.Request.Context(), period.Year, period.Month, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, output)
}

// Run solves the period and persists the invocation.
// POST /api/v1/periods/:year/:month/run
func (h *PlanHandler) Run(c *gin.Context) {
	period, ok := MustBindPeriod(c)
	if !ok {
		return
	}
	req := h.bindRunRequest(c)
	if req == nil {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	run, err := h.planSvc.Run(c.Request.Context(), period.Year, period.Month, req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, run)
}

// State reports wish counts, latest run and the dirty flag.
// GET /api/v1/periods/:year/:month/state
func (h *PlanHandler) State(c *gin.Context) {
	period, ok := MustBindPeriod(c)
	if !ok {
		return
	}
	state, err := h.planSvc.State(c.Request.Context(), period.Year, period.Month)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, state)
}

// ListRuns returns the period's run history, newest first, without the
// full documents.
// GET /api/v1/periods/:year/:month/runs?limit=20
func (h *PlanHandler) ListRuns(c *gin.Context) {
	period, ok := MustBindPeriod(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	runs, err := h.planSvc.ListRuns(c.Request.Context(), period.Year, period.Month, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": runs})
}

// GetRun returns one stored run including both documents.
// GET /api/v1/runs/:id
func (h *PlanHandler) GetRun(c *gin.Context) {
	run, err := h.planSvc.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, run)
}

// bindRunRequest tolerates an empty body: POST without payload means
// "default seed". Returns nil after writing a 400 on malformed JSON.
func (h *PlanHandler) bindRunRequest(c *gin.Context) *dto.RunRequest {
	var req dto.RunRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, 15001, "invalid request body")
			return nil
		}
	}
	return &req
}

func (h *PlanHandler) handleError(c *gin.Context, err error) {
	var vErr *plan.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.UnprocessableEntity(c, 15101, "planning document failed schema validation", vErr.Error())
	case errors.Is(err, service.ErrNoActiveRoles):
		response.BadRequest(c, 15102, "no active service roles configured")
	case errors.Is(err, service.ErrBadPeriod):
		response.BadRequest(c, 15103, "period out of range")
	case errors.Is(err, service.ErrRunInProgress):
		response.Conflict(c, 15104, "a solver run for this period is already in progress")
	case errors.Is(err, service.ErrRunNotFound):
		response.NotFound(c, 15105, "planning run not found")
	default:
		response.InternalError(c)
	}
}
