package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hinterbergers/mycliniq-sub000/internal/dto"
	"github.com/hinterbergers/mycliniq-sub000/pkg/response"
)

// MustGetUserID extracts the authenticated user id injected by the JWT
// middleware. On failure it writes a 401 and returns ok=false; the caller
// must return immediately.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetRole extracts the caller's role from the gin context.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustBindPeriod binds the :year/:month path segments. On failure it writes
// a 400 and returns ok=false.
func MustBindPeriod(c *gin.Context) (dto.PeriodURI, bool) {
	var period dto.PeriodURI
	if err := c.ShouldBindUri(&period); err != nil {
		response.BadRequest(c, 10003, "invalid planning period")
		return period, false
	}
	return period, true
}
