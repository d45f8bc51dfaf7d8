package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hinterbergers/mycliniq-sub000/internal/service"
	"github.com/hinterbergers/mycliniq-sub000/pkg/response"
)

// ExportHandler streams roster exports.
type ExportHandler struct {
	exportSvc service.ExportService
}

func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportXLSX downloads the latest roster as a spreadsheet.
// GET /api/v1/periods/:year/:month/export/xlsx
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	period, ok := MustBindPeriod(c)
	if !ok {
		return
	}
	buf, filename, err := h.exportSvc.ExportXLSX(c.Request.Context(), period.Year, period.Month)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportICS downloads the latest roster as a calendar feed; the optional
// employee_id query narrows it to one person's duties.
// GET /api/v1/periods/:year/:month/export/ics?employee_id=...
func (h *ExportHandler) ExportICS(c *gin.Context) {
	period, ok := MustBindPeriod(c)
	if !ok {
		return
	}
	buf, filename, err := h.exportSvc.ExportICS(c.Request.Context(), period.Year, period.Month, c.Query("employee_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (h *ExportHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoRun):
		response.NotFound(c, 16101, "no solver run stored for this period")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 16102, "generating export file failed")
	default:
		response.InternalError(c)
	}
}
