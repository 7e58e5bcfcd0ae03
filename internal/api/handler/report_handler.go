package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mediboard/hospital-system/internal/core/ports"
)

// ReportHandler serves the dashboard counts and the fixed report set.
type ReportHandler struct {
	reports ports.ReportService
}

func NewReportHandler(reports ports.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Dashboard handles GET /v1/dashboard.
//
// @Summary      Dashboard summary counts
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardSummary
// @Router       /v1/dashboard [get]
func (h *ReportHandler) Dashboard(c echo.Context) error {
	summary, err := h.reports.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// Report handles GET /v1/reports/:kind.
//
// @Summary      Compute one report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path      string  true  "Report kind (patient_demographics, appointment_analytics, financial, inventory_status, staff_overview)"
// @Success      200   {object}  ports.ReportResult
// @Failure      400   {object}  errorResponse
// @Router       /v1/reports/{kind} [get]
func (h *ReportHandler) Report(c echo.Context) error {
	result, err := h.reports.Report(c.Request().Context(), c.Param("kind"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
