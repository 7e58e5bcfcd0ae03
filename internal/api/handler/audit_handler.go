package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mediboard/hospital-system/internal/core/domain"
	"github.com/mediboard/hospital-system/internal/core/ports"
)

// AuditHandler exposes the read-only audit trail. Admin-only.
type AuditHandler struct {
	audit ports.AuditLog
}

func NewAuditHandler(audit ports.AuditLog) *AuditHandler {
	return &AuditHandler{audit: audit}
}

type auditEntryResponse struct {
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type listAuditResponse struct {
	Data  []auditEntryResponse `json:"data"`
	Total int                  `json:"total"`
}

// List handles GET /v1/audit — the full history, most recent first.
//
// @Summary      List the audit log
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listAuditResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	entries, err := h.audit.List(c.Request().Context())
	if err != nil {
		return err
	}

	data := make([]auditEntryResponse, 0, len(entries))
	for _, e := range entries {
		data = append(data, newAuditEntryResponse(e))
	}
	return c.JSON(http.StatusOK, listAuditResponse{Data: data, Total: len(data)})
}

func newAuditEntryResponse(e domain.AuditEntry) auditEntryResponse {
	return auditEntryResponse{
		Actor:     e.Actor,
		Action:    e.Action,
		Details:   e.Details,
		Timestamp: e.Timestamp,
	}
}
