package handler

import (
	"time"

	"github.com/mediboard/hospital-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type recordWriteRequest struct {
	Fields map[string]string `json:"fields" validate:"required"`
}

type recordResponse struct {
	ID        string            `json:"id"`
	Fields    map[string]string `json:"fields"`
	CreatedAt time.Time         `json:"created_at"`
}

type listRecordsResponse struct {
	Table string           `json:"table"`
	Data  []recordResponse `json:"data"`
	Total int              `json:"total"`
}

func newRecordResponse(r *domain.Record) recordResponse {
	return recordResponse{
		ID:        r.ID,
		Fields:    r.Fields,
		CreatedAt: r.CreatedAt,
	}
}
