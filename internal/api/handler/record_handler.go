package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mediboard/hospital-system/internal/api/metrics"
	"github.com/mediboard/hospital-system/internal/core/domain"
	"github.com/mediboard/hospital-system/internal/core/ports"
)

// RecordHandler serves the generic CRUD surface over the business tables:
// patients, appointments, staff, inventory, billing.
type RecordHandler struct {
	store ports.RecordStore
}

func NewRecordHandler(store ports.RecordStore) *RecordHandler {
	return &RecordHandler{store: store}
}

// List handles GET /v1/records/:table.
//
// @Summary      List all records of a table
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        table  path      string  true  "Table name (patients, appointments, staff, inventory, billing)"
// @Success      200    {object}  listRecordsResponse
// @Failure      400    {object}  errorResponse
// @Router       /v1/records/{table} [get]
func (h *RecordHandler) List(c echo.Context) error {
	table := c.Param("table")
	records, err := h.store.List(c.Request().Context(), table)
	if err != nil {
		return err
	}

	data := make([]recordResponse, 0, len(records))
	for i := range records {
		data = append(data, newRecordResponse(&records[i]))
	}
	return c.JSON(http.StatusOK, listRecordsResponse{Table: table, Data: data, Total: len(data)})
}

// Create handles POST /v1/records/:table.
//
// @Summary      Create a record
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        table  path      string              true  "Table name"
// @Param        body   body      recordWriteRequest  true  "Record fields"
// @Success      201    {object}  recordResponse
// @Failure      400    {object}  errorResponse
// @Router       /v1/records/{table} [post]
func (h *RecordHandler) Create(c echo.Context) error {
	actor, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req recordWriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	table := c.Param("table")
	record, err := h.store.Create(c.Request().Context(), actor, table, req.Fields)
	if err != nil {
		return err
	}

	metrics.RecordMutationsTotal.WithLabelValues(table, "create").Inc()
	return c.JSON(http.StatusCreated, newRecordResponse(record))
}

// Update handles PUT /v1/records/:table/:id.
//
// @Summary      Update a record
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        table  path      string              true  "Table name"
// @Param        id     path      string              true  "Record id"
// @Param        body   body      recordWriteRequest  true  "Replacement fields"
// @Success      200    {object}  recordResponse
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /v1/records/{table}/{id} [put]
func (h *RecordHandler) Update(c echo.Context) error {
	actor, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req recordWriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	table := c.Param("table")
	record, err := h.store.Update(c.Request().Context(), actor, table, c.Param("id"), req.Fields)
	if err != nil {
		return err
	}

	metrics.RecordMutationsTotal.WithLabelValues(table, "update").Inc()
	return c.JSON(http.StatusOK, newRecordResponse(record))
}

// Delete handles DELETE /v1/records/:table/:id.
//
// @Summary      Delete a record
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        table  path  string  true  "Table name"
// @Param        id     path  string  true  "Record id"
// @Success      204    "record deleted"
// @Failure      404    {object}  errorResponse
// @Router       /v1/records/{table}/{id} [delete]
func (h *RecordHandler) Delete(c echo.Context) error {
	actor, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	table := c.Param("table")
	if err := h.store.Delete(c.Request().Context(), actor, table, c.Param("id")); err != nil {
		return err
	}

	metrics.RecordMutationsTotal.WithLabelValues(table, "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Export handles GET /v1/records/:table/export — whole-table CSV download.
//
// @Summary      Export a table as CSV
// @Tags         records
// @Produce      text/csv
// @Security     BearerAuth
// @Param        table  path  string  true  "Table name"
// @Success      200    {string}  string  "CSV payload"
// @Failure      400    {object}  errorResponse
// @Router       /v1/records/{table}/export [get]
func (h *RecordHandler) Export(c echo.Context) error {
	table := c.Param("table")
	if !domain.KnownTable(table) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "unknown table " + table})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+table+`.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	return h.store.ExportCSV(c.Request().Context(), table, c.Response())
}
