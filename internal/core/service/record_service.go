package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mediboard/hospital-system/internal/core/domain"
	"github.com/mediboard/hospital-system/internal/core/ports"
)

// LowStockThreshold is the quantity at or below which an inventory item is
// considered low on stock.
const LowStockThreshold = 10

// StockAlertSink receives low-stock alerts for asynchronous delivery.
type StockAlertSink interface {
	Enqueue(alert ports.StockAlert)
}

// auditActions maps table + operation to the label written to the audit log.
var auditActions = map[string][3]string{
	domain.TablePatients:     {"patient registered", "patient updated", "patient deleted"},
	domain.TableAppointments: {"appointment scheduled", "appointment updated", "appointment cancelled"},
	domain.TableStaff:        {"staff member added", "staff member updated", "staff member removed"},
	domain.TableInventory:    {"inventory item added", "inventory item updated", "inventory item deleted"},
	domain.TableBilling:      {"bill created", "bill updated", "bill deleted"},
}

// RecordService implements the generic CRUD surface over the named tables.
// Every mutation is attributed to an actor and written to the audit log;
// audit failures are logged but never fail the committed mutation.
type RecordService struct {
	repo   ports.RecordRepository
	audit  ports.AuditLog
	alerts StockAlertSink
	log    zerolog.Logger
}

func NewRecordService(repo ports.RecordRepository, audit ports.AuditLog, alerts StockAlertSink, log zerolog.Logger) *RecordService {
	return &RecordService{repo: repo, audit: audit, alerts: alerts, log: log}
}

// List returns every record of table in insertion order.
func (s *RecordService) List(ctx context.Context, table string) ([]domain.Record, error) {
	if !domain.KnownTable(table) {
		return nil, fmt.Errorf("%w: unknown table %q", domain.ErrValidation, table)
	}
	return s.repo.List(ctx, table)
}

// Create validates fields against the table schema, generates an opaque id,
// persists the record, and audits the action.
func (s *RecordService) Create(ctx context.Context, actor, table string, fields map[string]string) (*domain.Record, error) {
	if err := domain.ValidateFields(table, fields); err != nil {
		return nil, err
	}

	record := &domain.Record{
		ID:        uuid.NewString(),
		Table:     table,
		Fields:    normalizeFields(table, fields),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		s.log.Error().Err(err).Str("table", table).Msg("failed to insert record")
		return nil, err
	}

	s.logAction(ctx, actor, table, 0, record)
	s.maybeAlert(record)

	return record, nil
}

// Update replaces the fields of an existing record.
func (s *RecordService) Update(ctx context.Context, actor, table, id string, fields map[string]string) (*domain.Record, error) {
	if err := domain.ValidateFields(table, fields); err != nil {
		return nil, err
	}

	normalized := normalizeFields(table, fields)
	if err := s.repo.Update(ctx, table, id, normalized); err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, table, id)
	if err != nil {
		return nil, err
	}

	s.logAction(ctx, actor, table, 1, record)
	s.maybeAlert(record)

	return record, nil
}

// Delete removes a record. An absent id fails with ErrRecordNotFound.
func (s *RecordService) Delete(ctx context.Context, actor, table, id string) error {
	if !domain.KnownTable(table) {
		return fmt.Errorf("%w: unknown table %q", domain.ErrValidation, table)
	}

	record, err := s.repo.FindByID(ctx, table, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, table, id); err != nil {
		return err
	}

	s.logAction(ctx, actor, table, 2, record)
	return nil
}

// ExportCSV writes the whole table as CSV: a header row from the schema, then
// one row per record in insertion order.
func (s *RecordService) ExportCSV(ctx context.Context, table string, w io.Writer) error {
	schema, ok := domain.Schemas[table]
	if !ok {
		return fmt.Errorf("%w: unknown table %q", domain.ErrValidation, table)
	}

	records, err := s.repo.List(ctx, table)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := append([]string{"id"}, schema.Fields...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := make([]string, 0, len(header))
		row = append(row, r.ID)
		for _, f := range schema.Fields {
			row = append(row, r.Fields[f])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// normalizeFields fills every schema column so exports stay rectangular, and
// stamps inventory mutations with last_updated.
func normalizeFields(table string, fields map[string]string) map[string]string {
	schema := domain.Schemas[table]
	out := make(map[string]string, len(schema.Fields))
	for _, f := range schema.Fields {
		out[f] = fields[f]
	}
	if table == domain.TableInventory {
		out["last_updated"] = time.Now().UTC().Format("2006-01-02 15:04:05")
	}
	return out
}

func (s *RecordService) logAction(ctx context.Context, actor, table string, op int, record *domain.Record) {
	action := auditActions[table][op]
	if err := s.audit.Append(ctx, actor, action, recordDetails(table, record)); err != nil {
		s.log.Warn().Err(err).Str("table", table).Str("action", action).Msg("audit append failed for record mutation")
	}
}

// recordDetails picks the most descriptive field for the audit entry.
func recordDetails(table string, record *domain.Record) string {
	switch table {
	case domain.TablePatients, domain.TableStaff:
		return record.Fields["name"]
	case domain.TableInventory:
		return record.Fields["item"]
	case domain.TableAppointments, domain.TableBilling:
		return "patient " + record.Fields["patient_id"]
	}
	return record.ID
}

func (s *RecordService) maybeAlert(record *domain.Record) {
	if s.alerts == nil || record.Table != domain.TableInventory {
		return
	}
	qty, err := strconv.Atoi(record.Fields["quantity"])
	if err != nil || qty > LowStockThreshold {
		return
	}
	s.alerts.Enqueue(ports.StockAlert{
		RecordID: record.ID,
		Item:     record.Fields["item"],
		Quantity: qty,
		Category: record.Fields["category"],
	})
}
