package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/mediboard/hospital-system/internal/core/domain"
	"github.com/mediboard/hospital-system/internal/core/ports"
)

// ReportService computes the dashboard counts and the fixed report set from
// the record tables and the account store.
type ReportService struct {
	records  ports.RecordRepository
	accounts ports.AccountRepository
	log      zerolog.Logger
}

func NewReportService(records ports.RecordRepository, accounts ports.AccountRepository, log zerolog.Logger) *ReportService {
	return &ReportService{records: records, accounts: accounts, log: log}
}

// Dashboard returns the headline counts for the landing page.
func (s *ReportService) Dashboard(ctx context.Context) (*ports.DashboardSummary, error) {
	patients, err := s.records.Count(ctx, domain.TablePatients)
	if err != nil {
		return nil, err
	}

	appointments, err := s.records.List(ctx, domain.TableAppointments)
	if err != nil {
		return nil, err
	}
	today := time.Now().UTC().Format("2006-01-02")
	var todayCount int64
	for _, a := range appointments {
		if a.Fields["date"] == today {
			todayCount++
		}
	}

	var staff int64
	for _, role := range domain.StaffRoles {
		n, err := s.accounts.CountByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		staff += n
	}

	inventory, err := s.records.List(ctx, domain.TableInventory)
	if err != nil {
		return nil, err
	}
	var lowStock int64
	for _, item := range inventory {
		if qty, err := strconv.Atoi(item.Fields["quantity"]); err == nil && qty <= LowStockThreshold {
			lowStock++
		}
	}

	return &ports.DashboardSummary{
		TotalPatients:     patients,
		TodayAppointments: todayCount,
		StaffCount:        staff,
		LowStockItems:     lowStock,
	}, nil
}

// Report computes one of the fixed report kinds.
func (s *ReportService) Report(ctx context.Context, kind string) (*ports.ReportResult, error) {
	switch kind {
	case ports.ReportPatientDemographics:
		return s.patientDemographics(ctx)
	case ports.ReportAppointmentAnalytics:
		return s.appointmentAnalytics(ctx)
	case ports.ReportFinancial:
		return s.financial(ctx)
	case ports.ReportInventoryStatus:
		return s.inventoryStatus(ctx)
	case ports.ReportStaffOverview:
		return s.staffOverview(ctx)
	}
	return nil, fmt.Errorf("%w: unknown report kind %q", domain.ErrValidation, kind)
}

func (s *ReportService) patientDemographics(ctx context.Context) (*ports.ReportResult, error) {
	patients, err := s.records.List(ctx, domain.TablePatients)
	if err != nil {
		return nil, err
	}

	result := &ports.ReportResult{
		Kind:         ports.ReportPatientDemographics,
		GenderCounts: make(map[string]int),
		AgeBuckets:   make(map[string]int),
	}
	for _, p := range patients {
		if g := p.Fields["gender"]; g != "" {
			result.GenderCounts[g]++
		}
		age, err := strconv.Atoi(p.Fields["age"])
		if err != nil {
			continue
		}
		result.AgeBuckets[ageBucket(age)]++
	}
	return result, nil
}

func ageBucket(age int) string {
	switch {
	case age < 18:
		return "0-17"
	case age < 40:
		return "18-39"
	case age < 65:
		return "40-64"
	default:
		return "65+"
	}
}

func (s *ReportService) appointmentAnalytics(ctx context.Context) (*ports.ReportResult, error) {
	appointments, err := s.records.List(ctx, domain.TableAppointments)
	if err != nil {
		return nil, err
	}

	result := &ports.ReportResult{
		Kind:         ports.ReportAppointmentAnalytics,
		StatusCounts: make(map[string]int),
		DailyCounts:  make(map[string]int),
	}
	for _, a := range appointments {
		if st := a.Fields["status"]; st != "" {
			result.StatusCounts[st]++
		}
		if d := a.Fields["date"]; d != "" {
			result.DailyCounts[d]++
		}
	}
	return result, nil
}

func (s *ReportService) financial(ctx context.Context) (*ports.ReportResult, error) {
	bills, err := s.records.List(ctx, domain.TableBilling)
	if err != nil {
		return nil, err
	}

	result := &ports.ReportResult{
		Kind:            ports.ReportFinancial,
		RevenueByStatus: make(map[string]float64),
	}
	for _, b := range bills {
		amount, err := strconv.ParseFloat(b.Fields["amount"], 64)
		if err != nil {
			s.log.Warn().Str("record_id", b.ID).Msg("skipping bill with non-numeric amount")
			continue
		}
		result.RevenueByStatus[b.Fields["status"]] += amount
		result.TotalRevenue += amount
	}
	return result, nil
}

func (s *ReportService) inventoryStatus(ctx context.Context) (*ports.ReportResult, error) {
	items, err := s.records.List(ctx, domain.TableInventory)
	if err != nil {
		return nil, err
	}

	result := &ports.ReportResult{
		Kind:               ports.ReportInventoryStatus,
		QuantityByCategory: make(map[string]int),
	}
	for _, item := range items {
		qty, err := strconv.Atoi(item.Fields["quantity"])
		if err != nil {
			continue
		}
		result.QuantityByCategory[item.Fields["category"]] += qty
		if qty <= LowStockThreshold {
			result.LowStock = append(result.LowStock, item.Fields["item"])
		}
	}
	return result, nil
}

func (s *ReportService) staffOverview(ctx context.Context) (*ports.ReportResult, error) {
	result := &ports.ReportResult{
		Kind:       ports.ReportStaffOverview,
		RoleCounts: make(map[string]int),
	}
	for _, role := range domain.StaffRoles {
		n, err := s.accounts.CountByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			result.RoleCounts[role] = int(n)
		}
	}
	return result, nil
}
