package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mediboard/hospital-system/internal/core/domain"
	"github.com/mediboard/hospital-system/internal/core/ports"
)

func seedRecord(repo *stubRecordRepo, table, id string, fields map[string]string) {
	repo.records = append(repo.records, domain.Record{ID: id, Table: table, Fields: fields})
}

func TestReportService_Dashboard(t *testing.T) {
	records := &stubRecordRepo{}
	accounts := newStubAccountRepo()
	ctx := context.Background()

	seedRecord(records, domain.TablePatients, "p1", map[string]string{"name": "Jane"})
	seedRecord(records, domain.TablePatients, "p2", map[string]string{"name": "John"})

	today := time.Now().UTC().Format("2006-01-02")
	seedRecord(records, domain.TableAppointments, "a1", map[string]string{"date": today, "doctor": "House"})
	seedRecord(records, domain.TableAppointments, "a2", map[string]string{"date": "2000-01-01", "doctor": "House"})

	seedRecord(records, domain.TableInventory, "i1", map[string]string{"item": "Insulin", "quantity": "3"})
	seedRecord(records, domain.TableInventory, "i2", map[string]string{"item": "Gauze", "quantity": "500"})

	accounts.accounts["root"] = &domain.Account{Username: "root", Role: domain.RoleAdmin}
	accounts.accounts["nurse1"] = &domain.Account{Username: "nurse1", Role: domain.RoleNurse}
	accounts.accounts["doc1"] = &domain.Account{Username: "doc1", Role: domain.RoleDoctor}

	svc := NewReportService(records, accounts, zerolog.Nop())
	summary, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}

	if summary.TotalPatients != 2 {
		t.Errorf("TotalPatients = %d, want 2", summary.TotalPatients)
	}
	if summary.TodayAppointments != 1 {
		t.Errorf("TodayAppointments = %d, want 1", summary.TodayAppointments)
	}
	// The admin account is not staff.
	if summary.StaffCount != 2 {
		t.Errorf("StaffCount = %d, want 2", summary.StaffCount)
	}
	if summary.LowStockItems != 1 {
		t.Errorf("LowStockItems = %d, want 1", summary.LowStockItems)
	}
}

func TestReportService_PatientDemographics(t *testing.T) {
	records := &stubRecordRepo{}
	seedRecord(records, domain.TablePatients, "p1", map[string]string{"gender": "Female", "age": "12"})
	seedRecord(records, domain.TablePatients, "p2", map[string]string{"gender": "Male", "age": "39"})
	seedRecord(records, domain.TablePatients, "p3", map[string]string{"gender": "Female", "age": "64"})
	seedRecord(records, domain.TablePatients, "p4", map[string]string{"gender": "Male", "age": "65"})
	seedRecord(records, domain.TablePatients, "p5", map[string]string{"gender": "", "age": "not a number"})

	svc := NewReportService(records, newStubAccountRepo(), zerolog.Nop())
	result, err := svc.Report(context.Background(), ports.ReportPatientDemographics)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	if result.GenderCounts["Female"] != 2 || result.GenderCounts["Male"] != 2 {
		t.Errorf("unexpected gender counts: %v", result.GenderCounts)
	}
	want := map[string]int{"0-17": 1, "18-39": 1, "40-64": 1, "65+": 1}
	for bucket, n := range want {
		if result.AgeBuckets[bucket] != n {
			t.Errorf("AgeBuckets[%s] = %d, want %d", bucket, result.AgeBuckets[bucket], n)
		}
	}
}

func TestReportService_Financial(t *testing.T) {
	records := &stubRecordRepo{}
	seedRecord(records, domain.TableBilling, "b1", map[string]string{"amount": "150.50", "status": "Paid"})
	seedRecord(records, domain.TableBilling, "b2", map[string]string{"amount": "49.50", "status": "Paid"})
	seedRecord(records, domain.TableBilling, "b3", map[string]string{"amount": "300", "status": "Pending"})
	seedRecord(records, domain.TableBilling, "b4", map[string]string{"amount": "oops", "status": "Paid"})

	svc := NewReportService(records, newStubAccountRepo(), zerolog.Nop())
	result, err := svc.Report(context.Background(), ports.ReportFinancial)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	if result.TotalRevenue != 500 {
		t.Errorf("TotalRevenue = %v, want 500", result.TotalRevenue)
	}
	if result.RevenueByStatus["Paid"] != 200 || result.RevenueByStatus["Pending"] != 300 {
		t.Errorf("unexpected revenue by status: %v", result.RevenueByStatus)
	}
}

func TestReportService_InventoryStatus(t *testing.T) {
	records := &stubRecordRepo{}
	seedRecord(records, domain.TableInventory, "i1", map[string]string{"item": "Insulin", "quantity": "3", "category": "Medicines"})
	seedRecord(records, domain.TableInventory, "i2", map[string]string{"item": "Aspirin", "quantity": "120", "category": "Medicines"})
	seedRecord(records, domain.TableInventory, "i3", map[string]string{"item": "Gloves", "quantity": "10", "category": "Supplies"})

	svc := NewReportService(records, newStubAccountRepo(), zerolog.Nop())
	result, err := svc.Report(context.Background(), ports.ReportInventoryStatus)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	if result.QuantityByCategory["Medicines"] != 123 || result.QuantityByCategory["Supplies"] != 10 {
		t.Errorf("unexpected quantities: %v", result.QuantityByCategory)
	}
	if len(result.LowStock) != 2 {
		t.Fatalf("LowStock = %v, want [Insulin Gloves]", result.LowStock)
	}
	if result.LowStock[0] != "Insulin" || result.LowStock[1] != "Gloves" {
		t.Errorf("unexpected low stock items: %v", result.LowStock)
	}
}

func TestReportService_StaffOverview(t *testing.T) {
	accounts := newStubAccountRepo()
	accounts.accounts["root"] = &domain.Account{Username: "root", Role: domain.RoleAdmin}
	accounts.accounts["doc1"] = &domain.Account{Username: "doc1", Role: domain.RoleDoctor}
	accounts.accounts["doc2"] = &domain.Account{Username: "doc2", Role: domain.RoleDoctor}
	accounts.accounts["nurse1"] = &domain.Account{Username: "nurse1", Role: domain.RoleNurse}

	svc := NewReportService(&stubRecordRepo{}, accounts, zerolog.Nop())
	result, err := svc.Report(context.Background(), ports.ReportStaffOverview)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	want := map[string]int{domain.RoleDoctor: 2, domain.RoleNurse: 1}
	if len(result.RoleCounts) != len(want) {
		t.Fatalf("RoleCounts = %v, want %v", result.RoleCounts, want)
	}
	for role, n := range want {
		if result.RoleCounts[role] != n {
			t.Errorf("RoleCounts[%s] = %d, want %d", role, result.RoleCounts[role], n)
		}
	}
}

func TestReportService_UnknownKind(t *testing.T) {
	svc := NewReportService(&stubRecordRepo{}, newStubAccountRepo(), zerolog.Nop())

	if _, err := svc.Report(context.Background(), "payroll"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
