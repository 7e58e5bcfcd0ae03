package ports

import "context"

// Report kinds accepted by ReportService.Report.
const (
	ReportPatientDemographics  = "patient_demographics"
	ReportAppointmentAnalytics = "appointment_analytics"
	ReportFinancial            = "financial"
	ReportInventoryStatus      = "inventory_status"
	ReportStaffOverview        = "staff_overview"
)

// DashboardSummary carries the headline counts shown on the landing page.
type DashboardSummary struct {
	TotalPatients     int64 `json:"total_patients"`
	TodayAppointments int64 `json:"today_appointments"`
	StaffCount        int64 `json:"staff_count"`
	LowStockItems     int64 `json:"low_stock_items"`
}

// ReportResult is a kind-tagged bundle of aggregations. Only the sections
// relevant to the requested kind are populated.
type ReportResult struct {
	Kind string `json:"kind"`

	// patient_demographics
	GenderCounts map[string]int `json:"gender_counts,omitempty"`
	AgeBuckets   map[string]int `json:"age_buckets,omitempty"`

	// appointment_analytics
	StatusCounts map[string]int `json:"status_counts,omitempty"`
	DailyCounts  map[string]int `json:"daily_counts,omitempty"`

	// financial
	RevenueByStatus map[string]float64 `json:"revenue_by_status,omitempty"`
	TotalRevenue    float64            `json:"total_revenue,omitempty"`

	// inventory_status
	QuantityByCategory map[string]int `json:"quantity_by_category,omitempty"`
	LowStock           []string       `json:"low_stock,omitempty"`

	// staff_overview
	RoleCounts map[string]int `json:"role_counts,omitempty"`
}

// ReportService computes dashboard counts and the fixed report set.
type ReportService interface {
	Dashboard(ctx context.Context) (*DashboardSummary, error)
	Report(ctx context.Context, kind string) (*ReportResult, error)
}
