// Package metrics defines and registers all custom Prometheus metrics for the
// hospital administration API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hospital"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AccountsCreatedTotal counts account creations (bootstrap admin and staff).
// Label:
//   - role: the role of the created account (e.g. "admin", "nurse")
var AccountsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// ── Record metrics ────────────────────────────────────────────────────────────

// RecordMutationsTotal counts create/update/delete operations on the record
// tables.
// Labels:
//   - table: the business table (e.g. "patients")
//   - op: "create", "update", or "delete"
var RecordMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_mutations_total",
		Help:      "Total number of record mutations, by table and operation.",
	},
	[]string{"table", "op"},
)

// ── Inventory metrics ─────────────────────────────────────────────────────────

// LowStockAlertsTotal counts low-stock alerts raised by inventory mutations.
// Label:
//   - category: the inventory category of the item
var LowStockAlertsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "low_stock_alerts_total",
		Help:      "Total number of low-stock alerts raised, by category.",
	},
	[]string{"category"},
)
