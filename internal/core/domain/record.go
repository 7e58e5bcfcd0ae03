package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Table names for the business-entity collections served by the RecordStore.
const (
	TablePatients     = "patients"
	TableAppointments = "appointments"
	TableStaff        = "staff"
	TableInventory    = "inventory"
	TableBilling      = "billing"
)

// Record is one flat entry in a named table: an opaque generated id plus
// scalar fields defined by the table schema. Field values are kept as strings
// so every table round-trips cleanly through CSV export.
type Record struct {
	ID        string            `json:"id"`
	Table     string            `json:"-"`
	Fields    map[string]string `json:"fields"`
	CreatedAt time.Time         `json:"created_at"`
}

// TableSchema fixes the field set of one table. Fields lists every column in
// display order; Required and Numeric constrain writes.
type TableSchema struct {
	Fields   []string
	Required []string
	Numeric  []string
}

// Schemas maps each known table to its fixed schema.
var Schemas = map[string]TableSchema{
	TablePatients: {
		Fields:   []string{"name", "age", "gender", "contact", "medical_history"},
		Required: []string{"name", "contact"},
		Numeric:  []string{"age"},
	},
	TableAppointments: {
		Fields:   []string{"patient_id", "date", "time", "doctor", "status"},
		Required: []string{"patient_id", "date", "time", "doctor"},
	},
	TableStaff: {
		Fields:   []string{"name", "role", "contact", "schedule"},
		Required: []string{"name", "role", "contact"},
	},
	TableInventory: {
		Fields:   []string{"item", "quantity", "category", "last_updated"},
		Required: []string{"item", "quantity", "category"},
		Numeric:  []string{"quantity"},
	},
	TableBilling: {
		Fields:   []string{"patient_id", "amount", "date", "status"},
		Required: []string{"patient_id", "amount", "date", "status"},
		Numeric:  []string{"amount"},
	},
}

// KnownTable reports whether name is one of the fixed tables.
func KnownTable(name string) bool {
	_, ok := Schemas[name]
	return ok
}

// ValidateFields checks fields against the schema for table: every key must be
// a known column, required columns must be present and non-empty, numeric
// columns must parse. Returns an error wrapping ErrValidation on failure.
func ValidateFields(table string, fields map[string]string) error {
	schema, ok := Schemas[table]
	if !ok {
		return fmt.Errorf("%w: unknown table %q", ErrValidation, table)
	}

	known := make(map[string]struct{}, len(schema.Fields))
	for _, f := range schema.Fields {
		known[f] = struct{}{}
	}
	for k := range fields {
		if _, ok := known[k]; !ok {
			return fmt.Errorf("%w: unknown field %q for table %q", ErrValidation, k, table)
		}
	}
	for _, req := range schema.Required {
		if fields[req] == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, req)
		}
	}
	for _, num := range schema.Numeric {
		v, ok := fields[num]
		if !ok || v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("%w: %s must be numeric", ErrValidation, num)
		}
	}
	return nil
}
