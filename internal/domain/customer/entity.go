// internal/domain/customer/entity.go
package customer

import "time"

// Internal field names a row is addressed by once its header is bound.
const (
	FieldName               = "name"
	FieldOrderNumber        = "order_number"
	FieldPhone              = "phone"
	FieldEmail              = "email"
	FieldPickupTime         = "pickup_time"
	FieldPickupLocation     = "pickup_location"
	FieldDropoffTime        = "dropoff_time"
	FieldDropoffLocation    = "dropoff_location"
	FieldDurationDays       = "duration_days"
	FieldAdditionalServices = "additional_services"
)

// SourceRow is one spreadsheet record keyed by internal field name.
type SourceRow struct {
	Index  int // 1-based data row position in the source file, header excluded
	Fields map[string]string
}

// Get returns the cell text for field and whether the row carries it.
func (r SourceRow) Get(field string) (string, bool) {
	v, ok := r.Fields[field]
	return v, ok
}

// Outcome is the result of importing a single row.
type Outcome struct {
	OrderNumber string
	CustomerID  string
	Message     string
}

func Success(customerID, orderNumber string) Outcome {
	return Outcome{CustomerID: customerID, OrderNumber: orderNumber}
}

func Failure(message, orderNumber string) Outcome {
	return Outcome{Message: message, OrderNumber: orderNumber}
}

func (o Outcome) Succeeded() bool {
	return o.CustomerID != "" && o.Message == ""
}

// Summary aggregates the outcomes of one import run.
type Summary struct {
	RunID        string    `json:"run_id"`
	Total        int       `json:"total"`
	SuccessCount int       `json:"success_count"`
	ErrorCount   int       `json:"error_count"`
	LogPath      string    `json:"log_path"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}

// Record tallies an outcome into the running counts.
func (s *Summary) Record(o Outcome) {
	if o.Succeeded() {
		s.SuccessCount++
		return
	}
	s.ErrorCount++
}
