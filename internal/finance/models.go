package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Expense types mirror the cost breakdown used by the portal charts.
const (
	TypeMaterial       = "material"
	TypeLabor          = "labor"
	TypeServices       = "services"
	TypeRental         = "rental"
	TypeAdministration = "administration"
)

// ExpenseEntry is a single recorded cost against a project. Entries are
// append-only; corrections are new entries, never edits.
type ExpenseEntry struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ProjectID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"project_id"`
	Date          time.Time      `gorm:"not null" json:"date"`
	InvoiceNumber string         `json:"invoice_number"`
	Description   string         `gorm:"not null" json:"description"`
	Supplier      string         `json:"supplier"`
	Stage         string         `json:"stage"`
	Class         string         `json:"class"`
	Type          string         `gorm:"not null;index" json:"type"` // material | labor | services | rental | administration
	PaymentMethod string         `json:"payment_method"`
	AdmPercentage float64        `json:"adm_percentage"` // 0–100
	Value         float64        `gorm:"not null" json:"value"`
	Tags          pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (ExpenseEntry) TableName() string {
	return "finance.expense_entries"
}

// GroupTotal is one slice of a cost-distribution chart.
type GroupTotal struct {
	Key        string  `json:"key"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// Band is one partition of an ABC analysis.
type Band struct {
	Percentage float64 `json:"percentage"`
	Value      float64 `json:"value"`
	Count      int     `json:"count"`
}

// ABCResult partitions entries into bands A (top ~80% of cumulative value),
// B (next ~15%) and C (remainder).
type ABCResult struct {
	A Band `json:"a"`
	B Band `json:"b"`
	C Band `json:"c"`
}
