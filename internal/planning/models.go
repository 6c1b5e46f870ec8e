package planning

import (
	"time"

	"github.com/google/uuid"
)

// Stage statuses. LATE is not derived from values; it is an override set by
// the contractor when a stage misses its schedule.
const (
	StatusNotStarted = "NOT_STARTED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusLate       = "LATE"
)

// Execution entry categories.
const (
	CategoryMaterial   = "MATERIAL"
	CategoryLabor      = "LABOR"
	CategoryEquipment  = "EQUIPMENT"
	CategoryThirdParty = "THIRD_PARTY_SERVICE"
	CategoryOther      = "OTHER"
)

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	ClientID    string    `gorm:"index" json:"client_id"`
	StartDate   time.Time `json:"start_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Stages []Stage `gorm:"foreignKey:ProjectID" json:"stages,omitempty"`
}

func (Project) TableName() string {
	return "planning.projects"
}

// Stage is a planning/budget bucket. ExecutedValue, Difference and Status
// are derived from the stage's execution entries and rewritten wholesale on
// every recompute — they are never patched incrementally.
type Stage struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ProjectID    uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `json:"description"`
	PlannedValue float64   `gorm:"not null" json:"planned_value"`

	ExecutedValue float64 `json:"executed_value"`
	Difference    float64 `json:"difference"`
	Status        string  `gorm:"default:'NOT_STARTED'" json:"status"`
	Late          bool    `gorm:"default:false" json:"late"`

	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Executions []ExecutionEntry `gorm:"foreignKey:StageID" json:"executions,omitempty"`
}

func (Stage) TableName() string {
	return "planning.stages"
}

// EffectiveStatus reports LATE when the override is set, otherwise the
// value-derived status.
func (s Stage) EffectiveStatus() string {
	if s.Late {
		return StatusLate
	}
	return s.Status
}

// ExecutionEntry is an actual-spend record tied to exactly one stage.
// Append-only.
type ExecutionEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	StageID     uuid.UUID `gorm:"type:uuid;not null;index" json:"stage_id"`
	Description string    `gorm:"not null" json:"description"`
	Value       float64   `gorm:"not null" json:"value"`
	Date        time.Time `gorm:"not null" json:"date"`
	Category    string    `gorm:"not null" json:"category"` // MATERIAL | LABOR | EQUIPMENT | THIRD_PARTY_SERVICE | OTHER
	CreatedAt   time.Time `json:"created_at"`
}

func (ExecutionEntry) TableName() string {
	return "planning.execution_entries"
}

// Totals are the project-level planned vs executed aggregates shown on the
// planning screen header.
type Totals struct {
	TotalPlanned    float64 `json:"total_planned"`
	TotalExecuted   float64 `json:"total_executed"`
	TotalDifference float64 `json:"total_difference"`
}
