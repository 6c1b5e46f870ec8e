package rdo

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DailyReport is an RDO (Relatório Diário de Obra): the contractor's daily
// record of conditions and activity on site.
type DailyReport struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ProjectID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_rdo_project_date,unique" json:"project_id"`
	Date           time.Time      `gorm:"not null;index:idx_rdo_project_date,unique" json:"date"`
	Weather        string         `json:"weather"` // sunny | cloudy | rainy
	WorkforceCount int            `json:"workforce_count"`
	Activities     pq.StringArray `gorm:"type:text[]" json:"activities"`
	Equipment      pq.StringArray `gorm:"type:text[]" json:"equipment"`
	Notes          string         `json:"notes"`
	CreatedBy      string         `gorm:"index" json:"created_by"`
	CreatedAt      time.Time      `json:"created_at"`
}

func (DailyReport) TableName() string {
	return "rdo.daily_reports"
}
