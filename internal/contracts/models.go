package contracts

import (
	"time"

	"github.com/google/uuid"
)

// Contract types. Lump-sum contracts carry a stored total; measurement
// contracts derive their total from measurement line items and must never
// read TotalValue as a stored field.
const (
	TypeMeasurement = "measurement"
	TypeLumpSum     = "lump_sum"
)

// Contract direction decides the balance sign convention: client contracts
// are receivables, supplier contracts are payables.
const (
	DirectionClient   = "client"
	DirectionSupplier = "supplier"
)

const (
	ContractActive    = "active"
	ContractCompleted = "completed"
)

const (
	MeasurementPending  = "pending"
	MeasurementApproved = "approved"
	MeasurementRejected = "rejected"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentCancelled = "cancelled"
)

const (
	PaymentReceived = "received"
	PaymentPaid     = "paid"
)

type Contract struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Title     string    `gorm:"not null" json:"title"`
	Type      string    `gorm:"not null" json:"type"`      // measurement | lump_sum
	Direction string    `gorm:"not null" json:"direction"` // client | supplier
	Status    string    `gorm:"default:'active'" json:"status"`

	// Stored for lump_sum only; derived for measurement contracts.
	TotalValue     float64 `json:"total_value"`
	RemainingValue float64 `json:"remaining_value"`

	// Recomputed from completed payments on every payment mutation.
	PaidValue     float64 `json:"paid_value"`
	ReceivedValue float64 `json:"received_value"`
	BalanceValue  float64 `json:"balance_value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Measurements []Measurement `gorm:"foreignKey:ContractID" json:"measurements,omitempty"`
	Payments     []Payment     `gorm:"foreignKey:ContractID" json:"payments,omitempty"`
}

func (Contract) TableName() string {
	return "contracts.contracts"
}

// Measurement is a billing line item under a measurement-type contract.
// Created pending by the provider; approved or rejected by an admin.
type Measurement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ContractID  uuid.UUID `gorm:"type:uuid;not null;index" json:"contract_id"`
	Date        time.Time `gorm:"not null" json:"date"`
	Description string    `gorm:"not null" json:"description"`
	Quantity    float64   `gorm:"not null" json:"quantity"`
	Unit        string    `json:"unit"`
	UnitValue   float64   `gorm:"not null" json:"unit_value"`
	TotalValue  float64   `json:"total_value"` // quantity × unit_value
	Status      string    `gorm:"default:'pending'" json:"status"`

	ApprovedBy   *string    `json:"approved_by,omitempty"`
	ApprovedDate *time.Time `json:"approved_date,omitempty"`
	Notes        string     `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (Measurement) TableName() string {
	return "contracts.measurements"
}

// Payment is a cash movement against a contract. Only completed payments
// move balances.
type Payment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ContractID uuid.UUID `gorm:"type:uuid;not null;index" json:"contract_id"`
	Date       time.Time `gorm:"not null" json:"date"`
	Amount     float64   `gorm:"not null" json:"amount"`
	Type       string    `gorm:"not null" json:"type"` // received | paid
	Status     string    `gorm:"default:'pending'" json:"status"`
	Method     string    `json:"method"`
	Reference  string    `gorm:"uniqueIndex" json:"reference"` // bank reconciliation key
	CreatedAt  time.Time `json:"created_at"`
}

func (Payment) TableName() string {
	return "contracts.payments"
}

// Totals is the contract financial summary shown on the portal.
type Totals struct {
	TotalValue    float64 `json:"total_value"`
	ApprovedValue float64 `json:"approved_value"`
	PendingValue  float64 `json:"pending_value"`
}
