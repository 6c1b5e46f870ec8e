package contracts

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/ObraVista/OV-Backend/internal/db"
	"github.com/ObraVista/OV-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func validMoney(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ListContracts returns contracts, optionally scoped to a project.
func ListContracts(w http.ResponseWriter, r *http.Request) {
	query := db.DB.Model(&Contract{})
	if projectID := r.URL.Query().Get("project_id"); projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	var contracts []Contract
	if err := query.Find(&contracts).Error; err != nil {
		http.Error(w, "Failed to fetch contracts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contracts)
}

// GetContract returns a contract with measurements, payments and the
// derived totals.
func GetContract(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "contract_id")

	var contract Contract
	err := db.DB.Preload("Measurements").Preload("Payments").
		First(&contract, "id = ?", contractID).Error
	if err != nil {
		http.Error(w, "Contract not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"contract": contract,
		"totals":   ContractTotals(contract),
	})
}

// CreateContract creates a contract (admin only).
func CreateContract(w http.ResponseWriter, r *http.Request) {
	var contract Contract
	if err := json.NewDecoder(r.Body).Decode(&contract); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if contract.Title == "" || contract.ProjectID == uuid.Nil {
		http.Error(w, "title and project_id are required", http.StatusBadRequest)
		return
	}
	if contract.Type != TypeMeasurement && contract.Type != TypeLumpSum {
		http.Error(w, "type must be measurement or lump_sum", http.StatusBadRequest)
		return
	}
	if contract.Direction != DirectionClient && contract.Direction != DirectionSupplier {
		http.Error(w, "direction must be client or supplier", http.StatusBadRequest)
		return
	}
	if contract.Type == TypeLumpSum && !validMoney(contract.TotalValue) {
		http.Error(w, "total_value must be a positive number for lump_sum contracts", http.StatusBadRequest)
		return
	}
	if contract.Type == TypeMeasurement {
		// Derived for measurement contracts; never stored.
		contract.TotalValue = 0
		contract.RemainingValue = 0
	} else {
		contract.RemainingValue = contract.TotalValue
	}
	contract.Status = ContractActive

	if err := db.DB.Create(&contract).Error; err != nil {
		http.Error(w, "Failed to create contract: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(contract)
}

// CreateMeasurement adds a pending measurement line item to a
// measurement-type contract (contractor action).
func CreateMeasurement(w http.ResponseWriter, r *http.Request) {
	contractID, err := uuid.Parse(chi.URLParam(r, "contract_id"))
	if err != nil {
		http.Error(w, "Invalid contract id", http.StatusBadRequest)
		return
	}

	var contract Contract
	if err := db.DB.First(&contract, "id = ?", contractID).Error; err != nil {
		http.Error(w, "Contract not found", http.StatusNotFound)
		return
	}
	if contract.Type != TypeMeasurement {
		http.Error(w, "Contract does not accept measurements", http.StatusUnprocessableEntity)
		return
	}

	var input struct {
		Date        string  `json:"date"`
		Description string  `json:"description"`
		Quantity    float64 `json:"quantity"`
		Unit        string  `json:"unit"`
		UnitValue   float64 `json:"unit_value"`
		Notes       string  `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Description == "" {
		http.Error(w, "description is required", http.StatusBadRequest)
		return
	}
	if !validMoney(input.Quantity) || !validMoney(input.UnitValue) {
		http.Error(w, "quantity and unit_value must be positive numbers", http.StatusBadRequest)
		return
	}
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		http.Error(w, "Invalid date format, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	m := Measurement{
		ContractID:  contractID,
		Date:        date,
		Description: input.Description,
		Quantity:    input.Quantity,
		Unit:        input.Unit,
		UnitValue:   input.UnitValue,
		TotalValue:  input.Quantity * input.UnitValue,
		Status:      MeasurementPending,
		Notes:       input.Notes,
	}

	if err := db.DB.Create(&m).Error; err != nil {
		http.Error(w, "Failed to create measurement: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(m)
}

// ReviewMeasurement approves or rejects a pending measurement (admin only).
func ReviewMeasurement(w http.ResponseWriter, r *http.Request) {
	measurementID := chi.URLParam(r, "measurement_id")

	var m Measurement
	if err := db.DB.First(&m, "id = ?", measurementID).Error; err != nil {
		http.Error(w, "Measurement not found", http.StatusNotFound)
		return
	}
	if m.Status != MeasurementPending {
		http.Error(w, "Measurement already reviewed", http.StatusConflict)
		return
	}

	var input struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Status != MeasurementApproved && input.Status != MeasurementRejected {
		http.Error(w, "status must be approved or rejected", http.StatusBadRequest)
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())
	now := time.Now()

	updates := map[string]interface{}{
		"status":        input.Status,
		"approved_by":   userID,
		"approved_date": now,
	}
	if input.Notes != "" {
		updates["notes"] = input.Notes
	}

	if err := db.DB.Model(&m).Updates(updates).Error; err != nil {
		http.Error(w, "Failed to update measurement: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"id": m.ID, "status": input.Status})
}

// CreatePayment registers a cash movement against a contract. Payments
// start pending unless explicitly created completed; balances only move for
// completed payments.
func CreatePayment(w http.ResponseWriter, r *http.Request) {
	contractID, err := uuid.Parse(chi.URLParam(r, "contract_id"))
	if err != nil {
		http.Error(w, "Invalid contract id", http.StatusBadRequest)
		return
	}

	var contract Contract
	if err := db.DB.First(&contract, "id = ?", contractID).Error; err != nil {
		http.Error(w, "Contract not found", http.StatusNotFound)
		return
	}

	var input struct {
		Date      string  `json:"date"`
		Amount    float64 `json:"amount"`
		Type      string  `json:"type"`
		Status    string  `json:"status"`
		Method    string  `json:"method"`
		Reference string  `json:"reference"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !validMoney(input.Amount) {
		http.Error(w, "amount must be a positive number", http.StatusBadRequest)
		return
	}
	if input.Type != PaymentReceived && input.Type != PaymentPaid {
		http.Error(w, "type must be received or paid", http.StatusBadRequest)
		return
	}
	if input.Status == "" {
		input.Status = PaymentPending
	}
	if input.Status != PaymentPending && input.Status != PaymentCompleted {
		http.Error(w, "status must be pending or completed", http.StatusBadRequest)
		return
	}
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		http.Error(w, "Invalid date format, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	reference := input.Reference
	if reference == "" {
		reference = uuid.NewString()
	}

	payment := Payment{
		ContractID: contractID,
		Date:       date,
		Amount:     input.Amount,
		Type:       input.Type,
		Status:     input.Status,
		Method:     input.Method,
		Reference:  reference,
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Failed to start transaction", http.StatusInternalServerError)
		return
	}

	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Failed to create payment: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := recomputeContract(tx, contractID); err != nil {
		tx.Rollback()
		http.Error(w, "Failed to recompute balance: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Failed to commit: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(payment)
}

// CompletePayment marks a pending payment completed and recomputes the
// contract balance.
func CompletePayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "payment_id")

	var payment Payment
	if err := db.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		http.Error(w, "Payment not found", http.StatusNotFound)
		return
	}

	if err := completePayment(&payment); err != nil {
		if errors.Is(err, errAlreadySettled) {
			http.Error(w, "Payment already settled", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to complete payment: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"id": payment.ID, "status": PaymentCompleted})
}

var errAlreadySettled = errors.New("payment already settled")

func completePayment(payment *Payment) error {
	if payment.Status != PaymentPending {
		return errAlreadySettled
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Model(payment).Update("status", PaymentCompleted).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := recomputeContract(tx, payment.ContractID); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// CompletePaymentByReference settles the payment matching a bank reference.
// Used by the payment-confirmation webhook.
func CompletePaymentByReference(reference string) error {
	var payment Payment
	if err := db.DB.First(&payment, "reference = ?", reference).Error; err != nil {
		return err
	}
	return completePayment(&payment)
}

// recomputeContract reloads measurements and payments and persists freshly
// derived balance fields.
func recomputeContract(tx *gorm.DB, contractID uuid.UUID) error {
	var contract Contract
	err := tx.Preload("Measurements").Preload("Payments").
		First(&contract, "id = ?", contractID).Error
	if err != nil {
		return err
	}

	RecomputeBalance(&contract)

	updates := map[string]interface{}{
		"paid_value":     contract.PaidValue,
		"received_value": contract.ReceivedValue,
		"balance_value":  contract.BalanceValue,
	}
	if contract.Type == TypeLumpSum {
		// The paying side depends on direction: client contracts are paid
		// down by what we receive, supplier contracts by what we pay out.
		settled := contract.PaidValue
		if contract.Direction == DirectionClient {
			settled = contract.ReceivedValue
		}
		updates["remaining_value"] = contract.TotalValue - settled
	}

	return tx.Model(&Contract{}).Where("id = ?", contractID).Updates(updates).Error
}

// GetContractTotals returns only the derived financial summary.
func GetContractTotals(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "contract_id")

	var contract Contract
	err := db.DB.Preload("Measurements").First(&contract, "id = ?", contractID).Error
	if err != nil {
		http.Error(w, "Contract not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ContractTotals(contract))
}
