package contracts

import (
	"testing"
)

func measurement(qty, unitValue float64, status string) Measurement {
	return Measurement{
		Quantity:   qty,
		UnitValue:  unitValue,
		TotalValue: qty * unitValue,
		Status:     status,
	}
}

func payment(amount float64, typ, status string) Payment {
	return Payment{Amount: amount, Type: typ, Status: status}
}

// TestContractTotals_Measurement checks the summary over a mixed
// measurement list: 120m × 85 approved, 130m × 90 pending, and a rejected
// duplicate that must count toward nothing.
func TestContractTotals_Measurement(t *testing.T) {
	c := Contract{
		Type: TypeMeasurement,
		Measurements: []Measurement{
			measurement(120, 85, MeasurementApproved),
			measurement(130, 90, MeasurementPending),
			measurement(120, 85, MeasurementRejected),
		},
	}

	totals := ContractTotals(c)
	if totals.ApprovedValue != 10200 {
		t.Errorf("approved: got %f, want 10200", totals.ApprovedValue)
	}
	if totals.PendingValue != 11700 {
		t.Errorf("pending: got %f, want 11700", totals.PendingValue)
	}
	if totals.TotalValue != 21900 {
		t.Errorf("total: got %f, want 21900", totals.TotalValue)
	}
}

// TestContractTotals_MeasurementEmpty verifies a contract with no
// measurements reports all-zero totals.
func TestContractTotals_MeasurementEmpty(t *testing.T) {
	totals := ContractTotals(Contract{Type: TypeMeasurement})
	if totals.TotalValue != 0 || totals.ApprovedValue != 0 || totals.PendingValue != 0 {
		t.Errorf("expected zero totals, got %+v", totals)
	}
}

// TestContractTotals_LumpSum verifies lump-sum contracts report the stored
// fields and ignore any stray measurements. The settled side follows the
// contract direction.
func TestContractTotals_LumpSum(t *testing.T) {
	c := Contract{
		Type:           TypeLumpSum,
		Direction:      DirectionSupplier,
		TotalValue:     1300000,
		PaidValue:      260000,
		RemainingValue: 1040000,
		Measurements: []Measurement{
			measurement(10, 100, MeasurementApproved),
		},
	}

	totals := ContractTotals(c)
	if totals.TotalValue != 1300000 {
		t.Errorf("total: got %f, want 1300000", totals.TotalValue)
	}
	if totals.ApprovedValue != 260000 {
		t.Errorf("approved: got %f, want 260000", totals.ApprovedValue)
	}
	if totals.PendingValue != 1040000 {
		t.Errorf("pending: got %f, want 1040000", totals.PendingValue)
	}

	// Client contracts settle via received payments.
	c.Direction = DirectionClient
	c.PaidValue = 0
	c.ReceivedValue = 260000
	if got := ContractTotals(c).ApprovedValue; got != 260000 {
		t.Errorf("client approved: got %f, want 260000", got)
	}
}

// TestRecomputeBalance_CompletedOnly verifies pending and cancelled
// payments never move the paid/received sums.
func TestRecomputeBalance_CompletedOnly(t *testing.T) {
	c := Contract{
		Type:       TypeLumpSum,
		Direction:  DirectionClient,
		TotalValue: 1000000,
		Payments: []Payment{
			payment(100000, PaymentReceived, PaymentCompleted),
			payment(200000, PaymentReceived, PaymentPending),
			payment(300000, PaymentReceived, PaymentCancelled),
		},
	}

	RecomputeBalance(&c)
	if c.ReceivedValue != 100000 {
		t.Errorf("received: got %f, want 100000", c.ReceivedValue)
	}
	if c.BalanceValue != 900000 {
		t.Errorf("balance: got %f, want 900000", c.BalanceValue)
	}
}

// TestRecomputeBalance_ClientDirection verifies the receivable convention:
// balance is what the client still owes.
func TestRecomputeBalance_ClientDirection(t *testing.T) {
	c := Contract{
		Type:       TypeLumpSum,
		Direction:  DirectionClient,
		TotalValue: 1300000,
		Payments: []Payment{
			payment(260000, PaymentReceived, PaymentCompleted),
		},
	}

	RecomputeBalance(&c)
	if c.BalanceValue != 1040000 {
		t.Errorf("balance: got %f, want 1040000", c.BalanceValue)
	}
}

// TestRecomputeBalance_SupplierDirection verifies the payable convention:
// balance is what has been paid beyond the contract total, so an underpaid
// supplier contract shows a negative balance.
func TestRecomputeBalance_SupplierDirection(t *testing.T) {
	c := Contract{
		Type:      TypeMeasurement,
		Direction: DirectionSupplier,
		Measurements: []Measurement{
			measurement(120, 85, MeasurementApproved), // 10200
		},
		Payments: []Payment{
			payment(10200, PaymentPaid, PaymentCompleted),
			payment(5000, PaymentPaid, PaymentPending),
		},
	}

	RecomputeBalance(&c)
	if c.PaidValue != 10200 {
		t.Errorf("paid: got %f, want 10200", c.PaidValue)
	}
	if c.BalanceValue != 0 {
		t.Errorf("balance: got %f, want 0", c.BalanceValue)
	}

	// Pending measurement raises the derived total, pushing the balance
	// negative until it is paid.
	c.Measurements = append(c.Measurements, measurement(130, 90, MeasurementPending)) // 11700
	RecomputeBalance(&c)
	if c.BalanceValue != -11700 {
		t.Errorf("balance after new measurement: got %f, want -11700", c.BalanceValue)
	}
}

// TestRecomputeBalance_Idempotent verifies the recompute overwrites stale
// derived fields instead of accumulating onto them.
func TestRecomputeBalance_Idempotent(t *testing.T) {
	c := Contract{
		Type:       TypeLumpSum,
		Direction:  DirectionClient,
		TotalValue: 500000,
		Payments: []Payment{
			payment(100000, PaymentReceived, PaymentCompleted),
		},
	}

	RecomputeBalance(&c)
	first := c
	RecomputeBalance(&c)

	if c.ReceivedValue != first.ReceivedValue || c.BalanceValue != first.BalanceValue {
		t.Errorf("balance drifted on second recompute: %+v vs %+v", first, c)
	}
}

// TestRecomputeBalance_MixedPaymentTypes verifies received and paid sums
// are tracked independently on the same contract.
func TestRecomputeBalance_MixedPaymentTypes(t *testing.T) {
	c := Contract{
		Type:       TypeLumpSum,
		Direction:  DirectionClient,
		TotalValue: 100000,
		Payments: []Payment{
			payment(40000, PaymentReceived, PaymentCompleted),
			payment(15000, PaymentPaid, PaymentCompleted),
		},
	}

	RecomputeBalance(&c)
	if c.ReceivedValue != 40000 {
		t.Errorf("received: got %f, want 40000", c.ReceivedValue)
	}
	if c.PaidValue != 15000 {
		t.Errorf("paid: got %f, want 15000", c.PaidValue)
	}
	if c.BalanceValue != 60000 {
		t.Errorf("balance: got %f, want 60000", c.BalanceValue)
	}
}
