package contracts

// ContractTotals computes the financial summary of a contract. For lump_sum
// the stored fields are authoritative; for measurement contracts everything
// derives from the measurement list. Rejected measurements are void — they
// count toward neither approved nor pending value.
func ContractTotals(c Contract) Totals {
	if c.Type == TypeLumpSum {
		settled := c.PaidValue
		if c.Direction == DirectionClient {
			settled = c.ReceivedValue
		}
		return Totals{
			TotalValue:    c.TotalValue,
			ApprovedValue: settled,
			PendingValue:  c.RemainingValue,
		}
	}

	var t Totals
	for _, m := range c.Measurements {
		switch m.Status {
		case MeasurementApproved:
			t.ApprovedValue += m.TotalValue
		case MeasurementPending:
			t.PendingValue += m.TotalValue
		}
	}
	t.TotalValue = t.ApprovedValue + t.PendingValue
	return t
}

// RecomputeBalance rewrites PaidValue, ReceivedValue and BalanceValue from
// the contract's payment list. Only completed payments count. The balance
// sign follows the contract direction: client contracts track what is still
// receivable, supplier contracts what has been overpaid against the total.
func RecomputeBalance(c *Contract) {
	paid, received := 0.0, 0.0
	for _, p := range c.Payments {
		if p.Status != PaymentCompleted {
			continue
		}
		switch p.Type {
		case PaymentReceived:
			received += p.Amount
		case PaymentPaid:
			paid += p.Amount
		}
	}

	c.PaidValue = paid
	c.ReceivedValue = received

	total := ContractTotals(*c).TotalValue
	if c.Direction == DirectionSupplier {
		c.BalanceValue = paid - total
	} else {
		c.BalanceValue = total - received
	}
}
