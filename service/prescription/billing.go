package prescription

import (
	"errors"
	"strconv"
)

type MedicineSelection struct {
	MedicineID uint `json:"medicine_id"`
	Quantity   int  `json:"quantity"`
}

// ComputeTotal sums unit price × quantity over a selection. A selected
// medicine with no known price (deleted between pick and save) contributes
// zero instead of failing the prescription.
func ComputeTotal(prices map[uint]float64, selections []MedicineSelection) float64 {
	total := 0.0
	for _, sel := range selections {
		total += prices[sel.MedicineID] * float64(sel.Quantity)
	}
	return total
}

var (
	ErrAmountNotNumber   = errors.New("amount must be a number")
	ErrAmountNotPositive = errors.New("amount must be positive")
	ErrAmountOverTotal   = errors.New("amount exceeds the bill total")
)

// ValidatePaymentAmount parses a user-entered amount and checks it against
// the bill total. A valid amount settles the bill in full; the stored total
// is never reduced or split.
func ValidatePaymentAmount(raw string, total float64) (float64, error) {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, ErrAmountNotNumber
	}
	if amount <= 0 {
		return 0, ErrAmountNotPositive
	}
	if amount > total {
		return 0, ErrAmountOverTotal
	}
	return amount, nil
}
