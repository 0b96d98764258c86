package prescription

import (
	"errors"
	"math"
	"testing"
)

func TestComputeTotal(t *testing.T) {
	prices := map[uint]float64{
		1: 10.00,
		2: 5.50,
	}

	tests := []struct {
		name       string
		selections []MedicineSelection
		want       float64
	}{
		{
			"two medicines",
			[]MedicineSelection{
				{MedicineID: 1, Quantity: 2},
				{MedicineID: 2, Quantity: 3},
			},
			36.50,
		},
		{
			"single medicine",
			[]MedicineSelection{{MedicineID: 2, Quantity: 1}},
			5.50,
		},
		{
			"unknown medicine contributes zero",
			[]MedicineSelection{
				{MedicineID: 1, Quantity: 2},
				{MedicineID: 99, Quantity: 5},
			},
			20.00,
		},
		{"empty selection", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotal(prices, tt.selections)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ComputeTotal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidatePaymentAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		total   float64
		want    float64
		wantErr error
	}{
		{"exact total", "36.50", 36.50, 36.50, nil},
		{"under total", "10", 36.50, 10, nil},
		{"not a number", "abc", 36.50, 0, ErrAmountNotNumber},
		{"empty", "", 36.50, 0, ErrAmountNotNumber},
		{"zero", "0", 36.50, 0, ErrAmountNotPositive},
		{"negative", "-5", 36.50, 0, ErrAmountNotPositive},
		{"over total", "36.51", 36.50, 0, ErrAmountOverTotal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePaymentAmount(tt.raw, tt.total)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("amount = %v, want %v", got, tt.want)
			}
		})
	}
}
