// models/treatment_test.go
package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLineTotal(t *testing.T) {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	cases := []struct {
		name      string
		treatment Treatment
		want      string
	}{
		{
			"no lines",
			Treatment{},
			"0.00",
		},
		{
			"medication lines multiply by quantity",
			Treatment{
				Medications: []TreatmentMedication{
					{Quantity: 3, UnitCost: price("10.10")},
				},
			},
			"30.30",
		},
		{
			"medications plus services",
			Treatment{
				Medications: []TreatmentMedication{
					{Quantity: 2, UnitCost: price("5.25")},
					{Quantity: 1, UnitCost: price("4.00")},
				},
				Services: []TreatmentService{
					{Price: price("15.00")},
					{Price: price("0.50")},
				},
			},
			"30.00",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.treatment.LineTotal().StringFixed(2); got != tc.want {
				t.Errorf("LineTotal = %s, want %s", got, tc.want)
			}
		})
	}
}
