package utils_test

import (
	"testing"

	"github.com/dibekkz/dibek/internal/core/utils"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeVAT(t *testing.T) {
	type vatTest struct {
		name     string
		subtotal string
		rate     string
		expVAT   string
		expTotal string
	}

	tests := []vatTest{
		{
			name:     "standard rate",
			subtotal: "100",
			rate:     "12",
			expVAT:   "12.00",
			expTotal: "112.00",
		},
		{
			name:     "zero subtotal",
			subtotal: "0",
			rate:     "12",
			expVAT:   "0.00",
			expTotal: "0.00",
		},
		{
			name:     "zero rate",
			subtotal: "100",
			rate:     "0",
			expVAT:   "0.00",
			expTotal: "100.00",
		},
		{
			name:     "fractional subtotal",
			subtotal: "15.50",
			rate:     "12",
			expVAT:   "1.86",
			expTotal: "17.36",
		},
		{
			name:     "half rounds to even down",
			subtotal: "10.25",
			rate:     "10",
			expVAT:   "1.02",
			expTotal: "11.27",
		},
		{
			name:     "half rounds to even up",
			subtotal: "10.75",
			rate:     "10",
			expVAT:   "1.08",
			expTotal: "11.83",
		},
		{
			name:     "custom rate",
			subtotal: "2500",
			rate:     "20",
			expVAT:   "500.00",
			expTotal: "3000.00",
		},
		{
			name:     "negative subtotal carries through",
			subtotal: "-100",
			rate:     "12",
			expVAT:   "-12.00",
			expTotal: "-112.00",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			vat, total, err := utils.ComputeVAT(
				decimal.MustParse(test.subtotal),
				decimal.MustParse(test.rate),
			)

			assert.NoError(t, err)
			assert.Equal(t, test.expVAT, vat.String())
			assert.Equal(t, test.expTotal, total.String())
		})
	}
}

func TestDefaultVATRate(t *testing.T) {
	assert.Equal(t, "12", utils.DefaultVATRate.String())
}
