package utils

import (
	"fmt"

	"github.com/govalues/decimal"
)

// DefaultVATRate is the Kazakhstan VAT rate in percent.
var DefaultVATRate = decimal.MustNew(12, 0)

// ComputeVAT returns the VAT amount and the VAT-inclusive total for a
// subtotal at the given percent rate. Both results carry exactly two
// decimal places; rounding is half to even.
func ComputeVAT(subtotal, ratePercent decimal.Decimal) (vat, total decimal.Decimal, err error) {
	vat, err = subtotal.Mul(ratePercent)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("vat amount: %w", err)
	}
	vat, err = vat.Quo(decimal.Hundred)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("vat amount: %w", err)
	}
	vat, err = vat.Rescale(2)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("vat amount: %w", err)
	}

	total, err = subtotal.Add(vat)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("vat total: %w", err)
	}
	total, err = total.Rescale(2)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("vat total: %w", err)
	}

	return vat, total, nil
}
