package service

import (
	"math"

	documentdomain "github.com/smallbiznis/bahikhata/internal/document/domain"
	pricingdomain "github.com/smallbiznis/bahikhata/internal/pricing/domain"
)

// ComputeTotals rolls valid lines into the document-level figures.
// Empty grid rows never contribute.
func ComputeTotals(lines []pricingdomain.LineItem, paidAmount float64) documentdomain.Totals {
	var t documentdomain.Totals
	for _, line := range lines {
		if !line.IsValid() {
			continue
		}
		t.Subtotal += line.LineTotal
		t.TotalTax += line.TaxAmount
		t.TaxableAmount += line.TaxableValue
	}
	t.Subtotal = round2(t.Subtotal)
	t.TotalTax = round2(t.TotalTax)
	t.TaxableAmount = round2(t.TaxableAmount)
	t.Balance = round2(t.Subtotal - paidAmount)
	return t
}

// ApplyFullyPaid returns the paid amount after toggling the fully-paid
// flag: the whole subtotal when set, cleared when unset.
func ApplyFullyPaid(fullyPaid bool, subtotal float64) float64 {
	if fullyPaid {
		return subtotal
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
