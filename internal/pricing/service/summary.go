package service

import (
	"sort"

	"github.com/smallbiznis/bahikhata/internal/pricing/domain"
)

// Summarize groups valid lines into statutory tax buckets keyed by
// (rate, IGST-or-not), sorted ascending by rate. Lines without a
// selected rate carry no tax and are left out of the report.
func Summarize(lines []domain.LineItem) []domain.TaxBucket {
	type key struct {
		rate float64
		igst bool
	}
	acc := make(map[key]*domain.TaxBucket)
	for _, line := range lines {
		if !line.IsValid() || line.TaxRate == nil {
			continue
		}
		k := key{rate: line.TaxRate.RatePercent, igst: line.TaxRate.IsIGST()}
		b, ok := acc[k]
		if !ok {
			b = &domain.TaxBucket{RatePercent: k.rate, IGST: k.igst}
			acc[k] = b
		}
		b.TaxableAmount += line.TaxableValue
		b.TotalTax += line.TaxAmount
	}

	buckets := make([]domain.TaxBucket, 0, len(acc))
	for _, b := range acc {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].RatePercent == buckets[j].RatePercent {
			return !buckets[i].IGST && buckets[j].IGST
		}
		return buckets[i].RatePercent < buckets[j].RatePercent
	})
	return buckets
}

// SummaryRows renders buckets into print-ready rows plus a trailing
// grand-total row. An IGST bucket keeps the full rate and tax in the
// IGST columns; a domestic bucket splits both evenly into CGST and
// SGST. Halving first and subtracting for the second half keeps the
// split exact: cgst + sgst always equals the bucket total.
func SummaryRows(buckets []domain.TaxBucket) []domain.SummaryRow {
	if len(buckets) == 0 {
		return nil
	}

	rows := make([]domain.SummaryRow, 0, len(buckets)+1)
	var grand domain.SummaryRow
	grand.GrandTotal = true

	for _, b := range buckets {
		row := domain.SummaryRow{
			RatePercent:   b.RatePercent,
			TaxableAmount: b.TaxableAmount,
			TotalTax:      b.TotalTax,
		}
		if b.IGST {
			row.IGSTRate = b.RatePercent
			row.IGSTAmount = b.TotalTax
			grand.IGSTAmount += b.TotalTax
		} else {
			half := b.TotalTax / 2
			row.CGSTRate = b.RatePercent / 2
			row.SGSTRate = b.RatePercent / 2
			row.CGSTAmount = half
			row.SGSTAmount = b.TotalTax - half
			grand.CGSTAmount += row.CGSTAmount
			grand.SGSTAmount += row.SGSTAmount
		}
		grand.TaxableAmount += b.TaxableAmount
		grand.TotalTax += b.TotalTax
		rows = append(rows, row)
	}

	return append(rows, grand)
}
