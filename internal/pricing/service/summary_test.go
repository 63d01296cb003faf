package service

import (
	"testing"

	"github.com/smallbiznis/bahikhata/internal/pricing/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func summaryFixtureLines(t *testing.T) []domain.LineItem {
	t.Helper()
	e := NewEngine(EngineParam{Log: zap.NewNop()})

	gst5 := &domain.TaxRate{ID: "r5", Label: "GST@5%", RatePercent: 5}
	gst18 := &domain.TaxRate{ID: "r18", Label: "GST@18%", RatePercent: 18}
	igst18 := &domain.TaxRate{ID: "i18", Label: "IGST@18%", RatePercent: 18}

	mk := func(name string, qty, price float64, rate *domain.TaxRate) domain.LineItem {
		return e.Recompute(domain.LineItem{
			Name:        name,
			Quantity:    qty,
			UnitPrice:   price,
			PricingMode: domain.PricingModeExclusive,
			TaxRate:     rate,
		}, domain.HeaderModeWithoutTax)
	}

	return []domain.LineItem{
		mk("A", 2, 100, gst18),
		mk("B", 1, 400, gst18),
		mk("C", 3, 50, gst5),
		mk("D", 1, 1000, igst18),
		mk("no rate", 1, 75, nil),
		{}, // empty row, always present in the grid
	}
}

func TestSummarize_GroupsAndSorts(t *testing.T) {
	buckets := Summarize(summaryFixtureLines(t))

	assert.Len(t, buckets, 3)
	assert.Equal(t, 5.0, buckets[0].RatePercent)
	assert.Equal(t, 18.0, buckets[1].RatePercent)
	assert.False(t, buckets[1].IGST)
	assert.Equal(t, 18.0, buckets[2].RatePercent)
	assert.True(t, buckets[2].IGST)

	assert.Equal(t, 150.0, buckets[0].TaxableAmount)
	assert.Equal(t, 7.5, buckets[0].TotalTax)
	assert.Equal(t, 600.0, buckets[1].TaxableAmount)
	assert.Equal(t, 108.0, buckets[1].TotalTax)
	assert.Equal(t, 1000.0, buckets[2].TaxableAmount)
	assert.Equal(t, 180.0, buckets[2].TotalTax)
}

func TestSummarize_TaxConservation(t *testing.T) {
	lines := summaryFixtureLines(t)
	buckets := Summarize(lines)

	var fromLines, fromBuckets float64
	for _, l := range lines {
		if l.IsValid() && l.TaxRate != nil {
			fromLines += l.TaxAmount
		}
	}
	for _, b := range buckets {
		fromBuckets += b.TotalTax
	}
	assert.Equal(t, fromLines, fromBuckets)
}

func TestSummaryRows_SplitIsExact(t *testing.T) {
	rows := SummaryRows(Summarize(summaryFixtureLines(t)))

	assert.Len(t, rows, 4) // three buckets + grand total

	for _, row := range rows[:3] {
		if row.IGSTAmount > 0 {
			assert.Equal(t, row.TotalTax, row.IGSTAmount)
			continue
		}
		assert.Equal(t, row.TotalTax, row.CGSTAmount+row.SGSTAmount)
		assert.Equal(t, row.RatePercent/2, row.CGSTRate)
		assert.Equal(t, row.RatePercent/2, row.SGSTRate)
	}

	grand := rows[3]
	assert.True(t, grand.GrandTotal)
	assert.Equal(t, 1750.0, grand.TaxableAmount)
	assert.Equal(t, 295.5, grand.TotalTax)
	assert.Equal(t, grand.TotalTax, grand.CGSTAmount+grand.SGSTAmount+grand.IGSTAmount)
}

func TestSummaryRows_Empty(t *testing.T) {
	assert.Nil(t, SummaryRows(nil))
	assert.Nil(t, SummaryRows(Summarize([]domain.LineItem{{}})))
}
