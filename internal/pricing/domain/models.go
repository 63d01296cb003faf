// Package domain contains the pure pricing model shared by every sales document type.
package domain

import "strings"

// PricingMode says whether a catalog price already contains GST.
// It is fixed per line when the catalog item is selected and never
// reinterpreted afterwards.
type PricingMode string

const (
	PricingModeInclusive PricingMode = "inclusive" // sale price contains tax
	PricingModeExclusive PricingMode = "exclusive" // tax is added on top
)

// HeaderMode is the document-level toggle controlling how unit prices of
// tax-exclusive lines are displayed and entered. It never changes the
// catalog truth stored on the line.
type HeaderMode string

const (
	HeaderModeWithTax    HeaderMode = "with_tax"
	HeaderModeWithoutTax HeaderMode = "without_tax"
)

// TaxRate is one row of the GST rate table.
type TaxRate struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	RatePercent float64 `json:"rate_percent"`
}

// IsIGST reports whether the rate applies as integrated GST at the full
// rate. Anything else is a combined CGST+SGST rate split evenly for
// reporting.
func (t TaxRate) IsIGST() bool {
	return strings.Contains(strings.ToUpper(t.Label), "IGST")
}

// CatalogSelection is the slice of a catalog item the engine needs when
// the operator picks it for a line.
type CatalogSelection struct {
	ItemID        string
	Name          string
	HSNCode       string
	SalePrice     float64
	SalePriceMode PricingMode
	TaxRateID     string
	TaxRateLabel  string
	TaxPercent    float64
	DiscountType  DiscountType
	DiscountValue float64
}

// DiscountType says how a catalog item stores its configured discount.
type DiscountType string

const (
	DiscountTypePercent DiscountType = "percent"
	DiscountTypeAmount  DiscountType = "amount"
)

// LineItem is one row of the line-item grid.
//
// UnitPrice is the canonical per-unit price in the line's own pricing
// mode (the catalog truth); DisplayPrice is what the operator sees and
// edits under the current header mode and is always derivable from
// UnitPrice. TaxableValue, TaxAmount and LineTotal are derived fields
// recomputed on every mutation, never patched in place.
type LineItem struct {
	ID      string `json:"id"`
	ItemID  string `json:"item_id"`
	Name    string `json:"name"`
	HSNCode string `json:"hsn_code"`

	Quantity        float64     `json:"quantity"`
	UnitPrice       float64     `json:"unit_price"`
	DisplayPrice    float64     `json:"display_price"`
	PricingMode     PricingMode `json:"pricing_mode"`
	DiscountPercent float64     `json:"discount_percent"`
	DiscountAmount  float64     `json:"discount_amount"`
	TaxRate         *TaxRate    `json:"tax_rate,omitempty"`

	TaxableValue float64 `json:"taxable_value"`
	TaxAmount    float64 `json:"tax_amount"`
	LineTotal    float64 `json:"line_total"`
}

// IsEmpty reports whether the row has neither a selected catalog item
// nor a typed name. Empty rows are excluded from totals, summary and
// validation.
func (l LineItem) IsEmpty() bool {
	return l.ItemID == "" && strings.TrimSpace(l.Name) == ""
}

// IsValid reports whether the line participates in totals and the tax
// summary. Stricter checks on quantity and price belong to document
// validation, not to aggregation.
func (l LineItem) IsValid() bool {
	return !l.IsEmpty()
}

// RatePercent returns the line's tax rate, or 0 when no rate is selected.
func (l LineItem) RatePercent() float64 {
	if l.TaxRate == nil {
		return 0
	}
	return l.TaxRate.RatePercent
}

// TaxBucket accumulates valid lines sharing (rate, kind) for the
// statutory summary report.
type TaxBucket struct {
	RatePercent   float64 `json:"rate_percent"`
	IGST          bool    `json:"igst"`
	TaxableAmount float64 `json:"taxable_amount"`
	TotalTax      float64 `json:"total_tax"`
}

// SummaryRow is one print-ready row of the tax summary. For an IGST
// bucket only the IGST columns are filled; otherwise the rate and tax
// are split evenly into the CGST and SGST columns.
type SummaryRow struct {
	RatePercent   float64 `json:"rate_percent"`
	TaxableAmount float64 `json:"taxable_amount"`
	IGSTRate      float64 `json:"igst_rate,omitempty"`
	IGSTAmount    float64 `json:"igst_amount,omitempty"`
	CGSTRate      float64 `json:"cgst_rate,omitempty"`
	CGSTAmount    float64 `json:"cgst_amount,omitempty"`
	SGSTRate      float64 `json:"sgst_rate,omitempty"`
	SGSTAmount    float64 `json:"sgst_amount,omitempty"`
	TotalTax      float64 `json:"total_tax"`
	GrandTotal    bool    `json:"grand_total,omitempty"`
}

// ResolveTaxRate matches a catalog item's tax reference against the
// current rate table: by id first, then label, then rate value. Returns
// nil when nothing matches.
func ResolveTaxRate(table []TaxRate, id, label string, percent float64) *TaxRate {
	for i := range table {
		if id != "" && table[i].ID == id {
			return &table[i]
		}
	}
	for i := range table {
		if label != "" && strings.EqualFold(table[i].Label, label) {
			return &table[i]
		}
	}
	for i := range table {
		if table[i].RatePercent == percent {
			return &table[i]
		}
	}
	return nil
}
