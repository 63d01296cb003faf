package service

import (
	"math"

	"github.com/smallbiznis/bahikhata/internal/pricing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Engine computes per-line taxable value, tax and payable total, and
// keeps the discount percent/amount pair mutually consistent. All
// methods are pure with respect to their inputs: the header mode and
// rate table are always passed in, never read from ambient state.
type Engine struct {
	log *zap.Logger
}

type EngineParam struct {
	fx.In

	Log *zap.Logger
}

func NewEngine(p EngineParam) *Engine {
	return &Engine{log: p.Log.Named("pricing.engine")}
}

// SelectCatalogItem populates a line from a picked catalog item. The
// pricing mode, canonical unit price and tax rate are fixed here and
// survive later header-mode toggles untouched.
func (e *Engine) SelectCatalogItem(line domain.LineItem, item domain.CatalogSelection, mode domain.HeaderMode, table []domain.TaxRate) domain.LineItem {
	line.ItemID = item.ItemID
	line.Name = item.Name
	line.HSNCode = item.HSNCode
	line.Quantity = 1
	line.PricingMode = item.SalePriceMode
	if line.PricingMode != domain.PricingModeInclusive {
		line.PricingMode = domain.PricingModeExclusive
	}
	line.UnitPrice = clamp(item.SalePrice)
	line.TaxRate = domain.ResolveTaxRate(table, item.TaxRateID, item.TaxRateLabel, item.TaxPercent)
	if line.TaxRate == nil && (item.TaxRateID != "" || item.TaxRateLabel != "") {
		// The item references a rate that is no longer in the table;
		// the line proceeds untaxed until the operator picks a rate.
		e.log.Warn("catalog tax rate not in rate table",
			zap.String("item_id", item.ItemID),
			zap.String("tax_rate_id", item.TaxRateID),
			zap.String("tax_rate_label", item.TaxRateLabel),
		)
	}

	switch item.DiscountType {
	case domain.DiscountTypeAmount:
		line.DiscountAmount = clamp(item.DiscountValue)
		line.DiscountPercent = backComputePercent(line)
	default:
		line.DiscountPercent = clampPercent(item.DiscountValue)
	}
	line.DiscountAmount = discountFromPercent(line)

	return e.recompute(line, mode)
}

// OnQuantityChange sets the quantity and rebases the discount amount on
// the new quantity*price basis, keeping the percent fixed.
func (e *Engine) OnQuantityChange(line domain.LineItem, quantity float64, mode domain.HeaderMode) domain.LineItem {
	line.Quantity = clamp(quantity)
	line.DiscountAmount = discountFromPercent(line)
	return e.recompute(line, mode)
}

// OnUnitPriceEdit applies an operator-entered unit price. The entry is
// made under the current header mode, so for a tax-exclusive line shown
// gross the entered value is netted back to the canonical price.
func (e *Engine) OnUnitPriceEdit(line domain.LineItem, entered float64, mode domain.HeaderMode) domain.LineItem {
	entered = clamp(entered)
	line.UnitPrice = entered
	if line.PricingMode == domain.PricingModeExclusive && mode == domain.HeaderModeWithTax {
		line.UnitPrice = entered / (1 + line.RatePercent()/100)
	}
	line.DiscountAmount = discountFromPercent(line)
	return e.recompute(line, mode)
}

// OnDiscountPercentChange sets the percent and recomputes the amount.
func (e *Engine) OnDiscountPercentChange(line domain.LineItem, percent float64, mode domain.HeaderMode) domain.LineItem {
	line.DiscountPercent = clampPercent(percent)
	line.DiscountAmount = discountFromPercent(line)
	return e.recompute(line, mode)
}

// OnDiscountAmountChange sets the amount and back-computes the percent
// from the quantity*price basis (0 when the basis is 0).
func (e *Engine) OnDiscountAmountChange(line domain.LineItem, amount float64, mode domain.HeaderMode) domain.LineItem {
	line.DiscountAmount = clamp(amount)
	line.DiscountPercent = backComputePercent(line)
	return e.recompute(line, mode)
}

// OnTaxRateChange swaps the line's rate and recomputes derived fields.
func (e *Engine) OnTaxRateChange(line domain.LineItem, rate *domain.TaxRate, mode domain.HeaderMode) domain.LineItem {
	line.TaxRate = rate
	return e.recompute(line, mode)
}

// Recompute re-derives the cached fields without changing any input
// field. Used when loading stored lines or before totalling.
func (e *Engine) Recompute(line domain.LineItem, mode domain.HeaderMode) domain.LineItem {
	return e.recompute(line, mode)
}

// OnHeaderModeToggle re-derives every line's displayed price and cached
// fields for the new mode in one pass. Line totals are invariant under
// the toggle; only the display price and the taxable/tax breakdown of
// how the total is presented may change representation.
func (e *Engine) OnHeaderModeToggle(lines []domain.LineItem, newMode domain.HeaderMode) []domain.LineItem {
	out := make([]domain.LineItem, len(lines))
	for i, line := range lines {
		out[i] = e.recompute(line, newMode)
	}
	return out
}

func (e *Engine) recompute(line domain.LineItem, mode domain.HeaderMode) domain.LineItem {
	line.Quantity = clamp(line.Quantity)
	line.UnitPrice = clamp(line.UnitPrice)
	line.DiscountPercent = clampPercent(line.DiscountPercent)
	line.DiscountAmount = clamp(line.DiscountAmount)

	subtotal := line.Quantity * line.UnitPrice
	discount := round2(subtotal * line.DiscountPercent / 100)
	taxable := round2(subtotal - discount)

	rate := line.RatePercent()
	var tax, total float64
	if line.PricingMode == domain.PricingModeInclusive {
		tax = round2(taxable * rate / (100 + rate))
		total = taxable
	} else {
		tax = round2(taxable * rate / 100)
		total = round2(taxable + tax)
	}

	line.DiscountAmount = discount
	line.TaxableValue = taxable
	line.TaxAmount = tax
	line.LineTotal = total
	line.DisplayPrice = displayPrice(line, mode)
	return line
}

// displayPrice derives what the operator sees for the unit price. Only
// tax-exclusive lines change with the header mode: under "with tax"
// they are grossed up by the line's rate. Inclusive lines always show
// the catalog price.
func displayPrice(line domain.LineItem, mode domain.HeaderMode) float64 {
	if line.PricingMode == domain.PricingModeExclusive && mode == domain.HeaderModeWithTax {
		return round2(line.UnitPrice * (1 + line.RatePercent()/100))
	}
	return round2(line.UnitPrice)
}

func discountFromPercent(line domain.LineItem) float64 {
	return round2(line.Quantity * line.UnitPrice * line.DiscountPercent / 100)
}

func backComputePercent(line domain.LineItem) float64 {
	basis := line.Quantity * line.UnitPrice
	if basis == 0 {
		return 0
	}
	return clampPercent(line.DiscountAmount / basis * 100)
}

// clamp normalises raw operator input: NaN, infinities and negatives
// all become 0 so they never propagate into derived fields.
func clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func clampPercent(v float64) float64 {
	v = clamp(v)
	if v > 100 {
		return 100
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
