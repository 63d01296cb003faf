package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/bahikhata/internal/catalog/domain"
	documentservice "github.com/smallbiznis/bahikhata/internal/document/service"
	"github.com/smallbiznis/bahikhata/internal/document/words"
	pricingdomain "github.com/smallbiznis/bahikhata/internal/pricing/domain"
	pricingservice "github.com/smallbiznis/bahikhata/internal/pricing/service"
	taxratedomain "github.com/smallbiznis/bahikhata/internal/taxrate/domain"
)

type lineRequest struct {
	ID              string  `json:"id"`
	ItemID          string  `json:"item_id"`
	Name            string  `json:"name"`
	HSNCode         string  `json:"hsn_code"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	PricingMode     string  `json:"pricing_mode"`
	DiscountPercent float64 `json:"discount_percent"`
	DiscountAmount  float64 `json:"discount_amount"`
	TaxRateID       string  `json:"tax_rate_id"`
	TaxRateLabel    string  `json:"tax_rate_label"`
	TaxPercent      float64 `json:"tax_percent"`
}

type previewRequest struct {
	HeaderMode string        `json:"header_mode"`
	PaidAmount float64       `json:"paid_amount"`
	FullyPaid  bool          `json:"fully_paid"`
	Lines      []lineRequest `json:"lines"`
}

type previewResponse struct {
	Lines         []pricingdomain.LineItem   `json:"lines"`
	Totals        any                        `json:"totals"`
	TaxSummary    []pricingdomain.SummaryRow `json:"tax_summary"`
	AmountInWords string                     `json:"amount_in_words"`
}

// PricingPreview evaluates a draft document without persisting
// anything: the per-keystroke recompute endpoint for the editor.
func (s *Server) PricingPreview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	table, err := s.pricingTable(c)
	if err != nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	lines := toPricingLines(req.Lines, table)
	mode := headerMode(req.HeaderMode)
	lines = s.engine.OnHeaderModeToggle(lines, mode)

	paid := req.PaidAmount
	totals := documentservice.ComputeTotals(lines, paid)
	if req.FullyPaid {
		paid = documentservice.ApplyFullyPaid(true, totals.Subtotal)
		totals = documentservice.ComputeTotals(lines, paid)
	}

	s.metrics.PricingPreviews.Inc()

	c.JSON(http.StatusOK, gin.H{"data": previewResponse{
		Lines:         lines,
		Totals:        totals,
		TaxSummary:    pricingservice.SummaryRows(pricingservice.Summarize(lines)),
		AmountInWords: words.AmountInWords(totals.Subtotal),
	}})
}

type selectItemRequest struct {
	ItemID     string      `json:"item_id"`
	HeaderMode string      `json:"header_mode"`
	Line       lineRequest `json:"line"`
}

// SelectItem populates a grid line from a stored catalog item: the
// quantity resets to 1 and the item's price, pricing mode, tax rate
// and configured discount are seeded onto the line.
func (s *Server) SelectItem(c *gin.Context) {
	var req selectItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id, err := snowflake.ParseString(strings.TrimSpace(req.ItemID))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	item, err := s.catalogRepo.FindByID(c.Request.Context(), s.db, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if item == nil {
		AbortWithError(c, catalogdomain.ErrNotFound)
		return
	}

	table, err := s.pricingTable(c)
	if err != nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	lines := toPricingLines([]lineRequest{req.Line}, table)
	line := s.engine.SelectCatalogItem(lines[0], item.ToSelection(), headerMode(req.HeaderMode), table)

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"line": line}})
}

func (s *Server) pricingTable(c *gin.Context) ([]pricingdomain.TaxRate, error) {
	rates, err := s.taxRateRepo.List(c.Request.Context(), s.db)
	if err != nil {
		return nil, err
	}
	return taxratedomain.PricingTable(rates), nil
}

func toPricingLines(in []lineRequest, table []pricingdomain.TaxRate) []pricingdomain.LineItem {
	lines := make([]pricingdomain.LineItem, len(in))
	for i, l := range in {
		mode := pricingdomain.PricingMode(l.PricingMode)
		if mode != pricingdomain.PricingModeInclusive {
			mode = pricingdomain.PricingModeExclusive
		}
		lines[i] = pricingdomain.LineItem{
			ID:              l.ID,
			ItemID:          l.ItemID,
			Name:            l.Name,
			HSNCode:         l.HSNCode,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			PricingMode:     mode,
			DiscountPercent: l.DiscountPercent,
			DiscountAmount:  l.DiscountAmount,
			TaxRate:         pricingdomain.ResolveTaxRate(table, l.TaxRateID, l.TaxRateLabel, l.TaxPercent),
		}
		if l.TaxRateID == "" && l.TaxRateLabel == "" && l.TaxPercent == 0 {
			lines[i].TaxRate = nil
		}
	}
	return lines
}

func headerMode(raw string) pricingdomain.HeaderMode {
	if raw == string(pricingdomain.HeaderModeWithTax) {
		return pricingdomain.HeaderModeWithTax
	}
	return pricingdomain.HeaderModeWithoutTax
}
