package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	documentdomain "github.com/smallbiznis/bahikhata/internal/document/domain"
	pricingdomain "github.com/smallbiznis/bahikhata/internal/pricing/domain"
	pricingservice "github.com/smallbiznis/bahikhata/internal/pricing/service"
)

type saveDocumentRequest struct {
	Type       string        `json:"type"`
	Number     string        `json:"number"`
	PartyID    string        `json:"party_id"`
	PartyName  string        `json:"party_name"`
	HeaderMode string        `json:"header_mode"`
	PaidAmount float64       `json:"paid_amount"`
	FullyPaid  bool          `json:"fully_paid"`
	Lines      []lineRequest `json:"lines"`
}

func (s *Server) SaveDocument(c *gin.Context) {
	var req saveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	table, err := s.pricingTable(c)
	if err != nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	resp, err := s.documentSvc.Save(c.Request.Context(), documentdomain.SaveDocumentRequest{
		Type:       documentdomain.DocumentType(strings.ToUpper(strings.TrimSpace(req.Type))),
		Number:     req.Number,
		PartyID:    req.PartyID,
		PartyName:  req.PartyName,
		HeaderMode: headerMode(req.HeaderMode),
		PaidAmount: req.PaidAmount,
		FullyPaid:  req.FullyPaid,
		Lines:      toPricingLines(req.Lines, table),
	})
	if err != nil {
		s.metrics.SaveFailures.WithLabelValues(failureReason(err)).Inc()
		AbortWithError(c, err)
		return
	}

	s.metrics.DocumentsSaved.WithLabelValues(string(resp.Document.Type)).Inc()

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"document":    resp.Document,
		"next_number": resp.NextNumber,
		"tax_summary": storedTaxSummary(resp.Document),
	}})
}

func (s *Server) GetDocument(c *gin.Context) {
	doc, err := s.documentSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// Display prices are re-derived for the stored header mode so the
	// editor can reopen the document exactly as it was saved.
	lines := toPricingFromStored(doc.Lines)
	lines = s.engine.OnHeaderModeToggle(lines, doc.HeaderMode)

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"document":    doc,
		"lines":       lines,
		"tax_summary": storedTaxSummary(doc),
	}})
}

func (s *Server) ListDocuments(c *gin.Context) {
	docType := documentdomain.DocumentType(strings.ToUpper(strings.TrimSpace(c.Query("type"))))
	docs, err := s.documentSvc.List(c.Request.Context(), documentdomain.ListDocumentRequest{Type: docType})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": docs})
}

func (s *Server) NextDocumentNumber(c *gin.Context) {
	docType := documentdomain.DocumentType(strings.ToUpper(strings.TrimSpace(c.Query("type"))))
	next, err := s.documentSvc.NextNumber(c.Request.Context(), docType)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"next_number": next}})
}

func failureReason(err error) string {
	var invalidLine *documentdomain.InvalidLineError
	switch {
	case errors.Is(err, documentdomain.ErrMissingParty):
		return "missing_party"
	case errors.Is(err, documentdomain.ErrNoValidLines):
		return "no_valid_lines"
	case errors.As(err, &invalidLine):
		return "invalid_line"
	default:
		return "persistence"
	}
}

func toPricingFromStored(stored []documentdomain.DocumentLine) []pricingdomain.LineItem {
	lines := make([]pricingdomain.LineItem, len(stored))
	for i, l := range stored {
		line := pricingdomain.LineItem{
			ID:              l.ID.String(),
			Name:            l.Name,
			HSNCode:         l.HSNCode,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			PricingMode:     l.PricingMode,
			DiscountPercent: l.DiscountPercent,
			DiscountAmount:  l.DiscountAmount,
		}
		if l.ItemID != nil {
			line.ItemID = l.ItemID.String()
		}
		if l.TaxRateID != "" || l.TaxRateLabel != "" {
			line.TaxRate = &pricingdomain.TaxRate{
				ID:          l.TaxRateID,
				Label:       l.TaxRateLabel,
				RatePercent: l.TaxPercent,
			}
		}
		lines[i] = line
	}
	return lines
}

func storedTaxSummary(doc documentdomain.Document) []pricingdomain.SummaryRow {
	lines := toPricingFromStored(doc.Lines)
	for i := range lines {
		lines[i].TaxableValue = doc.Lines[i].TaxableValue
		lines[i].TaxAmount = doc.Lines[i].TaxAmount
		lines[i].LineTotal = doc.Lines[i].LineTotal
	}
	return pricingservice.SummaryRows(pricingservice.Summarize(lines))
}
