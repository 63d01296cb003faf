// Package domain contains persistence models for GST sales documents.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	pricingdomain "github.com/smallbiznis/bahikhata/internal/pricing/domain"
)

// DocumentType distinguishes the three sales-document kinds sharing the
// same pricing pipeline.
type DocumentType string

const (
	DocumentTypeInvoice     DocumentType = "INVOICE"
	DocumentTypeProforma    DocumentType = "PROFORMA"
	DocumentTypeSalesReturn DocumentType = "SALES_RETURN"
)

// Valid reports whether t is one of the known document types.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeInvoice, DocumentTypeProforma, DocumentTypeSalesReturn:
		return true
	}
	return false
}

// Document is a saved sales document with its computed totals.
type Document struct {
	ID         snowflake.ID             `gorm:"primaryKey" json:"id"`
	Type       DocumentType             `gorm:"type:text;not null;uniqueIndex:ux_document_type_number,priority:1" json:"type"`
	Number     string                   `gorm:"type:text;not null;uniqueIndex:ux_document_type_number,priority:2" json:"number"`
	PartyID    *snowflake.ID            `gorm:"index" json:"party_id,omitempty"`
	PartyName  string                   `gorm:"type:text;not null" json:"party_name"`
	HeaderMode pricingdomain.HeaderMode `gorm:"type:text;not null" json:"header_mode"`

	Subtotal      float64 `gorm:"not null;default:0" json:"subtotal"`
	TotalTax      float64 `gorm:"not null;default:0" json:"total_tax"`
	TaxableAmount float64 `gorm:"not null;default:0" json:"taxable_amount"`
	PaidAmount    float64 `gorm:"not null;default:0" json:"paid_amount"`
	Balance       float64 `gorm:"not null;default:0" json:"balance"`
	FullyPaid     bool    `gorm:"not null;default:false" json:"fully_paid"`
	AmountWords   string  `gorm:"type:text;not null" json:"amount_words"`

	Lines []DocumentLine `gorm:"foreignKey:DocumentID" json:"lines"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Document) TableName() string { return "documents" }

// DocumentLine is one stored grid row. The unit price is the canonical
// price in the line's own pricing mode; display prices are re-derived
// on load from the document's header mode.
type DocumentLine struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	DocumentID snowflake.ID  `gorm:"not null;index" json:"document_id"`
	Position   int           `gorm:"not null" json:"position"`
	ItemID     *snowflake.ID `gorm:"index" json:"item_id,omitempty"`

	Name    string `gorm:"type:text;not null" json:"name"`
	HSNCode string `gorm:"type:text" json:"hsn_code"`

	Quantity        float64                   `gorm:"not null" json:"quantity"`
	UnitPrice       float64                   `gorm:"not null" json:"unit_price"`
	PricingMode     pricingdomain.PricingMode `gorm:"type:text;not null" json:"pricing_mode"`
	DiscountPercent float64                   `gorm:"not null;default:0" json:"discount_percent"`
	DiscountAmount  float64                   `gorm:"not null;default:0" json:"discount_amount"`

	TaxRateID    string  `gorm:"type:text" json:"tax_rate_id"`
	TaxRateLabel string  `gorm:"type:text" json:"tax_rate_label"`
	TaxPercent   float64 `gorm:"not null;default:0" json:"tax_percent"`

	TaxableValue float64 `gorm:"not null;default:0" json:"taxable_value"`
	TaxAmount    float64 `gorm:"not null;default:0" json:"tax_amount"`
	LineTotal    float64 `gorm:"not null;default:0" json:"line_total"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (DocumentLine) TableName() string { return "document_lines" }

// DocumentSequence tracks the last assigned number per document type so
// the sequencer has a durable input.
type DocumentSequence struct {
	Type      DocumentType `gorm:"type:text;primaryKey" json:"type"`
	Current   string       `gorm:"type:text;not null" json:"current"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (DocumentSequence) TableName() string { return "document_sequences" }

// Totals is the rolled-up view of a document's valid lines.
type Totals struct {
	Subtotal      float64 `json:"subtotal"`
	TotalTax      float64 `json:"total_tax"`
	TaxableAmount float64 `json:"taxable_amount"`
	Balance       float64 `json:"balance"`
}
