package domain

import (
	"context"

	pricingdomain "github.com/smallbiznis/bahikhata/internal/pricing/domain"
)

// SaveDocumentRequest carries the editor's state at save time. Lines
// come in as engine line items; the service recomputes every derived
// field before anything is persisted, so a stale caller-side cache can
// never reach storage.
type SaveDocumentRequest struct {
	Type       DocumentType
	PartyID    string
	PartyName  string
	HeaderMode pricingdomain.HeaderMode
	Number     string
	Lines      []pricingdomain.LineItem
	PaidAmount float64
	FullyPaid  bool
}

// SaveDocumentResponse returns the stored document and the prepared
// number for the next document of the same type.
type SaveDocumentResponse struct {
	Document   Document
	NextNumber string
}

type ListDocumentRequest struct {
	Type DocumentType
}

type Service interface {
	Save(ctx context.Context, req SaveDocumentRequest) (SaveDocumentResponse, error)
	GetByID(ctx context.Context, id string) (Document, error)
	List(ctx context.Context, req ListDocumentRequest) ([]Document, error)
	NextNumber(ctx context.Context, docType DocumentType) (string, error)
}
