package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bahikhata/internal/config"
	documentdomain "github.com/smallbiznis/bahikhata/internal/document/domain"
	"github.com/smallbiznis/bahikhata/internal/document/format"
	"github.com/smallbiznis/bahikhata/internal/document/words"
	pricingdomain "github.com/smallbiznis/bahikhata/internal/pricing/domain"
	pricingservice "github.com/smallbiznis/bahikhata/internal/pricing/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      documentdomain.Repository
	engine    *pricingservice.Engine
	numbering *config.NumberingHolder
}

type ServiceParam struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      documentdomain.Repository
	Engine    *pricingservice.Engine
	Numbering *config.NumberingHolder
}

func NewService(p ServiceParam) documentdomain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("document.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		engine:    p.Engine,
		numbering: p.Numbering,
	}
}

// Save validates the document, recomputes every line through the
// pricing engine, rolls up totals and persists the document together
// with its sequence advance in one transaction. Validation failure
// leaves nothing written so the editor keeps its state for correction.
func (s *Service) Save(ctx context.Context, req documentdomain.SaveDocumentRequest) (documentdomain.SaveDocumentResponse, error) {
	if !req.Type.Valid() {
		return documentdomain.SaveDocumentResponse{}, documentdomain.ErrInvalidType
	}
	if err := ValidateDocument(req.PartyName, req.Lines); err != nil {
		return documentdomain.SaveDocumentResponse{}, err
	}

	lines := s.engine.OnHeaderModeToggle(req.Lines, req.HeaderMode)

	totals := ComputeTotals(lines, req.PaidAmount)
	if req.FullyPaid {
		req.PaidAmount = ApplyFullyPaid(true, totals.Subtotal)
		totals = ComputeTotals(lines, req.PaidAmount)
	}

	number := strings.TrimSpace(req.Number)
	if number == "" {
		next, err := s.NextNumber(ctx, req.Type)
		if err != nil {
			return documentdomain.SaveDocumentResponse{}, err
		}
		number = next
	}

	now := time.Now().UTC()
	doc := documentdomain.Document{
		ID:            s.genID.Generate(),
		Type:          req.Type,
		Number:        number,
		PartyID:       parseID(req.PartyID),
		PartyName:     strings.TrimSpace(req.PartyName),
		HeaderMode:    req.HeaderMode,
		Subtotal:      totals.Subtotal,
		TotalTax:      totals.TotalTax,
		TaxableAmount: totals.TaxableAmount,
		PaidAmount:    req.PaidAmount,
		Balance:       totals.Balance,
		FullyPaid:     req.FullyPaid,
		AmountWords:   words.AmountInWords(totals.Subtotal),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	position := 0
	for _, line := range lines {
		if !line.IsValid() {
			continue
		}
		position++
		doc.Lines = append(doc.Lines, s.toStoredLine(doc.ID, position, line, now))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &doc); err != nil {
			return err
		}
		return s.repo.UpsertSequence(ctx, tx, &documentdomain.DocumentSequence{
			Type:      req.Type,
			Current:   doc.Number,
			UpdatedAt: now,
		})
	})
	if err != nil {
		return documentdomain.SaveDocumentResponse{}, err
	}

	s.log.Info("document saved",
		zap.String("type", string(doc.Type)),
		zap.String("number", doc.Number),
		zap.Int("lines", len(doc.Lines)),
	)

	return documentdomain.SaveDocumentResponse{
		Document:   doc,
		NextNumber: format.NextNumber(doc.Number, s.numbering.SeedFor(string(req.Type))),
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (documentdomain.Document, error) {
	docID := parseID(id)
	if docID == nil {
		return documentdomain.Document{}, documentdomain.ErrNotFound
	}
	doc, err := s.repo.FindByID(ctx, s.db, *docID)
	if err != nil {
		return documentdomain.Document{}, err
	}
	if doc == nil {
		return documentdomain.Document{}, documentdomain.ErrNotFound
	}
	return *doc, nil
}

func (s *Service) List(ctx context.Context, req documentdomain.ListDocumentRequest) ([]documentdomain.Document, error) {
	if req.Type != "" && !req.Type.Valid() {
		return nil, documentdomain.ErrInvalidType
	}
	return s.repo.List(ctx, s.db, req.Type)
}

// NextNumber returns the number the next saved document of this type
// will receive: the stored sequence advanced by one, or the configured
// seed when nothing has been saved yet.
func (s *Service) NextNumber(ctx context.Context, docType documentdomain.DocumentType) (string, error) {
	if !docType.Valid() {
		return "", documentdomain.ErrInvalidType
	}
	seed := s.numbering.SeedFor(string(docType))

	seq, err := s.repo.GetSequence(ctx, s.db, docType)
	if err != nil {
		return "", err
	}
	if seq == nil {
		return seed, nil
	}
	return format.NextNumber(seq.Current, seed), nil
}

func (s *Service) toStoredLine(docID snowflake.ID, position int, line pricingdomain.LineItem, now time.Time) documentdomain.DocumentLine {
	stored := documentdomain.DocumentLine{
		ID:              s.genID.Generate(),
		DocumentID:      docID,
		Position:        position,
		ItemID:          parseID(line.ItemID),
		Name:            strings.TrimSpace(line.Name),
		HSNCode:         line.HSNCode,
		Quantity:        line.Quantity,
		UnitPrice:       line.UnitPrice,
		PricingMode:     line.PricingMode,
		DiscountPercent: line.DiscountPercent,
		DiscountAmount:  line.DiscountAmount,
		TaxableValue:    line.TaxableValue,
		TaxAmount:       line.TaxAmount,
		LineTotal:       line.LineTotal,
		CreatedAt:       now,
	}
	if line.TaxRate != nil {
		stored.TaxRateID = line.TaxRate.ID
		stored.TaxRateLabel = line.TaxRate.Label
		stored.TaxPercent = line.TaxRate.RatePercent
	}
	return stored
}

func parseID(raw string) *snowflake.ID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return nil
	}
	return &id
}
