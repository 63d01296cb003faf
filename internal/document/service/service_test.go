package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/bahikhata/internal/config"
	documentdomain "github.com/smallbiznis/bahikhata/internal/document/domain"
	"github.com/smallbiznis/bahikhata/internal/document/repository"
	pricingdomain "github.com/smallbiznis/bahikhata/internal/pricing/domain"
	pricingservice "github.com/smallbiznis/bahikhata/internal/pricing/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (documentdomain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&documentdomain.Document{},
		&documentdomain.DocumentLine{},
		&documentdomain.DocumentSequence{},
	)
	assert.NoError(t, err)

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	numbering, err := config.NewNumberingHolder()
	assert.NoError(t, err)

	svc := NewService(ServiceParam{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      repository.Provide(),
		Engine:    pricingservice.NewEngine(pricingservice.EngineParam{Log: zap.NewNop()}),
		Numbering: numbering,
	})
	return svc, db
}

func saveRequest() documentdomain.SaveDocumentRequest {
	return documentdomain.SaveDocumentRequest{
		Type:       documentdomain.DocumentTypeInvoice,
		PartyName:  "Sharma Traders",
		HeaderMode: pricingdomain.HeaderModeWithoutTax,
		Lines: []pricingdomain.LineItem{
			{
				Name:            "Steel Pipe",
				Quantity:        2,
				UnitPrice:       100,
				PricingMode:     pricingdomain.PricingModeExclusive,
				DiscountPercent: 10,
				TaxRate:         &pricingdomain.TaxRate{ID: "r18", Label: "GST@18%", RatePercent: 18},
			},
			{}, // trailing empty grid row
		},
	}
}

func TestSave_PersistsDocumentAndAdvancesSequence(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Save(ctx, saveRequest())
	assert.NoError(t, err)

	assert.Equal(t, "INV-00001", resp.Document.Number)
	assert.Equal(t, "INV-00002", resp.NextNumber)
	assert.Equal(t, 212.40, resp.Document.Subtotal)
	assert.Equal(t, 32.40, resp.Document.TotalTax)
	assert.Equal(t, 180.0, resp.Document.TaxableAmount)
	assert.Equal(t, 212.40, resp.Document.Balance)
	assert.Equal(t, "Two Hundred Twelve Rupees and Forty Paisa Only", resp.Document.AmountWords)
	assert.Len(t, resp.Document.Lines, 1) // empty row dropped

	var seq documentdomain.DocumentSequence
	assert.NoError(t, db.First(&seq, "type = ?", documentdomain.DocumentTypeInvoice).Error)
	assert.Equal(t, "INV-00001", seq.Current)

	// Second save without an explicit number picks up the sequence.
	resp2, err := svc.Save(ctx, saveRequest())
	assert.NoError(t, err)
	assert.Equal(t, "INV-00002", resp2.Document.Number)
	assert.Equal(t, "INV-00003", resp2.NextNumber)
}

func TestSave_StaleDerivedFieldsAreRecomputed(t *testing.T) {
	svc, _ := newTestService(t)

	req := saveRequest()
	// A stale caller-side cache must never reach storage.
	req.Lines[0].TaxAmount = 999
	req.Lines[0].LineTotal = 999

	resp, err := svc.Save(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, 32.40, resp.Document.Lines[0].TaxAmount)
	assert.Equal(t, 212.40, resp.Document.Lines[0].LineTotal)
}

func TestSave_FullyPaidZeroesBalance(t *testing.T) {
	svc, _ := newTestService(t)

	req := saveRequest()
	req.FullyPaid = true

	resp, err := svc.Save(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, resp.Document.Subtotal, resp.Document.PaidAmount)
	assert.Equal(t, 0.0, resp.Document.Balance)
}

func TestSave_ValidationFailureWritesNothing(t *testing.T) {
	svc, db := newTestService(t)

	req := saveRequest()
	req.PartyName = ""

	_, err := svc.Save(context.Background(), req)
	assert.ErrorIs(t, err, documentdomain.ErrMissingParty)

	var count int64
	assert.NoError(t, db.Model(&documentdomain.Document{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	var seqCount int64
	assert.NoError(t, db.Model(&documentdomain.DocumentSequence{}).Count(&seqCount).Error)
	assert.Equal(t, int64(0), seqCount)
}

func TestNextNumber_SeedsPerDocumentType(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	next, err := svc.NextNumber(ctx, documentdomain.DocumentTypeSalesReturn)
	assert.NoError(t, err)
	assert.Equal(t, "RS-00001", next)

	next, err = svc.NextNumber(ctx, documentdomain.DocumentTypeProforma)
	assert.NoError(t, err)
	assert.Equal(t, "PI-00001", next)

	_, err = svc.NextNumber(ctx, documentdomain.DocumentType("BOGUS"))
	assert.ErrorIs(t, err, documentdomain.ErrInvalidType)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetByID(context.Background(), "123456789")
	assert.ErrorIs(t, err, documentdomain.ErrNotFound)

	_, err = svc.GetByID(context.Background(), "not-a-number")
	assert.ErrorIs(t, err, documentdomain.ErrNotFound)
}
