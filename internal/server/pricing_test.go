package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/bahikhata/internal/catalog"
	catalogdomain "github.com/smallbiznis/bahikhata/internal/catalog/domain"
	"github.com/smallbiznis/bahikhata/internal/config"
	documentdomain "github.com/smallbiznis/bahikhata/internal/document/domain"
	documentrepo "github.com/smallbiznis/bahikhata/internal/document/repository"
	documentservice "github.com/smallbiznis/bahikhata/internal/document/service"
	"github.com/smallbiznis/bahikhata/internal/observability/metrics"
	"github.com/smallbiznis/bahikhata/internal/party"
	partydomain "github.com/smallbiznis/bahikhata/internal/party/domain"
	pricingservice "github.com/smallbiznis/bahikhata/internal/pricing/service"
	"github.com/smallbiznis/bahikhata/internal/taxrate"
	taxratedomain "github.com/smallbiznis/bahikhata/internal/taxrate/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) (*Server, *gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&taxratedomain.GSTRate{},
		&catalogdomain.Item{},
		&partydomain.Party{},
		&documentdomain.Document{},
		&documentdomain.DocumentLine{},
		&documentdomain.DocumentSequence{},
	))

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	numbering, err := config.NewNumberingHolder()
	assert.NoError(t, err)

	engine := pricingservice.NewEngine(pricingservice.EngineParam{Log: zap.NewNop()})
	docSvc := documentservice.NewService(documentservice.ServiceParam{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      documentrepo.Provide(),
		Engine:    engine,
		Numbering: numbering,
	})

	m := metrics.New()
	srv := NewServer(ServerParam{
		Config:      config.Config{HTTPAddr: ":0"},
		Log:         zap.NewNop(),
		DB:          db,
		GenID:       node,
		Metrics:     m,
		Engine:      engine,
		DocumentSvc: docSvc,
		CatalogRepo: catalog.ProvideRepository(),
		PartyRepo:   party.ProvideRepository(),
		TaxRateRepo: taxrate.ProvideRepository(),
	})

	e := gin.New()
	e.Use(requestMetrics(m))
	srv.RegisterRoutes(e)
	return srv, e, db
}

func seedRate(t *testing.T, db *gorm.DB, label string, percent float64) taxratedomain.GSTRate {
	t.Helper()
	node, _ := snowflake.NewNode(2)
	rate := taxratedomain.GSTRate{ID: node.Generate(), Label: label, RatePercent: percent}
	assert.NoError(t, db.Create(&rate).Error)
	return rate
}

func postJSON(t *testing.T, e *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestPricingPreview(t *testing.T) {
	_, e, db := newTestServer(t)
	rate := seedRate(t, db, "GST@18%", 18)

	w := postJSON(t, e, "/v1/pricing/preview", gin.H{
		"header_mode": "without_tax",
		"lines": []gin.H{
			{
				"name":             "Steel Pipe",
				"quantity":         2,
				"unit_price":       100,
				"pricing_mode":     "exclusive",
				"discount_percent": 10,
				"tax_rate_id":      rate.ID.String(),
			},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Lines []struct {
				TaxableValue float64 `json:"taxable_value"`
				TaxAmount    float64 `json:"tax_amount"`
				LineTotal    float64 `json:"line_total"`
			} `json:"lines"`
			Totals struct {
				Subtotal float64 `json:"subtotal"`
				TotalTax float64 `json:"total_tax"`
			} `json:"totals"`
			TaxSummary    []map[string]any `json:"tax_summary"`
			AmountInWords string           `json:"amount_in_words"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Len(t, resp.Data.Lines, 1)
	assert.Equal(t, 180.0, resp.Data.Lines[0].TaxableValue)
	assert.Equal(t, 32.40, resp.Data.Lines[0].TaxAmount)
	assert.Equal(t, 212.40, resp.Data.Lines[0].LineTotal)
	assert.Equal(t, 212.40, resp.Data.Totals.Subtotal)
	assert.Equal(t, 32.40, resp.Data.Totals.TotalTax)
	assert.Len(t, resp.Data.TaxSummary, 2) // one bucket + grand total
	assert.Equal(t, "Two Hundred Twelve Rupees and Forty Paisa Only", resp.Data.AmountInWords)
}

func TestSelectItem(t *testing.T) {
	_, e, db := newTestServer(t)
	rate := seedRate(t, db, "GST@18%", 18)

	node, err := snowflake.NewNode(3)
	assert.NoError(t, err)
	rateID := rate.ID
	item := catalogdomain.Item{
		ID:            node.Generate(),
		Name:          "Copper Wire",
		HSNCode:       "8544",
		SalePrice:     250,
		SalePriceMode: "exclusive",
		TaxRateID:     &rateID,
		DiscountType:  "percent",
		DiscountValue: 4,
	}
	assert.NoError(t, db.Create(&item).Error)

	w := postJSON(t, e, "/v1/pricing/select-item", gin.H{
		"item_id":     item.ID.String(),
		"header_mode": "without_tax",
		"line":        gin.H{"id": "row-1"},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Line struct {
				ID              string  `json:"id"`
				ItemID          string  `json:"item_id"`
				Name            string  `json:"name"`
				Quantity        float64 `json:"quantity"`
				UnitPrice       float64 `json:"unit_price"`
				DiscountPercent float64 `json:"discount_percent"`
				DiscountAmount  float64 `json:"discount_amount"`
				TaxAmount       float64 `json:"tax_amount"`
				LineTotal       float64 `json:"line_total"`
			} `json:"line"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "row-1", resp.Data.Line.ID)
	assert.Equal(t, item.ID.String(), resp.Data.Line.ItemID)
	assert.Equal(t, "Copper Wire", resp.Data.Line.Name)
	assert.Equal(t, 1.0, resp.Data.Line.Quantity)
	assert.Equal(t, 250.0, resp.Data.Line.UnitPrice)
	assert.Equal(t, 4.0, resp.Data.Line.DiscountPercent)
	assert.Equal(t, 10.0, resp.Data.Line.DiscountAmount)
	assert.Equal(t, 43.20, resp.Data.Line.TaxAmount) // (250-10)*18%
	assert.Equal(t, 283.20, resp.Data.Line.LineTotal)
}

func TestSelectItem_UnknownItem(t *testing.T) {
	_, e, _ := newTestServer(t)

	w := postJSON(t, e, "/v1/pricing/select-item", gin.H{
		"item_id":     "123456789",
		"header_mode": "without_tax",
		"line":        gin.H{},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveDocument_ValidationFailureIsSingleMessage(t *testing.T) {
	_, e, _ := newTestServer(t)

	w := postJSON(t, e, "/v1/documents", gin.H{
		"type":        "INVOICE",
		"party_name":  "",
		"header_mode": "without_tax",
		"lines": []gin.H{
			{"name": "Steel Pipe", "quantity": 1, "unit_price": 100, "pricing_mode": "exclusive"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_failure", resp.Error.Type)
	assert.Equal(t, "missing_party", resp.Error.Message)
}

func TestSaveAndFetchDocument(t *testing.T) {
	_, e, db := newTestServer(t)
	rate := seedRate(t, db, "IGST@18%", 18)

	w := postJSON(t, e, "/v1/documents", gin.H{
		"type":        "SALES_RETURN",
		"party_name":  "Sharma Traders",
		"header_mode": "with_tax",
		"lines": []gin.H{
			{"name": "Fitting", "quantity": 1, "unit_price": 1000, "pricing_mode": "exclusive", "tax_rate_id": rate.ID.String()},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var saved struct {
		Data struct {
			Document struct {
				ID     snowflake.ID `json:"id"`
				Number string       `json:"number"`
			} `json:"document"`
			NextNumber string `json:"next_number"`
			TaxSummary []struct {
				IGSTAmount float64 `json:"igst_amount"`
			} `json:"tax_summary"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, "RS-00001", saved.Data.Document.Number)
	assert.Equal(t, "RS-00002", saved.Data.NextNumber)
	assert.Len(t, saved.Data.TaxSummary, 2)
	assert.Equal(t, 180.0, saved.Data.TaxSummary[0].IGSTAmount)

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/"+saved.Data.Document.ID.String(), nil)
	get := httptest.NewRecorder()
	e.ServeHTTP(get, req)
	assert.Equal(t, http.StatusOK, get.Code)

	var fetched struct {
		Data struct {
			Lines []struct {
				DisplayPrice float64 `json:"display_price"`
				LineTotal    float64 `json:"line_total"`
			} `json:"lines"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(get.Body.Bytes(), &fetched))
	assert.Len(t, fetched.Data.Lines, 1)
	// Stored under "with tax" display: the exclusive line shows gross.
	assert.Equal(t, 1180.0, fetched.Data.Lines[0].DisplayPrice)
	assert.Equal(t, 1180.0, fetched.Data.Lines[0].LineTotal)
}
