package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/bahikhata/internal/catalog/domain"
	pricingdomain "github.com/smallbiznis/bahikhata/internal/pricing/domain"
)

type createItemRequest struct {
	Name          string  `json:"name"`
	SalePrice     float64 `json:"sale_price"`
	SalePriceMode string  `json:"sale_price_mode"`
	PurchasePrice float64 `json:"purchase_price"`
	TaxRateID     string  `json:"tax_rate_id"`
	TaxRateLabel  string  `json:"tax_rate_label"`
	TaxPercent    float64 `json:"tax_percent"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
	HSNCode       string  `json:"hsn_code"`
}

func (s *Server) CreateItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	mode := pricingdomain.PricingMode(req.SalePriceMode)
	if mode != pricingdomain.PricingModeInclusive {
		mode = pricingdomain.PricingModeExclusive
	}
	discountType := pricingdomain.DiscountType(req.DiscountType)
	if discountType != pricingdomain.DiscountTypeAmount {
		discountType = pricingdomain.DiscountTypePercent
	}

	now := time.Now().UTC()
	item := catalogdomain.Item{
		ID:            s.genID.Generate(),
		Name:          strings.TrimSpace(req.Name),
		SalePrice:     req.SalePrice,
		SalePriceMode: mode,
		PurchasePrice: req.PurchasePrice,
		TaxRateLabel:  req.TaxRateLabel,
		TaxPercent:    req.TaxPercent,
		DiscountType:  discountType,
		DiscountValue: req.DiscountValue,
		HSNCode:       req.HSNCode,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if raw := strings.TrimSpace(req.TaxRateID); raw != "" {
		if id, err := snowflake.ParseString(raw); err == nil {
			item.TaxRateID = &id
		}
	}

	if err := s.catalogRepo.Insert(c.Request.Context(), s.db, &item); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) ListItems(c *gin.Context) {
	items, err := s.catalogRepo.List(c.Request.Context(), s.db, catalogdomain.ListItemFilter{
		Name: strings.TrimSpace(c.Query("name")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) GetItem(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
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
	c.JSON(http.StatusOK, gin.H{"data": item})
}
