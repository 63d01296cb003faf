// Package domain contains catalog item models.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	pricingdomain "github.com/smallbiznis/bahikhata/internal/pricing/domain"
	"gorm.io/gorm"
)

var (
	ErrInvalidName  = errors.New("invalid_item_name")
	ErrInvalidPrice = errors.New("invalid_item_price")
	ErrNotFound     = errors.New("item_not_found")
)

// Item is a sellable catalog entry. SalePriceMode records whether the
// sale price already contains GST; it is copied onto a line at
// selection time and never reinterpreted afterwards.
type Item struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Name string       `gorm:"type:text;not null;index" json:"name"`

	SalePrice     float64                   `gorm:"not null" json:"sale_price"`
	SalePriceMode pricingdomain.PricingMode `gorm:"type:text;not null;default:'exclusive'" json:"sale_price_mode"`
	PurchasePrice float64                   `gorm:"not null;default:0" json:"purchase_price"`

	TaxRateID    *snowflake.ID `gorm:"index" json:"tax_rate_id,omitempty"`
	TaxRateLabel string        `gorm:"type:text" json:"tax_rate_label"`
	TaxPercent   float64       `gorm:"not null;default:0" json:"tax_percent"`

	DiscountType  pricingdomain.DiscountType `gorm:"type:text;not null;default:'percent'" json:"discount_type"`
	DiscountValue float64                    `gorm:"not null;default:0" json:"discount_value"`

	HSNCode string `gorm:"type:text" json:"hsn_code"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Item) TableName() string { return "catalog_items" }

func (i *Item) Validate() error {
	if i.Name == "" {
		return ErrInvalidName
	}
	if i.SalePrice < 0 || i.PurchasePrice < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// ToSelection converts the item into the engine's selection input.
func (i Item) ToSelection() pricingdomain.CatalogSelection {
	sel := pricingdomain.CatalogSelection{
		ItemID:        i.ID.String(),
		Name:          i.Name,
		HSNCode:       i.HSNCode,
		SalePrice:     i.SalePrice,
		SalePriceMode: i.SalePriceMode,
		TaxRateLabel:  i.TaxRateLabel,
		TaxPercent:    i.TaxPercent,
		DiscountType:  i.DiscountType,
		DiscountValue: i.DiscountValue,
	}
	if i.TaxRateID != nil {
		sel.TaxRateID = i.TaxRateID.String()
	}
	return sel
}

type ListItemFilter struct {
	Name string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, item *Item) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Item, error)
	List(ctx context.Context, db *gorm.DB, filter ListItemFilter) ([]Item, error)
}
