// Package domain contains the GST rate table model.
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
	ErrInvalidLabel = errors.New("invalid_tax_rate_label")
	ErrInvalidRate  = errors.New("invalid_tax_rate")
)

// GSTRate is one row of the configurable rate table. Whether the rate
// applies as IGST is carried by the label, matching how the rates are
// presented to the operator.
type GSTRate struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Label       string       `gorm:"type:text;not null;uniqueIndex" json:"label"`
	RatePercent float64      `gorm:"not null" json:"rate_percent"`
	Position    int          `gorm:"not null;default:0" json:"position"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (GSTRate) TableName() string { return "gst_rates" }

func (r *GSTRate) Validate() error {
	if r.Label == "" {
		return ErrInvalidLabel
	}
	if r.RatePercent < 0 {
		return ErrInvalidRate
	}
	return nil
}

// ToPricing converts the stored row into the engine's rate value.
func (r GSTRate) ToPricing() pricingdomain.TaxRate {
	return pricingdomain.TaxRate{
		ID:          r.ID.String(),
		Label:       r.Label,
		RatePercent: r.RatePercent,
	}
}

// PricingTable converts an ordered rate list for engine calls.
func PricingTable(rates []GSTRate) []pricingdomain.TaxRate {
	out := make([]pricingdomain.TaxRate, len(rates))
	for i, r := range rates {
		out[i] = r.ToPricing()
	}
	return out
}

type Repository interface {
	List(ctx context.Context, db *gorm.DB) ([]GSTRate, error)
	Insert(ctx context.Context, db *gorm.DB, rate *GSTRate) error
}
