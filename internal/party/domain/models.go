// Package domain contains party (customer/supplier) models. Parties
// are reference data for the document header; the pricing core never
// reads them.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrInvalidName = errors.New("invalid_party_name")
	ErrNotFound    = errors.New("party_not_found")
)

type Party struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	Name            string       `gorm:"type:text;not null;index" json:"name"`
	Phone           string       `gorm:"type:text" json:"phone"`
	BillingAddress  string       `gorm:"type:text" json:"billing_address"`
	ShippingAddress string       `gorm:"type:text" json:"shipping_address"`
	GSTIN           string       `gorm:"type:text" json:"gstin"`
	OpeningBalance  float64      `gorm:"not null;default:0" json:"opening_balance"`
	CreatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Party) TableName() string { return "parties" }

func (p *Party) Validate() error {
	if p.Name == "" {
		return ErrInvalidName
	}
	return nil
}

type ListPartyFilter struct {
	Name  string
	Phone string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, party *Party) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Party, error)
	List(ctx context.Context, db *gorm.DB, filter ListPartyFilter) ([]Party, error)
}
