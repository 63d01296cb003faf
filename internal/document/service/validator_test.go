package service

import (
	"testing"

	documentdomain "github.com/smallbiznis/bahikhata/internal/document/domain"
	pricingdomain "github.com/smallbiznis/bahikhata/internal/pricing/domain"
	"github.com/stretchr/testify/assert"
)

func validLine() pricingdomain.LineItem {
	return pricingdomain.LineItem{Name: "Widget", Quantity: 1, UnitPrice: 10}
}

func TestValidateDocument_MissingParty(t *testing.T) {
	// Party check wins even with perfectly good lines.
	err := ValidateDocument("  ", []pricingdomain.LineItem{validLine()})
	assert.ErrorIs(t, err, documentdomain.ErrMissingParty)
}

func TestValidateDocument_NoValidLines(t *testing.T) {
	zeroQty := validLine()
	zeroQty.Quantity = 0

	err := ValidateDocument("Sharma Traders", []pricingdomain.LineItem{zeroQty, {}})
	assert.ErrorIs(t, err, documentdomain.ErrNoValidLines)

	err = ValidateDocument("Sharma Traders", nil)
	assert.ErrorIs(t, err, documentdomain.ErrNoValidLines)
}

func TestValidateDocument_InvalidLinePointsAtRow(t *testing.T) {
	bad := validLine()
	bad.Quantity = 0

	err := ValidateDocument("Sharma Traders", []pricingdomain.LineItem{validLine(), bad})

	var invalid *documentdomain.InvalidLineError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, 2, invalid.Row)
	assert.Equal(t, "quantity", invalid.Field)

	bad.Quantity = 1
	bad.UnitPrice = 0
	err = ValidateDocument("Sharma Traders", []pricingdomain.LineItem{validLine(), bad})
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, "price", invalid.Field)
}

func TestValidateDocument_EmptyRowsDoNotFail(t *testing.T) {
	err := ValidateDocument("Sharma Traders", []pricingdomain.LineItem{validLine(), {}})
	assert.NoError(t, err)
}
