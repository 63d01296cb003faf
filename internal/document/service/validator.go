package service

import (
	"strings"

	documentdomain "github.com/smallbiznis/bahikhata/internal/document/domain"
	pricingdomain "github.com/smallbiznis/bahikhata/internal/pricing/domain"
)

// ValidateDocument runs the pre-save completeness checks and returns
// the first failure found. The caller surfaces exactly one message, so
// failures are not accumulated.
func ValidateDocument(partyName string, lines []pricingdomain.LineItem) error {
	if strings.TrimSpace(partyName) == "" {
		return documentdomain.ErrMissingParty
	}

	valid := 0
	for _, line := range lines {
		if line.IsValid() && line.Quantity > 0 && line.UnitPrice > 0 {
			valid++
		}
	}
	if valid == 0 {
		return documentdomain.ErrNoValidLines
	}

	for i, line := range lines {
		if !line.IsValid() {
			continue
		}
		if line.Quantity <= 0 {
			return &documentdomain.InvalidLineError{Row: i + 1, Field: "quantity"}
		}
		if line.UnitPrice <= 0 {
			return &documentdomain.InvalidLineError{Row: i + 1, Field: "price"}
		}
	}
	return nil
}
