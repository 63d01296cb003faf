package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextNumber(t *testing.T) {
	cases := []struct {
		current string
		seed    string
		want    string
	}{
		{"RS-00012", "RS-00001", "RS-00013"},
		{"PI-00099", "PI-00001", "PI-00100"},
		{"PI-99999", "PI-00001", "PI-100000"},
		{"RS-99999", "RS-00001", "RS-100000"},
		{"CRED-000123456", "CRED-00001", "CRED-000123457"},
		{"7", "INV-00001", "8"},
		{"", "RS-00001", "RS-00001"},
		{"draft", "PI-00001", "PI-00001"},
		{"rs-00012", "RS-00001", "RS-00001"}, // prefix must be uppercase
		{"RS_00012", "RS-00001", "RS-00001"}, // separator must be a dash
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NextNumber(tc.current, tc.seed), "current=%q", tc.current)
	}
}
