// Package format holds pure document-number helpers.
package format

import (
	"fmt"
	"regexp"
	"strconv"
)

var numberRe = regexp.MustCompile(`^([A-Z]+)(-)(\d+)$`)

const minSequenceWidth = 5

// NextNumber returns the document number following current.
//
// "RS-00012" → "RS-00013"; the numeric part is zero-padded to at least
// five digits and grows wider without truncation ("RS-99999" →
// "RS-100000"). A purely numeric current increments as a plain integer.
// Anything else falls back to the caller-supplied seed for the document
// type.
//
// This function is PURE: no side effects, no DB access, fully
// deterministic.
func NextNumber(current, seed string) string {
	if m := numberRe.FindStringSubmatch(current); m != nil {
		n, err := strconv.ParseInt(m[3], 10, 64)
		if err == nil {
			width := len(m[3])
			if width < minSequenceWidth {
				width = minSequenceWidth
			}
			return fmt.Sprintf("%s%s%0*d", m[1], m[2], width, n+1)
		}
	}

	if n, err := strconv.ParseInt(current, 10, 64); err == nil {
		return strconv.FormatInt(n+1, 10)
	}

	return seed
}
