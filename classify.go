package shelfscan

import (
	"regexp"
	"strconv"
	"strings"
)

// ItemType is a coarse retail classification derived from a decoded value.
type ItemType int

const (
	Generic ItemType = iota
	Produce
	PriceEmbedded
	ManagerMarkdown
)

// String returns the display name of the item type.
func (t ItemType) String() string {
	switch t {
	case Produce:
		return "Produce"
	case PriceEmbedded:
		return "Price-Embedded"
	case ManagerMarkdown:
		return "Manager Markdown"
	default:
		return "Generic"
	}
}

var (
	pluFourDigit = regexp.MustCompile(`^[3-9]\d{3}$`)
	pluFiveDigit = regexp.MustCompile(`^(83|84|94)\d{3}$`)
)

// Classify identifies the retail item type encoded by a barcode value.
func Classify(value string, sym Symbology) ItemType {
	clean := alphanumOnly(value)

	// DataBar symbols label loose produce.
	if sym == DataBar {
		return Produce
	}

	// Code 128 manager markdowns carry a GS1 AI string starting with "01".
	if sym == Code128 && strings.HasPrefix(clean, "01") && len(clean) > 14 {
		return ManagerMarkdown
	}

	if sym == EAN13 || sym == UPCA {
		if len(clean) == 13 && clean[0] == '2' {
			if cents, err := strconv.Atoi(clean[6:11]); err == nil {
				price := float64(cents) / 100
				if price > 0 && price < 1000 {
					return PriceEmbedded
				}
			}
		}
	}

	if pluFourDigit.MatchString(clean) || pluFiveDigit.MatchString(clean) {
		return Produce
	}

	return Generic
}

// EmbeddedPrice extracts the inline price, in cents, from a price-embedded
// barcode value. ok is false when the value is not price-embedded.
func EmbeddedPrice(value string, sym Symbology) (cents int, ok bool) {
	raw := digitsOnly(value)

	if sym == EAN13 && len(raw) == 13 && raw[0] == '2' {
		n, err := strconv.Atoi(raw[7:12])
		if err != nil {
			return 0, false
		}
		return n, true
	}

	// Normalized price-embedded form ("002" prefix): the last four
	// meaningful digits, excluding the check slot.
	if len(raw) == 13 && strings.HasPrefix(raw, "002") {
		n, err := strconv.Atoi(raw[8:12])
		if err != nil {
			return 0, false
		}
		return n, true
	}

	return 0, false
}

// IsPriceEmbedded reports whether a barcode value encodes a per-unit price
// inline with the item code.
func IsPriceEmbedded(value string, sym Symbology) bool {
	raw := digitsOnly(value)
	if sym == UPCA && strings.HasPrefix(raw, "2") {
		return true
	}
	if sym == EAN13 && len(raw) >= 2 && raw[0] == '2' {
		return true
	}
	return len(raw) == 13 && strings.HasPrefix(raw, "002")
}

func alphanumOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
