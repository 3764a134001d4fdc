package shelfscan

import "strings"

// Candidates returns the prioritized canonical lookup keys derived from one
// raw decoded string. The first element is always the digit-only projection
// of the raw text; later elements are symbology-specific derived keys, in
// the order a caller should try them. Duplicates are suppressed. An input
// with no digits yields nil.
//
// The function is pure and total: malformed input produces fewer candidates,
// never an error.
func Candidates(value string, sym Symbology) []string {
	raw := digitsOnly(value)
	if raw == "" {
		return nil
	}
	cands := []string{raw}
	add := func(c string) {
		if c == "" {
			return
		}
		for _, have := range cands {
			if have == c {
				return
			}
		}
		cands = append(cands, c)
	}

	// EAN-13 price-embedded: leading "2", 5-digit item code, check digit,
	// 5-digit price, check digit.
	if sym == EAN13 && len(raw) == 13 && raw[0] == '2' {
		itemCode := raw[1:6]
		add(rightPadTo13("002" + itemCode))
		add(raw[:8] + "00000")
		return cands
	}

	if sym == UPCE && len(raw) >= 6 && len(raw) <= 8 {
		if upca, ok := ExpandUPCE(raw); ok {
			add(stripCheckAndPad(upca))
		}
	}

	if sym == EAN8 && len(raw) == 8 {
		add(stripCheckAndPad(raw))
	}

	if sym.IsDataBar() {
		// AI element string: 2-digit AI "01", 13-digit GTIN, one
		// check-digit-adjacent slot, then attributes.
		if strings.HasPrefix(value, "01") || strings.HasPrefix(value, "(01)") {
			if len(raw) >= 17 && strings.HasPrefix(raw, "01") {
				add(raw[2:15])
			}
		}
		switch {
		case len(raw) == 16 && strings.HasPrefix(raw, "01"):
			add(raw[2:])
			add(stripCheckAndPad(raw[2:]))
		case len(raw) == 14:
			add(raw)
			add(stripCheckAndPad(raw))
		}
	}

	if sym == Code128 {
		switch {
		// 9-11 digits: catalogs disagree on whether the trailing digit is
		// a check digit, so offer both readings.
		case len(raw) >= 9 && len(raw) <= 11:
			add(stripCheckAndPad(raw))
			add(leftPadTo13(raw))
		case len(raw) == 12 && raw[0] != '2':
			if ValidCheckDigit(raw) {
				// Valid check digit: treat as UPC-A.
				add(stripCheckAndPad(raw))
			} else {
				// Otherwise treat as an EAN-13 missing its check digit.
				add(leftPadTo13(raw))
			}
		}
	}

	// Any normalized price-embedded value gets a no-price variant.
	if len(raw) == 13 && strings.HasPrefix(raw, "002") {
		add(raw[:8] + "00000")
	}

	if sym == UPCA && len(raw) == 12 {
		add(stripCheckAndPad(raw))
	}

	if sym == EAN13 && len(raw) == 13 && raw[0] != '2' {
		add(stripCheckAndPad(raw))
	}

	return cands
}

// ExpandUPCE expands a 6-8 digit UPC-E value to its 12-digit UPC-A form
// using the standard last-digit-dependent expansion table. ok is false when
// the input cannot be a UPC-E code.
func ExpandUPCE(upce string) (string, bool) {
	digits := digitsOnly(upce)
	switch len(digits) {
	case 6:
		digits = "0" + digits + "0"
	case 7:
		digits = digits + "0"
	case 8:
	default:
		return "", false
	}
	// Number system must be 0 or 1.
	if digits[0] != '0' && digits[0] != '1' {
		return "", false
	}

	numberSystem := digits[0:1]
	manufacturer := digits[1:6]
	lastDigit := digits[6]
	check := digits[7:8]

	var expanded string
	switch lastDigit {
	case '0', '1', '2':
		expanded = numberSystem + manufacturer[:2] + string(lastDigit) + "0000" + manufacturer[2:5] + check
	case '3':
		expanded = numberSystem + manufacturer[:3] + "00000" + manufacturer[3:5] + check
	case '4':
		expanded = numberSystem + manufacturer[:4] + "00000" + manufacturer[4:5] + check
	default: // 5-9
		expanded = numberSystem + manufacturer + "0000" + string(lastDigit) + check
	}
	return expanded, true
}

// CheckDigit computes the GTIN check digit over a digit string: each digit
// is weighted 3 at even indices and 1 at odd indices, and the check is
// (10 - sum%10) % 10. ok is false for empty or non-numeric input.
func CheckDigit(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	sum := 0
	for i := 0; i < len(s); i++ {
		d := s[i]
		if d < '0' || d > '9' {
			return 0, false
		}
		if i%2 == 0 {
			sum += 3 * int(d-'0')
		} else {
			sum += int(d - '0')
		}
	}
	return (10 - sum%10) % 10, true
}

// ValidCheckDigit reports whether the last digit of the value matches the
// check digit computed over the preceding digits.
func ValidCheckDigit(code string) bool {
	if len(code) < 2 {
		return false
	}
	check, ok := CheckDigit(code[:len(code)-1])
	return ok && byte('0'+check) == code[len(code)-1]
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// leftPadTo13 pads a digit string to 13 characters with leading zeros,
// truncating longer values.
func leftPadTo13(s string) string {
	d := digitsOnly(s)
	if len(d) >= 13 {
		return d[:13]
	}
	return strings.Repeat("0", 13-len(d)) + d
}

// rightPadTo13 pads to 13 characters with trailing zeros.
func rightPadTo13(s string) string {
	if len(s) >= 13 {
		return s[:13]
	}
	return s + strings.Repeat("0", 13-len(s))
}

// stripCheckAndPad removes the trailing check digit and left-pads the rest
// to 13 digits.
func stripCheckAndPad(s string) string {
	d := digitsOnly(s)
	if d == "" {
		return ""
	}
	return leftPadTo13(d[:len(d)-1])
}
