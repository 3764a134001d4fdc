package shelfscan

import (
	"sort"
	"strings"
)

// Barcode is one entry of the reconciled per-image result set.
type Barcode struct {
	Symbology Symbology

	// Value is the display value: the raw decoded text, except for DataBar
	// symbols where a "01"+GTIN-14 form is derived when possible.
	Value string

	// Candidates are the prioritized canonical lookup keys for Value.
	Candidates []string

	Quad Quad

	DetectionTag string

	// Uncertain marks detections that required escalation tiers and should
	// be flagged for human review.
	Uncertain bool
}

// difficultyIndicators mark detection tags whose tier needed aggressive
// fallback strategies.
var difficultyIndicators = []string{
	"double", "Double", "sharp", "huge", "upscale",
	"enhanced", "fallback", "grid", "crop", "rotation",
}

// Reconcile turns all detections surviving one image's cascade into the
// single authoritative result set. Steps, in order: exact duplicates are
// dropped; UPC-A/EAN-13/EAN-8 reads with invalid checksums are dropped
// (UPC-E is exempt); only the first-seen entry per UPC/EAN symbology is
// kept; DataBar entries are dropped when a Code 128 is present; UPC/EAN
// entries are dropped when a Code 128 is present; geometrically stacked
// duplicates collapse to the topmost quad.
func Reconcile(syms []DecodedSymbol) []Barcode {
	syms = dedupeAndFilter(syms)

	var hasCode128, hasDataBar, hasUPCEAN bool
	for _, s := range syms {
		switch {
		case s.Symbology == Code128:
			hasCode128 = true
		case s.Symbology.IsDataBar():
			hasDataBar = true
		case s.Symbology.IsUPCEAN():
			hasUPCEAN = true
		}
	}
	// Code 128 typically encodes the richer payload; prefer it over both
	// DataBar and plain UPC/EAN reads of the same label.
	if hasCode128 && hasDataBar {
		syms = discard(syms, func(s DecodedSymbol) bool { return s.Symbology.IsDataBar() })
	}
	if hasCode128 && hasUPCEAN {
		syms = discard(syms, func(s DecodedSymbol) bool { return s.Symbology.IsUPCEAN() })
	}

	syms = collapseStacked(syms)

	out := make([]Barcode, 0, len(syms))
	for _, s := range syms {
		out = append(out, Barcode{
			Symbology:    s.Symbology,
			Value:        displayValue(s),
			Candidates:   Candidates(s.Text, s.Symbology),
			Quad:         s.Quad,
			DetectionTag: s.DetectionTag,
			Uncertain:    isDifficult(s.DetectionTag),
		})
	}
	return out
}

func dedupeAndFilter(syms []DecodedSymbol) []DecodedSymbol {
	type key struct {
		sym  Symbology
		text string
	}
	seen := map[key]bool{}
	seenFamily := map[Symbology]bool{}
	var unique []DecodedSymbol
	for _, s := range syms {
		k := key{s.Symbology, s.Text}
		if seen[k] {
			continue
		}
		if !validUPCEANChecksum(s.Symbology, s.Text) {
			continue
		}
		// One canonical detection per linear-code family: the first
		// successful tier's read is authoritative, later reads of the same
		// symbology are noise.
		if s.Symbology.IsUPCEAN() {
			if seenFamily[s.Symbology] {
				continue
			}
			seenFamily[s.Symbology] = true
		}
		seen[k] = true
		unique = append(unique, s)
	}
	return unique
}

// validUPCEANChecksum gates EAN-13, EAN-8 and UPC-A reads on their check
// digit. UPC-E and every other symbology pass through.
func validUPCEANChecksum(sym Symbology, value string) bool {
	switch sym {
	case EAN13:
		return checksumEAN13(value)
	case EAN8:
		return checksumEAN8(value)
	case UPCA:
		return checksumUPCA(value)
	}
	return true
}

func checksumEAN13(s string) bool {
	if !allDigits(s) || len(s) != 13 {
		return false
	}
	sumOdd, sumEven := 0, 0
	for i := 0; i < 12; i++ {
		if i%2 == 0 {
			sumOdd += int(s[i] - '0')
		} else {
			sumEven += int(s[i] - '0')
		}
	}
	check := (10 - (sumOdd+3*sumEven)%10) % 10
	return check == int(s[12]-'0')
}

func checksumEAN8(s string) bool {
	if !allDigits(s) || len(s) != 8 {
		return false
	}
	sumOdd, sumEven := 0, 0
	for i := 0; i < 7; i++ {
		if i%2 == 0 {
			sumOdd += int(s[i] - '0')
		} else {
			sumEven += int(s[i] - '0')
		}
	}
	check := (10 - (3*sumOdd+sumEven)%10) % 10
	return check == int(s[7]-'0')
}

func checksumUPCA(s string) bool {
	if !allDigits(s) || len(s) != 12 {
		return false
	}
	sumOdd, sumEven := 0, 0
	for i := 0; i < 11; i++ {
		if i%2 == 0 {
			sumOdd += int(s[i] - '0')
		} else {
			sumEven += int(s[i] - '0')
		}
	}
	check := (10 - (3*sumOdd+sumEven)%10) % 10
	return check == int(s[11]-'0')
}

// collapseStacked drops the lower member of any pair of detections whose
// quads are stacked: horizontal overlap ratio >= 0.6 and vertical overlap
// ratio <= 0.1 (intersection length over the shorter segment). Detections
// without a position are never dropped.
func collapseStacked(syms []DecodedSymbol) []DecodedSymbol {
	type box struct {
		idx            int
		x1, y1, x2, y2 float64
		ok             bool
	}
	boxes := make([]box, len(syms))
	for i, s := range syms {
		x1, y1, x2, y2, ok := s.Quad.Bounds()
		boxes[i] = box{idx: i, x1: x1, y1: y1, x2: x2, y2: y2, ok: ok}
	}
	// Top edge ascending; position-unknown entries sort last and are never
	// considered for dropping.
	order := make([]box, len(boxes))
	copy(order, boxes)
	sort.SliceStable(order, func(a, b int) bool {
		ya, yb := order[a].y1, order[b].y1
		if !order[a].ok {
			ya = 1e9
		}
		if !order[b].ok {
			yb = 1e9
		}
		return ya < yb
	})

	dropped := map[int]bool{}
	for k, bi := range order {
		if !bi.ok || dropped[bi.idx] {
			continue
		}
		for _, bj := range order[k+1:] {
			if !bj.ok || dropped[bj.idx] {
				continue
			}
			hOv := overlapRatio1D(bi.x1, bi.x2, bj.x1, bj.x2)
			vOv := overlapRatio1D(bi.y1, bi.y2, bj.y1, bj.y2)
			if hOv >= 0.6 && vOv <= 0.1 {
				if bi.y1 <= bj.y1 {
					dropped[bj.idx] = true
				} else {
					dropped[bi.idx] = true
					break
				}
			}
		}
	}

	out := syms[:0:0]
	for i, s := range syms {
		if !dropped[i] {
			out = append(out, s)
		}
	}
	return out
}

// overlapRatio1D returns intersection length divided by the shorter segment
// length, in [0,1].
func overlapRatio1D(a1, a2, b1, b2 float64) float64 {
	left := a1
	if b1 > left {
		left = b1
	}
	right := a2
	if b2 < right {
		right = b2
	}
	inter := right - left
	if inter < 0 {
		inter = 0
	}
	la, lb := a2-a1, b2-b1
	if la < 0 {
		la = 0
	}
	if lb < 0 {
		lb = 0
	}
	minLen := la
	if lb < minLen {
		minLen = lb
	}
	if minLen < 1 {
		minLen = 1
	}
	return inter / minLen
}

// displayValue derives the display form of a detection. Only DataBar values
// are normalized, to their "01"+GTIN-14 form; everything else stays raw.
func displayValue(s DecodedSymbol) string {
	if !s.Symbology.IsDataBar() {
		return s.Text
	}
	// A full AI element string is kept as-is.
	if strings.HasPrefix(s.Text, "(") {
		return s.Text
	}
	gtin := ExtractGTIN(s.Text)
	if gtin == "" {
		if run := leadingDigits(s.Text); len(run) >= 14 {
			gtin = run[:14]
		}
	}
	if len(gtin) == 14 {
		return "01" + gtin
	}
	return s.Text
}

func isDifficult(tag string) bool {
	for _, ind := range difficultyIndicators {
		if strings.Contains(tag, ind) {
			return true
		}
	}
	return false
}

func discard(syms []DecodedSymbol, drop func(DecodedSymbol) bool) []DecodedSymbol {
	out := syms[:0:0]
	for _, s := range syms {
		if !drop(s) {
			out = append(out, s)
		}
	}
	return out
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
