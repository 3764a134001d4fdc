package shelfscan

import "testing"

func quadAt(x1, y1, x2, y2 float64) Quad {
	return Quad{{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x1, Y: y2}}
}

func TestReconcileDropsExactDuplicates(t *testing.T) {
	syms := []DecodedSymbol{
		{Symbology: Code128, Text: "0100012345678905", DetectionTag: "base"},
		{Symbology: Code128, Text: "0100012345678905", DetectionTag: "rotate-90"},
	}
	got := Reconcile(syms)
	if len(got) != 1 {
		t.Fatalf("Reconcile returned %d barcodes, want 1", len(got))
	}
	if got[0].DetectionTag != "base" {
		t.Errorf("kept tag = %q, want the first-seen read", got[0].DetectionTag)
	}
}

func TestReconcileChecksumGate(t *testing.T) {
	syms := []DecodedSymbol{
		{Symbology: EAN13, Text: "4006381333931"}, // valid
		{Symbology: EAN13, Text: "4006381333932"}, // bad check digit
		{Symbology: UPCA, Text: "036000291453"},   // bad check digit
		{Symbology: EAN8, Text: "96385073"},       // bad check digit
		{Symbology: UPCE, Text: "01234565"},       // exempt from the gate
	}
	got := Reconcile(syms)
	if len(got) != 2 {
		t.Fatalf("Reconcile returned %d barcodes, want 2: %+v", len(got), got)
	}
	if got[0].Value != "4006381333931" || got[0].Symbology != EAN13 {
		t.Errorf("got[0] = %q (%v), want valid EAN-13", got[0].Value, got[0].Symbology)
	}
	if got[1].Symbology != UPCE {
		t.Errorf("got[1].Symbology = %v, want UPC-E", got[1].Symbology)
	}
}

func TestReconcileFirstPerSymbology(t *testing.T) {
	syms := []DecodedSymbol{
		{Symbology: EAN13, Text: "4006381333931"},
		{Symbology: EAN13, Text: "9780201379624"}, // also valid, later read of same symbology
	}
	got := Reconcile(syms)
	if len(got) != 1 {
		t.Fatalf("Reconcile returned %d barcodes, want 1", len(got))
	}
	if got[0].Value != "4006381333931" {
		t.Errorf("kept %q, want the first-seen EAN-13", got[0].Value)
	}
}

func TestReconcileCode128Preference(t *testing.T) {
	t.Run("over upcean", func(t *testing.T) {
		syms := []DecodedSymbol{
			{Symbology: EAN13, Text: "4006381333931"},
			{Symbology: Code128, Text: "01040063813339311021XYZ"},
		}
		got := Reconcile(syms)
		if len(got) != 1 || got[0].Symbology != Code128 {
			t.Fatalf("Reconcile = %+v, want only the Code 128 read", got)
		}
	})
	t.Run("over databar", func(t *testing.T) {
		syms := []DecodedSymbol{
			{Symbology: DataBar, Text: "0100012345678905"},
			{Symbology: Code128, Text: "01000123456789051021XYZ"},
		}
		got := Reconcile(syms)
		if len(got) != 1 || got[0].Symbology != Code128 {
			t.Fatalf("Reconcile = %+v, want only the Code 128 read", got)
		}
	})
}

func TestReconcileStackedDuplicates(t *testing.T) {
	// Same horizontal span, disjoint vertical spans: the lower read is a
	// reflection or shelf-edge duplicate of the upper one.
	syms := []DecodedSymbol{
		{Symbology: Code128, Text: "PAYLOAD-LOWER", Quad: quadAt(0, 200, 100, 250)},
		{Symbology: Code128, Text: "PAYLOAD-UPPER", Quad: quadAt(0, 0, 100, 50)},
	}
	got := Reconcile(syms)
	if len(got) != 1 {
		t.Fatalf("Reconcile returned %d barcodes, want 1", len(got))
	}
	if got[0].Value != "PAYLOAD-UPPER" {
		t.Errorf("kept %q, want the topmost read", got[0].Value)
	}
}

func TestReconcileVerticallyOverlappingSurvive(t *testing.T) {
	// Nearly coincident quads overlap vertically: two distinct labels side
	// by side in depth, not a stacked duplicate.
	syms := []DecodedSymbol{
		{Symbology: Code128, Text: "PAYLOAD-A", Quad: quadAt(0, 0, 100, 50)},
		{Symbology: Code128, Text: "PAYLOAD-B", Quad: quadAt(0, 5, 100, 55)},
	}
	got := Reconcile(syms)
	if len(got) != 2 {
		t.Fatalf("Reconcile returned %d barcodes, want 2: %+v", len(got), got)
	}
}

func TestReconcileHorizontallyDisjointSurvive(t *testing.T) {
	syms := []DecodedSymbol{
		{Symbology: Code128, Text: "PAYLOAD-A", Quad: quadAt(0, 0, 100, 50)},
		{Symbology: Code128, Text: "PAYLOAD-B", Quad: quadAt(300, 200, 400, 250)},
	}
	got := Reconcile(syms)
	if len(got) != 2 {
		t.Fatalf("Reconcile returned %d barcodes, want 2: %+v", len(got), got)
	}
}

func TestReconcileUnknownPositionNeverDropped(t *testing.T) {
	syms := []DecodedSymbol{
		{Symbology: Code128, Text: "PAYLOAD-A", Quad: quadAt(0, 0, 100, 50)},
		{Symbology: Code128, Text: "PAYLOAD-B"},
	}
	got := Reconcile(syms)
	if len(got) != 2 {
		t.Fatalf("Reconcile returned %d barcodes, want 2: %+v", len(got), got)
	}
}

func TestReconcileDataBarDisplayValue(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"00012345678905", "0100012345678905"},        // bare GTIN-14 gains the AI prefix
		{"0100012345678905", "0100012345678905"},      // already AI-prefixed
		{"(01)00012345678905", "(01)00012345678905"},  // full element string kept
		{"0001234", "0001234"},                        // too short, kept raw
	}
	for _, tt := range tests {
		got := Reconcile([]DecodedSymbol{{Symbology: DataBar, Text: tt.text}})
		if len(got) != 1 {
			t.Fatalf("Reconcile(%q) returned %d barcodes, want 1", tt.text, len(got))
		}
		if got[0].Value != tt.want {
			t.Errorf("display value of %q = %q, want %q", tt.text, got[0].Value, tt.want)
		}
	}
}

func TestReconcileUncertainFlag(t *testing.T) {
	tests := []struct {
		tag  string
		want bool
	}{
		{"base", false},
		{"rotate-90", false},
		{"linear-fast-pass", false},
		{"upc-vertical-rotated-90", false}, // orientation fix, not a difficulty signal
		{"grid-crop (0,0)", true},
		{"small-image-rescale", false},
		{"upc-contrast-enhanced", true},
		{"double-sharpened (difficult)", true},
		{"code128-focused (final fallback)", true},
	}
	for _, tt := range tests {
		got := Reconcile([]DecodedSymbol{{Symbology: Code39, Text: "12345", DetectionTag: tt.tag}})
		if len(got) != 1 {
			t.Fatalf("Reconcile with tag %q returned %d barcodes, want 1", tt.tag, len(got))
		}
		if got[0].Uncertain != tt.want {
			t.Errorf("tag %q: Uncertain = %v, want %v", tt.tag, got[0].Uncertain, tt.want)
		}
	}
}

func TestReconcileCandidatesAttached(t *testing.T) {
	got := Reconcile([]DecodedSymbol{{Symbology: UPCA, Text: "036000291452"}})
	if len(got) != 1 {
		t.Fatalf("Reconcile returned %d barcodes, want 1", len(got))
	}
	want := []string{"036000291452", "0003600029145"}
	if len(got[0].Candidates) != 2 || got[0].Candidates[0] != want[0] || got[0].Candidates[1] != want[1] {
		t.Errorf("Candidates = %v, want %v", got[0].Candidates, want)
	}
}

func TestReconcileEmpty(t *testing.T) {
	if got := Reconcile(nil); len(got) != 0 {
		t.Errorf("Reconcile(nil) = %+v, want empty", got)
	}
}
