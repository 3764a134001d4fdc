package shelfscan

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		value string
		sym   Symbology
		want  ItemType
	}{
		{"databar is produce", "0100012345678905", DataBar, Produce},
		{"four digit plu", "4011", Code128, Produce},
		{"five digit organic plu", "94011", Code128, Produce},
		{"five digit other prefix is generic", "54011", Code128, Generic},
		{"manager markdown ai string", "01000123456789051021ABC", Code128, ManagerMarkdown},
		{"short code128 is generic", "0100012345", Code128, Generic},
		{"price embedded ean13", "2012345678905", EAN13, PriceEmbedded},
		{"zero price is generic", "2012340000009", EAN13, Generic},
		{"plain ean13 is generic", "4006381333931", EAN13, Generic},
		{"plain upca is generic", "036000291452", UPCA, Generic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.value, tt.sym); got != tt.want {
				t.Errorf("Classify(%q, %v) = %v, want %v", tt.value, tt.sym, got, tt.want)
			}
		})
	}
}

func TestEmbeddedPrice(t *testing.T) {
	tests := []struct {
		value string
		sym   Symbology
		cents int
		ok    bool
	}{
		{"2012345678905", EAN13, 67890, true},
		{"0020123412345", Code128, 1234, true},
		{"4006381333931", EAN13, 0, false},
		{"036000291452", UPCA, 0, false},
	}
	for _, tt := range tests {
		cents, ok := EmbeddedPrice(tt.value, tt.sym)
		if cents != tt.cents || ok != tt.ok {
			t.Errorf("EmbeddedPrice(%q, %v) = %d, %v, want %d, %v",
				tt.value, tt.sym, cents, ok, tt.cents, tt.ok)
		}
	}
}

func TestIsPriceEmbedded(t *testing.T) {
	tests := []struct {
		value string
		sym   Symbology
		want  bool
	}{
		{"2012345678905", EAN13, true},
		{"212345678905", UPCA, true},
		{"0020123400000", Code128, true},
		{"036000291452", UPCA, false},
		{"4006381333931", EAN13, false},
	}
	for _, tt := range tests {
		if got := IsPriceEmbedded(tt.value, tt.sym); got != tt.want {
			t.Errorf("IsPriceEmbedded(%q, %v) = %v, want %v", tt.value, tt.sym, got, tt.want)
		}
	}
}

func TestItemTypeString(t *testing.T) {
	pairs := map[ItemType]string{
		Generic:         "Generic",
		Produce:         "Produce",
		PriceEmbedded:   "Price-Embedded",
		ManagerMarkdown: "Manager Markdown",
	}
	for typ, want := range pairs {
		if got := typ.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", typ, got, want)
		}
	}
}
