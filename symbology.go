// Package shelfscan recognizes 1D/2D barcodes in noisy product photographs
// and reduces each raw decoded string into a prioritized set of canonical
// lookup keys for downstream product identification.
package shelfscan

// Symbology represents a barcode encoding standard.
type Symbology int

const (
	UPCA Symbology = iota
	UPCE
	EAN13
	EAN8
	Code128
	Code39
	ITF
	QR
	DataMatrix
	DataBar
	DataBarExpanded
)

// String returns the display name of the symbology.
func (s Symbology) String() string {
	switch s {
	case UPCA:
		return "UPC-A"
	case UPCE:
		return "UPC-E"
	case EAN13:
		return "EAN-13"
	case EAN8:
		return "EAN-8"
	case Code128:
		return "Code 128"
	case Code39:
		return "Code 39"
	case ITF:
		return "ITF"
	case QR:
		return "QR Code"
	case DataMatrix:
		return "Data Matrix"
	case DataBar:
		return "GS1 DataBar"
	case DataBarExpanded:
		return "GS1 DataBar Expanded"
	default:
		return "UNKNOWN"
	}
}

// IsUPCEAN reports whether the symbology belongs to the UPC/EAN linear family.
func (s Symbology) IsUPCEAN() bool {
	switch s {
	case UPCA, UPCE, EAN13, EAN8:
		return true
	}
	return false
}

// IsDataBar reports whether the symbology belongs to the GS1 DataBar family.
func (s Symbology) IsDataBar() bool {
	return s == DataBar || s == DataBarExpanded
}

// Mask restricts which symbologies a Decoder should attempt. The zero Mask
// places no restriction.
type Mask uint16

// Bit returns the mask bit for a single symbology.
func (s Symbology) Bit() Mask {
	return 1 << uint(s)
}

const (
	// MaskAll places no restriction on the decoder's format search.
	MaskAll Mask = 0

	// MaskUPCEAN restricts decoding to the UPC/EAN family.
	MaskUPCEAN = Mask(1<<UPCA | 1<<UPCE | 1<<EAN13 | 1<<EAN8)

	// MaskLinearCommon restricts decoding to the most common linear
	// symbologies: Code 128 plus the UPC/EAN family.
	MaskLinearCommon = MaskUPCEAN | Mask(1<<Code128)

	// MaskCode128 restricts decoding to Code 128 only.
	MaskCode128 = Mask(1 << Code128)
)

// Has reports whether the mask permits the given symbology. The zero mask
// permits everything.
func (m Mask) Has(s Symbology) bool {
	return m == 0 || m&s.Bit() != 0
}
