// Package zxing adapts the gozxing multi-format reader to the shelfscan
// Decoder interface. It is the production decode primitive; tests of the
// cascade should stub the Decoder instead of pulling in a real reader.
package zxing

import (
	"errors"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi"

	"github.com/shelfvision/shelfscan"
)

// Decoder decodes barcodes using the gozxing library. The zero value is
// ready to use; each call builds its own reader, so one Decoder may be
// shared across workers.
type Decoder struct{}

// New returns a gozxing-backed Decoder.
func New() *Decoder {
	return &Decoder{}
}

var toSymbology = map[gozxing.BarcodeFormat]shelfscan.Symbology{
	gozxing.BarcodeFormat_UPC_A:        shelfscan.UPCA,
	gozxing.BarcodeFormat_UPC_E:        shelfscan.UPCE,
	gozxing.BarcodeFormat_EAN_13:       shelfscan.EAN13,
	gozxing.BarcodeFormat_EAN_8:        shelfscan.EAN8,
	gozxing.BarcodeFormat_CODE_128:     shelfscan.Code128,
	gozxing.BarcodeFormat_CODE_39:      shelfscan.Code39,
	gozxing.BarcodeFormat_ITF:          shelfscan.ITF,
	gozxing.BarcodeFormat_QR_CODE:      shelfscan.QR,
	gozxing.BarcodeFormat_DATA_MATRIX:  shelfscan.DataMatrix,
	gozxing.BarcodeFormat_RSS_14:       shelfscan.DataBar,
	gozxing.BarcodeFormat_RSS_EXPANDED: shelfscan.DataBarExpanded,
}

var fromSymbology = map[shelfscan.Symbology]gozxing.BarcodeFormat{
	shelfscan.UPCA:            gozxing.BarcodeFormat_UPC_A,
	shelfscan.UPCE:            gozxing.BarcodeFormat_UPC_E,
	shelfscan.EAN13:           gozxing.BarcodeFormat_EAN_13,
	shelfscan.EAN8:            gozxing.BarcodeFormat_EAN_8,
	shelfscan.Code128:         gozxing.BarcodeFormat_CODE_128,
	shelfscan.Code39:          gozxing.BarcodeFormat_CODE_39,
	shelfscan.ITF:             gozxing.BarcodeFormat_ITF,
	shelfscan.QR:              gozxing.BarcodeFormat_QR_CODE,
	shelfscan.DataMatrix:      gozxing.BarcodeFormat_DATA_MATRIX,
	shelfscan.DataBar:         gozxing.BarcodeFormat_RSS_14,
	shelfscan.DataBarExpanded: gozxing.BarcodeFormat_RSS_EXPANDED,
}

// Decode attempts to read every barcode in the image, optionally restricted
// by the format mask. No symbol found is an empty result, not an error.
func (d *Decoder) Decode(img image.Image, mask shelfscan.Mask) ([]shelfscan.DecodedSymbol, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, shelfscan.ErrInvalidImage
	}

	src := gozxing.NewLuminanceSourceFromImage(img)
	bmp, err := gozxing.NewBinaryBitmap(gozxing.NewHybridBinarizer(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shelfscan.ErrInvalidImage, err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	if mask != shelfscan.MaskAll {
		var formats []gozxing.BarcodeFormat
		for sym, format := range fromSymbology {
			if mask.Has(sym) {
				formats = append(formats, format)
			}
		}
		hints[gozxing.DecodeHintType_POSSIBLE_FORMATS] = formats
	}

	reader := multi.NewGenericMultipleBarcodeReader(gozxing.NewMultiFormatReader())
	results, err := reader.DecodeMultiple(bmp, hints)
	if err != nil {
		// gozxing reports "no symbol in frame" as NotFoundException; the
		// adapter contract reports that as an empty result set. Anything
		// else means the buffer could not be processed.
		var notFound gozxing.NotFoundException
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", shelfscan.ErrInvalidImage, err)
	}

	var syms []shelfscan.DecodedSymbol
	for _, r := range results {
		sym, ok := toSymbology[r.GetBarcodeFormat()]
		if !ok || r.GetText() == "" {
			continue
		}
		syms = append(syms, shelfscan.DecodedSymbol{
			Symbology: sym,
			Text:      r.GetText(),
			Quad:      quadOf(r.GetResultPoints()),
		})
	}
	return syms, nil
}

func quadOf(points []gozxing.ResultPoint) shelfscan.Quad {
	if len(points) == 0 {
		return nil
	}
	quad := make(shelfscan.Quad, 0, len(points))
	for _, p := range points {
		quad = append(quad, shelfscan.Point{X: p.GetX(), Y: p.GetY()})
	}
	return quad
}
