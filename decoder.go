package shelfscan

import "image"

// Decoder is the boundary to the external symbol-decoding primitive. It
// normalizes whatever the underlying library returns into DecodedSymbol
// values, isolating decoder-library variance from the cascade entirely.
//
// Implementations must return an empty slice, not an error, when no symbol
// is found; must return ErrInvalidImage for a malformed buffer; must not
// mutate the input image; and must be safe for concurrent use or be
// instantiated once per worker.
type Decoder interface {
	Decode(img image.Image, mask Mask) ([]DecodedSymbol, error)
}
