package shelfscan

import "errors"

// ErrInvalidImage is returned when a malformed pixel buffer is handed to a
// Decoder or to the cascade. It indicates a caller bug and is propagated,
// never swallowed. An image in which no barcode is found is not an error;
// that is reported as an empty result set.
var ErrInvalidImage = errors.New("invalid image buffer")
