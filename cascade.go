package shelfscan

import (
	"fmt"
	"image"

	"github.com/shelfvision/shelfscan/imageops"
)

// Effort selects how much work the cascade may spend on one image.
type Effort int

const (
	// EffortStandard runs the base transforms and cheap fallbacks only.
	EffortStandard Effort = iota

	// EffortAggressive additionally enables corrective rotations, grid
	// crops, and the difficulty-escalation tiers.
	EffortAggressive
)

// Options configures the cascade entry points. The zero value is a valid
// standard-effort configuration.
type Options struct {
	Effort Effort

	// MaxSide, when positive, downscales the working image so its longest
	// side does not exceed this many pixels. The grid fallbacks still crop
	// from the full-resolution source.
	MaxSide int

	// DebugSink, when set, receives every intermediate variant the cascade
	// hands to the decoder, keyed by the variant's tag.
	DebugSink func(tag string, img image.Image)
}

// Detect runs the transform cascade over one image and returns the raw
// detections of the first qualifying tier, with quads re-expressed in
// original-image coordinates and tags identifying the producing variant.
//
// Variants are tried strictly in priority order and the cascade returns the
// moment a decode yields a non-empty result; it does not keep searching for
// a "better" one. Callers depend on this first-success-wins ordering for
// determinism. A fully exhausted cascade returns an empty set and a nil
// error.
func Detect(img image.Image, dec Decoder, opts Options) ([]DecodedSymbol, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrInvalidImage
	}
	e := &tierEnv{
		src:  img,
		base: imageops.FitWithin(img, opts.MaxSide),
		dec:  dec,
		opts: opts,
	}

	syms, handled, err := e.orientationPrecheck()
	if err != nil {
		return nil, err
	}
	if handled {
		return syms, nil
	}

	for _, t := range cascadeTiers {
		if t.aggressive && opts.Effort != EffortAggressive {
			continue
		}
		syms, err := t.run(e)
		if err != nil {
			return nil, err
		}
		if len(syms) > 0 {
			return syms, nil
		}
	}
	return nil, nil
}

// tierEnv carries the per-image state shared by cascade tiers.
type tierEnv struct {
	src  image.Image // full-resolution source
	base image.Image // working image, possibly downscaled
	dec  Decoder
	opts Options
}

// tier is one ordered stage of the search: a family of image transforms
// plus a decode attempt. The table of tiers replaces an implicit
// control-flow cascade with an inspectable priority list.
type tier struct {
	name       string
	aggressive bool
	run        func(e *tierEnv) ([]DecodedSymbol, error)
}

func (e *tierEnv) debug(tag string, img image.Image) {
	if e.opts.DebugSink != nil && img != nil {
		e.opts.DebugSink(tag, img)
	}
}

// decode runs the adapter over one variant and stamps the results with the
// variant's tag. A nil or empty variant yields nothing rather than failing:
// degenerate geometry skips the variant, it does not abort the cascade.
func (e *tierEnv) decode(img image.Image, mask Mask, tag string) ([]DecodedSymbol, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, nil
	}
	syms, err := e.dec.Decode(img, mask)
	if err != nil {
		return nil, err
	}
	for i := range syms {
		syms[i].DetectionTag = tag
	}
	return syms, nil
}

// decodeMapped decodes a cropped and/or scaled variant and re-expresses the
// resulting quads back into original-image coordinates.
func (e *tierEnv) decodeMapped(img image.Image, mask Mask, tag string, offset Point, scale float64) ([]DecodedSymbol, error) {
	syms, err := e.decode(img, mask, tag)
	if err != nil {
		return nil, err
	}
	for i := range syms {
		syms[i].Quad = syms[i].Quad.Unmap(offset, scale)
	}
	return syms, nil
}

// orientationPrecheck makes one quick unrestricted decode attempt on the
// unmodified working image. A symbol whose bounding box is more than 30%
// taller than wide marks a vertically oriented barcode; those are retried
// immediately with ±90° rotations restricted to the UPC/EAN family, because
// vertical 1D codes are frequently misclassified as DataBar before rotation.
func (e *tierEnv) orientationPrecheck() ([]DecodedSymbol, bool, error) {
	quick, err := e.dec.Decode(e.base, MaskAll)
	if err != nil {
		return nil, false, err
	}
	for _, s := range quick {
		minX, minY, maxX, maxY, ok := s.Quad.Bounds()
		if !ok {
			continue
		}
		width := maxX - minX
		height := maxY - minY
		if height <= width*1.3 {
			continue
		}
		for _, angle := range []int{90, -90} {
			var rotated *image.RGBA
			if angle == 90 {
				rotated = imageops.Rotate90(e.base)
			} else {
				rotated = imageops.Rotate270(e.base)
			}
			tag := fmt.Sprintf("upc-vertical-rotated-%d", angle)
			e.debug(tag, rotated)
			syms, err := e.decode(nonNil(rotated), MaskUPCEAN, tag)
			if err != nil {
				return nil, false, err
			}
			if len(syms) > 0 {
				return syms, true, nil
			}
		}
		// Rotation didn't help; fall through to the general cascade.
		break
	}
	return nil, false, nil
}

// nonNil converts a possibly-nil concrete image into a clean interface
// value, so that a degenerate transform result reads as "no variant".
func nonNil(p *image.RGBA) image.Image {
	if p == nil {
		return nil
	}
	return p
}

func longestSide(img image.Image) int {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if h > w {
		return h
	}
	return w
}
