package shelfscan

import (
	"fmt"
	"image"

	"github.com/shelfvision/shelfscan/imageops"
)

// cascadeTiers is the priority table of the search. Tiers are evaluated in
// order; a tier only runs when every prior tier produced nothing, and the
// first non-empty qualifying result wins.
var cascadeTiers = []tier{
	{name: "fixed-transforms", run: runFixedTransforms},
	{name: "aggressive-fast-path", aggressive: true, run: runAggressiveFastPath},
	{name: "upscale-fallback", run: runUpscaleFallback},
	{name: "grid-fallback", aggressive: true, run: runGridFallback},
	{name: "linear-fast-pass", run: runLinearFastPass},
	{name: "upc-contrast-enhanced", aggressive: true, run: runUPCContrastEnhanced},
	{name: "upc-upscaled", aggressive: true, run: runUPCUpscaled},
	{name: "upc-triple-sharpened", aggressive: true, run: runUPCTripleSharpened},
	{name: "double-sharpened", aggressive: true, run: runDoubleSharpened},
	{name: "high-contrast-enhanced", aggressive: true, run: runHighContrastEnhanced},
	{name: "large-upscaled", aggressive: true, run: runLargeUpscaled},
	{name: "code128-large-upscaled", aggressive: true, run: runCode128LargeUpscaled},
	{name: "code128-focused", aggressive: true, run: runCode128Focused},
}

// runFixedTransforms tries the base image plus the fixed transform set:
// three right-angle rotations, grayscale+autocontrast, a contrast boost,
// and a sharpen, each decoded unrestricted.
func runFixedTransforms(e *tierEnv) ([]DecodedSymbol, error) {
	variants := []struct {
		tag   string
		build func() image.Image
	}{
		{"base", func() image.Image { return e.base }},
		{"rotate-90", func() image.Image { return nonNil(imageops.Rotate90(e.base)) }},
		{"rotate-180", func() image.Image { return nonNil(imageops.Rotate180(e.base)) }},
		{"rotate-270", func() image.Image { return nonNil(imageops.Rotate270(e.base)) }},
		{"gray-autocontrast", func() image.Image { return nonNil(imageops.GrayAutocontrast(e.base)) }},
		{"contrast-boost", func() image.Image { return nonNil(imageops.AdjustContrast(e.base, 1.6)) }},
		{"sharpen", func() image.Image { return nonNil(imageops.Sharpen(e.base)) }},
	}
	for _, v := range variants {
		img := v.build()
		e.debug(v.tag, img)
		syms, err := e.decode(img, MaskAll, v.tag)
		if err != nil || len(syms) > 0 {
			return syms, err
		}
	}
	return nil, nil
}

// runAggressiveFastPath tries the few small corrective rotation angles that
// recover most skewed photos, then a single 2x upscale for small barcodes.
func runAggressiveFastPath(e *tierEnv) ([]DecodedSymbol, error) {
	for _, angle := range []int{-4, 4, -8} {
		tag := fmt.Sprintf("angle-corrected (%+d)", angle)
		rot := imageops.RotateDegrees(e.base, float64(angle))
		e.debug(tag, nonNil(rot))
		syms, err := e.decode(nonNil(rot), MaskAll, tag)
		if err != nil || len(syms) > 0 {
			return syms, err
		}
	}
	if longestSide(e.base) < 1800 {
		scaled := imageops.Resize(e.base, 2.0)
		e.debug("aggressive-2x", nonNil(scaled))
		return e.decode(nonNil(scaled), MaskAll, "aggressive-2x")
	}
	return nil, nil
}

// runUpscaleFallback retries small images at higher resolution; small
// prints often sit below the decoder's minimum module size.
func runUpscaleFallback(e *tierEnv) ([]DecodedSymbol, error) {
	if longestSide(e.base) >= 1200 {
		return nil, nil
	}
	factor := 1.8
	if e.opts.Effort == EffortAggressive {
		factor = 2.2
	}
	scaled := imageops.Resize(e.base, factor)
	e.debug("small-image-rescale", nonNil(scaled))
	return e.decode(nonNil(scaled), MaskAll, "small-image-rescale")
}

// runGridFallback partitions the full-resolution source into a 3x3 grid of
// overlapping cells, upscales each cell, and stops at the first cell that
// decodes. Cell quads are unmapped back to source coordinates.
func runGridFallback(e *tierEnv) ([]DecodedSymbol, error) {
	bounds := e.src.Bounds()
	for _, box := range imageops.GridBoxes(bounds.Dx(), bounds.Dy(), 3) {
		crop := imageops.Crop(e.src, box.Add(bounds.Min))
		if crop == nil {
			continue
		}
		scale := 1.0
		if longest := longestSide(crop); longest < 1600 {
			scale = 1600.0 / float64(longest)
			scaled := imageops.Resize(crop, scale)
			if scaled == nil {
				continue
			}
			crop = scaled
		}
		tag := fmt.Sprintf("grid-crop (%d,%d)", box.Min.X, box.Min.Y)
		e.debug(tag, crop)
		offset := Point{X: float64(bounds.Min.X + box.Min.X), Y: float64(bounds.Min.Y + box.Min.Y)}
		syms, err := e.decodeMapped(crop, MaskAll, tag, offset, scale)
		if err != nil || len(syms) > 0 {
			return syms, err
		}
	}
	return nil, nil
}

// runLinearFastPass makes one pass over the base image restricted to the
// most common linear symbologies.
func runLinearFastPass(e *tierEnv) ([]DecodedSymbol, error) {
	return e.decode(e.base, MaskLinearCommon, "linear-fast-pass")
}

// The difficulty-escalation tiers below only run in aggressive mode. Their
// tags feed the downstream "uncertain" flag.

func runUPCContrastEnhanced(e *tierEnv) ([]DecodedSymbol, error) {
	enhanced := imageops.AdjustContrast(e.base, 1.8)
	e.debug("upc-contrast-enhanced", nonNil(enhanced))
	return e.decode(nonNil(enhanced), MaskUPCEAN, "upc-contrast-enhanced")
}

func runUPCUpscaled(e *tierEnv) ([]DecodedSymbol, error) {
	if longestSide(e.base) >= 2200 {
		return nil, nil
	}
	scaled := imageops.Resize(e.base, 2.2)
	e.debug("upc-upscaled", nonNil(scaled))
	return e.decode(nonNil(scaled), MaskUPCEAN, "upc-upscaled")
}

// Triple sharpening recovers UPCs photographed through plastic wrap.
func runUPCTripleSharpened(e *tierEnv) ([]DecodedSymbol, error) {
	sharp := imageops.SharpenN(e.base, 3)
	e.debug("upc-triple-sharpened", sharp)
	return e.decode(nonNil(sharp), MaskUPCEAN, "upc-triple-sharpened (difficult)")
}

func runDoubleSharpened(e *tierEnv) ([]DecodedSymbol, error) {
	sharp := imageops.SharpenN(e.base, 2)
	e.debug("double-sharpened", sharp)
	return e.decode(nonNil(sharp), MaskAll, "double-sharpened (difficult)")
}

func runHighContrastEnhanced(e *tierEnv) ([]DecodedSymbol, error) {
	enhanced := imageops.AdjustContrast(e.base, 2.0)
	if enhanced == nil {
		return nil, nil
	}
	sharp := imageops.SharpenN(enhanced, 2)
	e.debug("high-contrast-enhanced", sharp)
	return e.decode(nonNil(sharp), MaskAll, "high-contrast-enhanced (difficult)")
}

func runLargeUpscaled(e *tierEnv) ([]DecodedSymbol, error) {
	if longestSide(e.base) >= 2000 {
		return nil, nil
	}
	scaled := imageops.Resize(e.base, 2.5)
	e.debug("large-upscaled", nonNil(scaled))
	return e.decode(nonNil(scaled), MaskAll, "large-upscaled (difficult)")
}

// Manager-markdown labels print long Code 128 symbols; on already-large
// images a moderate upscale restricted to Code 128 catches them.
func runCode128LargeUpscaled(e *tierEnv) ([]DecodedSymbol, error) {
	if longestSide(e.base) < 2000 {
		return nil, nil
	}
	scaled := imageops.Resize(e.base, 1.5)
	e.debug("code128-large-upscaled", nonNil(scaled))
	return e.decode(nonNil(scaled), MaskCode128, "code128-large-upscaled (difficult)")
}
