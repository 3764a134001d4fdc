package shelfscan

import (
	"fmt"
	"image"

	"github.com/shelfvision/shelfscan/imageops"
)

// ForceUPCEAN runs the exhaustive UPC/EAN-only search regardless of earlier
// results: a dense grid of overlapping cells over the full-resolution
// source, each upscaled to a high target resolution and decoded at 0° and
// 90° with the format mask pinned to the UPC/EAN family. It is meant as a
// second pass when a caller suspects a small printed UPC that the main
// cascade missed. Aggressive effort uses a denser grid and a higher upscale
// target.
func ForceUPCEAN(img image.Image, dec Decoder, opts Options) ([]DecodedSymbol, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrInvalidImage
	}
	e := &tierEnv{src: img, base: img, dec: dec, opts: opts}

	gridN, target := 9, 2600.0
	if opts.Effort == EffortAggressive {
		gridN, target = 13, 3600.0
	}

	bounds := img.Bounds()
	for _, box := range imageops.GridBoxes(bounds.Dx(), bounds.Dy(), gridN) {
		crop := imageops.Crop(img, box.Add(bounds.Min))
		if crop == nil {
			continue
		}
		scale := 1.0
		if longest := longestSide(crop); float64(longest) < target {
			scale = target / float64(longest)
			scaled := imageops.Resize(crop, scale)
			if scaled == nil {
				continue
			}
			crop = scaled
		}
		for _, rot := range []int{0, 90} {
			frame := image.Image(crop)
			if rot == 90 {
				frame = nonNil(imageops.Rotate90(crop))
			}
			e.debug(fmt.Sprintf("force-upcean-grid (%d,%d) rot%d", box.Min.X, box.Min.Y, rot), frame)
			offset := Point{X: float64(bounds.Min.X + box.Min.X), Y: float64(bounds.Min.Y + box.Min.Y)}
			syms, err := e.decodeMapped(frame, MaskUPCEAN, "force-upcean-grid", offset, scale)
			if err != nil {
				return nil, err
			}
			keep := syms[:0]
			for _, s := range syms {
				if s.Symbology.IsUPCEAN() {
					keep = append(keep, s)
				}
			}
			if len(keep) > 0 {
				return keep, nil
			}
		}
	}
	return nil, nil
}
