package shelfscan

import (
	"image"

	"github.com/shelfvision/shelfscan/imageops"
)

// Reads at or below this length are spurious partial scans, not a real
// Code 128 payload.
const minCode128ReadLength = 10

// runCode128Focused is the terminal fallback: a dedicated 1D pipeline that
// emphasizes bar/space gradients with black-hat morphology and decodes
// Code 128 only, sweeping color channels, kernel sizes, scales
// (coarse to fine) and corrective rotation angles. It returns on the first
// read longer than the minimum plausible symbol length.
func runCode128Focused(e *tierEnv) ([]DecodedSymbol, error) {
	work := image.Image(e.base)
	// This pipeline is slow on very large images.
	if longest := longestSide(work); longest > 2400 {
		if scaled := imageops.Resize(work, 2400.0/float64(longest)); scaled != nil {
			work = scaled
		}
	}
	return e.code128Focused(work)
}

func (e *tierEnv) code128Focused(img image.Image) ([]DecodedSymbol, error) {
	const tag = "code128-focused (final fallback)"

	channels := []imageops.Channel{
		imageops.ChannelRed,
		imageops.ChannelGreen,
		imageops.ChannelBlue,
		imageops.ChannelValue,
	}
	kernels := [][2]int{{31, 5}, {21, 7}}
	scales := []float64{1.8, 1.5, 1.2}
	angles := []float64{0, -3, 3, -6, 6, -9, 9}

	for _, ch := range channels {
		plane := imageops.EqualizeHist(imageops.ExtractChannel(img, ch))
		if plane == nil {
			continue
		}
		for _, k := range kernels {
			hat := imageops.BlackHat(plane, k[0], k[1])
			if hat == nil {
				continue
			}
			blurred := imageops.BoxBlur(hat, 3)
			if blurred == nil {
				continue
			}
			th := imageops.OtsuThreshold(blurred)
			if th == nil {
				continue
			}
			closed := imageops.MorphClose(th, 3, 3)
			if closed == nil {
				continue
			}
			for _, inverted := range []bool{false, true} {
				bin := closed
				if inverted {
					bin = imageops.Invert(closed)
				}
				for _, sc := range scales {
					cand := imageops.Resize(bin, sc)
					if cand == nil {
						continue
					}
					for _, angle := range angles {
						frame := image.Image(cand)
						if angle != 0 {
							rot := imageops.RotateDegrees(cand, angle)
							if rot == nil {
								continue
							}
							frame = rot
						}
						syms, err := e.decode(frame, MaskCode128, tag)
						if err != nil {
							return nil, err
						}
						for _, sym := range syms {
							if sym.Symbology == Code128 && len(sym.Text) > minCode128ReadLength {
								// Position is meaningless after morphology
								// and rotation.
								sym.Quad = nil
								return []DecodedSymbol{sym}, nil
							}
						}
					}
				}
			}
		}
	}
	return nil, nil
}
