// Package imageops provides the pixel transforms used by the recognition
// cascade: grayscale conversion, contrast and sharpening filters, scaling,
// rotation, cropping, and the morphological operators of the 1D fallback
// pipeline. Every operation is total: degenerate geometry yields a nil
// result rather than an error, and inputs are never mutated.
package imageops

import "image"

// ToGray converts an image to 8-bit grayscale using the luminance weights
// (306*R + 601*G + 117*B + 0x200) >> 10 on 8-bit components.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		out := image.NewGray(image.Rect(0, 0, g.Bounds().Dx(), g.Bounds().Dy()))
		copyGray(out, g)
		return out
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			r8, g8, b8 := r>>8, g>>8, b>>8
			out.Pix[y*out.Stride+x] = byte((306*r8 + 601*g8 + 117*b8 + 0x200) >> 10)
		}
	}
	return out
}

// ToRGBA returns an RGBA copy of the image with bounds anchored at (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(x, y, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return out
}

// Autocontrast linearly remaps the grayscale histogram so the darkest pixel
// becomes 0 and the brightest 255.
func Autocontrast(g *image.Gray) *image.Gray {
	bounds := g.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	lo, hi := 255, 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := int(g.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	out := image.NewGray(image.Rect(0, 0, w, h))
	if hi <= lo {
		copyGray(out, g)
		return out
	}
	var lut [256]byte
	scale := 255.0 / float64(hi-lo)
	for i := range lut {
		v := float64(i-lo) * scale
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		lut[i] = byte(v + 0.5)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Pix[y*out.Stride+x] = lut[g.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y]
		}
	}
	return out
}

// GrayAutocontrast is the grayscale+autocontrast cascade variant: convert to
// grayscale, stretch contrast, and re-express as RGBA for the decoder.
func GrayAutocontrast(img image.Image) *image.RGBA {
	g := Autocontrast(ToGray(img))
	if g == nil {
		return nil
	}
	return ToRGBA(g)
}

// AdjustContrast scales contrast around the image's mean luminance. A
// factor of 1.0 returns an unchanged copy; larger factors boost contrast.
func AdjustContrast(img image.Image, factor float64) *image.RGBA {
	src := ToRGBA(img)
	g := ToGray(img)
	var sum uint64
	n := len(g.Pix)
	if n == 0 {
		return nil
	}
	for _, v := range g.Pix {
		sum += uint64(v)
	}
	mean := float64(sum) / float64(n)

	out := image.NewRGBA(src.Rect)
	for i := 0; i < len(src.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			v := mean + (float64(src.Pix[i+c])-mean)*factor
			out.Pix[i+c] = clampByte(v)
		}
		out.Pix[i+3] = src.Pix[i+3]
	}
	return out
}

// sharpenKernel is the classic 3x3 sharpen filter (weights sum to 16).
var sharpenKernel = [9]float64{
	-2, -2, -2,
	-2, 32, -2,
	-2, -2, -2,
}

// Sharpen applies a 3x3 sharpening convolution. Border pixels are copied
// unfiltered. Apply repeatedly for double or triple sharpening.
func Sharpen(img image.Image) *image.RGBA {
	src := ToRGBA(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := image.NewRGBA(src.Rect)
	copy(out.Pix, src.Pix)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			for c := 0; c < 3; c++ {
				var acc float64
				k := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						acc += sharpenKernel[k] * float64(src.Pix[(y+dy)*src.Stride+(x+dx)*4+c])
						k++
					}
				}
				out.Pix[y*out.Stride+x*4+c] = clampByte(acc / 16)
			}
		}
	}
	return out
}

// SharpenN applies Sharpen n times.
func SharpenN(img image.Image, n int) *image.RGBA {
	out := ToRGBA(img)
	for i := 0; i < n; i++ {
		out = Sharpen(out)
	}
	return out
}

// Invert returns the photographic negative of a grayscale image.
func Invert(g *image.Gray) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, g.Rect.Dx(), g.Rect.Dy()))
	copyGray(out, g)
	for i, v := range out.Pix {
		out.Pix[i] = 255 - v
	}
	return out
}

// Channel identifies a color plane for extraction.
type Channel int

const (
	ChannelRed Channel = iota
	ChannelGreen
	ChannelBlue
	// ChannelValue is the HSV value plane, max(R,G,B).
	ChannelValue
)

// ExtractChannel returns one color plane of the image as grayscale.
func ExtractChannel(img image.Image, ch Channel) *image.Gray {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			var v uint32
			switch ch {
			case ChannelRed:
				v = r
			case ChannelGreen:
				v = g
			case ChannelBlue:
				v = b
			case ChannelValue:
				v = r
				if g > v {
					v = g
				}
				if b > v {
					v = b
				}
			}
			out.Pix[y*out.Stride+x] = byte(v >> 8)
		}
	}
	return out
}

func copyGray(dst, src *image.Gray) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Pix[y*dst.Stride+x] = src.GrayAt(src.Rect.Min.X+x, src.Rect.Min.Y+y).Y
		}
	}
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v + 0.5)
}
