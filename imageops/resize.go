package imageops

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Resize scales the image by the given factor using Catmull-Rom
// interpolation. Returns nil for factors or results that degenerate to an
// empty image.
func Resize(img image.Image, factor float64) *image.RGBA {
	if factor <= 0 {
		return nil
	}
	w := int(float64(img.Bounds().Dx()) * factor)
	h := int(float64(img.Bounds().Dy()) * factor)
	return ResizeTo(img, w, h)
}

// ResizeTo scales the image to exactly w x h pixels.
func ResizeTo(img image.Image, w, h int) *image.RGBA {
	if w < 1 || h < 1 {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// FitWithin downscales the image so its longest side is at most maxSide.
// Images already within the limit are returned unchanged.
func FitWithin(img image.Image, maxSide int) image.Image {
	if maxSide <= 0 {
		return img
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= maxSide {
		return img
	}
	scale := float64(maxSide) / float64(longest)
	return Resize(img, scale)
}

// Rotate90 rotates the image 90 degrees counter-clockwise.
func Rotate90(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(y, w-1-x, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return out
}

// Rotate180 rotates the image 180 degrees.
func Rotate180(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(w-1-x, h-1-y, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return out
}

// Rotate270 rotates the image 270 degrees counter-clockwise (90 clockwise).
func Rotate270(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(h-1-y, x, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return out
}

// RotateDegrees rotates the image by an arbitrary angle, counter-clockwise
// for positive degrees, expanding the canvas to hold the rotated bounds.
// The uncovered corners are filled black.
func RotateDegrees(img image.Image, degrees float64) *image.RGBA {
	switch degrees {
	case 0:
		return ToRGBA(img)
	case 90:
		return Rotate90(img)
	case 180:
		return Rotate180(img)
	case 270, -90:
		return Rotate270(img)
	}

	bounds := img.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	theta := degrees * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)

	dw := int(math.Ceil(w*math.Abs(cos) + h*math.Abs(sin)))
	dh := int(math.Ceil(w*math.Abs(sin) + h*math.Abs(cos)))
	if dw < 1 || dh < 1 {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	// Rotate about the source center, then translate to the dest center.
	// With y pointing down, [cos sin; -sin cos] rotates counter-clockwise.
	cxSrc := float64(bounds.Min.X) + w/2
	cySrc := float64(bounds.Min.Y) + h/2
	cxDst := float64(dw) / 2
	cyDst := float64(dh) / 2
	m := f64.Aff3{
		cos, sin, cxDst - cos*cxSrc - sin*cySrc,
		-sin, cos, cyDst + sin*cxSrc - cos*cySrc,
	}
	draw.BiLinear.Transform(dst, m, img, bounds, draw.Over, nil)
	return dst
}

// Crop copies the given region of the image into a new buffer anchored at
// (0,0). The region is clipped to the image bounds; an empty intersection
// yields nil.
func Crop(img image.Image, r image.Rectangle) *image.RGBA {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return nil
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			out.Set(x, y, img.At(r.Min.X+x, r.Min.Y+y))
		}
	}
	return out
}

// GridBoxes partitions a w x h area into an n x n grid of overlapping crop
// boxes. Each cell is expanded 30% beyond its bounds to avoid clipping a
// barcode that straddles a cell edge; cells that end up 40px or smaller on
// a side are discarded.
func GridBoxes(w, h, n int) []image.Rectangle {
	if n < 1 || w < 1 || h < 1 {
		return nil
	}
	var boxes []image.Rectangle
	cellW, cellH := w/n, h/n
	for gy := 0; gy < n; gy++ {
		for gx := 0; gx < n; gx++ {
			l, t := gx*cellW, gy*cellH
			r, b := (gx+1)*cellW, (gy+1)*cellH
			if gx == n-1 {
				r = w
			}
			if gy == n-1 {
				b = h
			}
			expX := (r - l) * 3 / 10
			expY := (b - t) * 3 / 10
			el := max(0, l-expX)
			et := max(0, t-expY)
			er := min(w, r+expX)
			eb := min(h, b+expY)
			if er-el > 40 && eb-et > 40 {
				boxes = append(boxes, image.Rect(el, et, er, eb))
			}
		}
	}
	return boxes
}
