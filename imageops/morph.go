package imageops

import "image"

// EqualizeHist spreads the grayscale histogram across the full range,
// normalizing uneven lighting before gradient emphasis.
func EqualizeHist(g *image.Gray) *image.Gray {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	var hist [256]int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			hist[g.GrayAt(g.Rect.Min.X+x, g.Rect.Min.Y+y).Y]++
		}
	}
	var cdf [256]int
	sum := 0
	for i, c := range hist {
		sum += c
		cdf[i] = sum
	}
	cdfMin := 0
	for _, c := range cdf {
		if c > 0 {
			cdfMin = c
			break
		}
	}
	total := w * h
	var lut [256]byte
	if total == cdfMin {
		for i := range lut {
			lut[i] = byte(i)
		}
	} else {
		for i := range lut {
			lut[i] = byte((cdf[i] - cdfMin) * 255 / (total - cdfMin))
		}
	}
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Pix[y*out.Stride+x] = lut[g.GrayAt(g.Rect.Min.X+x, g.Rect.Min.Y+y).Y]
		}
	}
	return out
}

// OtsuThreshold binarizes a grayscale image at the threshold that maximizes
// between-class variance. Pixels above the threshold become white.
func OtsuThreshold(g *image.Gray) *image.Gray {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	var hist [256]int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			hist[g.GrayAt(g.Rect.Min.X+x, g.Rect.Min.Y+y).Y]++
		}
	}
	total := w * h
	var sumAll float64
	for i, c := range hist {
		sumAll += float64(i) * float64(c)
	}
	var sumB, wB float64
	var best float64
	threshold := 0
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / wB
		mF := (sumAll - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			threshold = t
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if int(g.GrayAt(g.Rect.Min.X+x, g.Rect.Min.Y+y).Y) > threshold {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}

// Dilate applies a rectangular kw x kh maximum filter.
func Dilate(g *image.Gray, kw, kh int) *image.Gray {
	return rankFilter(g, kw, kh, true)
}

// Erode applies a rectangular kw x kh minimum filter.
func Erode(g *image.Gray, kw, kh int) *image.Gray {
	return rankFilter(g, kw, kh, false)
}

// MorphClose closes gaps between adjacent dark/light structures: dilation
// followed by erosion with the same rectangular kernel. Wide flat kernels
// fuse the bars of a 1D barcode into a single block.
func MorphClose(g *image.Gray, kw, kh int) *image.Gray {
	d := Dilate(g, kw, kh)
	if d == nil {
		return nil
	}
	return Erode(d, kw, kh)
}

// BlackHat emphasizes dark features on a bright background: the difference
// between the morphological closing and the source. Bar/space gradients
// survive while slow illumination changes cancel out.
func BlackHat(g *image.Gray, kw, kh int) *image.Gray {
	closed := MorphClose(g, kw, kh)
	if closed == nil {
		return nil
	}
	w, h := g.Rect.Dx(), g.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := int(closed.Pix[y*closed.Stride+x])
			v := c - int(g.GrayAt(g.Rect.Min.X+x, g.Rect.Min.Y+y).Y)
			if v < 0 {
				v = 0
			}
			out.Pix[y*out.Stride+x] = byte(v)
		}
	}
	return out
}

// BoxBlur applies a k x k mean filter.
func BoxBlur(g *image.Gray, k int) *image.Gray {
	if k < 1 {
		return nil
	}
	w, h := g.Rect.Dx(), g.Rect.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	flat := normalizeGray(g)
	half := k / 2

	// Separable: horizontal mean then vertical mean, windows clipped at
	// the borders.
	tmp := make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lo, hi := max(0, x-half), min(w-1, x+half)
			sum := 0
			for i := lo; i <= hi; i++ {
				sum += int(flat.Pix[y*flat.Stride+i])
			}
			tmp[y*w+x] = sum / (hi - lo + 1)
		}
	}
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lo, hi := max(0, y-half), min(h-1, y+half)
			sum := 0
			for i := lo; i <= hi; i++ {
				sum += tmp[i*w+x]
			}
			out.Pix[y*out.Stride+x] = byte(sum / (hi - lo + 1))
		}
	}
	return out
}

// rankFilter computes a sliding rectangular min or max in two separable
// passes, clipping the window at the borders.
func rankFilter(g *image.Gray, kw, kh int, maxRank bool) *image.Gray {
	if kw < 1 || kh < 1 {
		return nil
	}
	w, h := g.Rect.Dx(), g.Rect.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	flat := normalizeGray(g)
	halfW, halfH := kw/2, kh/2

	pick := func(a, b byte) byte {
		if maxRank == (a > b) {
			return a
		}
		return b
	}

	tmp := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lo, hi := max(0, x-halfW), min(w-1, x+halfW)
			v := flat.Pix[y*flat.Stride+lo]
			for i := lo + 1; i <= hi; i++ {
				v = pick(v, flat.Pix[y*flat.Stride+i])
			}
			tmp[y*w+x] = v
		}
	}
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lo, hi := max(0, y-halfH), min(h-1, y+halfH)
			v := tmp[lo*w+x]
			for i := lo + 1; i <= hi; i++ {
				v = pick(v, tmp[i*w+x])
			}
			out.Pix[y*out.Stride+x] = v
		}
	}
	return out
}

// normalizeGray returns a zero-anchored gray image sharing values with g.
func normalizeGray(g *image.Gray) *image.Gray {
	if g.Rect.Min == (image.Point{}) && g.Stride == g.Rect.Dx() {
		return g
	}
	out := image.NewGray(image.Rect(0, 0, g.Rect.Dx(), g.Rect.Dy()))
	copyGray(out, g)
	return out
}
