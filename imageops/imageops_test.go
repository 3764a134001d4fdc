package imageops

import (
	"image"
	"image/color"
	"testing"
)

func uniformRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func grayFrom(w, h int, vals []byte) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	copy(g.Pix, vals)
	return g
}

func TestToGray(t *testing.T) {
	tests := []struct {
		c    color.RGBA
		want byte
	}{
		{color.RGBA{255, 255, 255, 255}, 255},
		{color.RGBA{0, 0, 0, 255}, 0},
		{color.RGBA{255, 0, 0, 255}, 76},
		{color.RGBA{0, 255, 0, 255}, 150},
		{color.RGBA{0, 0, 255, 255}, 29},
	}
	for _, tt := range tests {
		g := ToGray(uniformRGBA(2, 2, tt.c))
		if got := g.GrayAt(0, 0).Y; got != tt.want {
			t.Errorf("ToGray(%v) = %d, want %d", tt.c, got, tt.want)
		}
	}
}

func TestToGrayOffsetBounds(t *testing.T) {
	src := image.NewGray(image.Rect(10, 20, 14, 23))
	g := ToGray(src)
	if g.Rect.Min != (image.Point{}) {
		t.Errorf("ToGray bounds anchored at %v, want origin", g.Rect.Min)
	}
	if g.Rect.Dx() != 4 || g.Rect.Dy() != 3 {
		t.Errorf("ToGray dims = %dx%d, want 4x3", g.Rect.Dx(), g.Rect.Dy())
	}
}

func TestAutocontrast(t *testing.T) {
	g := grayFrom(2, 1, []byte{100, 200})
	out := Autocontrast(g)
	if out.Pix[0] != 0 || out.Pix[1] != 255 {
		t.Errorf("Autocontrast = [%d %d], want [0 255]", out.Pix[0], out.Pix[1])
	}
}

func TestAutocontrastFlat(t *testing.T) {
	g := grayFrom(2, 1, []byte{128, 128})
	out := Autocontrast(g)
	if out.Pix[0] != 128 || out.Pix[1] != 128 {
		t.Errorf("Autocontrast on flat image = [%d %d], want unchanged", out.Pix[0], out.Pix[1])
	}
}

func TestAdjustContrastIdentity(t *testing.T) {
	src := uniformRGBA(3, 3, color.RGBA{70, 120, 180, 255})
	out := AdjustContrast(src, 1.0)
	if got := out.RGBAAt(1, 1); got != (color.RGBA{70, 120, 180, 255}) {
		t.Errorf("AdjustContrast(1.0) = %v, want unchanged", got)
	}
}

func TestAdjustContrastBoost(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{100, 100, 100, 255})
	img.SetRGBA(1, 0, color.RGBA{200, 200, 200, 255})
	out := AdjustContrast(img, 2.0)
	if dark, bright := out.RGBAAt(0, 0).R, out.RGBAAt(1, 0).R; dark >= 100 || bright <= 200 {
		t.Errorf("AdjustContrast(2.0) = %d, %d, want spread beyond 100, 200", dark, bright)
	}
}

func TestSharpenUniformUnchanged(t *testing.T) {
	src := uniformRGBA(5, 5, color.RGBA{90, 90, 90, 255})
	out := Sharpen(src)
	if got := out.RGBAAt(2, 2); got != (color.RGBA{90, 90, 90, 255}) {
		t.Errorf("Sharpen on uniform image = %v, want unchanged", got)
	}
}

func TestSharpenAmplifiesEdge(t *testing.T) {
	img := uniformRGBA(5, 5, color.RGBA{100, 100, 100, 255})
	img.SetRGBA(2, 2, color.RGBA{200, 200, 200, 255})
	out := Sharpen(img)
	if got := out.RGBAAt(2, 2).R; got <= 200 {
		t.Errorf("Sharpen center = %d, want amplified above 200", got)
	}
}

func TestInvert(t *testing.T) {
	g := grayFrom(2, 1, []byte{0, 200})
	out := Invert(g)
	if out.Pix[0] != 255 || out.Pix[1] != 55 {
		t.Errorf("Invert = [%d %d], want [255 55]", out.Pix[0], out.Pix[1])
	}
}

func TestExtractChannel(t *testing.T) {
	src := uniformRGBA(2, 2, color.RGBA{10, 20, 30, 255})
	tests := []struct {
		ch   Channel
		want byte
	}{
		{ChannelRed, 10},
		{ChannelGreen, 20},
		{ChannelBlue, 30},
		{ChannelValue, 30},
	}
	for _, tt := range tests {
		g := ExtractChannel(src, tt.ch)
		if got := g.GrayAt(1, 1).Y; got != tt.want {
			t.Errorf("ExtractChannel(%v) = %d, want %d", tt.ch, got, tt.want)
		}
	}
}
