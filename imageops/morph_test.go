package imageops

import (
	"image"
	"testing"
)

// stripeGray builds a w x h light image with a dark vertical stripe covering
// columns [x0,x1).
func stripeGray(w, h, x0, x1 int, bg, fg byte) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := bg
			if x >= x0 && x < x1 {
				v = fg
			}
			g.Pix[y*g.Stride+x] = v
		}
	}
	return g
}

func TestEqualizeHistFlat(t *testing.T) {
	g := stripeGray(8, 4, 0, 0, 128, 128)
	out := EqualizeHist(g)
	if out == nil {
		t.Fatal("EqualizeHist returned nil")
	}
	if out.Pix[0] != 128 {
		t.Errorf("EqualizeHist on flat image = %d, want unchanged", out.Pix[0])
	}
}

func TestEqualizeHistSpreads(t *testing.T) {
	g := stripeGray(10, 10, 0, 5, 120, 100)
	out := EqualizeHist(g)
	if out == nil {
		t.Fatal("EqualizeHist returned nil")
	}
	dark, bright := out.GrayAt(2, 2).Y, out.GrayAt(7, 7).Y
	if dark >= bright {
		t.Fatalf("EqualizeHist order not preserved: dark=%d bright=%d", dark, bright)
	}
	if bright != 255 {
		t.Errorf("brightest class = %d, want 255", bright)
	}
}

func TestOtsuThreshold(t *testing.T) {
	g := stripeGray(20, 10, 0, 10, 220, 20)
	out := OtsuThreshold(g)
	if out == nil {
		t.Fatal("OtsuThreshold returned nil")
	}
	if got := out.GrayAt(5, 5).Y; got != 0 {
		t.Errorf("dark half = %d, want 0", got)
	}
	if got := out.GrayAt(15, 5).Y; got != 255 {
		t.Errorf("bright half = %d, want 255", got)
	}
}

func TestDilateErode(t *testing.T) {
	g := stripeGray(21, 7, 10, 11, 0, 255)
	d := Dilate(g, 3, 1)
	if d == nil {
		t.Fatal("Dilate returned nil")
	}
	// The bright single-pixel stripe widens by one pixel each side.
	for _, x := range []int{9, 10, 11} {
		if d.GrayAt(x, 3).Y != 255 {
			t.Errorf("Dilate at x=%d = %d, want 255", x, d.GrayAt(x, 3).Y)
		}
	}
	if d.GrayAt(8, 3).Y != 0 {
		t.Errorf("Dilate at x=8 = %d, want 0", d.GrayAt(8, 3).Y)
	}

	e := Erode(d, 3, 1)
	if e == nil {
		t.Fatal("Erode returned nil")
	}
	// Erosion restores the original stripe width.
	if e.GrayAt(10, 3).Y != 255 || e.GrayAt(9, 3).Y != 0 {
		t.Errorf("Erode = [x9:%d x10:%d], want [0 255]", e.GrayAt(9, 3).Y, e.GrayAt(10, 3).Y)
	}
}

func TestMorphCloseFillsGap(t *testing.T) {
	// Two bright bars separated by a 3px dark gap; a 9px kernel fuses them.
	g := image.NewGray(image.Rect(0, 0, 30, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 30; x++ {
			v := byte(0)
			if (x >= 5 && x < 13) || (x >= 16 && x < 24) {
				v = 255
			}
			g.Pix[y*g.Stride+x] = v
		}
	}
	out := MorphClose(g, 9, 1)
	if out == nil {
		t.Fatal("MorphClose returned nil")
	}
	if got := out.GrayAt(14, 2).Y; got != 255 {
		t.Errorf("gap center after close = %d, want 255", got)
	}
}

func TestBlackHat(t *testing.T) {
	g := stripeGray(40, 20, 18, 21, 200, 50)
	out := BlackHat(g, 9, 3)
	if out == nil {
		t.Fatal("BlackHat returned nil")
	}
	if got := out.GrayAt(19, 10).Y; got != 150 {
		t.Errorf("BlackHat at stripe = %d, want 150", got)
	}
	if got := out.GrayAt(2, 2).Y; got != 0 {
		t.Errorf("BlackHat at background = %d, want 0", got)
	}
}

func TestBoxBlur(t *testing.T) {
	flat := stripeGray(10, 10, 0, 0, 77, 77)
	out := BoxBlur(flat, 3)
	if out == nil {
		t.Fatal("BoxBlur returned nil")
	}
	if out.GrayAt(5, 5).Y != 77 {
		t.Errorf("BoxBlur on flat image = %d, want unchanged", out.GrayAt(5, 5).Y)
	}

	edge := stripeGray(10, 10, 0, 5, 0, 255)
	out = BoxBlur(edge, 3)
	if got := out.GrayAt(5, 5).Y; got == 0 || got == 255 {
		t.Errorf("BoxBlur at edge = %d, want smoothed intermediate", got)
	}

	if BoxBlur(flat, 0) != nil {
		t.Error("BoxBlur with zero kernel should return nil")
	}
}

func TestMorphDegenerate(t *testing.T) {
	empty := image.NewGray(image.Rect(0, 0, 0, 0))
	if EqualizeHist(empty) != nil {
		t.Error("EqualizeHist on empty image should return nil")
	}
	if OtsuThreshold(empty) != nil {
		t.Error("OtsuThreshold on empty image should return nil")
	}
	if Dilate(empty, 3, 3) != nil {
		t.Error("Dilate on empty image should return nil")
	}
	small := stripeGray(4, 4, 0, 0, 10, 10)
	if Dilate(small, 0, 3) != nil {
		t.Error("Dilate with zero kernel should return nil")
	}
}
