package diagram

import (
	"image"
	"image/color"
	"testing"
)

func fillRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestGrayscale_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		in   color.RGBA
		want uint8
	}{
		{"white", color.RGBA{255, 255, 255, 255}, 255},
		{"black", color.RGBA{0, 0, 0, 255}, 0},
		{"pure red", color.RGBA{255, 0, 0, 255}, 76},
		{"pure green", color.RGBA{0, 255, 0, 255}, 150},
	}
	for _, tc := range tests {
		g := Grayscale(fillRGBA(4, 4, tc.in))
		got := g.GrayAt(2, 2).Y
		if got != tc.want {
			t.Errorf("%s: expected luminance %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestBlur5x5_FlatImageUnchanged(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range g.Pix {
		g.Pix[i] = 137
	}
	out := Blur5x5(g)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if got := out.GrayAt(x, y).Y; got != 137 {
				t.Fatalf("blur changed flat image at (%d,%d): got %d", x, y, got)
			}
		}
	}
}

func TestBlur5x5_SpreadsInk(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 9, 9))
	for i := range g.Pix {
		g.Pix[i] = 255
	}
	g.SetGray(4, 4, color.Gray{0})
	out := Blur5x5(g)

	if out.GrayAt(4, 4).Y >= 255 {
		t.Error("center should be darkened")
	}
	if out.GrayAt(5, 4).Y >= 255 {
		t.Error("neighbor should pick up some ink")
	}
	if out.GrayAt(0, 0).Y != 255 {
		t.Errorf("far corner should be untouched, got %d", out.GrayAt(0, 0).Y)
	}
}

func TestThreshold_InverseCutoff(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 4, 1))
	g.SetGray(0, 0, color.Gray{0})   // ink
	g.SetGray(1, 0, color.Gray{200}) // at cutoff: still ink
	g.SetGray(2, 0, color.Gray{201}) // just above: paper
	g.SetGray(3, 0, color.Gray{255}) // paper

	bin := Threshold(g, DefaultThreshold)
	want := []bool{true, true, false, false}
	for x, w := range want {
		if bin.At(x, 0) != w {
			t.Errorf("pixel %d: expected foreground=%v", x, w)
		}
	}
}

func TestBinary_OutOfBoundsIsBackground(t *testing.T) {
	bin := NewBinary(2, 2)
	bin.Set(0, 0, true)
	if bin.At(-1, 0) || bin.At(0, -1) || bin.At(2, 0) || bin.At(0, 2) {
		t.Error("out-of-bounds access should be background")
	}
}
