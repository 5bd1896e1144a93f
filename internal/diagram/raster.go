package diagram

import (
	"image"
)

// DefaultThreshold is the luminance cutoff separating ink from paper.
// Pixels at or below it are foreground after inverse thresholding.
const DefaultThreshold = 200

// Binary is a 1-bit raster. A set pixel is foreground (dark ink in the
// source page).
type Binary struct {
	W, H int
	pix  []uint8
}

// NewBinary allocates an all-background binary image.
func NewBinary(w, h int) *Binary {
	return &Binary{W: w, H: h, pix: make([]uint8, w*h)}
}

// At reports whether (x, y) is foreground. Out-of-bounds coordinates
// are background, which keeps boundary tracing free of edge checks.
func (b *Binary) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return false
	}
	return b.pix[y*b.W+x] != 0
}

// Set marks (x, y) as foreground or background.
func (b *Binary) Set(x, y int, fg bool) {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return
	}
	if fg {
		b.pix[y*b.W+x] = 1
	} else {
		b.pix[y*b.W+x] = 0
	}
}

// Grayscale converts a rendered page to 8-bit luminance using the
// standard Rec. 601 weights.
func Grayscale(src *image.RGBA) *image.Gray {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		srcRow := src.Pix[(y+bounds.Min.Y-src.Rect.Min.Y)*src.Stride:]
		for x := 0; x < w; x++ {
			i := (x + bounds.Min.X - src.Rect.Min.X) * 4
			r := uint32(srcRow[i])
			g := uint32(srcRow[i+1])
			bl := uint32(srcRow[i+2])
			dst.Pix[y*dst.Stride+x] = uint8((19595*r + 38470*g + 7471*bl + 1<<15) >> 16)
		}
	}
	return dst
}

// gaussian5 is the binomial approximation of a 5-tap Gaussian,
// applied separably so the effective kernel is the 5x5 outer product
// with weight sum 256.
var gaussian5 = [5]uint32{1, 4, 6, 4, 1}

// Blur5x5 applies a fixed 5x5 Gaussian blur with clamped edges,
// suppressing anti-aliasing noise before thresholding.
func Blur5x5(src *image.Gray) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	tmp := image.NewGray(image.Rect(0, 0, w, h))
	dst := image.NewGray(image.Rect(0, 0, w, h))

	clamp := func(v, max int) int {
		if v < 0 {
			return 0
		}
		if v > max {
			return max
		}
		return v
	}

	// Horizontal pass.
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			var sum uint32
			for k := -2; k <= 2; k++ {
				sum += gaussian5[k+2] * uint32(row[clamp(x+k, w-1)])
			}
			tmp.Pix[y*tmp.Stride+x] = uint8((sum + 8) / 16)
		}
	}
	// Vertical pass.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum uint32
			for k := -2; k <= 2; k++ {
				sum += gaussian5[k+2] * uint32(tmp.Pix[clamp(y+k, h-1)*tmp.Stride+x])
			}
			dst.Pix[y*dst.Stride+x] = uint8((sum + 8) / 16)
		}
	}
	return dst
}

// Threshold applies an inverse binary threshold: luminance at or below
// cutoff becomes foreground. Dark strokes on light paper survive,
// everything else drops out.
func Threshold(src *image.Gray, cutoff uint8) *Binary {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	bin := NewBinary(w, h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			if row[x] <= cutoff {
				bin.pix[y*w+x] = 1
			}
		}
	}
	return bin
}
