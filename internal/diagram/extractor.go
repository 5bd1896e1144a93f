// Package diagram detects vector-graphic regions on rendered PDF pages
// and persists cropped images of them. Detection works on a binarized
// raster: dark ink becomes foreground, external contours become
// candidate diagrams, and small contours are filtered out by an area
// threshold expressed in original-page units.
package diagram

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/rclark/bookstruct/internal/booktree"
)

// PageSource renders document pages. *pdfdoc.Document satisfies it.
type PageSource interface {
	PageCount() int
	PageSize(page int) (width, height float64, err error)
	Render(page int, zoom float64) (*image.RGBA, error)
}

// Extractor detects and persists diagrams for one document.
type Extractor struct {
	ImageDir string  // output base; crops go under <ImageDir>/images/<Book>/
	Book     string  // book name, keys the output subdirectory
	Zoom     float64 // render magnification; 1 = 72 DPI
	MinArea  float64 // minimum contour area in original-page units²
	Quality  int     // JPEG quality for persisted crops
	Workers  int     // concurrent page limit; <=1 means sequential
	Log      *slog.Logger
}

// Extract runs diagram detection over every page. Pages are processed
// concurrently up to Workers, but results are merged in page order and
// diagram numbering is per page, so output is deterministic regardless
// of scheduling. A page with no qualifying contours contributes
// nothing; that is not an error.
func (e *Extractor) Extract(ctx context.Context, src PageSource) ([]booktree.Diagram, error) {
	if err := os.MkdirAll(e.outputDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}

	n := src.PageCount()
	perPage := make([][]booktree.Diagram, n)

	g, ctx := errgroup.WithContext(ctx)
	limit := e.Workers
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for page := 1; page <= n; page++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			diagrams, err := e.ExtractPage(src, page)
			if err != nil {
				return err
			}
			perPage[page-1] = diagrams
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []booktree.Diagram
	for _, diagrams := range perPage {
		all = append(all, diagrams...)
	}
	return all, nil
}

// ExtractPage detects diagrams on a single page and writes their crops.
func (e *Extractor) ExtractPage(src PageSource, page int) ([]booktree.Diagram, error) {
	pageW, pageH, err := src.PageSize(page)
	if err != nil {
		return nil, err
	}
	raster, err := src.Render(page, e.Zoom)
	if err != nil {
		return nil, err
	}

	bin := Threshold(Blur5x5(Grayscale(raster)), DefaultThreshold)
	contours := FindExternalContours(bin)

	// The area threshold is calibrated against the original page, so it
	// scales with zoom² at the rendered resolution.
	minPixelArea := e.MinArea * e.Zoom * e.Zoom

	var diagrams []booktree.Diagram
	k := 0
	for i := range contours {
		c := &contours[i]
		if c.Area() < minPixelArea {
			continue
		}
		k++

		rect := c.BoundingBox()
		d := booktree.Diagram{
			Page:      page,
			X:         float64(rect.Min.X) / e.Zoom,
			Y:         float64(rect.Min.Y) / e.Zoom,
			Width:     float64(rect.Dx()) / e.Zoom,
			Height:    float64(rect.Dy()) / e.Zoom,
			ImagePath: fmt.Sprintf("/images/%s/%s", e.Book, e.cropName(page, k)),
		}
		d = clampToPage(d, pageW, pageH)

		if err := e.writeCrop(raster, rect, page, k); err != nil {
			return nil, err
		}
		if e.Log != nil {
			e.Log.Debug("diagram detected",
				"page", page, "index", k,
				"x", d.X, "y", d.Y, "w", d.Width, "h", d.Height)
		}
		diagrams = append(diagrams, d)
	}
	return diagrams, nil
}

// writeCrop persists the rendered-resolution crop of one contour, so
// crop quality scales with the zoom factor.
func (e *Extractor) writeCrop(raster *image.RGBA, rect image.Rectangle, page, k int) error {
	path := filepath.Join(e.outputDir(), e.cropName(page, k))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create crop %s: %w", path, err)
	}
	crop := raster.SubImage(rect.Intersect(raster.Bounds()))
	if err := jpeg.Encode(f, crop, &jpeg.Options{Quality: e.Quality}); err != nil {
		f.Close()
		return fmt.Errorf("encode crop %s: %w", path, err)
	}
	return f.Close()
}

func (e *Extractor) outputDir() string {
	return filepath.Join(e.ImageDir, "images", e.Book)
}

func (e *Extractor) cropName(page, k int) string {
	return fmt.Sprintf("page_%d_diagram_%d.jpg", page, k)
}

// clampToPage snaps a diagram rectangle into the page rect. Rounding
// during the zoom division can push an edge a fraction past the page.
func clampToPage(d booktree.Diagram, pageW, pageH float64) booktree.Diagram {
	if d.X < 0 {
		d.X = 0
	}
	if d.Y < 0 {
		d.Y = 0
	}
	if d.X+d.Width > pageW {
		d.Width = pageW - d.X
	}
	if d.Y+d.Height > pageH {
		d.Height = pageH - d.Y
	}
	return d
}
