// Package pdfdoc wraps the MuPDF engine (via go-fitz) as a page-level
// PDF session: page sizes in original units, rasters at a chosen zoom
// factor, and per-page plain text.
package pdfdoc

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// Document is an open PDF. Pages are addressed 1-based. Not safe for
// concurrent use of the same page; concurrent access to distinct pages
// is serialized internally by MuPDF.
type Document struct {
	doc  *fitz.Document
	path string
}

// Open opens a PDF from disk. A corrupt or unsupported file fails
// here, which aborts processing for the whole document.
func Open(path string) (*Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &Document{doc: doc, path: path}, nil
}

// Path returns the on-disk location the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.doc.NumPage()
}

// PageSize returns the page dimensions in original page units
// (PDF points, 72 per inch).
func (d *Document) PageSize(page int) (width, height float64, err error) {
	bounds, err := d.doc.Bound(page - 1)
	if err != nil {
		return 0, 0, fmt.Errorf("page %d bounds: %w", page, err)
	}
	return float64(bounds.Dx()), float64(bounds.Dy()), nil
}

// Render rasterizes a page at the given magnification. zoom 1 renders
// at 72 DPI, so pixel dimensions are zoom times the page units.
func (d *Document) Render(page int, zoom float64) (*image.RGBA, error) {
	img, err := d.doc.ImageDPI(page-1, 72*zoom)
	if err != nil {
		return nil, fmt.Errorf("render page %d at %gx: %w", page, zoom, err)
	}
	return img, nil
}

// Text returns the plain text of a page in reading order.
func (d *Document) Text(page int) (string, error) {
	text, err := d.doc.Text(page - 1)
	if err != nil {
		return "", fmt.Errorf("text of page %d: %w", page, err)
	}
	return text, nil
}

// Close releases the underlying MuPDF resources.
func (d *Document) Close() error {
	return d.doc.Close()
}
