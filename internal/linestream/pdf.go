package linestream

import (
	"fmt"
	"io"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/rclark/bookstruct/internal/pdfdoc"
)

// PDFParser extracts per-page line streams from PDFs. Text comes from
// the MuPDF session; when MuPDF yields no text at all (some generator
// quirks), it falls back to the ledongthuc reader if enabled.
type PDFParser struct {
	FallbackLedongthuc bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) ([]Page, error) {
	// The PDF engines want a file on disk, so stage the stream.
	tmp, err := os.CreateTemp("", "bookstruct-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	doc, err := pdfdoc.Open(tmpPath)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	return PDFPages(doc, p.FallbackLedongthuc)
}

// PDFPages reads the line stream out of an already-open PDF session.
// The pipeline uses this directly so one open document serves both
// text and rasterization.
func PDFPages(doc *pdfdoc.Document, fallback bool) ([]Page, error) {
	var pages []Page
	total := 0
	for n := 1; n <= doc.PageCount(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			return nil, err
		}
		page := pageFromText(n, text)
		total += len(page.Lines)
		pages = append(pages, page)
	}

	if total == 0 && fallback {
		fbPages, err := ledongthucPages(doc.Path())
		if err == nil && len(fbPages) > 0 {
			return fbPages, nil
		}
	}
	return pages, nil
}

// ledongthucPages extracts plain text with the ledongthuc reader and
// splits it on form feeds, one page per segment.
func ledongthucPages(path string) ([]Page, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\f")
		}
		buf.WriteString(text)
	}

	var pages []Page
	for i, chunk := range strings.Split(buf.String(), "\f") {
		pages = append(pages, pageFromText(i+1, chunk))
	}
	return pages, nil
}
