// Package linestream turns uploaded documents into ordered pages of
// trimmed text lines, the input of the structuring state machine.
package linestream

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Page is one page's worth of lines in reading order. Lines are
// trimmed and never empty.
type Page struct {
	Number int // 1-based
	Lines  []string
}

// Parser converts raw document bytes into a page sequence.
type Parser interface {
	Parse(r io.Reader, filename string) ([]Page, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFParser{FallbackLedongthuc: true}, nil
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// pageFromText splits a block of text into trimmed, non-empty lines.
func pageFromText(number int, text string) Page {
	p := Page{Number: number}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			p.Lines = append(p.Lines, line)
		}
	}
	return p
}
