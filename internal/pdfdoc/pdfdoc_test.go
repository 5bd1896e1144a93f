package pdfdoc_test

import (
	"testing"

	"github.com/rclark/bookstruct/internal/diagram"
	"github.com/rclark/bookstruct/internal/pdfdoc"
)

// The diagram extractor consumes documents through its PageSource
// interface; Render must hand back the raster exactly as the engine
// produces it, a concrete *image.RGBA.
var _ diagram.PageSource = (*pdfdoc.Document)(nil)

func TestOpenMissingFile(t *testing.T) {
	if _, err := pdfdoc.Open("no/such/file.pdf"); err == nil {
		t.Fatal("expected error opening a missing file")
	}
}
