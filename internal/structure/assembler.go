package structure

import (
	"path/filepath"
	"strings"

	"github.com/rclark/bookstruct/internal/booktree"
)

// BookName derives the book label from a source file name: base name
// with the extension stripped.
func BookName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Assemble wraps the built chapter into the response envelope. This is
// the engine's only externally visible output contract.
func Assemble(chapter *booktree.Chapter, opts Options) *booktree.Document {
	return booktree.NewDocument(opts.Book, opts.Subject, []booktree.Chapter{*chapter})
}
