package linestream

import (
	"strings"
	"testing"
)

func TestTextParser_TrimmedNonEmptyLines(t *testing.T) {
	input := "CIRCLES\n\n  9.1 Angle Subtended by a Chord  \n\nbody line\n   \n"
	p := &TextParser{}
	pages, err := p.Parse(strings.NewReader(input), "circles.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	want := []string{"CIRCLES", "9.1 Angle Subtended by a Chord", "body line"}
	if len(pages[0].Lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(pages[0].Lines), pages[0].Lines)
	}
	for i, w := range want {
		if pages[0].Lines[i] != w {
			t.Errorf("line %d: expected %q, got %q", i, w, pages[0].Lines[i])
		}
	}
}

func TestTextParser_FormFeedPageBreaks(t *testing.T) {
	input := "page one line\n\fpage two line\nsecond line"
	p := &TextParser{}
	pages, err := p.Parse(strings.NewReader(input), "doc.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if pages[0].Number != 1 || pages[1].Number != 2 {
		t.Errorf("expected page numbers 1,2, got %d,%d", pages[0].Number, pages[1].Number)
	}
	if len(pages[0].Lines) != 1 || pages[0].Lines[0] != "page one line" {
		t.Errorf("page 1: got %v", pages[0].Lines)
	}
	if len(pages[1].Lines) != 2 {
		t.Errorf("page 2: expected 2 lines, got %v", pages[1].Lines)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	pages, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("expected no pages for empty input, got %d", len(pages))
	}
}
