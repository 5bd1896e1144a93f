package linestream

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingsAndBlocksInOrder(t *testing.T) {
	input := "# CIRCLES\n\nintro paragraph\n\n## 9.1 Angle Subtended by a Chord\n\nfirst body line\nsecond body line\n"
	p := &MarkdownParser{}
	pages, err := p.Parse(strings.NewReader(input), "circles.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	want := []string{
		"CIRCLES",
		"intro paragraph",
		"9.1 Angle Subtended by a Chord",
		"first body line",
		"second body line",
	}
	got := pages[0].Lines
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("line %d: expected %q, got %q", i, w, got[i])
		}
	}
}

func TestMarkdownParser_ListItemsBecomeLines(t *testing.T) {
	input := "## EXERCISE 9.1\n\n- first question\n- second question\n"
	p := &MarkdownParser{}
	pages, err := p.Parse(strings.NewReader(input), "ex.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := pages[0].Lines
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %v", got)
	}
	if got[0] != "EXERCISE 9.1" {
		t.Errorf("expected heading line first, got %q", got[0])
	}
	if got[1] != "first question" || got[2] != "second question" {
		t.Errorf("expected list items as lines, got %v", got[1:])
	}
}

func TestMarkdownParser_Empty(t *testing.T) {
	p := &MarkdownParser{}
	pages, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("expected no pages, got %d", len(pages))
	}
}
