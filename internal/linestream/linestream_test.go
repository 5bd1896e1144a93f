package linestream

import (
	"strings"
	"testing"
)

func TestForFile_DispatchMatchesSupportGate(t *testing.T) {
	supported := []string{"a.pdf", "b.txt", "c.md", "d.markdown", "e.csv", "f.html", "g.htm", "h.docx", "UPPER.PDF"}
	for _, name := range supported {
		if !IsSupportedExtension(name) {
			t.Errorf("%s: expected supported", name)
		}
		if _, err := ForFile(name); err != nil {
			t.Errorf("%s: expected parser, got error %v", name, err)
		}
	}

	unsupported := []string{"x.exe", "y.png", "noext", "z.pdf.bak"}
	for _, name := range unsupported {
		if IsSupportedExtension(name) {
			t.Errorf("%s: expected unsupported", name)
		}
		if _, err := ForFile(name); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestHTMLParser_BlocksAsLines(t *testing.T) {
	input := `<html><head><title>t</title><script>junk()</script></head>
<body><h1>CIRCLES</h1><p>intro</p><ul><li>item one</li><li>item two</li></ul></body></html>`
	p := &HTMLParser{}
	pages, err := p.Parse(strings.NewReader(input), "c.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"CIRCLES", "intro", "item one", "item two"}
	got := pages[0].Lines
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("line %d: expected %q, got %q", i, w, got[i])
		}
	}
}

func TestCSVParser_RowsAsLines(t *testing.T) {
	input := "name,score\nalice,10\nbob,20\n"
	p := &CSVParser{}
	pages, err := p.Parse(strings.NewReader(input), "s.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := pages[0].Lines
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %v", got)
	}
	if got[0] != "name: alice, score: 10" {
		t.Errorf("unexpected first line %q", got[0])
	}
}
