package booktree

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewTopic_EmptySlicesSerializeAsArrays(t *testing.T) {
	topic := NewTopic("Angle Subtended by a Chord at a Point")
	b, err := json.Marshal(topic)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	for _, want := range []string{`"imageUrls":[]`, `"sections":[]`, `"exercises":[]`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in %s", want, s)
		}
	}
	if strings.Contains(s, "null") {
		t.Errorf("expected no nulls, got %s", s)
	}
}

func TestNewDocument_Envelope(t *testing.T) {
	doc := NewDocument("circles", "Mathematics", []Chapter{*NewChapter("CIRCLES")})
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	for _, want := range []string{`"response"`, `"book":"circles"`, `"subject":"Mathematics"`, `"chapterName":"CIRCLES"`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in %s", want, s)
		}
	}
}

func TestNewDocument_NilChapters(t *testing.T) {
	doc := NewDocument("b", "s", nil)
	if doc.Response.Chapters == nil {
		t.Error("expected non-nil chapters slice")
	}
}

func TestDiagramValidate(t *testing.T) {
	valid := Diagram{Page: 1, X: 10, Y: 20, Width: 100, Height: 50, ImagePath: "/images/b/page_1_diagram_1.jpg"}

	tests := []struct {
		name    string
		d       Diagram
		wantErr bool
	}{
		{"valid", valid, false},
		{"zero width", Diagram{Page: 1, X: 0, Y: 0, Width: 0, Height: 5, ImagePath: "p"}, true},
		{"zero height", Diagram{Page: 1, X: 0, Y: 0, Width: 5, Height: 0, ImagePath: "p"}, true},
		{"negative x", Diagram{Page: 1, X: -1, Y: 0, Width: 5, Height: 5, ImagePath: "p"}, true},
		{"exceeds width", Diagram{Page: 1, X: 550, Y: 0, Width: 100, Height: 5, ImagePath: "p"}, true},
		{"exceeds height", Diagram{Page: 1, X: 0, Y: 790, Width: 5, Height: 20, ImagePath: "p"}, true},
		{"zero page", Diagram{Page: 0, X: 0, Y: 0, Width: 5, Height: 5, ImagePath: "p"}, true},
		{"no path", Diagram{Page: 1, X: 0, Y: 0, Width: 5, Height: 5}, true},
		{"touches edge", Diagram{Page: 1, X: 512, Y: 742, Width: 100, Height: 50, ImagePath: "p"}, false},
	}

	for _, tc := range tests {
		err := tc.d.Validate(612, 792)
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}
