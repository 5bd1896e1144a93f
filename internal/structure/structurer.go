// Package structure converts an ordered stream of page lines into the
// chapter → topic → section/exercise tree, associating detected
// diagrams with the structural element active on their page.
package structure

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/rclark/bookstruct/internal/booktree"
	"github.com/rclark/bookstruct/internal/linestream"
)

// topicPattern matches numbered subsection headings like
// "9.1 Angle Subtended by a Chord at a Point".
var topicPattern = regexp.MustCompile(`^\d+\.\d+\s+(.+)$`)

// exercisePrefix introduces a practice block; EXERCISES matches too.
const exercisePrefix = "EXERCISE"

// Options controls one structuring pass.
type Options struct {
	// Book is the document name (file name, extension stripped). It
	// doubles as the chapter name when no title line is detected.
	Book string
	// Subject labels the output document; never inferred from content.
	Subject string
	// ChapterTitles, when non-empty, is the exact set of lines accepted
	// as the chapter title on the first page. When empty, an
	// uppercase-line heuristic applies instead.
	ChapterTitles []string
}

// Structurer is the single-pass line classification state machine.
// Classification state carries across page boundaries: a topic or
// exercise opened on one page stays current on the next.
type Structurer struct {
	opts Options

	chapter      *booktree.Chapter
	chapterNamed bool
	topic        *booktree.Topic
	exercise     *booktree.Exercise
	inExercise   bool
	pending      []string

	page      int // page currently being processed
	firstPage int
	byPage    map[int][]booktree.Diagram
}

// New creates a structurer for one document.
func New(opts Options) *Structurer {
	return &Structurer{
		opts:    opts,
		chapter: booktree.NewChapter(""),
	}
}

// Structure runs the state machine over all pages and returns the
// completed chapter. Diagrams are read-only inputs; the same diagram
// may end up referenced by several elements on its page — the
// association is deliberately page-granular.
func (s *Structurer) Structure(pages []linestream.Page, diagrams []booktree.Diagram) *booktree.Chapter {
	s.byPage = make(map[int][]booktree.Diagram)
	for _, d := range diagrams {
		s.byPage[d.Page] = append(s.byPage[d.Page], d)
	}
	if len(pages) > 0 {
		s.firstPage = pages[0].Number
	}

	for _, page := range pages {
		s.page = page.Number
		for _, line := range page.Lines {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			s.processLine(line)
		}
		// End of page: bind accumulated content before moving on.
		s.flushPending()
	}

	// End of document.
	s.flushPending()
	s.closeExercise()
	s.closeTopic()

	if s.chapter.ChapterName == "" {
		s.chapter.ChapterName = s.opts.Book
	}
	return s.chapter
}

// processLine classifies one trimmed, non-empty line. Priority:
// chapter title, topic heading, exercise heading, body content.
func (s *Structurer) processLine(line string) {
	if s.isChapterTitle(line) {
		s.chapter.ChapterName = line
		s.chapterNamed = true
		return
	}

	if m := topicPattern.FindStringSubmatch(line); m != nil {
		s.flushPending()
		s.closeExercise()
		s.closeTopic()
		s.topic = booktree.NewTopic(m[1])
		return
	}

	if strings.HasPrefix(line, exercisePrefix) {
		s.flushPending()
		s.closeExercise()
		s.exercise = booktree.NewExercise(line)
		s.inExercise = true
		return
	}

	s.pending = append(s.pending, line)
}

// isChapterTitle is only consulted on the first page, before a title
// has been found. With no configured titles it accepts the first line
// made of uppercase words (and digits), excluding lines that would
// classify as topic or exercise headings.
func (s *Structurer) isChapterTitle(line string) bool {
	if s.chapterNamed || s.page != s.firstPage {
		return false
	}
	if len(s.opts.ChapterTitles) > 0 {
		return slices.Contains(s.opts.ChapterTitles, line)
	}
	if strings.HasPrefix(line, exercisePrefix) || topicPattern.MatchString(line) {
		return false
	}
	letters := 0
	for _, r := range line {
		switch {
		case unicode.IsUpper(r):
			letters++
		case r == ' ' || unicode.IsDigit(r):
		default:
			return false
		}
	}
	return letters >= 3
}

// flushPending binds accumulated body lines to the open exercise, or
// to the open topic as a new section. With neither open the lines have
// no attachment point and are dropped.
func (s *Structurer) flushPending() {
	if len(s.pending) == 0 {
		return
	}
	content := strings.Join(s.pending, "\n")
	s.pending = s.pending[:0]

	if s.inExercise && s.exercise != nil {
		if s.exercise.Content != "" {
			s.exercise.Content += "\n"
		}
		s.exercise.Content += content
		s.attachPageDiagrams(&s.exercise.ImageUrls)
		return
	}
	if s.topic != nil {
		sec := booktree.NewSection(fmt.Sprintf("Section %d", len(s.topic.Sections)+1), content)
		s.attachPageDiagrams(&sec.ImageUrls)
		s.topic.Sections = append(s.topic.Sections, *sec)
	}
}

// closeExercise finishes the open exercise and attaches it to the open
// topic, or directly to the chapter when no topic has been seen yet.
func (s *Structurer) closeExercise() {
	if s.exercise == nil {
		return
	}
	s.attachPageDiagrams(&s.exercise.ImageUrls)
	if s.topic != nil {
		s.topic.Exercises = append(s.topic.Exercises, *s.exercise)
	} else {
		s.chapter.Exercises = append(s.chapter.Exercises, *s.exercise)
	}
	s.exercise = nil
	s.inExercise = false
}

// closeTopic pushes the completed topic onto the chapter. Duplicate
// topic numbers produce duplicate entries; that is intentional.
func (s *Structurer) closeTopic() {
	if s.topic == nil {
		return
	}
	s.chapter.Topics = append(s.chapter.Topics, *s.topic)
	s.topic = nil
}

// attachPageDiagrams references every diagram of the current page,
// deduplicated per element so repeated flushes on one page do not
// double-attach.
func (s *Structurer) attachPageDiagrams(dst *[]booktree.ImageRef) {
	for _, d := range s.byPage[s.page] {
		ref := booktree.ImageRef{Img: d.ImagePath}
		if !slices.Contains(*dst, ref) {
			*dst = append(*dst, ref)
		}
	}
}
