// Package booktree defines the structured output tree of an extraction
// run: a book with chapters, topics, sections and exercises, plus the
// diagram records that annotate them. The JSON tags are the wire
// contract and must not change independently of the API.
package booktree

import "fmt"

// ImageRef points a structural element at a persisted diagram crop.
type ImageRef struct {
	Img string `json:"img"`
}

// Section is a contiguous run of body text inside a topic.
type Section struct {
	SectionName string     `json:"sectionName"`
	Content     string     `json:"content"`
	ImageUrls   []ImageRef `json:"imageUrls"`
}

// Exercise is a practice block introduced by an EXERCISE heading line.
// Exercise holds the heading line verbatim.
type Exercise struct {
	Exercise  string     `json:"exercise"`
	Content   string     `json:"content"`
	ImageUrls []ImageRef `json:"imageUrls"`
}

// Topic is a numbered subsection ("9.1 ...") and everything nested
// beneath it until the next topic heading.
type Topic struct {
	TopicName string     `json:"topicName"`
	ImageUrls []ImageRef `json:"imageUrls"`
	Sections  []Section  `json:"sections"`
	Exercises []Exercise `json:"exercises"`
}

// Chapter is the single chapter this engine produces per document.
// Exercises holds exercises encountered before any topic was opened.
type Chapter struct {
	ChapterName string     `json:"chapterName"`
	Topics      []Topic    `json:"topics"`
	Exercises   []Exercise `json:"exercises"`
}

// Response is the payload inside the document envelope.
type Response struct {
	Book     string    `json:"book"`
	Subject  string    `json:"subject"`
	Chapters []Chapter `json:"chapters"`
}

// Document is the root of the extraction output.
type Document struct {
	Response Response `json:"response"`
}

// NewSection creates a section with a non-nil image list so JSON
// serializes [] rather than null.
func NewSection(name, content string) *Section {
	return &Section{SectionName: name, Content: content, ImageUrls: []ImageRef{}}
}

// NewExercise creates an exercise from its verbatim heading line.
func NewExercise(heading string) *Exercise {
	return &Exercise{Exercise: heading, ImageUrls: []ImageRef{}}
}

// NewTopic creates an empty topic.
func NewTopic(name string) *Topic {
	return &Topic{
		TopicName: name,
		ImageUrls: []ImageRef{},
		Sections:  []Section{},
		Exercises: []Exercise{},
	}
}

// NewChapter creates an empty chapter.
func NewChapter(name string) *Chapter {
	return &Chapter{
		ChapterName: name,
		Topics:      []Topic{},
		Exercises:   []Exercise{},
	}
}

// NewDocument wraps chapters in the response envelope.
func NewDocument(book, subject string, chapters []Chapter) *Document {
	if chapters == nil {
		chapters = []Chapter{}
	}
	return &Document{Response: Response{Book: book, Subject: subject, Chapters: chapters}}
}

// Diagram is a detected vector-graphic region on a page. Coordinates
// are in original (unscaled) page units; ImagePath is the served path
// of the persisted crop.
type Diagram struct {
	Page      int     `json:"page"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	ImagePath string  `json:"imagePath"`
}

// Validate checks the diagram invariants against the dimensions of the
// page it was detected on.
func (d Diagram) Validate(pageWidth, pageHeight float64) error {
	if d.Page < 1 {
		return fmt.Errorf("diagram page %d is not 1-based", d.Page)
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("diagram on page %d has non-positive size %gx%g", d.Page, d.Width, d.Height)
	}
	if d.X < 0 || d.Y < 0 || d.X+d.Width > pageWidth || d.Y+d.Height > pageHeight {
		return fmt.Errorf("diagram on page %d exceeds page rect: x=%g y=%g w=%g h=%g page=%gx%g",
			d.Page, d.X, d.Y, d.Width, d.Height, pageWidth, pageHeight)
	}
	if d.ImagePath == "" {
		return fmt.Errorf("diagram on page %d has no image path", d.Page)
	}
	return nil
}
