package linestream

import (
	"bufio"
	"io"
	"strings"
)

// TextParser handles plain text files. Form feeds mark page breaks;
// otherwise the whole file is one page.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]Page, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	pages := []Page{{Number: 1}}
	for scanner.Scan() {
		line := scanner.Text()
		for i, segment := range strings.Split(line, "\f") {
			if i > 0 {
				pages = append(pages, Page{Number: len(pages) + 1})
			}
			segment = strings.TrimSpace(segment)
			if segment != "" {
				cur := &pages[len(pages)-1]
				cur.Lines = append(cur.Lines, segment)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(pages) == 1 && len(pages[0].Lines) == 0 {
		return nil, nil
	}
	return pages, nil
}
