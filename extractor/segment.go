package extractor

import (
	"fmt"
	"regexp"
	"strings"
)

// markerPattern matches "Example N" marker lines written as a line comment
// (// or #), an HTML comment or a CSS block comment. Group 1 is the number,
// group 2 the optional title.
var markerPattern = regexp.MustCompile(`^\s*(?://|#|<!--|/\*)\s*Example\s+(\d+)\b\s*[:.)\-]?\s*(.*?)\s*(?:-->|\*/)?\s*$`)

type segment struct {
	key      string // literal example number; "" for code ahead of the first marker
	title    string
	position int
	lines    []string
}

func (s segment) code() string {
	return strings.TrimSpace(strings.Join(s.lines, "\n"))
}

// splitSegments cuts the code body at marker lines. A body without markers is
// a single segment keyed "1". Code before the first marker becomes its own
// leading segment with no key, so it only ever gets the shared explanation.
func splitSegments(lines []string) []segment {
	var segments []segment
	var current *segment

	flush := func() {
		if current != nil {
			segments = append(segments, *current)
		}
	}

	for _, line := range lines {
		if m := markerPattern.FindStringSubmatch(line); m != nil {
			flush()
			current = &segment{key: m[1], title: strings.TrimSpace(m[2])}
			continue
		}
		if current == nil {
			if strings.TrimSpace(line) == "" {
				continue
			}
			current = &segment{}
		}
		current.lines = append(current.lines, line)
	}
	flush()

	if len(segments) == 1 && segments[0].key == "" {
		segments[0].key = "1"
	}
	for i := range segments {
		segments[i].position = i + 1
		if segments[i].title == "" {
			segments[i].title = fmt.Sprintf("Example %d", i+1)
		}
	}
	return segments
}
