package extractor

import (
	"regexp"
	"strings"
)

type scanState int

const (
	seekingHeading scanState = iota
	awaitingFence
	inCodeFence
	inExplanation
)

var patterns = struct {
	codeHeading        *regexp.Regexp
	explanationHeading *regexp.Regexp
}{
	codeHeading:        regexp.MustCompile(`^###\s+Code Examples\s*$`),
	explanationHeading: regexp.MustCompile(`^###\s+Explanations?\s*$`),
}

// document is what a single pass over the markdown yields.
type document struct {
	codeFound        bool
	codeTag          string
	codeLines        []string
	explanationFound bool
	explanationLines []string
}

// scanner walks the markdown line by line. Only the first "### Code Examples"
// heading that is followed by a fenced block is captured, and only the first
// explanation section. Either section may come first; an explanation that
// precedes the code stops at the code heading.
type scanner struct {
	state   scanState
	inFence bool // inside a fence that is not the captured code block
	doc     document
}

func scan(markdown string) document {
	s := &scanner{}
	lines := strings.Split(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n")
	for i := 0; i < len(lines); {
		if s.step(lines[i]) {
			i++
		}
	}
	if s.state == inCodeFence {
		// Unterminated fence: nothing usable was captured.
		s.doc.codeFound = false
		s.doc.codeTag = ""
		s.doc.codeLines = nil
	}
	return s.doc
}

// step handles one line and reports whether it was consumed. A line that ends
// the current state is handed back so the seeking state can look at it.
func (s *scanner) step(line string) bool {
	trimmed := strings.TrimSpace(line)

	switch s.state {
	case awaitingFence:
		if trimmed == "" {
			return true
		}
		if isFence(trimmed) {
			s.state = inCodeFence
			s.doc.codeTag = fenceTag(trimmed)
			s.doc.codeLines = nil
			return true
		}
		s.state = seekingHeading
		return false

	case inCodeFence:
		if trimmed == "```" {
			s.state = seekingHeading
			s.doc.codeFound = true
			return true
		}
		s.doc.codeLines = append(s.doc.codeLines, line)
		return true

	case inExplanation:
		if !s.inFence && (endsExplanation(trimmed) ||
			!s.doc.codeFound && patterns.codeHeading.MatchString(trimmed)) {
			s.state = seekingHeading
			return false
		}
		if isFence(trimmed) {
			s.inFence = !s.inFence
		}
		s.doc.explanationLines = append(s.doc.explanationLines, line)
		return true
	}

	if isFence(trimmed) {
		s.inFence = !s.inFence
		return true
	}
	if s.inFence {
		return true
	}
	if !s.doc.codeFound && patterns.codeHeading.MatchString(trimmed) {
		s.state = awaitingFence
		return true
	}
	if !s.doc.explanationFound && patterns.explanationHeading.MatchString(trimmed) {
		s.state = inExplanation
		s.doc.explanationFound = true
		return true
	}
	return true
}

func isFence(trimmed string) bool {
	return strings.HasPrefix(trimmed, "```")
}

// fenceTag returns the declared language of an opening fence, e.g. "c++" for "```c++".
func fenceTag(trimmed string) string {
	fields := strings.Fields(strings.TrimPrefix(trimmed, "```"))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func endsExplanation(trimmed string) bool {
	return strings.HasPrefix(trimmed, "### Practice Exercises") ||
		strings.HasPrefix(trimmed, "## Additional Resources")
}
