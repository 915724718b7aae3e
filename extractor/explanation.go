package extractor

import (
	"regexp"
	"strings"
)

var exampleHeadingPattern = regexp.MustCompile(`^#{3,4}\s+Example\s+(\d+)\b`)

type explanations struct {
	shared     string            // whole block, used only when there are no sub-sections
	byNumber   map[string]string // "### Example N" bodies keyed by the literal N
	numbers    []string          // sub-section numbers in order of appearance
	duplicates []string
}

func parseExplanations(lines []string) explanations {
	ex := explanations{byNumber: map[string]string{}}

	var key string
	var body []string
	inFence := false
	found := false

	flush := func() {
		if key == "" {
			return
		}
		if _, seen := ex.byNumber[key]; seen {
			ex.duplicates = append(ex.duplicates, key)
		} else {
			ex.numbers = append(ex.numbers, key)
		}
		// Later duplicates win, as a map assignment would.
		ex.byNumber[key] = strings.TrimSpace(strings.Join(body, "\n"))
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isFence(trimmed) {
			inFence = !inFence
		}
		if !inFence {
			if m := exampleHeadingPattern.FindStringSubmatch(trimmed); m != nil {
				flush()
				found = true
				key = m[1]
				body = nil
				continue
			}
		}
		if key != "" {
			body = append(body, line)
		}
	}
	flush()

	if !found {
		ex.shared = strings.TrimSpace(strings.Join(lines, "\n"))
	}
	return ex
}

// lookup resolves the explanation for one example number.
func (ex explanations) lookup(key string) string {
	if body, ok := ex.byNumber[key]; ok && body != "" {
		return body
	}
	if ex.shared != "" {
		return ex.shared
	}
	return PlaceholderExplanation
}
