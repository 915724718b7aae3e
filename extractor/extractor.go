// Package extractor turns a generated lesson markdown body into structured
// code examples.
//
// A lesson body carries one "### Code Examples" fenced block whose code is cut
// into segments at "Example N" comment markers, and an "### Explanation"
// section whose "### Example N" sub-sections are matched to those segments by
// the literal number N.
package extractor

import (
	"fmt"
	"strings"

	courseModels "devlearn/models/course"
)

// PlaceholderExplanation is used when the lesson has no explanation for an example.
const PlaceholderExplanation = "Study the code above and try changing it to see how the output changes."

// Policy controls how inconsistent example numbering is treated.
type Policy int

const (
	// BestEffort keeps whatever matches and falls back silently.
	BestEffort Policy = iota
	// Strict reports numbering problems as a *NumberingError.
	Strict
)

// ParsePolicy maps the NUMBERING_POLICY values onto a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "best-effort":
		return BestEffort, nil
	case "strict":
		return Strict, nil
	default:
		return BestEffort, fmt.Errorf("unknown numbering policy %q", s)
	}
}

// Result is the structured content of one lesson.
type Result struct {
	CodeExamples []courseModels.CodeExample `json:"codeExamples"`
}

// Extractor parses lesson markdown under a numbering policy.
type Extractor struct {
	policy Policy
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPolicy sets the numbering policy. The default is BestEffort.
func WithPolicy(p Policy) Option {
	return func(e *Extractor) { e.policy = p }
}

// New returns a best-effort Extractor unless an option says otherwise.
func New(opts ...Option) *Extractor {
	e := &Extractor{policy: BestEffort}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractStructured extracts code examples with the best-effort policy. It
// never fails; missing structure yields an empty list or placeholder text.
func ExtractStructured(markdown, fallbackLanguage string) Result {
	res, _ := New().Extract(markdown, fallbackLanguage)
	return res
}

// Extract parses markdown. Under the Strict policy a numbering mismatch is
// returned alongside the best-effort result.
func (e *Extractor) Extract(markdown, fallbackLanguage string) (Result, error) {
	res := Result{CodeExamples: []courseModels.CodeExample{}}
	if strings.TrimSpace(markdown) == "" {
		return res, nil
	}

	doc := scan(markdown)
	if !doc.codeFound {
		return res, nil
	}

	language := courseModels.NormalizeLanguage(doc.codeTag, fallbackLanguage)
	segments := splitSegments(doc.codeLines)
	ex := parseExplanations(doc.explanationLines)

	var kept []segment
	for _, seg := range segments {
		code := seg.code()
		if code == "" {
			continue
		}
		kept = append(kept, seg)
		res.CodeExamples = append(res.CodeExamples, courseModels.CodeExample{
			Title:       seg.title,
			Language:    language,
			Code:        code,
			Explanation: ex.lookup(seg.key),
		})
	}

	if e.policy == Strict {
		if err := checkNumbering(segments, kept, ex); err != nil {
			return res, err
		}
	}
	return res, nil
}

// NumberingError lists every inconsistency between code markers and
// explanation sub-sections.
type NumberingError struct {
	Problems []string
}

func (e *NumberingError) Error() string {
	return "inconsistent example numbering: " + strings.Join(e.Problems, "; ")
}

func checkNumbering(all, kept []segment, ex explanations) error {
	var problems []string

	seen := map[string]bool{}
	for _, seg := range all {
		if seg.key == "" {
			continue
		}
		if seen[seg.key] {
			problems = append(problems, fmt.Sprintf("code marker Example %s appears more than once", seg.key))
		}
		seen[seg.key] = true
	}
	for _, n := range ex.duplicates {
		problems = append(problems, fmt.Sprintf("explanation Example %s appears more than once", n))
	}

	if len(ex.numbers) > 0 {
		keptKeys := map[string]bool{}
		for _, seg := range kept {
			if seg.key == "" {
				continue
			}
			keptKeys[seg.key] = true
			if _, ok := ex.byNumber[seg.key]; !ok {
				problems = append(problems, fmt.Sprintf("code Example %s has no explanation", seg.key))
			}
		}
		for _, n := range ex.numbers {
			if !keptKeys[n] {
				problems = append(problems, fmt.Sprintf("explanation Example %s has no code", n))
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return &NumberingError{Problems: problems}
}
