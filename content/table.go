package content

import (
	"fmt"
	"strings"

	courseModels "devlearn/models/course"
)

// LessonContent is the authored material for one lesson title.
type LessonContent struct {
	Concepts    []string                    `yaml:"concepts"`
	Language    string                      `yaml:"language"` // Overrides Table.Language for the code fence
	Code        string                      `yaml:"code"`
	Explanation string                      `yaml:"explanation"`
	Exercises   []string                    `yaml:"exercises"`
	Quiz        []courseModels.QuizQuestion `yaml:"quiz" validate:"dive"`
	Resources   []courseModels.Resource     `yaml:"resources" validate:"dive"`
}

// Table is the content dictionary of one subject, keyed by lesson title.
// Every lookup answers for unknown titles with a placeholder.
type Table struct {
	Subject  string                   `yaml:"subject" validate:"required"`
	Language string                   `yaml:"language"` // Code fence tag, aliases allowed
	Lessons  map[string]LessonContent `yaml:"lessons" validate:"dive"`
}

func (t *Table) lesson(title string) (LessonContent, bool) {
	if t == nil || t.Lessons == nil {
		return LessonContent{}, false
	}
	lc, ok := t.Lessons[title]
	return lc, ok
}

// Concepts returns the key concepts of a lesson as a markdown bullet list.
func (t *Table) Concepts(title string) string {
	lc, ok := t.lesson(title)
	if !ok || len(lc.Concepts) == 0 {
		return fmt.Sprintf("- Core ideas behind %s\n- Common use cases and syntax\n- Best practices", title)
	}
	return bulletList(lc.Concepts)
}

// CodeExample returns the raw code placed inside the lesson's fenced block.
func (t *Table) CodeExample(title string) string {
	lc, ok := t.lesson(title)
	if !ok || strings.TrimSpace(lc.Code) == "" {
		// A bare marker: the extractor drops it, so the lesson stores no examples.
		return t.comment(title, "Example 1: "+title)
	}
	return strings.TrimRight(lc.Code, "\n")
}

// FenceLanguage is the tag written on the lesson's code fence.
func (t *Table) FenceLanguage(title string) string {
	if lc, ok := t.lesson(title); ok && lc.Language != "" {
		return lc.Language
	}
	if t == nil {
		return ""
	}
	return t.Language
}

// Explanation returns the prose explaining the lesson's code.
func (t *Table) Explanation(title string) string {
	lc, ok := t.lesson(title)
	if !ok || strings.TrimSpace(lc.Explanation) == "" {
		return fmt.Sprintf("This example demonstrates the fundamentals of %s.", title)
	}
	return strings.TrimSpace(lc.Explanation)
}

// Exercises returns the practice exercises as a markdown bullet list.
func (t *Table) Exercises(title string) string {
	lc, ok := t.lesson(title)
	if !ok || len(lc.Exercises) == 0 {
		return fmt.Sprintf("- Practice the concepts covered in %s\n- Build a small project using %s", title, title)
	}
	return bulletList(lc.Exercises)
}

// Quiz returns the lesson's quiz, or an empty list when none was authored.
func (t *Table) Quiz(title string) []courseModels.QuizQuestion {
	lc, ok := t.lesson(title)
	if !ok || len(lc.Quiz) == 0 {
		return []courseModels.QuizQuestion{}
	}
	out := make([]courseModels.QuizQuestion, len(lc.Quiz))
	copy(out, lc.Quiz)
	return out
}

// Resources returns the lesson's own resources; nil means "use the course defaults".
func (t *Table) Resources(title string) []courseModels.Resource {
	lc, ok := t.lesson(title)
	if !ok {
		return nil
	}
	return lc.Resources
}

// comment wraps text in the comment syntax of the lesson's code language.
func (t *Table) comment(title, text string) string {
	switch courseModels.NormalizeLanguage(t.FenceLanguage(title), "") {
	case "python", "bash":
		return "# " + text
	case "html", "xml":
		return "<!-- " + text + " -->"
	case "css":
		return "/* " + text + " */"
	default:
		return "// " + text
	}
}

func bulletList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(strings.TrimSpace(item))
	}
	return b.String()
}
