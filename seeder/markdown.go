package seeder

import (
	"strings"
	"text/template"

	"devlearn/content"
	courseModels "devlearn/models/course"
)

const fence = "```"

var lessonTemplate = template.Must(template.New("lesson").Parse(`# {{.Title}}

## Overview
In this lesson you will learn about {{.Title}} in {{.Course}}.

### Key Concepts
{{.Concepts}}

### Code Examples
` + fence + `{{.Language}}
{{.Code}}
` + fence + `

### Explanation
{{.Explanation}}

### Practice Exercises
{{.Exercises}}

## Additional Resources
{{range .Resources}}- [{{.Title}}]({{.URL}})
{{end}}`))

type lessonView struct {
	Title       string
	Course      string
	Concepts    string
	Language    string
	Code        string
	Explanation string
	Exercises   string
	Resources   []courseModels.Resource
}

// BuildLessonMarkdown renders the markdown body of one lesson from the subject
// table. resources are listed under Additional Resources.
func BuildLessonMarkdown(course, title string, table *content.Table, resources []courseModels.Resource) string {
	view := lessonView{
		Title:       title,
		Course:      course,
		Concepts:    table.Concepts(title),
		Language:    table.FenceLanguage(title),
		Code:        table.CodeExample(title),
		Explanation: table.Explanation(title),
		Exercises:   table.Exercises(title),
		Resources:   resources,
	}

	var b strings.Builder
	// The template only fails on a writer error, which strings.Builder never returns.
	_ = lessonTemplate.Execute(&b, view)
	return b.String()
}
