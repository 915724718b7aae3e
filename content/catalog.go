package content

import (
	courseModels "devlearn/models/course"
)

// Catalog lists every course the seeder creates, in seeding order.
type Catalog struct {
	Courses []CourseSpec `yaml:"courses" validate:"min=1,dive"`
}

// CourseSpec describes one course and the titles of its lessons.
type CourseSpec struct {
	Title       string                  `yaml:"title" validate:"required"`
	Slug        string                  `yaml:"slug" validate:"required"`
	Description string                  `yaml:"description"`
	Level       string                  `yaml:"level" validate:"oneof=beginner intermediate advanced"`
	Language    string                  `yaml:"language" validate:"codelang"` // Fallback for code examples
	Subject     string                  `yaml:"subject" validate:"required"`  // Content table key
	LessonCount int                     `yaml:"lessonCount" validate:"gt=0"`
	Lessons     []string                `yaml:"lessons" validate:"min=1,unique,dive,required"`
	ModulePlan  string                  `yaml:"modulePlan"` // Optional plan name under plans/
	Resources   []courseModels.Resource `yaml:"resources" validate:"dive"`
}

// ModulePlan groups a course's lesson titles into named modules.
type ModulePlan struct {
	Name    string          `yaml:"name" validate:"required"`
	Modules []PlannedModule `yaml:"modules" validate:"min=1,dive"`
}

type PlannedModule struct {
	Title   string   `yaml:"title" validate:"required"`
	Lessons []string `yaml:"lessons" validate:"min=1,dive,required"`
}

// LessonTotal is the number of lessons across all planned modules.
func (p *ModulePlan) LessonTotal() int {
	total := 0
	for _, m := range p.Modules {
		total += len(m.Lessons)
	}
	return total
}

// Covers reports whether the plan places every lesson of the course exactly once.
func (p *ModulePlan) Covers(lessons []string) bool {
	if p == nil || p.LessonTotal() != len(lessons) {
		return false
	}
	remaining := make(map[string]int, len(lessons))
	for _, title := range lessons {
		remaining[title]++
	}
	for _, m := range p.Modules {
		for _, title := range m.Lessons {
			if remaining[title] == 0 {
				return false
			}
			remaining[title]--
		}
	}
	return true
}
