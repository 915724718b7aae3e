// Package seeder builds every course in the content library and writes it to a
// store: course first, then each module followed by its lessons, then the
// reference lists.
package seeder

import (
	"context"
	"fmt"

	"devlearn/content"
	"devlearn/extractor"
	"devlearn/logger"
	courseModels "devlearn/models/course"
	"devlearn/store"
)

// CourseSummary is what one course produced.
type CourseSummary struct {
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Modules      int    `json:"modules"`
	Lessons      int    `json:"lessons"`
	CodeExamples int    `json:"codeExamples"`
}

// Summary is the outcome of an import run.
type Summary struct {
	Deleted      store.Counts    `json:"deleted"`
	Courses      []CourseSummary `json:"courses"`
	Modules      int             `json:"modules"`
	Lessons      int             `json:"lessons"`
	CodeExamples int             `json:"codeExamples"`
}

func (s *Summary) add(c CourseSummary) {
	s.Courses = append(s.Courses, c)
	s.Modules += c.Modules
	s.Lessons += c.Lessons
	s.CodeExamples += c.CodeExamples
}

type Seeder struct {
	store     store.Store
	library   *content.Library
	extractor *extractor.Extractor
	renderer  *Renderer
	log       *logger.Logger
}

type Option func(*Seeder)

// WithPolicy sets how inconsistent example numbering in lesson content is treated.
func WithPolicy(p extractor.Policy) Option {
	return func(s *Seeder) { s.extractor = extractor.New(extractor.WithPolicy(p)) }
}

func WithLogger(log *logger.Logger) Option {
	return func(s *Seeder) { s.log = log }
}

func New(st store.Store, lib *content.Library, opts ...Option) *Seeder {
	s := &Seeder{
		store:     st,
		library:   lib,
		extractor: extractor.New(),
		renderer:  NewRenderer(),
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Import wipes the store and seeds every course of the catalog in order. The
// first failing write stops the run; nothing already written is rolled back.
func (s *Seeder) Import(ctx context.Context) (*Summary, error) {
	deleted, err := s.store.DeleteAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("clear existing data: %w", err)
	}
	s.log.Info("cleared existing data",
		"courses", deleted.Courses, "modules", deleted.Modules, "lessons", deleted.Lessons)

	summary := &Summary{Deleted: deleted}
	for _, spec := range s.library.Catalog.Courses {
		cs, err := s.seedCourse(ctx, spec)
		if err != nil {
			return summary, fmt.Errorf("seed course %q: %w", spec.Title, err)
		}
		summary.add(cs)
		s.log.Info("seeded course",
			"title", cs.Title, "modules", cs.Modules, "lessons", cs.Lessons, "codeExamples", cs.CodeExamples)
	}
	return summary, nil
}

// Destroy deletes every course, module and lesson.
func (s *Seeder) Destroy(ctx context.Context) (store.Counts, error) {
	deleted, err := s.store.DeleteAll(ctx)
	if err != nil {
		return store.Counts{}, fmt.Errorf("delete data: %w", err)
	}
	s.log.Info("deleted data",
		"courses", deleted.Courses, "modules", deleted.Modules, "lessons", deleted.Lessons)
	return deleted, nil
}

func (s *Seeder) seedCourse(ctx context.Context, spec content.CourseSpec) (CourseSummary, error) {
	cs := CourseSummary{Title: spec.Title, Slug: spec.Slug}

	course := &courseModels.Course{
		Title:       spec.Title,
		Slug:        spec.Slug,
		Description: spec.Description,
		Level:       spec.Level,
		Language:    spec.Language,
		LessonCount: spec.LessonCount,
		Modules:     []string{},
	}
	if err := s.store.CreateCourse(ctx, course); err != nil {
		return cs, err
	}

	plan, ok := s.library.Plan(spec.ModulePlan)
	if spec.ModulePlan != "" && !(ok && plan.Covers(spec.Lessons)) {
		s.log.Warn("module plan unusable, splitting lessons by level",
			"course", spec.Title, "plan", spec.ModulePlan, "found", ok)
	}
	groups := Partition(spec, plan)

	bySlot := make([][]Slot, len(groups))
	for _, slot := range Flatten(groups) {
		bySlot[slot.Module] = append(bySlot[slot.Module], slot)
	}

	table := s.library.Table(spec.Subject)
	for gi, g := range groups {
		module := &courseModels.Module{
			CourseID: course.ID,
			Title:    g.Title,
			Order:    gi + 1,
			Lessons:  []string{},
		}
		if err := s.store.CreateModule(ctx, module); err != nil {
			return cs, err
		}

		for _, slot := range bySlot[gi] {
			lesson, err := s.buildLesson(spec, table, slot)
			if err != nil {
				return cs, err
			}
			lesson.CourseID = course.ID
			lesson.ModuleID = module.ID
			if err := s.store.CreateLesson(ctx, lesson); err != nil {
				return cs, err
			}
			module.Lessons = append(module.Lessons, lesson.ID)
			cs.Lessons++
			cs.CodeExamples += len(lesson.CodeExamples)
		}

		if err := s.store.SaveModule(ctx, module); err != nil {
			return cs, err
		}
		course.Modules = append(course.Modules, module.ID)
		cs.Modules++
	}

	if err := s.store.SaveCourse(ctx, course); err != nil {
		return cs, err
	}
	return cs, nil
}

func (s *Seeder) buildLesson(spec content.CourseSpec, table *content.Table, slot Slot) (*courseModels.Lesson, error) {
	resources := table.Resources(slot.Title)
	if resources == nil {
		resources = spec.Resources
	}
	if resources == nil {
		resources = []courseModels.Resource{}
	}

	markdown := BuildLessonMarkdown(spec.Title, slot.Title, table, resources)

	structured, err := s.extractor.Extract(markdown, spec.Language)
	if err != nil {
		return nil, fmt.Errorf("lesson %q: %w", slot.Title, err)
	}
	html, err := s.renderer.Render(markdown)
	if err != nil {
		return nil, fmt.Errorf("render lesson %q: %w", slot.Title, err)
	}

	return &courseModels.Lesson{
		Title:        slot.Title,
		Order:        slot.Order,
		Content:      markdown,
		ContentHTML:  html,
		CodeExamples: structured.CodeExamples,
		Exercises:    ExtractExercises(markdown),
		Quiz:         table.Quiz(slot.Title),
		Resources:    resources,
	}, nil
}
