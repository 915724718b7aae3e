package seeder

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"devlearn/config"
	"devlearn/content"
	"devlearn/database"
	"devlearn/extractor"
	"devlearn/logger"
	courseModels "devlearn/models/course"
	"devlearn/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultLibrary(t *testing.T) *content.Library {
	t.Helper()
	lib, err := content.Default()
	require.NoError(t, err)
	return lib
}

func findSpec(t *testing.T, lib *content.Library, title string) content.CourseSpec {
	t.Helper()
	for _, c := range lib.Catalog.Courses {
		if c.Title == title {
			return c
		}
	}
	t.Fatalf("course %q not in catalog", title)
	return content.CourseSpec{}
}

// assertCourseShape checks references and ordering of one seeded course.
func assertCourseShape(t *testing.T, st store.Store, slug string) (int, int) {
	t.Helper()
	ctx := context.Background()

	course, err := st.FindCourseBySlug(ctx, slug)
	require.NoError(t, err)
	modules, err := st.ListModules(ctx, course.ID)
	require.NoError(t, err)
	lessons, err := st.ListLessons(ctx, course.ID)
	require.NoError(t, err)

	require.Len(t, course.Modules, len(modules))
	lessonModule := map[string]string{}
	for i, m := range modules {
		assert.Equal(t, i+1, m.Order, "module order")
		assert.Equal(t, m.ID, course.Modules[i], "course.modules follows module order")
		for _, id := range m.Lessons {
			lessonModule[id] = m.ID
		}
	}

	require.Len(t, lessons, course.LessonCount)
	next := 0
	for i, l := range lessons {
		assert.Equal(t, i+1, l.Order, "lesson order is dense across modules")
		assert.Equal(t, lessonModule[l.ID], l.ModuleID, "lesson %q listed by its own module", l.Title)
		// Lesson IDs appear in the module lists in global order.
		for next < len(modules) && len(modules[next].Lessons) == 0 {
			next++
		}
		assert.Equal(t, modules[next].ID, l.ModuleID)
		if l.ID == modules[next].Lessons[len(modules[next].Lessons)-1] {
			next++
		}
	}
	return len(modules), len(lessons)
}

func TestImportHTMLFundamentals(t *testing.T) {
	ctx := context.Background()
	lib := defaultLibrary(t)
	st := store.NewMemoryStore()

	summary, err := New(st, lib).Import(ctx)
	require.NoError(t, err)
	require.Len(t, summary.Courses, len(lib.Catalog.Courses))

	course, err := st.FindCourseBySlug(ctx, "html-fundamentals")
	require.NoError(t, err)
	modules, err := st.ListModules(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, modules, 1)
	assert.Equal(t, "HTML Fundamentals Module 1", modules[0].Title)
	assert.Len(t, modules[0].Lessons, 27)

	lessons, err := st.ListLessons(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 27)
	seen := map[int]bool{}
	for i, l := range lessons {
		assert.Equal(t, i+1, l.Order)
		assert.False(t, seen[l.Order])
		seen[l.Order] = true
		assert.Equal(t, modules[0].Lessons[i], l.ID)
	}

	nModules, nLessons := assertCourseShape(t, st, "html-fundamentals")
	assert.Equal(t, 1, nModules)
	assert.Equal(t, 27, nLessons)
}

func TestImportLessonContent(t *testing.T) {
	ctx := context.Background()
	lib := defaultLibrary(t)
	st := store.NewMemoryStore()
	_, err := New(st, lib).Import(ctx)
	require.NoError(t, err)

	course, err := st.FindCourseBySlug(ctx, "html-fundamentals")
	require.NoError(t, err)
	lessons, err := st.ListLessons(ctx, course.ID)
	require.NoError(t, err)

	byTitle := map[string]int{}
	for i, l := range lessons {
		byTitle[l.Title] = i
	}

	links := lessons[byTitle["Links and Navigation"]]
	require.Len(t, links.CodeExamples, 3)
	assert.Equal(t, "External link", links.CodeExamples[0].Title)
	assert.Equal(t, "html", links.CodeExamples[0].Language)
	assert.Equal(t, "The `href` attribute holds the destination URL.", links.CodeExamples[0].Explanation)
	assert.Equal(t, []string{"Build a navigation bar with three links", "Add a link that jumps to the footer of the page"}, []string(links.Exercises))
	require.Len(t, links.Resources, 1)
	assert.Equal(t, "MDN The Anchor element", links.Resources[0].Title)
	assert.True(t, strings.HasPrefix(links.Content, "# Links and Navigation\n"))
	assert.Contains(t, links.ContentHTML, "<h1")

	intro := lessons[byTitle["Introduction to HTML"]]
	require.Len(t, intro.Quiz, 2)
	assert.Equal(t, 0, intro.Quiz[0].CorrectAnswer)
	// No lesson resources authored: the course defaults apply.
	assert.Equal(t, findSpec(t, lib, "HTML Fundamentals").Resources, []courseModels.Resource(intro.Resources))

	tables := lessons[byTitle["Tables"]]
	assert.NotNil(t, tables.CodeExamples)
	assert.Empty(t, tables.CodeExamples)
	assert.Contains(t, tables.Content, "This example demonstrates the fundamentals of Tables.")
	assert.NotNil(t, tables.Quiz)
	assert.Empty(t, tables.Quiz)
}

func TestImportCSSUsesModulePlan(t *testing.T) {
	ctx := context.Background()
	lib := defaultLibrary(t)
	st := store.NewMemoryStore()
	_, err := New(st, lib).Import(ctx)
	require.NoError(t, err)

	spec := findSpec(t, lib, "CSS Fundamentals")
	plan, ok := lib.Plan(spec.ModulePlan)
	require.True(t, ok)

	course, err := st.FindCourseBySlug(ctx, spec.Slug)
	require.NoError(t, err)
	modules, err := st.ListModules(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, modules, len(plan.Modules))

	total := 0
	for i, m := range modules {
		assert.Equal(t, plan.Modules[i].Title, m.Title)
		assert.Len(t, m.Lessons, len(plan.Modules[i].Lessons))
		total += len(m.Lessons)
	}
	assert.Equal(t, spec.LessonCount, total)

	nModules, nLessons := assertCourseShape(t, st, spec.Slug)
	assert.Equal(t, len(plan.Modules), nModules)
	assert.Equal(t, spec.LessonCount, nLessons)
}

func TestImportEveryCourseIsConsistent(t *testing.T) {
	lib := defaultLibrary(t)
	st := store.NewMemoryStore()
	summary, err := New(st, lib).Import(context.Background())
	require.NoError(t, err)

	lessonTotal := 0
	for _, spec := range lib.Catalog.Courses {
		_, n := assertCourseShape(t, st, spec.Slug)
		assert.Equal(t, spec.LessonCount, n, spec.Title)
		lessonTotal += n

		course, err := st.FindCourseBySlug(context.Background(), spec.Slug)
		require.NoError(t, err)
		lessons, err := st.ListLessons(context.Background(), course.ID)
		require.NoError(t, err)
		table := lib.Table(spec.Subject)
		for _, l := range lessons {
			if strings.TrimSpace(table.Lessons[l.Title].Code) == "" {
				assert.Empty(t, l.CodeExamples, "%s: %q has no authored code", spec.Title, l.Title)
			}
			for _, ex := range l.CodeExamples {
				assert.NotEmpty(t, strings.TrimSpace(ex.Code), "%s: %q", spec.Title, l.Title)
			}
		}
	}
	assert.Equal(t, lessonTotal, summary.Lessons)
	assert.Positive(t, summary.CodeExamples)
}

func TestDeleteThenImportLeavesOneCopy(t *testing.T) {
	ctx := context.Background()
	lib := defaultLibrary(t)
	st := store.NewMemoryStore()
	s := New(st, lib)

	_, err := s.Import(ctx)
	require.NoError(t, err)
	fresh, err := st.Counts(ctx)
	require.NoError(t, err)

	deleted, err := s.Destroy(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh, deleted)
	empty, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.Total())

	summary, err := s.Import(ctx)
	require.NoError(t, err)
	assert.Zero(t, summary.Deleted.Total())
	again, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh, again)

	// Importing over existing data also replaces rather than accumulates.
	summary, err = s.Import(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh, summary.Deleted)
	again, err = st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh, again)
}

func TestImportIntoSQLite(t *testing.T) {
	db, err := database.ConnectDb(&config.Config{
		DBDriver:     config.DriverSQLite,
		DatabaseURL:  "file:seeder_import?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	st := store.NewGormStore(db)
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	lib := defaultLibrary(t)
	s := New(st, lib)
	ctx := context.Background()

	_, err = s.Destroy(ctx)
	require.NoError(t, err)
	_, err = s.Import(ctx)
	require.NoError(t, err)

	nModules, nLessons := assertCourseShape(t, st, "html-fundamentals")
	assert.Equal(t, 1, nModules)
	assert.Equal(t, 27, nLessons)
	spec := findSpec(t, lib, "CSS Fundamentals")
	_, nLessons = assertCourseShape(t, st, spec.Slug)
	assert.Equal(t, spec.LessonCount, nLessons)
}

const fallbackCatalog = `
courses:
  - title: Shell
    slug: shell
    level: beginner
    language: bash
    subject: shell
    lessonCount: 7
    modulePlan: shell
    lessons: [One, Two, Three, Four, Five, Six, Seven]
`

func TestImportFallsBackToLevelModules(t *testing.T) {
	lib, err := content.Load(fstest.MapFS{"courses.yaml": {Data: []byte(fallbackCatalog)}})
	require.NoError(t, err)

	logs, observed := logger.NewObserved()
	st := store.NewMemoryStore()
	_, err = New(st, lib, WithLogger(logs)).Import(context.Background())
	require.NoError(t, err)

	course, err := st.FindCourseBySlug(context.Background(), "shell")
	require.NoError(t, err)
	modules, err := st.ListModules(context.Background(), course.ID)
	require.NoError(t, err)
	require.Len(t, modules, 3)
	assert.Equal(t, "Shell - Beginner", modules[0].Title)
	assert.Len(t, modules[2].Lessons, 3)
	assertCourseShape(t, st, "shell")

	assert.Equal(t, 1, observed.FilterMessage("module plan unusable, splitting lessons by level").Len())
}

const numberingCatalog = `
courses:
  - title: JS
    slug: js
    level: beginner
    language: javascript
    subject: js
    lessonCount: 1
    lessons: [Broken]
`

const numberingTable = `
subject: js
language: js
lessons:
  Broken:
    code: |
      // Example 1
      a();
      // Example 1
      b();
    explanation: |
      ### Example 1
      Explains a.
`

func TestImportNumberingPolicy(t *testing.T) {
	lib, err := content.Load(fstest.MapFS{
		"courses.yaml":     {Data: []byte(numberingCatalog)},
		"subjects/js.yaml": {Data: []byte(numberingTable)},
	})
	require.NoError(t, err)

	summary, err := New(store.NewMemoryStore(), lib).Import(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.CodeExamples)

	st := store.NewMemoryStore()
	_, err = New(st, lib, WithPolicy(extractor.Strict)).Import(context.Background())
	require.Error(t, err)
	var numErr *extractor.NumberingError
	require.True(t, errors.As(err, &numErr))
	assert.Contains(t, err.Error(), `seed course "JS"`)
	assert.Contains(t, err.Error(), `lesson "Broken"`)

	// The course and module were written before the lesson failed.
	counts, err := st.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.Counts{Courses: 1, Modules: 1}, counts)
}

func TestImportStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(store.NewMemoryStore(), defaultLibrary(t)).Import(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
