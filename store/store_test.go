package store

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"devlearn/config"
	"devlearn/database"
	courseModels "devlearn/models/course"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.ConnectDb(&config.Config{
		DBDriver:     config.DriverSQLite,
		DatabaseURL:  "file:" + name + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	s := NewGormStore(db)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func newMongoStore(t *testing.T) *MongoStore {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("set TEST_MONGO_URI to run MongoDB store tests")
	}
	ctx := context.Background()
	client, db, err := database.ConnectMongo(ctx, uri, "devlearn_test_"+strings.ReplaceAll(uuid.NewString(), "-", ""))
	require.NoError(t, err)
	s, err := NewMongoStore(ctx, client, db)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = s.Close(context.Background())
	})
	return s
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestGormStoreSQLite(t *testing.T) {
	exerciseStore(t, newSQLiteStore(t))
}

func TestMongoStore(t *testing.T) {
	exerciseStore(t, newMongoStore(t))
}

// exerciseStore runs the behaviour every Store implementation shares.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	course := &courseModels.Course{Title: "HTML Fundamentals", Slug: "html-fundamentals", Level: "beginner", Language: "html", LessonCount: 3}
	require.NoError(t, s.CreateCourse(ctx, course))
	require.NotEmpty(t, course.ID)

	var modules []*courseModels.Module
	for i, title := range []string{"Basics", "Forms"} {
		m := &courseModels.Module{CourseID: course.ID, Title: title, Order: i + 1}
		require.NoError(t, s.CreateModule(ctx, m))
		require.NotEmpty(t, m.ID)
		modules = append(modules, m)
	}

	// Created out of order so listing has to sort.
	placements := []struct {
		module *courseModels.Module
		title  string
		order  int
	}{
		{modules[1], "Forms Basics", 3},
		{modules[0], "Introduction", 1},
		{modules[0], "Links", 2},
	}
	for _, p := range placements {
		l := &courseModels.Lesson{
			CourseID: course.ID,
			ModuleID: p.module.ID,
			Title:    p.title,
			Order:    p.order,
			Content:  "# " + p.title,
			CodeExamples: []courseModels.CodeExample{
				{Title: "Example 1", Language: "html", Code: "<p>" + p.title + "</p>", Explanation: "Shows it."},
			},
			Exercises: []string{"Try it"},
			Quiz:      []courseModels.QuizQuestion{{Question: "Q?", Options: []string{"a", "b"}, CorrectAnswer: 1}},
			Resources: []courseModels.Resource{{Title: "MDN", Type: courseModels.ResourceDocumentation, URL: "https://developer.mozilla.org"}},
		}
		require.NoError(t, s.CreateLesson(ctx, l))
		p.module.Lessons = append(p.module.Lessons, l.ID)
	}

	duplicate := &courseModels.Lesson{CourseID: course.ID, ModuleID: modules[0].ID, Title: "Again", Order: 1}
	require.Error(t, s.CreateLesson(ctx, duplicate))

	for _, m := range modules {
		require.NoError(t, s.SaveModule(ctx, m))
		course.Modules = append(course.Modules, m.ID)
	}
	require.NoError(t, s.SaveCourse(ctx, course))

	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Courses: 1, Modules: 2, Lessons: 3}, counts)

	found, err := s.FindCourseBySlug(ctx, "html-fundamentals")
	require.NoError(t, err)
	assert.Equal(t, course.ID, found.ID)
	assert.Equal(t, []string{modules[0].ID, modules[1].ID}, []string(found.Modules))

	listedModules, err := s.ListModules(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, listedModules, 2)
	assert.Equal(t, "Basics", listedModules[0].Title)
	assert.Len(t, listedModules[0].Lessons, 2)
	assert.Len(t, listedModules[1].Lessons, 1)

	lessons, err := s.ListLessons(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 3)
	for i, l := range lessons {
		assert.Equal(t, i+1, l.Order)
	}
	assert.Equal(t, "Introduction", lessons[0].Title)
	require.Len(t, lessons[0].CodeExamples, 1)
	assert.Equal(t, "<p>Introduction</p>", lessons[0].CodeExamples[0].Code)
	assert.Equal(t, 1, lessons[0].Quiz[0].CorrectAnswer)
	assert.Equal(t, "MDN", lessons[0].Resources[0].Title)

	err = s.SaveModule(ctx, &courseModels.Module{ID: uuid.NewString()})
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	deleted, err := s.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Courses: 1, Modules: 2, Lessons: 3}, deleted)

	counts, err = s.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts.Total())

	_, err = s.FindCourseBySlug(ctx, "html-fundamentals")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreConflicts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateCourse(ctx, &courseModels.Course{Title: "A", Slug: "a"}))
	err := s.CreateCourse(ctx, &courseModels.Course{Title: "B", Slug: "A"})
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, s.CreateModule(ctx, &courseModels.Module{CourseID: "c1", Order: 1}))
	assert.ErrorIs(t, s.CreateModule(ctx, &courseModels.Module{CourseID: "c1", Order: 1}), ErrConflict)
	assert.NoError(t, s.CreateModule(ctx, &courseModels.Module{CourseID: "c2", Order: 1}))
}

func TestMemoryStoreHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewMemoryStore()
	err := s.CreateCourse(ctx, &courseModels.Course{Slug: "x"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.DeleteAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStoreCopiesReferenceLists(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	m := &courseModels.Module{CourseID: "c", Order: 1}
	require.NoError(t, s.CreateModule(ctx, m))
	m.Lessons = []string{"l1"}
	require.NoError(t, s.SaveModule(ctx, m))
	m.Lessons[0] = "changed"

	listed, err := s.ListModules(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"l1"}, []string(listed[0].Lessons))
}

func TestCountsTotal(t *testing.T) {
	assert.Equal(t, int64(6), Counts{Courses: 1, Modules: 2, Lessons: 3}.Total())
}
