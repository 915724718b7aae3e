package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	courseModels "devlearn/models/course"
)

// MemoryStore keeps everything in process memory. It enforces the same unique
// slug and (course, order) rules as the database stores and backs dry runs.
type MemoryStore struct {
	mu      sync.Mutex
	courses map[string]courseModels.Course
	modules map[string]courseModels.Module
	lessons map[string]courseModels.Lesson
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	s.reset()
	return s
}

func (s *MemoryStore) reset() {
	s.courses = map[string]courseModels.Course{}
	s.modules = map[string]courseModels.Module{}
	s.lessons = map[string]courseModels.Lesson{}
}

func (s *MemoryStore) DeleteAll(ctx context.Context) (Counts, error) {
	if err := ctx.Err(); err != nil {
		return Counts{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := s.counts()
	s.reset()
	return counts, nil
}

func (s *MemoryStore) CreateCourse(ctx context.Context, c *courseModels.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.courses {
		if strings.EqualFold(existing.Slug, c.Slug) {
			return conflict("create course "+c.Slug, fmt.Errorf("slug %q exists", c.Slug))
		}
	}
	courseModels.AssignID(&c.ID)
	c.CreatedAt, c.UpdatedAt = stamp(c.CreatedAt)
	if _, ok := s.courses[c.ID]; ok {
		return conflict("create course "+c.Slug, fmt.Errorf("id %s exists", c.ID))
	}
	s.courses[c.ID] = *c
	return nil
}

func (s *MemoryStore) CreateModule(ctx context.Context, m *courseModels.Module) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.modules {
		if existing.CourseID == m.CourseID && existing.Order == m.Order {
			return conflict("create module "+m.Title, fmt.Errorf("order %d exists in course %s", m.Order, m.CourseID))
		}
	}
	courseModels.AssignID(&m.ID)
	m.CreatedAt, m.UpdatedAt = stamp(m.CreatedAt)
	if _, ok := s.modules[m.ID]; ok {
		return conflict("create module "+m.Title, fmt.Errorf("id %s exists", m.ID))
	}
	s.modules[m.ID] = *m
	return nil
}

func (s *MemoryStore) CreateLesson(ctx context.Context, l *courseModels.Lesson) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.lessons {
		if existing.CourseID == l.CourseID && existing.Order == l.Order {
			return conflict("create lesson "+l.Title, fmt.Errorf("order %d exists in course %s", l.Order, l.CourseID))
		}
	}
	courseModels.AssignID(&l.ID)
	l.CreatedAt, l.UpdatedAt = stamp(l.CreatedAt)
	if _, ok := s.lessons[l.ID]; ok {
		return conflict("create lesson "+l.Title, fmt.Errorf("id %s exists", l.ID))
	}
	s.lessons[l.ID] = *l
	return nil
}

func (s *MemoryStore) SaveModule(ctx context.Context, m *courseModels.Module) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.modules[m.ID]
	if !ok {
		return fmt.Errorf("save module %s: %w", m.ID, ErrNotFound)
	}
	m.UpdatedAt = time.Now().UTC()
	stored.Lessons = append([]string(nil), m.Lessons...)
	stored.UpdatedAt = m.UpdatedAt
	s.modules[m.ID] = stored
	return nil
}

func (s *MemoryStore) SaveCourse(ctx context.Context, c *courseModels.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.courses[c.ID]
	if !ok {
		return fmt.Errorf("save course %s: %w", c.ID, ErrNotFound)
	}
	c.UpdatedAt = time.Now().UTC()
	stored.Modules = append([]string(nil), c.Modules...)
	stored.UpdatedAt = c.UpdatedAt
	s.courses[c.ID] = stored
	return nil
}

func (s *MemoryStore) Counts(ctx context.Context) (Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts(), nil
}

func (s *MemoryStore) counts() Counts {
	return Counts{
		Courses: int64(len(s.courses)),
		Modules: int64(len(s.modules)),
		Lessons: int64(len(s.lessons)),
	}
}

func (s *MemoryStore) FindCourseBySlug(ctx context.Context, slug string) (*courseModels.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.courses {
		if c.Slug == slug {
			found := c
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListModules(ctx context.Context, courseID string) ([]courseModels.Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []courseModels.Module
	for _, m := range s.modules {
		if m.CourseID == courseID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *MemoryStore) ListLessons(ctx context.Context, courseID string) ([]courseModels.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []courseModels.Lesson
	for _, l := range s.lessons {
		if l.CourseID == courseID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}
