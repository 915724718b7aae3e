package store

import (
	"context"
	"errors"
	"fmt"

	courseModels "devlearn/models/course"

	"gorm.io/gorm"
)

// GormStore keeps courses, modules and lessons in SQL tables. Reference lists
// are JSON columns.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) DeleteAll(ctx context.Context) (Counts, error) {
	var counts Counts
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})

		res := all.Delete(&courseModels.Lesson{})
		if res.Error != nil {
			return fmt.Errorf("delete lessons: %w", res.Error)
		}
		counts.Lessons = res.RowsAffected

		res = all.Delete(&courseModels.Module{})
		if res.Error != nil {
			return fmt.Errorf("delete modules: %w", res.Error)
		}
		counts.Modules = res.RowsAffected

		res = all.Delete(&courseModels.Course{})
		if res.Error != nil {
			return fmt.Errorf("delete courses: %w", res.Error)
		}
		counts.Courses = res.RowsAffected
		return nil
	})
	if err != nil {
		return Counts{}, err
	}
	return counts, nil
}

func (s *GormStore) CreateCourse(ctx context.Context, c *courseModels.Course) error {
	return s.create(ctx, "course "+c.Slug, c)
}

func (s *GormStore) CreateModule(ctx context.Context, m *courseModels.Module) error {
	return s.create(ctx, "module "+m.Title, m)
}

func (s *GormStore) CreateLesson(ctx context.Context, l *courseModels.Lesson) error {
	return s.create(ctx, "lesson "+l.Title, l)
}

func (s *GormStore) create(ctx context.Context, what string, value interface{}) error {
	if err := s.db.WithContext(ctx).Create(value).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflict("create "+what, err)
		}
		return fmt.Errorf("create %s: %w", what, err)
	}
	return nil
}

func (s *GormStore) SaveModule(ctx context.Context, m *courseModels.Module) error {
	res := s.db.WithContext(ctx).Model(m).Update("lesson_ids", m.Lessons)
	if res.Error != nil {
		return fmt.Errorf("save module %s: %w", m.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("save module %s: %w", m.ID, ErrNotFound)
	}
	return nil
}

func (s *GormStore) SaveCourse(ctx context.Context, c *courseModels.Course) error {
	res := s.db.WithContext(ctx).Model(c).Update("module_ids", c.Modules)
	if res.Error != nil {
		return fmt.Errorf("save course %s: %w", c.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("save course %s: %w", c.ID, ErrNotFound)
	}
	return nil
}

func (s *GormStore) Counts(ctx context.Context) (Counts, error) {
	var counts Counts
	db := s.db.WithContext(ctx)
	if err := db.Model(&courseModels.Course{}).Count(&counts.Courses).Error; err != nil {
		return Counts{}, err
	}
	if err := db.Model(&courseModels.Module{}).Count(&counts.Modules).Error; err != nil {
		return Counts{}, err
	}
	if err := db.Model(&courseModels.Lesson{}).Count(&counts.Lessons).Error; err != nil {
		return Counts{}, err
	}
	return counts, nil
}

func (s *GormStore) FindCourseBySlug(ctx context.Context, slug string) (*courseModels.Course, error) {
	var course courseModels.Course
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (s *GormStore) ListModules(ctx context.Context, courseID string) ([]courseModels.Module, error) {
	var modules []courseModels.Module
	err := s.db.WithContext(ctx).Where("course_id = ?", courseID).Order("order_index asc").Find(&modules).Error
	return modules, err
}

func (s *GormStore) ListLessons(ctx context.Context, courseID string) ([]courseModels.Lesson, error) {
	var lessons []courseModels.Lesson
	err := s.db.WithContext(ctx).Where("course_id = ?", courseID).Order("order_index asc").Find(&lessons).Error
	return lessons, err
}

func (s *GormStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
