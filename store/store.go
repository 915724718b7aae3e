// Package store persists courses, modules and lessons. The seeder only ever
// writes through the Store interface, so the same run can target a relational
// database through gorm, MongoDB, or memory for dry runs.
package store

import (
	"context"
	"errors"
	"fmt"

	"devlearn/config"
	"devlearn/database"
	"devlearn/logger"
	courseModels "devlearn/models/course"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write breaks a unique slug or order.
	ErrConflict = errors.New("unique constraint violated")
)

// Counts is the number of documents in each collection.
type Counts struct {
	Courses int64 `json:"courses"`
	Modules int64 `json:"modules"`
	Lessons int64 `json:"lessons"`
}

func (c Counts) Total() int64 {
	return c.Courses + c.Modules + c.Lessons
}

type Store interface {
	// DeleteAll removes every course, module and lesson and reports how many
	// of each were removed.
	DeleteAll(ctx context.Context) (Counts, error)

	// Create methods assign the ID when it is empty.
	CreateCourse(ctx context.Context, c *courseModels.Course) error
	CreateModule(ctx context.Context, m *courseModels.Module) error
	CreateLesson(ctx context.Context, l *courseModels.Lesson) error

	// SaveModule and SaveCourse persist the reference lists filled in after
	// the children were created.
	SaveModule(ctx context.Context, m *courseModels.Module) error
	SaveCourse(ctx context.Context, c *courseModels.Course) error

	Counts(ctx context.Context) (Counts, error)
	FindCourseBySlug(ctx context.Context, slug string) (*courseModels.Course, error)
	// ListModules and ListLessons return a course's children sorted by order.
	ListModules(ctx context.Context, courseID string) ([]courseModels.Module, error)
	ListLessons(ctx context.Context, courseID string) ([]courseModels.Lesson, error)

	Close(ctx context.Context) error
}

// Open connects to the database named by cfg and returns the matching store.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (Store, error) {
	log = log.With("driver", cfg.DBDriver)

	if cfg.DBDriver == config.DriverMongo {
		client, db, err := database.ConnectMongo(ctx, cfg.DatabaseURL, cfg.DBName)
		if err != nil {
			return nil, err
		}
		s, err := NewMongoStore(ctx, client, db)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		log.Info("connected to MongoDB", "database", cfg.DBName)
		return s, nil
	}

	db, err := database.ConnectDb(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("connected to database", "maxOpenConns", cfg.MaxOpenConns)
	return NewGormStore(db), nil
}

func conflict(what string, err error) error {
	return fmt.Errorf("%s: %w: %v", what, ErrConflict, err)
}
