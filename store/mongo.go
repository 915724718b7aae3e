package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	courseModels "devlearn/models/course"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	coursesCollection = "courses"
	modulesCollection = "modules"
	lessonsCollection = "lessons"
)

// MongoStore keeps one document per course, module and lesson; references are
// arrays of IDs.
type MongoStore struct {
	client  *mongo.Client
	courses *mongo.Collection
	modules *mongo.Collection
	lessons *mongo.Collection
}

// NewMongoStore binds the collections and makes sure the unique indexes exist.
// client may be nil when the caller owns the connection.
func NewMongoStore(ctx context.Context, client *mongo.Client, db *mongo.Database) (*MongoStore, error) {
	s := &MongoStore{
		client:  client,
		courses: db.Collection(coursesCollection),
		modules: db.Collection(modulesCollection),
		lessons: db.Collection(lessonsCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	courseOrder := bson.D{{Key: "course", Value: 1}, {Key: "order", Value: 1}}

	if _, err := s.courses.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique,
	}); err != nil {
		return fmt.Errorf("create courses index: %w", err)
	}
	if _, err := s.modules.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: courseOrder, Options: unique,
	}); err != nil {
		return fmt.Errorf("create modules index: %w", err)
	}
	if _, err := s.lessons.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: courseOrder, Options: unique},
		{Keys: bson.D{{Key: "module", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("create lessons indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) DeleteAll(ctx context.Context) (Counts, error) {
	var counts Counts
	for _, target := range []struct {
		coll *mongo.Collection
		n    *int64
	}{
		{s.lessons, &counts.Lessons},
		{s.modules, &counts.Modules},
		{s.courses, &counts.Courses},
	} {
		res, err := target.coll.DeleteMany(ctx, bson.M{})
		if err != nil {
			return Counts{}, fmt.Errorf("delete %s: %w", target.coll.Name(), err)
		}
		*target.n = res.DeletedCount
	}
	return counts, nil
}

func (s *MongoStore) CreateCourse(ctx context.Context, c *courseModels.Course) error {
	courseModels.AssignID(&c.ID)
	c.CreatedAt, c.UpdatedAt = stamp(c.CreatedAt)
	return insert(ctx, s.courses, "course "+c.Slug, c)
}

func (s *MongoStore) CreateModule(ctx context.Context, m *courseModels.Module) error {
	courseModels.AssignID(&m.ID)
	m.CreatedAt, m.UpdatedAt = stamp(m.CreatedAt)
	return insert(ctx, s.modules, "module "+m.Title, m)
}

func (s *MongoStore) CreateLesson(ctx context.Context, l *courseModels.Lesson) error {
	courseModels.AssignID(&l.ID)
	l.CreatedAt, l.UpdatedAt = stamp(l.CreatedAt)
	return insert(ctx, s.lessons, "lesson "+l.Title, l)
}

func insert(ctx context.Context, coll *mongo.Collection, what string, doc interface{}) error {
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return conflict("create "+what, err)
		}
		return fmt.Errorf("create %s: %w", what, err)
	}
	return nil
}

func (s *MongoStore) SaveModule(ctx context.Context, m *courseModels.Module) error {
	m.UpdatedAt = time.Now().UTC()
	return setFields(ctx, s.modules, m.ID, bson.M{"lessons": m.Lessons, "updatedAt": m.UpdatedAt})
}

func (s *MongoStore) SaveCourse(ctx context.Context, c *courseModels.Course) error {
	c.UpdatedAt = time.Now().UTC()
	return setFields(ctx, s.courses, c.ID, bson.M{"modules": c.Modules, "updatedAt": c.UpdatedAt})
}

func setFields(ctx context.Context, coll *mongo.Collection, id string, fields bson.M) error {
	res, err := coll.UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update %s %s: %w", coll.Name(), id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update %s %s: %w", coll.Name(), id, ErrNotFound)
	}
	return nil
}

func (s *MongoStore) Counts(ctx context.Context) (Counts, error) {
	var counts Counts
	var err error
	if counts.Courses, err = s.courses.CountDocuments(ctx, bson.M{}); err != nil {
		return Counts{}, err
	}
	if counts.Modules, err = s.modules.CountDocuments(ctx, bson.M{}); err != nil {
		return Counts{}, err
	}
	if counts.Lessons, err = s.lessons.CountDocuments(ctx, bson.M{}); err != nil {
		return Counts{}, err
	}
	return counts, nil
}

func (s *MongoStore) FindCourseBySlug(ctx context.Context, slug string) (*courseModels.Course, error) {
	var course courseModels.Course
	if err := s.courses.FindOne(ctx, bson.M{"slug": slug}).Decode(&course); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (s *MongoStore) ListModules(ctx context.Context, courseID string) ([]courseModels.Module, error) {
	var modules []courseModels.Module
	if err := findSorted(ctx, s.modules, courseID, &modules); err != nil {
		return nil, err
	}
	return modules, nil
}

func (s *MongoStore) ListLessons(ctx context.Context, courseID string) ([]courseModels.Lesson, error) {
	var lessons []courseModels.Lesson
	if err := findSorted(ctx, s.lessons, courseID, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

func findSorted(ctx context.Context, coll *mongo.Collection, courseID string, out interface{}) error {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := coll.Find(ctx, bson.M{"course": courseID}, opts)
	if err != nil {
		return fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	return cur.All(ctx, out)
}

func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// stamp returns creation and update times for a new document. BSON dates
// carry milliseconds, so the times are truncated to match what is read back.
func stamp(created time.Time) (time.Time, time.Time) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	if created.IsZero() {
		created = now
	}
	return created, now
}
