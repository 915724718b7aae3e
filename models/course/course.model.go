package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course represents a learning course
type Course struct {
	ID          string                      `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	Title       string                      `json:"title" bson:"title" gorm:"not null"`
	Slug        string                      `json:"slug" bson:"slug" gorm:"uniqueIndex;size:191;not null"`
	Description string                      `json:"description" bson:"description" gorm:"type:text"`
	Level       string                      `json:"level" bson:"level" gorm:"default:'beginner'"` // beginner, intermediate, advanced
	Language    string                      `json:"language" bson:"language"`
	LessonCount int                         `json:"lessonCount" bson:"lessonCount" gorm:"default:0"`
	Modules     datatypes.JSONSlice[string] `json:"modules" bson:"modules" gorm:"column:module_ids"` // Module IDs in teaching order
	CreatedAt   time.Time                   `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt" bson:"updatedAt"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	AssignID(&c.ID)
	return nil
}

// AssignID fills an empty document ID with a fresh UUID.
func AssignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
