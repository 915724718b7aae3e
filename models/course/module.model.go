package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Module represents a section/module within a course
type Module struct {
	ID        string                      `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	CourseID  string                      `json:"course" bson:"course" gorm:"size:36;not null;uniqueIndex:idx_module_course_order"`
	Title     string                      `json:"title" bson:"title" gorm:"not null"`
	Order     int                         `json:"order" bson:"order" gorm:"column:order_index;not null;uniqueIndex:idx_module_course_order"` // Module order in course, 1-based
	Lessons   datatypes.JSONSlice[string] `json:"lessons" bson:"lessons" gorm:"column:lesson_ids"`                                         // Lesson IDs in module order
	CreatedAt time.Time                   `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time                   `json:"updatedAt" bson:"updatedAt"`
}

func (m *Module) BeforeCreate(tx *gorm.DB) error {
	AssignID(&m.ID)
	return nil
}
