package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson is one unit of a module. Order is unique across the whole course,
// not just the owning module.
type Lesson struct {
	ID           string                            `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	CourseID     string                            `json:"course" bson:"course" gorm:"size:36;not null;uniqueIndex:idx_lesson_course_order"`
	ModuleID     string                            `json:"module" bson:"module" gorm:"size:36;not null;index"`
	Title        string                            `json:"title" bson:"title" gorm:"not null"`
	Order        int                               `json:"order" bson:"order" gorm:"column:order_index;not null;uniqueIndex:idx_lesson_course_order"`
	Content      string                            `json:"content" bson:"content" gorm:"type:text"`          // Full markdown body
	ContentHTML  string                            `json:"contentHtml" bson:"contentHtml" gorm:"type:text"`  // Rendered body
	CodeExamples datatypes.JSONSlice[CodeExample]  `json:"codeExamples" bson:"codeExamples"`
	Exercises    datatypes.JSONSlice[string]       `json:"exercises" bson:"exercises"`
	Quiz         datatypes.JSONSlice[QuizQuestion] `json:"quiz" bson:"quiz"`
	Resources    datatypes.JSONSlice[Resource]     `json:"resources" bson:"resources"`
	CreatedAt    time.Time                         `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time                         `json:"updatedAt" bson:"updatedAt"`
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	AssignID(&l.ID)
	return nil
}

// CodeExample is a sub-document of Lesson.
type CodeExample struct {
	Title       string `json:"title" bson:"title"`
	Language    string `json:"language" bson:"language"`
	Code        string `json:"code" bson:"code"`
	Explanation string `json:"explanation" bson:"explanation"`
}

// QuizQuestion is a multiple choice question; CorrectAnswer indexes Options.
type QuizQuestion struct {
	Question      string   `json:"question" bson:"question" yaml:"question" validate:"required"`
	Options       []string `json:"options" bson:"options" yaml:"options" validate:"min=2,dive,required"`
	CorrectAnswer int      `json:"correctAnswer" bson:"correctAnswer" yaml:"correctAnswer" validate:"gte=0"`
	Explanation   string   `json:"explanation,omitempty" bson:"explanation,omitempty" yaml:"explanation"`
}

// Resource types accepted by content validation.
const (
	ResourceDocumentation = "documentation"
	ResourceArticle       = "article"
	ResourceVideo         = "video"
	ResourceTutorial      = "tutorial"
	ResourceTool          = "tool"
)

type Resource struct {
	Title string `json:"title" bson:"title" yaml:"title" validate:"required"`
	Type  string `json:"type" bson:"type" yaml:"type" validate:"oneof=documentation article video tutorial tool"`
	URL   string `json:"url" bson:"url" yaml:"url" validate:"required,url"`
}
