package content

import (
	"fmt"
	"sort"
	"strings"

	courseModels "devlearn/models/course"

	"github.com/go-playground/validator/v10"
)

// ValidationError collects every rule a content file broke, keyed by field path.
type ValidationError struct {
	Source string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("invalid content in %s: %s", e.Source, strings.Join(parts, "; "))
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("codelang", func(fl validator.FieldLevel) bool {
		return courseModels.IsAllowedLanguage(fl.Field().String())
	})
	v.RegisterStructValidation(courseSpecRules, CourseSpec{})
	v.RegisterStructValidation(quizRules, courseModels.QuizQuestion{})
	return v
}

func courseSpecRules(sl validator.StructLevel) {
	spec := sl.Current().Interface().(CourseSpec)
	if len(spec.Lessons) > 0 && spec.LessonCount != len(spec.Lessons) {
		sl.ReportError(spec.LessonCount, "LessonCount", "lessonCount", "eqlessons", "")
	}
}

func quizRules(sl validator.StructLevel) {
	q := sl.Current().Interface().(courseModels.QuizQuestion)
	if q.CorrectAnswer >= len(q.Options) {
		sl.ReportError(q.CorrectAnswer, "CorrectAnswer", "correctAnswer", "ltoptions", "")
	}
}

// validate runs the struct rules and turns a failure into a *ValidationError.
func validate(v *validator.Validate, source string, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate %s: %w", source, err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Namespace()] = ruleMessage(fe)
	}
	return &ValidationError{Source: source, Fields: fields}
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "codelang":
		return fmt.Sprintf("%q is not a supported code language", fe.Value())
	case "eqlessons":
		return "must equal the number of lessons"
	case "ltoptions":
		return "must index into options"
	case "unique":
		return "must not repeat"
	case "min", "gt", "gte":
		return fmt.Sprintf("fails %s=%s", fe.Tag(), fe.Param())
	default:
		return "fails " + fe.Tag()
	}
}
