package seeder

import (
	"fmt"

	"devlearn/content"
)

// Group is one module of a course and the lesson titles it holds, in order.
type Group struct {
	Title   string
	Lessons []string
}

var levelLabels = [...]string{"Beginner", "Intermediate", "Advanced"}

// Partition splits a course's lessons into modules. A course without a module
// plan gets one synthetic module. A course that names a plan uses it when the
// plan places every lesson exactly once, and otherwise falls back to three
// contiguous level groups.
func Partition(spec content.CourseSpec, plan *content.ModulePlan) []Group {
	if spec.ModulePlan == "" {
		return []Group{{
			Title:   fmt.Sprintf("%s Module 1", spec.Title),
			Lessons: append([]string(nil), spec.Lessons...),
		}}
	}
	if plan.Covers(spec.Lessons) {
		groups := make([]Group, 0, len(plan.Modules))
		for _, m := range plan.Modules {
			groups = append(groups, Group{Title: m.Title, Lessons: append([]string(nil), m.Lessons...)})
		}
		return groups
	}
	return thirds(spec)
}

func thirds(spec content.CourseSpec) []Group {
	n := len(spec.Lessons)
	groups := make([]Group, 0, len(levelLabels))
	for i, label := range levelLabels {
		lo, hi := i*n/len(levelLabels), (i+1)*n/len(levelLabels)
		if lo == hi {
			continue
		}
		groups = append(groups, Group{
			Title:   fmt.Sprintf("%s - %s", spec.Title, label),
			Lessons: append([]string(nil), spec.Lessons[lo:hi]...),
		})
	}
	return groups
}

// Slot places one lesson: the module it belongs to and its course-wide order.
type Slot struct {
	Module int // index into the groups passed to Flatten
	Title  string
	Order  int // 1-based, unique across the course
}

// Flatten lays the groups out as one sequence in module-then-lesson order and
// numbers it 1..N.
func Flatten(groups []Group) []Slot {
	var slots []Slot
	for gi, g := range groups {
		for _, title := range g.Lessons {
			slots = append(slots, Slot{Module: gi, Title: title})
		}
	}
	for i := range slots {
		slots[i].Order = i + 1
	}
	return slots
}
