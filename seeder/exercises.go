package seeder

import (
	"regexp"
	"strings"
)

const exercisesHeading = "### Practice Exercises"

var listMarkerPattern = regexp.MustCompile(`^(?:[-*](?:\s+|$)|\d+\.\s*)`)

// ExtractExercises returns the items listed under "### Practice Exercises", up
// to the next heading of level two or deeper. List markers are stripped and
// blank lines dropped. A lesson without the section has no exercises.
func ExtractExercises(markdown string) []string {
	exercises := []string{}
	inSection := false

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if !inSection {
			if trimmed == exercisesHeading {
				inSection = true
			}
			continue
		}
		if strings.HasPrefix(trimmed, "##") {
			break
		}
		item := strings.TrimSpace(listMarkerPattern.ReplaceAllString(trimmed, ""))
		if item != "" {
			exercises = append(exercises, item)
		}
	}
	return exercises
}
