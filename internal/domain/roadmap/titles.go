package roadmap

import (
	"fmt"
	"strings"
)

// StepTitles returns the three step titles for skill at level.
func StepTitles(skill string, level Level) []string {
	s := strings.TrimSpace(skill)
	switch level {
	case LevelAdvanced:
		return []string{
			fmt.Sprintf("Advanced %s Concepts", s),
			fmt.Sprintf("Scalable %s Architectures", s),
			fmt.Sprintf("Performance & Optimization in %s", s),
		}
	case LevelIntermediate:
		return []string{
			fmt.Sprintf("%s Fundamentals", s),
			fmt.Sprintf("Intermediate %s Projects", s),
			fmt.Sprintf("Apply %s in Real Projects", s),
		}
	default:
		return []string{
			fmt.Sprintf("Introduction to %s", s),
			fmt.Sprintf("%s Basics Practice", s),
			fmt.Sprintf("First %s Project", s),
		}
	}
}

// NewSteps lays out a fresh roadmap: the first step is current, the rest
// pending. resources[i] is assigned to step i; missing sets leave the step
// without links.
func NewSteps(skill string, level Level, resources [][]Resource) []Step {
	titles := StepTitles(skill, level)
	out := make([]Step, len(titles))
	for i, title := range titles {
		status := StepPending
		if i == 0 {
			status = StepCurrent
		}
		var res []Resource
		if i < len(resources) {
			res = append([]Resource(nil), resources[i]...)
		}
		if res == nil {
			res = []Resource{}
		}
		out[i] = Step{Title: title, Status: status, Resources: res, Difficulty: level.Difficulty()}
	}
	return out
}

// DefaultGoal is used when a roadmap is created without one.
func DefaultGoal(skill string) string {
	return "Learn " + strings.TrimSpace(skill)
}
