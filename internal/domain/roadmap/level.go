package roadmap

import "strings"

// Level is the canonical experience level used to pick search terms,
// step wording and the resource recipe.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// NormalizeLevel maps free text onto a canonical level. Unrecognized or empty
// input is treated as beginner.
func NormalizeLevel(raw string) Level {
	switch Level(strings.ToLower(strings.TrimSpace(raw))) {
	case LevelAdvanced:
		return LevelAdvanced
	case LevelIntermediate:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}

func (l Level) String() string { return string(l) }

// Difficulty is the display label stored on each step.
func (l Level) Difficulty() string {
	switch l {
	case LevelAdvanced:
		return "Advanced"
	case LevelIntermediate:
		return "Intermediate"
	default:
		return "Beginner"
	}
}
