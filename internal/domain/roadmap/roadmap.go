package roadmap

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Roadmap struct {
	ID        uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"_id"`
	UserID    string                    `gorm:"column:user_id;not null;index" json:"userId"`
	Skill     string                    `gorm:"column:skill;not null" json:"skill"`
	Level     string                    `gorm:"column:level;not null" json:"level"`
	Goal      string                    `gorm:"column:goal" json:"goal,omitempty"`
	Steps     datatypes.JSONSlice[Step] `gorm:"column:steps" json:"steps"`
	Version   int                       `gorm:"column:version;not null;default:1" json:"version"`
	CreatedAt time.Time                 `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time                 `gorm:"not null" json:"updatedAt"`
}

func (Roadmap) TableName() string { return "roadmap" }

func (r *Roadmap) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Version == 0 {
		r.Version = 1
	}
	return nil
}

// NormalizedLevel returns the canonical level for the stored free-text level.
func (r *Roadmap) NormalizedLevel() Level { return NormalizeLevel(r.Level) }

// NeedsEnrichment reports whether the roadmap predates resource generation
// or failed to populate: its first step's first resource has no URL.
func (r *Roadmap) NeedsEnrichment() bool {
	if r == nil || len(r.Steps) == 0 || len(r.Steps[0].Resources) == 0 {
		return true
	}
	return r.Steps[0].Resources[0].URL == ""
}

// Summary is the compact listing shape.
type Summary struct {
	ID    uuid.UUID `json:"_id"`
	Skill string    `json:"skill"`
	Level string    `json:"level"`
}

func (r *Roadmap) Summary() Summary {
	return Summary{ID: r.ID, Skill: r.Skill, Level: r.Level}
}
