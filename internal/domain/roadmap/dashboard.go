package roadmap

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SavedRoadmap struct {
	RoadmapID uuid.UUID `json:"roadmapId"`
}

type CompletedStep struct {
	StepTitle   string     `json:"stepTitle"`
	RoadmapID   *uuid.UUID `json:"roadmapId,omitempty"`
	CompletedAt time.Time  `json:"completedAt"`
}

// Dashboard is the per-user progress ledger. CompletedSteps is append-only;
// it is an analytics aid and never the source of truth for step status.
type Dashboard struct {
	ID             uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"_id"`
	UserID         string                             `gorm:"column:user_id;not null;uniqueIndex" json:"userId"`
	SavedRoadmaps  datatypes.JSONSlice[SavedRoadmap]  `gorm:"column:saved_roadmaps" json:"savedRoadmaps"`
	CompletedSteps datatypes.JSONSlice[CompletedStep] `gorm:"column:completed_steps" json:"completedSteps"`
	CurrentStreak  int                                `gorm:"column:current_streak;not null;default:0" json:"currentStreak"`
	LastActive     time.Time                          `gorm:"column:last_active;not null" json:"lastActive"`
	Version        int                                `gorm:"column:version;not null;default:1" json:"version"`
	CreatedAt      time.Time                          `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time                          `gorm:"not null" json:"updatedAt"`
}

func (Dashboard) TableName() string { return "dashboard" }

func (d *Dashboard) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Version == 0 {
		d.Version = 1
	}
	if d.LastActive.IsZero() {
		d.LastActive = time.Now().UTC()
	}
	if d.SavedRoadmaps == nil {
		d.SavedRoadmaps = datatypes.JSONSlice[SavedRoadmap]{}
	}
	if d.CompletedSteps == nil {
		d.CompletedSteps = datatypes.JSONSlice[CompletedStep]{}
	}
	return nil
}

// NewDashboard returns an unsaved, empty ledger for userID.
func NewDashboard(userID string, now time.Time) *Dashboard {
	return &Dashboard{
		UserID:         userID,
		SavedRoadmaps:  datatypes.JSONSlice[SavedRoadmap]{},
		CompletedSteps: datatypes.JSONSlice[CompletedStep]{},
		LastActive:     now.UTC(),
	}
}

func (d *Dashboard) HasRoadmap(id uuid.UUID) bool {
	for _, s := range d.SavedRoadmaps {
		if s.RoadmapID == id {
			return true
		}
	}
	return false
}

// LinkRoadmap appends id to SavedRoadmaps unless already present.
func (d *Dashboard) LinkRoadmap(id uuid.UUID) bool {
	if id == uuid.Nil || d.HasRoadmap(id) {
		return false
	}
	d.SavedRoadmaps = append(d.SavedRoadmaps, SavedRoadmap{RoadmapID: id})
	return true
}

// UnlinkRoadmap removes id from SavedRoadmaps, keeping insertion order.
func (d *Dashboard) UnlinkRoadmap(id uuid.UUID) bool {
	kept := make(datatypes.JSONSlice[SavedRoadmap], 0, len(d.SavedRoadmaps))
	removed := false
	for _, s := range d.SavedRoadmaps {
		if s.RoadmapID == id {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	d.SavedRoadmaps = kept
	return removed
}

// RecordCompletion appends a ledger entry and advances the activity streak.
func (d *Dashboard) RecordCompletion(stepTitle string, roadmapID uuid.UUID, at time.Time) {
	at = at.UTC()
	entry := CompletedStep{StepTitle: stepTitle, CompletedAt: at}
	if roadmapID != uuid.Nil {
		id := roadmapID
		entry.RoadmapID = &id
	}
	d.CurrentStreak = NextStreak(d.CurrentStreak, d.LastActive, at)
	d.CompletedSteps = append(d.CompletedSteps, entry)
	d.LastActive = at
}

// NextStreak counts consecutive UTC days with activity. Activity on the same
// day as lastActive keeps the streak (minimum 1), the next day extends it,
// and any longer gap restarts it at 1.
func NextStreak(streak int, lastActive, at time.Time) int {
	if lastActive.IsZero() {
		return 1
	}
	last := dayOf(lastActive)
	now := dayOf(at)
	switch {
	case now.Equal(last):
		if streak < 1 {
			return 1
		}
		return streak
	case now.Equal(last.AddDate(0, 0, 1)):
		return streak + 1
	default:
		return 1
	}
}

func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
