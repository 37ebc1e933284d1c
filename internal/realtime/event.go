package realtime

import "time"

type EventType string

const (
	EventRoadmapCreated       EventType = "roadmap.created"
	EventRoadmapUpdated       EventType = "roadmap.updated"
	EventRoadmapEnriched      EventType = "roadmap.enriched"
	EventRoadmapStepCompleted EventType = "roadmap.step_completed"
	EventRoadmapDeleted       EventType = "roadmap.deleted"
	EventDashboardUpdated     EventType = "dashboard.updated"
)

// Event is a roadmap lifecycle notification. Delivery is best effort;
// consumers must treat stored documents as the source of truth.
type Event struct {
	Type      EventType      `json:"type"`
	UserID    string         `json:"userId"`
	RoadmapID string         `json:"roadmapId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	At        time.Time      `json:"at"`
}

func NewEvent(t EventType, userID, roadmapID string, data map[string]any) Event {
	return Event{Type: t, UserID: userID, RoadmapID: roadmapID, Data: data, At: time.Now().UTC()}
}
