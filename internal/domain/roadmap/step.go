package roadmap

type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepCurrent   StepStatus = "current"
	StepCompleted StepStatus = "completed"
)

func (s StepStatus) Valid() bool {
	switch s {
	case StepPending, StepCurrent, StepCompleted:
		return true
	}
	return false
}

type Step struct {
	Title      string     `json:"title"`
	Status     StepStatus `json:"status"`
	Resources  []Resource `json:"resources"`
	Duration   string     `json:"duration,omitempty"`
	Difficulty string     `json:"difficulty"`
}

// CloneSteps deep-copies steps so callers can derive a new value without
// aliasing the stored snapshot.
func CloneSteps(in []Step) []Step {
	if in == nil {
		return nil
	}
	out := make([]Step, len(in))
	for i, s := range in {
		out[i] = s
		if s.Resources != nil {
			out[i].Resources = append([]Resource(nil), s.Resources...)
		}
	}
	return out
}
