package model

import "time"

const (
	StatusIdle      = "idle"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// AddExerciseSentinel is the selector placeholder the UI shows before a custom
// exercise has been resolved to a real name. It is never a valid entry value.
const AddExerciseSentinel = "➕ Add custom exercise"

// Session is one workout occurrence: a (user, date, daytype) with zero or more
// entries. completed_at is set exactly once by the finish action; sessions
// without it never count toward history.
type Session struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Date        string     `json:"date"`
	Daytype     string     `json:"daytype"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Entry is one logged set. Append-only; repeated identical sets are legitimate.
type Entry struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"sessionId"`
	ExerciseName string    `json:"exerciseName"`
	Weight       float64   `json:"weight"`
	Rep          int       `json:"rep"`
	CreatedAt    time.Time `json:"createdAt"`
}

// EntryRow is a display row in the workflow buffer. Buffered rows are retained
// for the summary view even when the backing insert did not visibly succeed.
type EntryRow struct {
	Date     string  `json:"date"`
	Daytype  string  `json:"daytype"`
	Exercise string  `json:"exercise"`
	Weight   float64 `json:"weight"`
	Rep      int     `json:"rep"`
}

// WorkflowState is the serializable projection the workflow engine maintains
// per user: idle -> active -> completed -> idle. It must always be
// reconstructable from the session/entry tables plus the LastSessionID hint.
type WorkflowState struct {
	UserID          string
	ActiveDaytype   *string
	ActiveDate      *string
	ActiveSessionID *string
	Completed       bool
	LastSessionID   *string
	BufferedRows    []EntryRow
	UpdatedAt       time.Time
}

// Status derives the workflow phase from the state fields.
func (s *WorkflowState) Status() string {
	switch {
	case s.Completed:
		return StatusCompleted
	case s.ActiveDaytype != nil && s.ActiveDate != nil:
		return StatusActive
	default:
		return StatusIdle
	}
}
