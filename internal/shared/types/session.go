package types

import "time"

// Priority represents how urgent a study session is
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Status represents the session lifecycle state.
// The wire format historically used "upcoming" for anything not yet
// completed; StatusFromWire translates that alias so the rest of the
// codebase only ever sees the canonical values below.
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in-progress"
	StatusPostponed  Status = "postponed"
	StatusCompleted  Status = "completed"
)

// statusAliases maps legacy wire values to canonical statuses
var statusAliases = map[string]Status{
	"upcoming": StatusPlanned,
}

// Valid reports whether s is a canonical status
func (s Status) Valid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusPostponed, StatusCompleted:
		return true
	}
	return false
}

// StatusFromWire resolves a raw status string to a canonical Status.
// Unknown values fall back to planned rather than failing the whole
// record; a session with a garbled status is still a session.
func StatusFromWire(raw string) Status {
	if alias, ok := statusAliases[raw]; ok {
		return alias
	}
	s := Status(raw)
	if s.Valid() {
		return s
	}
	return StatusPlanned
}

// Session is a planned or completed study session
type Session struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Subject        string     `json:"subject"`
	Date           string     `json:"date"` // calendar date, "2006-01-02"
	StartTime      string     `json:"startTime,omitempty"`
	EndTime        string     `json:"endTime,omitempty"`
	Duration       string     `json:"duration,omitempty"` // derived, e.g. "1h 30m" or "N/A"
	Priority       Priority   `json:"priority"`
	Status         Status     `json:"status"`
	Bookmarked     bool       `json:"bookmarked"`
	Notes          string     `json:"notes,omitempty"`
	Topics         string     `json:"topics,omitempty"`
	CompletionDate *time.Time `json:"completionDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Draft holds user-supplied fields for creating or updating a session.
// The server assigns the ID and applies defaults for anything omitted.
type Draft struct {
	Title      string   `json:"title"`
	Subject    string   `json:"subject"`
	Date       string   `json:"date"`
	StartTime  string   `json:"startTime,omitempty"`
	EndTime    string   `json:"endTime,omitempty"`
	Duration   string   `json:"duration,omitempty"`
	Priority   Priority `json:"priority,omitempty"`
	Status     Status   `json:"status,omitempty"`
	Bookmarked bool     `json:"bookmarked"`
	Notes      string   `json:"notes,omitempty"`
	Topics     string   `json:"topics,omitempty"`
}

// Normalize applies the server-side defaults to a draft
func (d *Draft) Normalize() {
	if d.Priority == "" || !d.Priority.Valid() {
		d.Priority = PriorityMedium
	}
	d.Status = StatusFromWire(string(d.Status))
}

// Filters narrows the visible slice of the active set
type Filters struct {
	Priority   string `json:"priority"` // "all" or a Priority value
	Status     string `json:"status"`   // "all" or a Status value
	Bookmarked bool   `json:"bookmarked"`
}

// DefaultFilters matches every session
func DefaultFilters() Filters {
	return Filters{Priority: "all", Status: "all"}
}
