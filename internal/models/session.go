package models

import "time"

// SessionRecord is the atomic output of session generation: the resolved
// roster in insertion order, every synthesized interaction event, and one
// graph-metrics snapshot computed over the full event set. There is no
// partial or incremental form of a session.
type SessionRecord struct {
	ID              string             `json:"id" yaml:"id"`
	CourseID        string             `json:"course_id" yaml:"course_id"`
	Date            time.Time          `json:"date" yaml:"date"`
	DurationMinutes int                `json:"duration_minutes" yaml:"duration_minutes"`
	SessionType     SessionType        `json:"session_type" yaml:"session_type"`
	Participants    []Participant      `json:"participants" yaml:"participants"`
	Interactions    []InteractionEvent `json:"interactions" yaml:"interactions"`
	Metrics         GraphMetrics       `json:"network_metrics" yaml:"network_metrics"`
}

// Participant returns the roster entry with the given identifier.
func (s *SessionRecord) Participant(id string) (Participant, bool) {
	for _, p := range s.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return Participant{}, false
}

// EventsInvolving returns the subset of the session's events that touch
// the given participant, in session order.
func (s *SessionRecord) EventsInvolving(participantID string) []InteractionEvent {
	var out []InteractionEvent
	for _, e := range s.Interactions {
		if e.Involves(participantID) {
			out = append(out, e)
		}
	}
	return out
}

// ParticipantIDs returns the roster identifiers in insertion order.
func (s *SessionRecord) ParticipantIDs() []string {
	ids := make([]string, len(s.Participants))
	for i, p := range s.Participants {
		ids[i] = p.ID
	}
	return ids
}
