package models

import (
	"fmt"
	"time"
)

// SessionType identifies the pedagogical context of a session. It doubles
// as the context stamped onto interaction events. "break" is a valid event
// context but has no dedicated activity-peak schedule; it takes the
// unknown-context fallback during generation.
type SessionType string

const (
	SessionLecture   SessionType = "lecture"
	SessionTutorial  SessionType = "tutorial"
	SessionLab       SessionType = "lab"
	SessionGroupWork SessionType = "group-work"
	SessionBreak     SessionType = "break"
)

// InteractionType classifies what a pairwise interaction was about.
type InteractionType string

const (
	InteractionDiscussion    InteractionType = "discussion"
	InteractionCollaboration InteractionType = "collaboration"
	InteractionSocial        InteractionType = "social"
	InteractionHelpSeeking   InteractionType = "help-seeking"
)

// InteractionEvent is one synthesized pairwise interaction. Events are
// created once by the timeline generator, owned by their session's event
// collection, and never mutated or deleted afterwards.
type InteractionEvent struct {
	ID        string `json:"id" yaml:"id"`
	SessionID string `json:"session_id" yaml:"session_id"`

	// Participant1 is the initiating party; Participant2 the responder.
	// The two are always distinct.
	Participant1 string `json:"participant1" yaml:"participant1"`
	Participant2 string `json:"participant2" yaml:"participant2"`

	StartTime time.Time `json:"start_time" yaml:"start_time"`
	EndTime   time.Time `json:"end_time" yaml:"end_time"`

	// Duration is the event length in seconds; always EndTime - StartTime.
	Duration float64 `json:"duration_seconds" yaml:"duration_seconds"`

	// AvgDistance is the mean pairwise distance in meters (synthetic).
	AvgDistance float64 `json:"avg_distance" yaml:"avg_distance"`

	// AvgOrientationDiff is the mean facing-angle difference in degrees, 0-180.
	AvgOrientationDiff float64 `json:"avg_orientation_diff" yaml:"avg_orientation_diff"`

	// Confidence is the detection confidence in [0, 1].
	Confidence float64 `json:"confidence" yaml:"confidence"`

	Type    InteractionType `json:"interaction_type" yaml:"interaction_type"`
	Context SessionType     `json:"context" yaml:"context"`
}

// Involves reports whether the event touches the given participant.
func (e InteractionEvent) Involves(participantID string) bool {
	return e.Participant1 == participantID || e.Participant2 == participantID
}

// Validate reports whether the event satisfies the construction invariants.
// Violations wrap ErrInvalidEvent.
func (e InteractionEvent) Validate() error {
	if e.Participant1 == e.Participant2 {
		return fmt.Errorf("%w: %s: self-interaction for %s", ErrInvalidEvent, e.ID, e.Participant1)
	}
	if !e.EndTime.After(e.StartTime) {
		return fmt.Errorf("%w: %s: end time not after start time", ErrInvalidEvent, e.ID)
	}
	if e.Duration <= 0 {
		return fmt.Errorf("%w: %s: duration %.2fs", ErrInvalidEvent, e.ID, e.Duration)
	}
	if e.AvgDistance <= 0 {
		return fmt.Errorf("%w: %s: distance %.2fm", ErrInvalidEvent, e.ID, e.AvgDistance)
	}
	if e.AvgOrientationDiff < 0 || e.AvgOrientationDiff > 180 {
		return fmt.Errorf("%w: %s: orientation diff %.2f outside [0, 180]", ErrInvalidEvent, e.ID, e.AvgOrientationDiff)
	}
	if e.Confidence < 0 || e.Confidence > 1 {
		return fmt.Errorf("%w: %s: confidence %.2f outside [0, 1]", ErrInvalidEvent, e.ID, e.Confidence)
	}
	switch e.Type {
	case InteractionDiscussion, InteractionCollaboration, InteractionSocial, InteractionHelpSeeking:
	default:
		return fmt.Errorf("%w: %s: interaction type %q", ErrInvalidEvent, e.ID, e.Type)
	}
	return nil
}
