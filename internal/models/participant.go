// Package models defines the value types shared across the classnet
// pipeline: participant profiles, interaction events, session records,
// graph metrics, and engagement records. All types are plain values;
// once a session is generated they are never mutated downstream.
package models

import "fmt"

// AcademicLevel is a participant's enrollment level.
type AcademicLevel string

const (
	LevelUndergraduate AcademicLevel = "undergraduate"
	LevelPostgraduate  AcademicLevel = "postgraduate"
)

// RiskLevel is a participant's externally assessed academic risk band.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// PersonalityType drives the pairwise interaction probability model.
type PersonalityType string

const (
	PersonalityExtrovert PersonalityType = "extrovert"
	PersonalityIntrovert PersonalityType = "introvert"
	PersonalityAmbivert  PersonalityType = "ambivert"
)

// Participant is a resolved profile for one session member.
// Immutable once provisioned for a session.
type Participant struct {
	ID            string          `json:"id" yaml:"id"`
	Name          string          `json:"name" yaml:"name"`
	AcademicLevel AcademicLevel   `json:"academic_level" yaml:"academic_level"`
	Major         string          `json:"major" yaml:"major"`
	GPA           float64         `json:"gpa" yaml:"gpa"`
	RiskLevel     RiskLevel       `json:"risk_level" yaml:"risk_level"`
	Personality   PersonalityType `json:"personality_type" yaml:"personality_type"`

	// ParticipationScore is an external 0-100 engagement baseline.
	ParticipationScore int `json:"participation_score" yaml:"participation_score"`
}

// Validate reports whether the profile satisfies the field invariants.
// Violations wrap ErrInvalidProfile.
func (p Participant) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidProfile)
	}
	switch p.AcademicLevel {
	case LevelUndergraduate, LevelPostgraduate:
	default:
		return fmt.Errorf("%w: %s: academic level %q", ErrInvalidProfile, p.ID, p.AcademicLevel)
	}
	if p.GPA < 0 || p.GPA > 4.0 {
		return fmt.Errorf("%w: %s: gpa %.2f outside [0, 4]", ErrInvalidProfile, p.ID, p.GPA)
	}
	switch p.RiskLevel {
	case RiskLow, RiskMedium, RiskHigh:
	default:
		return fmt.Errorf("%w: %s: risk level %q", ErrInvalidProfile, p.ID, p.RiskLevel)
	}
	switch p.Personality {
	case PersonalityExtrovert, PersonalityIntrovert, PersonalityAmbivert:
	default:
		return fmt.Errorf("%w: %s: personality %q", ErrInvalidProfile, p.ID, p.Personality)
	}
	if p.ParticipationScore < 0 || p.ParticipationScore > 100 {
		return fmt.Errorf("%w: %s: participation score %d outside [0, 100]", ErrInvalidProfile, p.ID, p.ParticipationScore)
	}
	return nil
}
