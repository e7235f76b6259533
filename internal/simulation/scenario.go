package simulation

import (
	"fmt"
	"time"

	"github.com/kwatanabe/classnet/internal/config"
	"github.com/kwatanabe/classnet/internal/models"
	"github.com/kwatanabe/classnet/internal/timeline"
)

// Scenario defines a complete simulation experiment.
type Scenario struct {
	Name            string
	SessionType     models.SessionType
	DurationMinutes int // 0 = 60

	// Roster pins explicit participant profiles. When empty,
	// SyntheticCount synthetic profiles are drawn from the scenario RNG.
	Roster         []ParticipantSpec
	SyntheticCount int // 0 = 10

	Sessions int    // number of sessions to run; 0 = 1
	Seed     uint64 // RNG seed; the same seed reproduces the same result

	// Start stamps the first session; zero uses a fixed reference date.
	// Subsequent sessions advance one week each.
	Start time.Time

	Config    *config.SimConfig   // nil = config.Default()
	Overrides *timeline.Overrides // optional per-session parameter overrides
}

// ParticipantSpec is a flat builder for constructing participant profiles
// in tests. Zero fields get sensible defaults via ToParticipant.
type ParticipantSpec struct {
	ID            string
	Personality   models.PersonalityType
	GPA           float64
	RiskLevel     models.RiskLevel
	Participation int
	AcademicLevel models.AcademicLevel
	Major         string
}

// ToParticipant converts a ParticipantSpec into a full profile.
func (s ParticipantSpec) ToParticipant() models.Participant {
	p := models.Participant{
		ID:                 s.ID,
		Name:               "Student " + s.ID,
		AcademicLevel:      s.AcademicLevel,
		Major:              s.Major,
		GPA:                s.GPA,
		RiskLevel:          s.RiskLevel,
		Personality:        s.Personality,
		ParticipationScore: s.Participation,
	}
	if p.AcademicLevel == "" {
		p.AcademicLevel = models.LevelUndergraduate
	}
	if p.Major == "" {
		p.Major = "Undeclared"
	}
	if p.GPA == 0 {
		p.GPA = 3.0
	}
	if p.RiskLevel == "" {
		p.RiskLevel = models.RiskLow
	}
	if p.Personality == "" {
		p.Personality = models.PersonalityAmbivert
	}
	return p
}

// Result captures every generated session, in order.
type Result struct {
	Records []*models.SessionRecord
}

// staticSource serves the scenario's pinned roster.
type staticSource map[string]models.Participant

func (s staticSource) Profile(id string) (models.Participant, error) {
	p, ok := s[id]
	if !ok {
		return models.Participant{}, fmt.Errorf("%w: no profile for %s", models.ErrInvalidProfile, id)
	}
	return p, nil
}
