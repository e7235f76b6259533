package roster

import (
	"fmt"
	"math/rand/v2"

	"github.com/kwatanabe/classnet/internal/models"
)

// majors sampled by the synthetic source.
var majors = []string{
	"Computer Science", "Engineering", "Mathematics", "Physics",
	"Biology", "Chemistry", "Psychology", "Business", "Economics",
}

// SyntheticSource fabricates plausible participant profiles from an
// injected RNG. Identical identifier sequences against the same seeded
// RNG reproduce identical profiles, which the determinism tests rely on.
//
// Distributions: 30% postgraduate, GPA uniform in [2, 4), risk
// 60/25/15 low/medium/high, personality 30/30/40
// extrovert/introvert/ambivert, participation uniform in [0, 100).
type SyntheticSource struct {
	rng *rand.Rand
}

// NewSyntheticSource creates a synthetic profile source drawing from rng.
func NewSyntheticSource(rng *rand.Rand) *SyntheticSource {
	return &SyntheticSource{rng: rng}
}

// Profile fabricates a profile for id.
func (s *SyntheticSource) Profile(id string) (models.Participant, error) {
	if id == "" {
		return models.Participant{}, fmt.Errorf("%w: empty id", models.ErrInvalidProfile)
	}

	level := models.LevelUndergraduate
	if s.rng.Float64() > 0.7 {
		level = models.LevelPostgraduate
	}

	return models.Participant{
		ID:                 id,
		Name:               "Student " + shortID(id),
		AcademicLevel:      level,
		Major:              majors[s.rng.IntN(len(majors))],
		GPA:                2.0 + s.rng.Float64()*2.0,
		RiskLevel:          s.riskLevel(),
		Personality:        s.personality(),
		ParticipationScore: s.rng.IntN(100),
	}, nil
}

func (s *SyntheticSource) riskLevel() models.RiskLevel {
	switch r := s.rng.Float64(); {
	case r < 0.6:
		return models.RiskLow
	case r < 0.85:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

func (s *SyntheticSource) personality() models.PersonalityType {
	switch r := s.rng.Float64(); {
	case r < 0.3:
		return models.PersonalityExtrovert
	case r < 0.6:
		return models.PersonalityIntrovert
	default:
		return models.PersonalityAmbivert
	}
}

// shortID keeps display names readable for UUID-style identifiers.
func shortID(id string) string {
	if len(id) <= 3 {
		return id
	}
	return id[len(id)-3:]
}
