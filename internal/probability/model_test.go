package probability

import (
	"math"
	"testing"

	"github.com/kwatanabe/classnet/internal/config"
	"github.com/kwatanabe/classnet/internal/models"
)

func participant(id string, pt models.PersonalityType, gpa float64, risk models.RiskLevel) models.Participant {
	return models.Participant{
		ID:                 id,
		Name:               "Student " + id,
		AcademicLevel:      models.LevelUndergraduate,
		Major:              "Mathematics",
		GPA:                gpa,
		RiskLevel:          risk,
		Personality:        pt,
		ParticipationScore: 50,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestProbability_FactorComposition(t *testing.T) {
	m := New(nil)

	tests := []struct {
		name    string
		a, b    models.Participant
		context models.SessionType
		want    float64
	}{
		{
			// base * ambivert^2 * lecture
			"ambivert pair in lecture",
			participant("a", models.PersonalityAmbivert, 3.9, models.RiskLow),
			participant("b", models.PersonalityAmbivert, 2.1, models.RiskLow),
			models.SessionLecture,
			0.1 * 1.0 * 1.0 * 0.3,
		},
		{
			// base * extrovert * ambivert * tutorial
			"extrovert lifts tutorial",
			participant("a", models.PersonalityExtrovert, 3.9, models.RiskLow),
			participant("b", models.PersonalityAmbivert, 2.1, models.RiskLow),
			models.SessionTutorial,
			0.1 * 1.5 * 1.0 * 0.8,
		},
		{
			// base * introvert^2 * pair dampening * lab
			"introvert pair dampened twice",
			participant("a", models.PersonalityIntrovert, 3.9, models.RiskLow),
			participant("b", models.PersonalityIntrovert, 2.1, models.RiskLow),
			models.SessionLab,
			0.1 * 0.7 * 0.7 * 0.5 * 0.9,
		},
		{
			// base * group-work * similarity bonus
			"gpa similarity bonus",
			participant("a", models.PersonalityAmbivert, 3.0, models.RiskLow),
			participant("b", models.PersonalityAmbivert, 3.2, models.RiskLow),
			models.SessionGroupWork,
			0.1 * 1.2 * 1.2,
		},
		{
			// base * group-work * high-risk help-seeking boost
			"high risk seeks help in group work",
			participant("a", models.PersonalityAmbivert, 3.9, models.RiskHigh),
			participant("b", models.PersonalityAmbivert, 2.1, models.RiskLow),
			models.SessionGroupWork,
			0.1 * 1.2 * 1.3,
		},
		{
			// base * lecture * high-risk withdrawal
			"high risk withdraws in lecture",
			participant("a", models.PersonalityAmbivert, 3.9, models.RiskHigh),
			participant("b", models.PersonalityAmbivert, 2.1, models.RiskLow),
			models.SessionLecture,
			0.1 * 0.3 * 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Probability(tt.a, tt.b, tt.context)
			if !almostEqual(got, tt.want) {
				t.Errorf("Probability() = %.9f, want %.9f", got, tt.want)
			}
		})
	}
}

func TestProbability_GPABoundary(t *testing.T) {
	m := New(nil)
	a := participant("a", models.PersonalityAmbivert, 3.0, models.RiskLow)

	// Exactly 0.5 apart: no bonus (strict inequality).
	b := participant("b", models.PersonalityAmbivert, 3.5, models.RiskLow)
	if got := m.Probability(a, b, models.SessionLab); !almostEqual(got, 0.1*0.9) {
		t.Errorf("Probability() at |diff|=0.5 = %.9f, want %.9f", got, 0.1*0.9)
	}

	// Just inside the threshold: bonus applies.
	c := participant("c", models.PersonalityAmbivert, 3.49, models.RiskLow)
	if got := m.Probability(a, c, models.SessionLab); !almostEqual(got, 0.1*0.9*1.2) {
		t.Errorf("Probability() at |diff|<0.5 = %.9f, want %.9f", got, 0.1*0.9*1.2)
	}
}

func TestProbability_Cap(t *testing.T) {
	cfg := config.Default()
	cfg.BaseProbability = 1.0
	m := New(cfg)

	a := participant("a", models.PersonalityExtrovert, 3.0, models.RiskHigh)
	b := participant("b", models.PersonalityExtrovert, 3.1, models.RiskLow)

	if got := m.Probability(a, b, models.SessionGroupWork); got != 0.7 {
		t.Errorf("Probability() = %v, want cap 0.7", got)
	}
}

func TestProbability_OrderIndependent(t *testing.T) {
	m := New(nil)

	pairs := []struct {
		a, b models.Participant
	}{
		{
			participant("a", models.PersonalityExtrovert, 2.3, models.RiskHigh),
			participant("b", models.PersonalityIntrovert, 3.8, models.RiskLow),
		},
		{
			participant("a", models.PersonalityIntrovert, 3.0, models.RiskMedium),
			participant("b", models.PersonalityIntrovert, 3.1, models.RiskLow),
		},
		{
			participant("a", models.PersonalityAmbivert, 2.0, models.RiskLow),
			participant("b", models.PersonalityExtrovert, 2.2, models.RiskHigh),
		},
	}

	for _, context := range []models.SessionType{models.SessionLecture, models.SessionGroupWork, models.SessionLab} {
		for _, pair := range pairs {
			ab := m.Probability(pair.a, pair.b, context)
			ba := m.Probability(pair.b, pair.a, context)
			if !almostEqual(ab, ba) {
				t.Errorf("Probability(%s) not symmetric: %v vs %v", context, ab, ba)
			}
		}
	}
}

// Replacing a partner with a more extroverted one never lowers the
// probability, whatever the rest of the pair looks like.
func TestProbability_PersonalityMonotonic(t *testing.T) {
	m := New(nil)

	others := []models.Participant{
		participant("o1", models.PersonalityIntrovert, 2.2, models.RiskLow),
		participant("o2", models.PersonalityAmbivert, 3.1, models.RiskHigh),
		participant("o3", models.PersonalityExtrovert, 3.9, models.RiskMedium),
	}
	ladder := []models.PersonalityType{
		models.PersonalityIntrovert,
		models.PersonalityAmbivert,
		models.PersonalityExtrovert,
	}

	for _, context := range []models.SessionType{models.SessionLecture, models.SessionTutorial, models.SessionLab, models.SessionGroupWork} {
		for _, other := range others {
			prev := -1.0
			for _, pt := range ladder {
				p := m.Probability(participant("x", pt, 3.0, models.RiskLow), other, context)
				if p < prev {
					t.Errorf("%s with %s: probability decreased along personality ladder: %v -> %v (at %s)",
						context, other.ID, prev, p, pt)
				}
				prev = p
			}
		}
	}
}

func TestProbability_NeverNegative(t *testing.T) {
	cfg := config.Default()
	cfg.BaseProbability = 0
	m := New(cfg)

	a := participant("a", models.PersonalityIntrovert, 2.0, models.RiskHigh)
	b := participant("b", models.PersonalityIntrovert, 2.1, models.RiskHigh)
	if got := m.Probability(a, b, models.SessionLecture); got != 0 {
		t.Errorf("Probability() = %v, want 0", got)
	}
}
