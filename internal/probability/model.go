// Package probability implements the multi-factor pairwise interaction
// probability model. The model is pure: the same profiles, context, and
// configuration always produce the same probability.
package probability

import (
	"math"

	"github.com/kwatanabe/classnet/internal/config"
	"github.com/kwatanabe/classnet/internal/models"
)

// Model evaluates the probability that two participants interact at an
// activity peak. Order-independent in its two participants except for the
// introvert-pair dampening, which is symmetric anyway.
type Model struct {
	cfg *config.SimConfig
}

// New creates a probability model. A nil config uses the defaults.
func New(cfg *config.SimConfig) *Model {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Model{cfg: cfg}
}

// Probability returns the chance in [0, MaxProbability] that a and b
// interact at one activity peak of a session with the given context.
//
// Factor order: base, per-participant personality, introvert-pair
// dampening, context, GPA similarity, high-risk adjustment, cap. The
// ordering and constants are contract values (see config.Default).
func (m *Model) Probability(a, b models.Participant, context models.SessionType) float64 {
	p := m.cfg.BaseProbability

	p *= m.personalityFactor(a.Personality)
	p *= m.personalityFactor(b.Personality)

	// Introvert pairs withdraw further than their two individual factors
	// account for.
	if a.Personality == models.PersonalityIntrovert && b.Personality == models.PersonalityIntrovert {
		p *= m.cfg.IntrovertPairDampening
	}

	p *= m.cfg.ContextFactorFor(context)

	// Academically similar participants seek each other out.
	if math.Abs(a.GPA-b.GPA) < m.cfg.GPASimilarityThreshold {
		p *= m.cfg.GPASimilarityBonus
	}

	// High-risk participants seek help during group work and withdraw
	// everywhere else.
	if a.RiskLevel == models.RiskHigh || b.RiskLevel == models.RiskHigh {
		if context == models.SessionGroupWork {
			p *= m.cfg.HighRiskGroupWorkBoost
		} else {
			p *= m.cfg.HighRiskWithdrawal
		}
	}

	if p > m.cfg.MaxProbability {
		p = m.cfg.MaxProbability
	}
	if p < 0 {
		p = 0
	}
	return p
}

func (m *Model) personalityFactor(pt models.PersonalityType) float64 {
	if f, ok := m.cfg.PersonalityFactors[pt]; ok {
		return f
	}
	return 1.0
}
