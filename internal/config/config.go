// Package config provides the simulation configuration for classnet.
// All behavioral constants of the interaction model live here as explicit
// data tables so they are inspectable, overridable per deployment via
// YAML, and independently testable.
package config

import (
	"fmt"
	"os"

	"github.com/kwatanabe/classnet/internal/models"
	"gopkg.in/yaml.v3"
)

// SimConfig contains every tunable of the session synthesizer.
type SimConfig struct {
	// BaseProbability is the starting pairwise interaction probability
	// before any multiplier is applied.
	BaseProbability float64 `json:"base_probability" yaml:"base_probability"`

	// MaxProbability caps the final pairwise probability.
	MaxProbability float64 `json:"max_probability" yaml:"max_probability"`

	// PersonalityFactors multiply the probability once per participant.
	PersonalityFactors map[models.PersonalityType]float64 `json:"personality_factors" yaml:"personality_factors"`

	// IntrovertPairDampening applies on top of the two individual
	// introvert factors when both parties are introverts.
	IntrovertPairDampening float64 `json:"introvert_pair_dampening" yaml:"introvert_pair_dampening"`

	// ContextFactors multiply the probability per session type.
	ContextFactors map[models.SessionType]float64 `json:"context_factors" yaml:"context_factors"`

	// GPASimilarityThreshold and GPASimilarityBonus implement the
	// academic-similarity bonus: when |gpaA - gpaB| < threshold the
	// probability is multiplied by the bonus.
	GPASimilarityThreshold float64 `json:"gpa_similarity_threshold" yaml:"gpa_similarity_threshold"`
	GPASimilarityBonus     float64 `json:"gpa_similarity_bonus" yaml:"gpa_similarity_bonus"`

	// HighRiskGroupWorkBoost applies when either party is high-risk and
	// the context is group-work (help-seeking); HighRiskWithdrawal
	// applies in every other context (isolation tendency).
	HighRiskGroupWorkBoost float64 `json:"high_risk_group_work_boost" yaml:"high_risk_group_work_boost"`
	HighRiskWithdrawal     float64 `json:"high_risk_withdrawal" yaml:"high_risk_withdrawal"`

	// ActivityPeaks lists, per session type, the fractional positions in
	// [0, 1] of the session duration at which pairwise interaction is
	// evaluated. Session types absent from the map use FallbackPeaks.
	ActivityPeaks map[models.SessionType][]float64 `json:"activity_peaks" yaml:"activity_peaks"`

	// DurationBases gives the mean interaction duration in seconds per
	// session type; actual durations vary uniformly by +/-50% with a
	// floor of MinEventDuration.
	DurationBases    map[models.SessionType]float64 `json:"duration_bases" yaml:"duration_bases"`
	MinEventDuration float64                        `json:"min_event_duration" yaml:"min_event_duration"`

	// InteractionTypes lists the allowed interaction types per session
	// type; one is drawn uniformly per event.
	InteractionTypes map[models.SessionType][]models.InteractionType `json:"interaction_types" yaml:"interaction_types"`
}

// Fallbacks for session types without table entries ("break" and any
// future type). A single mid-session peak, a one-minute base duration,
// and discussion-only events.
var (
	FallbackPeaks        = []float64{0.5}
	FallbackDurationBase = 60.0
	FallbackTypes        = []models.InteractionType{models.InteractionDiscussion}
)

// Default returns the stock simulation configuration. The constants are
// contract values: overriding them is supported, silently changing the
// defaults is not.
func Default() *SimConfig {
	return &SimConfig{
		BaseProbability: 0.10,
		MaxProbability:  0.7,
		PersonalityFactors: map[models.PersonalityType]float64{
			models.PersonalityExtrovert: 1.5,
			models.PersonalityIntrovert: 0.7,
			models.PersonalityAmbivert:  1.0,
		},
		IntrovertPairDampening: 0.5,
		ContextFactors: map[models.SessionType]float64{
			models.SessionLecture:   0.3,
			models.SessionTutorial:  0.8,
			models.SessionLab:       0.9,
			models.SessionGroupWork: 1.2,
		},
		GPASimilarityThreshold: 0.5,
		GPASimilarityBonus:     1.2,
		HighRiskGroupWorkBoost: 1.3,
		HighRiskWithdrawal:     0.8,
		ActivityPeaks: map[models.SessionType][]float64{
			models.SessionLecture:   {0.1, 0.5, 0.9},
			models.SessionGroupWork: {0.2, 0.4, 0.6, 0.8},
			models.SessionLab:       {0.3, 0.7},
			models.SessionTutorial:  {0.2, 0.6},
		},
		DurationBases: map[models.SessionType]float64{
			models.SessionLecture:   15,
			models.SessionTutorial:  60,
			models.SessionLab:       120,
			models.SessionGroupWork: 180,
		},
		MinEventDuration: 5,
		InteractionTypes: map[models.SessionType][]models.InteractionType{
			models.SessionLecture:   {models.InteractionDiscussion, models.InteractionSocial},
			models.SessionTutorial:  {models.InteractionDiscussion, models.InteractionHelpSeeking, models.InteractionCollaboration},
			models.SessionLab:       {models.InteractionCollaboration, models.InteractionHelpSeeking},
			models.SessionGroupWork: {models.InteractionCollaboration, models.InteractionDiscussion, models.InteractionHelpSeeking},
		},
	}
}

// LoadFromFile reads a YAML config file and overlays it on the defaults.
// Missing fields keep their default values.
func LoadFromFile(path string) (*SimConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// PeaksFor returns the activity-peak schedule for a session type, falling
// back to a single 0.5 peak for unknown types. The second return reports
// whether the type had a dedicated entry.
func (c *SimConfig) PeaksFor(st models.SessionType) ([]float64, bool) {
	if peaks, ok := c.ActivityPeaks[st]; ok && len(peaks) > 0 {
		return peaks, true
	}
	return FallbackPeaks, false
}

// DurationBaseFor returns the mean event duration for a session type.
func (c *SimConfig) DurationBaseFor(st models.SessionType) float64 {
	if base, ok := c.DurationBases[st]; ok {
		return base
	}
	return FallbackDurationBase
}

// TypesFor returns the allowed interaction types for a session type.
func (c *SimConfig) TypesFor(st models.SessionType) []models.InteractionType {
	if types, ok := c.InteractionTypes[st]; ok && len(types) > 0 {
		return types
	}
	return FallbackTypes
}

// ContextFactorFor returns the probability multiplier for a session type.
// Unknown types multiply by 1 rather than zeroing the model out.
func (c *SimConfig) ContextFactorFor(st models.SessionType) float64 {
	if f, ok := c.ContextFactors[st]; ok {
		return f
	}
	return 1.0
}

// Validate rejects out-of-range configuration values. Violations wrap
// models.ErrInvalidParameter.
func (c *SimConfig) Validate() error {
	if c.BaseProbability < 0 || c.BaseProbability > 1 {
		return fmt.Errorf("%w: base_probability %.3f outside [0, 1]", models.ErrInvalidParameter, c.BaseProbability)
	}
	if c.MaxProbability < 0 || c.MaxProbability > 1 {
		return fmt.Errorf("%w: max_probability %.3f outside [0, 1]", models.ErrInvalidParameter, c.MaxProbability)
	}
	for pt, f := range c.PersonalityFactors {
		if f < 0 {
			return fmt.Errorf("%w: personality factor %s is negative", models.ErrInvalidParameter, pt)
		}
	}
	for st, f := range c.ContextFactors {
		if f < 0 {
			return fmt.Errorf("%w: context factor %s is negative", models.ErrInvalidParameter, st)
		}
	}
	if c.IntrovertPairDampening < 0 || c.HighRiskGroupWorkBoost < 0 || c.HighRiskWithdrawal < 0 || c.GPASimilarityBonus < 0 {
		return fmt.Errorf("%w: multipliers must be non-negative", models.ErrInvalidParameter)
	}
	for st, peaks := range c.ActivityPeaks {
		for _, p := range peaks {
			if p < 0 || p > 1 {
				return fmt.Errorf("%w: activity peak %.3f for %s outside [0, 1]", models.ErrInvalidParameter, p, st)
			}
		}
	}
	if c.MinEventDuration <= 0 {
		return fmt.Errorf("%w: min_event_duration must be positive", models.ErrInvalidParameter)
	}
	for st, base := range c.DurationBases {
		if base <= 0 {
			return fmt.Errorf("%w: duration base for %s must be positive", models.ErrInvalidParameter, st)
		}
	}
	return nil
}
