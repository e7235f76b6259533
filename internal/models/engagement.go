package models

import "time"

// EngagementTrend compares a participant's activity against history.
type EngagementTrend string

const (
	TrendIncreasing EngagementTrend = "increasing"
	TrendDecreasing EngagementTrend = "decreasing"
	TrendStable     EngagementTrend = "stable"
)

// Risk flag values emitted by the engagement scorer.
const (
	FlagLowGPA                   = "low_gpa"
	FlagLowParticipation         = "low_participation"
	FlagSocialIsolation          = "social_isolation"
	FlagNoInteractions           = "no_interactions"
	FlagIntrovertUnderengagement = "introvert_underengagement"
)

// EngagementRecord is the derived per-participant, per-session summary
// combining interaction statistics, graph position, and academic profile
// into a bounded risk score. Derived on demand; recomputation from the
// same inputs is deterministic.
type EngagementRecord struct {
	ParticipantID string    `json:"participant_id" yaml:"participant_id"`
	SessionID     string    `json:"session_id" yaml:"session_id"`
	Timestamp     time.Time `json:"timestamp" yaml:"timestamp"`

	// InteractionFrequency is events per hour over the session duration.
	InteractionFrequency float64 `json:"interaction_frequency" yaml:"interaction_frequency"`

	// AvgInteractionDuration is the mean event duration in seconds, 0 if none.
	AvgInteractionDuration float64 `json:"avg_interaction_duration" yaml:"avg_interaction_duration"`

	// SocialNetworkPosition is the participant's degree centrality.
	SocialNetworkPosition float64 `json:"social_network_position" yaml:"social_network_position"`

	InitiatesInteractions  bool `json:"initiates_interactions" yaml:"initiates_interactions"`
	RespondsToInteractions bool `json:"responds_to_interactions" yaml:"responds_to_interactions"`

	// IsolationRisk is a two-level step: 0.8 below the centrality
	// threshold, 0.2 otherwise.
	IsolationRisk float64 `json:"isolation_risk" yaml:"isolation_risk"`

	CollaborationScore int     `json:"collaboration_score" yaml:"collaboration_score"`
	HelpSeekingScore   int     `json:"help_seeking_score" yaml:"help_seeking_score"`
	PeerInfluenceLevel float64 `json:"peer_influence_level" yaml:"peer_influence_level"`

	EngagementTrend EngagementTrend `json:"engagement_trend" yaml:"engagement_trend"`

	// ParticipationGap is the signed deviation from the caller-supplied
	// reference average participation score.
	ParticipationGap float64 `json:"participation_gap" yaml:"participation_gap"`

	AcademicRiskFlags []string `json:"academic_risk_flags" yaml:"academic_risk_flags"`
	SocialRiskFlags   []string `json:"social_risk_flags" yaml:"social_risk_flags"`

	// OverallRiskScore is the combined 0-100 risk score, clamped at 100.
	OverallRiskScore float64 `json:"overall_risk_score" yaml:"overall_risk_score"`
}
