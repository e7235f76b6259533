// Package engagement derives per-participant engagement/risk records from
// a generated session and its graph metrics.
package engagement

import (
	"time"

	"github.com/kwatanabe/classnet/internal/models"
)

// Scoring constants. The step thresholds and band boundaries are contract
// values shared with the upstream dashboard.
const (
	isolationThreshold = 0.1
	isolationHigh      = 0.8
	isolationLow       = 0.2

	collaborationPoints = 15
	helpSeekingPoints   = 20

	// Trend deadband: the newer half of the history must move by more
	// than 10% against the older half to leave "stable".
	trendDeadband = 0.1
)

// ScoreParams are the inputs to Score.
type ScoreParams struct {
	Participant models.Participant
	Session     *models.SessionRecord

	// ReferenceAvgParticipation is the cohort average participation
	// score the participation gap is measured against.
	ReferenceAvgParticipation float64

	// History optionally carries the participant's per-session event
	// counts, oldest first, for trend detection. Without at least two
	// entries the trend is reported as stable.
	History []int

	// Timestamp stamps the record; zero means time.Now().
	Timestamp time.Time
}

// Score combines one participant's profile, their subset of the session's
// events, and the session's graph metrics into an engagement record.
// Deterministic: the same inputs always produce the same record.
func Score(p ScoreParams) models.EngagementRecord {
	ts := p.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	events := p.Session.EventsInvolving(p.Participant.ID)

	frequency := float64(len(events)) / float64(p.Session.DurationMinutes) * 60

	var avgDuration float64
	if len(events) > 0 {
		var total float64
		for _, e := range events {
			total += e.Duration
		}
		avgDuration = total / float64(len(events))
	}

	// Degree centrality; absent from the map means the participant never
	// interacted.
	position := p.Session.Metrics.Centrality[p.Participant.ID].Degree

	initiated := 0
	collaborations := 0
	helpSeeking := 0
	for _, e := range events {
		if e.Participant1 == p.Participant.ID {
			initiated++
		}
		switch e.Type {
		case models.InteractionCollaboration:
			collaborations++
		case models.InteractionHelpSeeking:
			helpSeeking++
		}
	}

	isolationRisk := isolationLow
	if position < isolationThreshold {
		isolationRisk = isolationHigh
	}

	return models.EngagementRecord{
		ParticipantID:          p.Participant.ID,
		SessionID:              p.Session.ID,
		Timestamp:              ts,
		InteractionFrequency:   frequency,
		AvgInteractionDuration: avgDuration,
		SocialNetworkPosition:  position,
		InitiatesInteractions:  initiated > 0,
		RespondsToInteractions: len(events) > initiated,
		IsolationRisk:          isolationRisk,
		CollaborationScore:     capScore(collaborations * collaborationPoints),
		HelpSeekingScore:       capScore(helpSeeking * helpSeekingPoints),
		PeerInfluenceLevel:     position * 100,
		EngagementTrend:        trend(p.History),
		ParticipationGap:       float64(p.Participant.ParticipationScore) - p.ReferenceAvgParticipation,
		AcademicRiskFlags:      academicRiskFlags(p.Participant, len(events)),
		SocialRiskFlags:        socialRiskFlags(p.Participant, len(events), isolationRisk),
		OverallRiskScore:       overallRiskScore(p.Participant, isolationRisk),
	}
}

func capScore(v int) int {
	if v > 100 {
		return 100
	}
	return v
}

func academicRiskFlags(p models.Participant, eventCount int) []string {
	var flags []string
	if p.GPA < 2.5 {
		flags = append(flags, models.FlagLowGPA)
	}
	if p.ParticipationScore < 40 {
		flags = append(flags, models.FlagLowParticipation)
	}
	if eventCount < 2 {
		flags = append(flags, models.FlagSocialIsolation)
	}
	return flags
}

func socialRiskFlags(p models.Participant, eventCount int, isolationRisk float64) []string {
	var flags []string
	if isolationRisk > 0.5 {
		flags = append(flags, models.FlagSocialIsolation)
	}
	if eventCount == 0 {
		flags = append(flags, models.FlagNoInteractions)
	}
	if p.Personality == models.PersonalityIntrovert && eventCount < 3 {
		flags = append(flags, models.FlagIntrovertUnderengagement)
	}
	return flags
}

// overallRiskScore combines GPA band (0-40), participation band (0-30),
// and isolation (0-30) contributions, clamped at 100.
func overallRiskScore(p models.Participant, isolationRisk float64) float64 {
	var score float64
	switch {
	case p.GPA < 2.0:
		score += 40
	case p.GPA < 2.5:
		score += 25
	case p.GPA < 3.0:
		score += 10
	}
	switch {
	case p.ParticipationScore < 30:
		score += 30
	case p.ParticipationScore < 50:
		score += 20
	case p.ParticipationScore < 70:
		score += 10
	}
	score += isolationRisk * 30
	if score > 100 {
		score = 100
	}
	return score
}

// trend compares the mean event count of the newer half of the history
// against the older half. Without history it is stable by default; no
// randomness is involved.
func trend(history []int) models.EngagementTrend {
	if len(history) < 2 {
		return models.TrendStable
	}
	mid := len(history) / 2
	older := mean(history[:mid])
	newer := mean(history[mid:])
	switch {
	case older == 0 && newer == 0:
		return models.TrendStable
	case newer > older*(1+trendDeadband):
		return models.TrendIncreasing
	case newer < older*(1-trendDeadband):
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

func mean(vals []int) float64 {
	if len(vals) == 0 {
		return 0
	}
	total := 0
	for _, v := range vals {
		total += v
	}
	return float64(total) / float64(len(vals))
}
