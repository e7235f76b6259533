package simulation

import (
	"testing"

	"github.com/kwatanabe/classnet/internal/models"
)

// AssertEventsWellFormed asserts that every event of every session
// validates, carries the session's identifier and context, and names only
// rostered participants.
func AssertEventsWellFormed(t *testing.T, result Result) {
	t.Helper()
	for i, rec := range result.Records {
		rostered := make(map[string]bool, len(rec.Participants))
		for _, p := range rec.Participants {
			rostered[p.ID] = true
		}
		for _, e := range rec.Interactions {
			if err := e.Validate(); err != nil {
				t.Errorf("AssertEventsWellFormed: session %d: event %s invalid: %v", i, e.ID, err)
			}
			if e.SessionID != rec.ID {
				t.Errorf("AssertEventsWellFormed: session %d: event %s carries session %s", i, e.ID, e.SessionID)
			}
			if e.Context != rec.SessionType {
				t.Errorf("AssertEventsWellFormed: session %d: event context %s, session type %s", i, e.Context, rec.SessionType)
			}
			if !rostered[e.Participant1] || !rostered[e.Participant2] {
				t.Errorf("AssertEventsWellFormed: session %d: event %s names unrostered participant", i, e.ID)
			}
			if e.Participant1 == e.Participant2 {
				t.Errorf("AssertEventsWellFormed: session %d: event %s is a self-interaction", i, e.ID)
			}
		}
	}
}

// AssertMetricsBounded asserts that every session's graph metrics stay in
// their documented ranges: density, clustering, and all four centrality
// measures in [0, 1], and counts consistent with the event list.
func AssertMetricsBounded(t *testing.T, result Result) {
	t.Helper()
	for i, rec := range result.Records {
		m := rec.Metrics
		if m.TotalInteractions != len(rec.Interactions) {
			t.Errorf("AssertMetricsBounded: session %d: TotalInteractions %d, events %d", i, m.TotalInteractions, len(rec.Interactions))
		}
		if m.TotalParticipants > len(rec.Participants) {
			t.Errorf("AssertMetricsBounded: session %d: TotalParticipants %d exceeds roster %d", i, m.TotalParticipants, len(rec.Participants))
		}
		inUnit(t, i, "NetworkDensity", m.NetworkDensity)
		inUnit(t, i, "AvgClusteringCoeff", m.AvgClusteringCoeff)
		if m.NumComponents < 0 || m.NumComponents > m.TotalParticipants {
			t.Errorf("AssertMetricsBounded: session %d: NumComponents %d with %d participants", i, m.NumComponents, m.TotalParticipants)
		}
		for id, c := range m.Centrality {
			inUnit(t, i, id+" degree", c.Degree)
			inUnit(t, i, id+" betweenness", c.Betweenness)
			inUnit(t, i, id+" closeness", c.Closeness)
			inUnit(t, i, id+" eigenvector", c.Eigenvector)
		}
	}
}

func inUnit(t *testing.T, session int, name string, v float64) {
	t.Helper()
	if v < 0 || v > 1 {
		t.Errorf("session %d: %s = %v outside [0, 1]", session, name, v)
	}
}

// AssertEventCountWithin asserts that every session's event count falls
// in [min, max].
func AssertEventCountWithin(t *testing.T, result Result, min, max int) {
	t.Helper()
	for i, rec := range result.Records {
		if n := len(rec.Interactions); n < min || n > max {
			t.Errorf("AssertEventCountWithin: session %d: %d events not in [%d, %d]", i, n, min, max)
		}
	}
}

// AssertRiskScoresBounded asserts that every engagement record derived
// from every session carries a risk score in [0, 100] and non-negative
// sub-scores.
func AssertRiskScoresBounded(t *testing.T, result Result) {
	t.Helper()
	for i, rec := range result.Records {
		for id, er := range ScoreSession(rec, result.Records[:i]) {
			if er.OverallRiskScore < 0 || er.OverallRiskScore > 100 {
				t.Errorf("AssertRiskScoresBounded: session %d: %s risk %v outside [0, 100]", i, id, er.OverallRiskScore)
			}
			if er.CollaborationScore < 0 || er.CollaborationScore > 100 {
				t.Errorf("AssertRiskScoresBounded: session %d: %s collaboration %d outside [0, 100]", i, id, er.CollaborationScore)
			}
			if er.HelpSeekingScore < 0 || er.HelpSeekingScore > 100 {
				t.Errorf("AssertRiskScoresBounded: session %d: %s help-seeking %d outside [0, 100]", i, id, er.HelpSeekingScore)
			}
			if er.InteractionFrequency < 0 || er.AvgInteractionDuration < 0 {
				t.Errorf("AssertRiskScoresBounded: session %d: %s negative activity stats", i, id)
			}
		}
	}
}

// MeanEventsPerSession returns the average event count across all sessions.
func MeanEventsPerSession(result Result) float64 {
	if len(result.Records) == 0 {
		return 0
	}
	total := 0
	for _, rec := range result.Records {
		total += len(rec.Interactions)
	}
	return float64(total) / float64(len(result.Records))
}

// CountFlagged counts participants carrying the given social risk flag in
// the final session.
func CountFlagged(result Result, flag string) int {
	if len(result.Records) == 0 {
		return 0
	}
	last := result.Records[len(result.Records)-1]
	count := 0
	for _, er := range ScoreSession(last, result.Records[:len(result.Records)-1]) {
		for _, f := range er.SocialRiskFlags {
			if f == flag {
				count++
				break
			}
		}
	}
	return count
}

// FinalTrend returns the engagement trend of one participant after the
// last session, with the full run as history.
func FinalTrend(result Result, participantID string) models.EngagementTrend {
	if len(result.Records) == 0 {
		return models.TrendStable
	}
	last := result.Records[len(result.Records)-1]
	return ScoreSession(last, result.Records[:len(result.Records)-1])[participantID].EngagementTrend
}
