package simulation

import (
	"fmt"
	"testing"

	"github.com/kwatanabe/classnet/internal/models"
)

// Every session type at several roster sizes and seeds must produce
// well-formed events and bounded metrics.
func TestSessionInvariants(t *testing.T) {
	types := []models.SessionType{
		models.SessionLecture, models.SessionTutorial,
		models.SessionLab, models.SessionGroupWork, models.SessionBreak,
	}
	sizes := []int{2, 5, 12, 30}

	for _, st := range types {
		for _, size := range sizes {
			name := fmt.Sprintf("%s-%d", st, size)
			t.Run(name, func(t *testing.T) {
				r := NewRunner(t)
				result := r.Run(Scenario{
					Name:            name,
					SessionType:     st,
					DurationMinutes: 90,
					SyntheticCount:  size,
					Sessions:        4,
					Seed:            uint64(size) + 7,
				})
				AssertEventsWellFormed(t, result)
				AssertMetricsBounded(t, result)
				AssertRiskScoresBounded(t, result)
			})
		}
	}
}

func TestPinnedRosterProfilesFlowThrough(t *testing.T) {
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:        "pinned-roster",
		SessionType: models.SessionTutorial,
		Roster: []ParticipantSpec{
			{ID: "alice", Personality: models.PersonalityExtrovert, GPA: 3.8, Participation: 90},
			{ID: "bob", Personality: models.PersonalityIntrovert, GPA: 2.2, RiskLevel: models.RiskHigh, Participation: 30},
			{ID: "carol"},
		},
		Sessions: 2,
		Seed:     3,
	})

	for i, rec := range result.Records {
		if len(rec.Participants) != 3 {
			t.Fatalf("session %d roster size = %d, want 3", i, len(rec.Participants))
		}
		if rec.Participants[0].ID != "alice" || rec.Participants[0].GPA != 3.8 {
			t.Errorf("session %d: pinned profile not preserved: %+v", i, rec.Participants[0])
		}
		// Zero-field spec gets defaults.
		if rec.Participants[2].Personality != models.PersonalityAmbivert || rec.Participants[2].GPA != 3.0 {
			t.Errorf("session %d: defaults not applied: %+v", i, rec.Participants[2])
		}
	}
}

func TestSessionsAdvanceWeekly(t *testing.T) {
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:           "weekly",
		SyntheticCount: 4,
		Sessions:       3,
		Seed:           5,
	})

	for i := 1; i < len(result.Records); i++ {
		gap := result.Records[i].Date.Sub(result.Records[i-1].Date)
		if gap.Hours() != 7*24 {
			t.Errorf("session %d starts %v after previous, want one week", i, gap)
		}
	}
}
