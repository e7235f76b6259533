package simulation

import (
	"reflect"
	"testing"

	"github.com/kwatanabe/classnet/internal/models"
)

func TestRunDeterministic(t *testing.T) {
	scenario := Scenario{
		Name:            "determinism",
		SessionType:     models.SessionGroupWork,
		DurationMinutes: 120,
		SyntheticCount:  15,
		Sessions:        6,
		Seed:            1234,
	}

	a := NewRunner(t).Run(scenario)
	b := NewRunner(t).Run(scenario)

	if !reflect.DeepEqual(a.Records, b.Records) {
		t.Fatal("same seed produced different runs")
	}

	// Engagement scoring is a pure function of the records.
	for i := range a.Records {
		sa := ScoreSession(a.Records[i], a.Records[:i])
		sb := ScoreSession(b.Records[i], b.Records[:i])
		if !reflect.DeepEqual(sa, sb) {
			t.Fatalf("session %d: engagement scores diverged", i)
		}
	}
}

func TestSeedsProduceDistinctRuns(t *testing.T) {
	base := Scenario{
		Name:           "distinct-seeds",
		SyntheticCount: 10,
		Sessions:       3,
	}

	base.Seed = 1
	a := NewRunner(t).Run(base)
	base.Seed = 2
	b := NewRunner(t).Run(base)

	if reflect.DeepEqual(a.Records, b.Records) {
		t.Error("different seeds produced identical runs")
	}
}
