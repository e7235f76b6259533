package simulation

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/kwatanabe/classnet/internal/models"
)

// buildReferenceGraph mirrors a session's interaction graph as a gonum
// undirected graph, returning the participant-to-node mapping.
func buildReferenceGraph(rec *models.SessionRecord) (*simple.UndirectedGraph, map[string]int64) {
	g := simple.NewUndirectedGraph()
	ids := make(map[string]int64)
	next := int64(1)

	node := func(participant string) int64 {
		id, ok := ids[participant]
		if !ok {
			id = next
			next++
			ids[participant] = id
			g.AddNode(simple.Node(id))
		}
		return id
	}

	for _, e := range rec.Interactions {
		a, b := node(e.Participant1), node(e.Participant2)
		if a != b {
			g.SetEdge(simple.Edge{F: simple.Node(a), T: simple.Node(b)})
		}
	}
	return g, ids
}

// The analyzer's component count must agree with an independent graph
// library on generated sessions.
func TestComponentsMatchReferenceLibrary(t *testing.T) {
	for seed := uint64(1); seed <= 8; seed++ {
		result := NewRunner(t).Run(Scenario{
			Name:           fmt.Sprintf("crosscheck-components-%d", seed),
			SessionType:    models.SessionTutorial,
			SyntheticCount: 20,
			Sessions:       3,
			Seed:           seed,
		})

		for i, rec := range result.Records {
			g, _ := buildReferenceGraph(rec)
			want := len(topo.ConnectedComponents(g))
			if rec.Metrics.NumComponents != want {
				t.Errorf("seed %d session %d: NumComponents = %d, reference says %d",
					seed, i, rec.Metrics.NumComponents, want)
			}
		}
	}
}

// Betweenness must agree with the reference implementation after
// normalization by (n-1)(n-2).
func TestBetweennessMatchesReferenceLibrary(t *testing.T) {
	for seed := uint64(1); seed <= 8; seed++ {
		result := NewRunner(t).Run(Scenario{
			Name:           fmt.Sprintf("crosscheck-betweenness-%d", seed),
			SessionType:    models.SessionGroupWork,
			SyntheticCount: 15,
			Sessions:       2,
			Seed:           seed,
		})

		for i, rec := range result.Records {
			g, ids := buildReferenceGraph(rec)
			n := len(ids)
			if n < 3 {
				continue
			}
			norm := float64((n - 1) * (n - 2))

			ref := network.Betweenness(g)
			for participant, nodeID := range ids {
				want := ref[nodeID] / norm
				got := rec.Metrics.Centrality[participant].Betweenness
				if math.Abs(got-want) > 1e-6 {
					t.Errorf("seed %d session %d: %s betweenness = %.9f, reference %.9f",
						seed, i, participant, got, want)
				}
			}
		}
	}
}
