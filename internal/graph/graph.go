// Package graph builds the undirected interaction graph of a session and
// derives its network metrics: density, clustering, connected components,
// and degree/closeness/betweenness/eigenvector centrality.
package graph

import (
	"time"

	"github.com/kwatanabe/classnet/internal/models"
)

// adjacency is the simple undirected graph over participants observed in
// at least one event. Node order follows the roster, then first
// appearance in the event list, so metric output is stable for a given
// input.
type adjacency struct {
	nodes     []string
	index     map[string]int
	neighbors []map[int]struct{}
}

func buildAdjacency(events []models.InteractionEvent, participantIDs []string) *adjacency {
	observed := make(map[string]bool, len(participantIDs))
	for _, e := range events {
		observed[e.Participant1] = true
		observed[e.Participant2] = true
	}

	a := &adjacency{index: make(map[string]int)}
	add := func(id string) int {
		if i, ok := a.index[id]; ok {
			return i
		}
		i := len(a.nodes)
		a.nodes = append(a.nodes, id)
		a.index[id] = i
		a.neighbors = append(a.neighbors, make(map[int]struct{}))
		return i
	}

	// Roster order first; participants who never interact stay out of
	// the graph entirely.
	for _, id := range participantIDs {
		if observed[id] {
			add(id)
		}
	}
	for _, e := range events {
		i := add(e.Participant1)
		j := add(e.Participant2)
		if i == j {
			continue
		}
		a.neighbors[i][j] = struct{}{}
		a.neighbors[j][i] = struct{}{}
	}
	return a
}

// edgeCount returns the number of unique undirected edges.
func (a *adjacency) edgeCount() int {
	total := 0
	for _, nb := range a.neighbors {
		total += len(nb)
	}
	return total / 2
}

// Compute derives the graph metrics for one session's full event set.
// Pure function of its inputs apart from the supplied timestamp; calling
// it twice on the identical event set yields identical output.
func Compute(events []models.InteractionEvent, participantIDs []string, now time.Time) models.GraphMetrics {
	a := buildAdjacency(events, participantIDs)
	n := len(a.nodes)

	m := models.GraphMetrics{
		Timestamp:         now,
		TotalParticipants: n,
		TotalInteractions: len(events),
		Centrality:        make(map[string]models.Centrality, n),
	}
	if n == 0 {
		return m
	}

	if n > 1 {
		maxEdges := float64(n) * float64(n-1) / 2
		m.NetworkDensity = float64(a.edgeCount()) / maxEdges
	}
	m.AvgClusteringCoeff = avgClustering(a)
	m.NumComponents = countComponents(a)

	bet := betweenness(a)
	clo := closeness(a)
	eig := eigenvector(a)
	for i, id := range a.nodes {
		var degree float64
		if n > 1 {
			degree = float64(len(a.neighbors[i])) / float64(n-1)
		}
		m.Centrality[id] = models.Centrality{
			Degree:      degree,
			Betweenness: bet[i],
			Closeness:   clo[i],
			Eigenvector: eig[i],
		}
	}
	return m
}

// avgClustering averages the local clustering coefficient over nodes of
// degree >= 2. Nodes with fewer than two neighbors are excluded from the
// average entirely, not counted as zero.
func avgClustering(a *adjacency) float64 {
	var total float64
	qualifying := 0
	for v := range a.nodes {
		nb := make([]int, 0, len(a.neighbors[v]))
		for u := range a.neighbors[v] {
			nb = append(nb, u)
		}
		if len(nb) < 2 {
			continue
		}
		links := 0
		for i := 0; i < len(nb); i++ {
			for j := i + 1; j < len(nb); j++ {
				if _, ok := a.neighbors[nb[i]][nb[j]]; ok {
					links++
				}
			}
		}
		possible := len(nb) * (len(nb) - 1) / 2
		total += float64(links) / float64(possible)
		qualifying++
	}
	if qualifying == 0 {
		return 0
	}
	return total / float64(qualifying)
}

// countComponents counts connected components with an iterative DFS, one
// traversal per unvisited node.
func countComponents(a *adjacency) int {
	visited := make([]bool, len(a.nodes))
	components := 0
	for start := range a.nodes {
		if visited[start] {
			continue
		}
		components++
		stack := []int{start}
		visited[start] = true
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for u := range a.neighbors[v] {
				if !visited[u] {
					visited[u] = true
					stack = append(stack, u)
				}
			}
		}
	}
	return components
}
