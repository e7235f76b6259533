package models

import "time"

// Centrality is one participant's position in the interaction graph.
// Every component is normalized to [0, 1].
type Centrality struct {
	Degree      float64 `json:"degree" yaml:"degree"`
	Betweenness float64 `json:"betweenness" yaml:"betweenness"`
	Closeness   float64 `json:"closeness" yaml:"closeness"`
	Eigenvector float64 `json:"eigenvector" yaml:"eigenvector"`
}

// GraphMetrics is the network analysis of one session's full event set,
// computed once per session and never updated incrementally.
//
// TotalParticipants counts only participants observed in at least one
// event; a roster member who never interacts is invisible here. That
// matches the upstream dashboard's expectations, so it is deliberate
// even though it undercounts isolates.
type GraphMetrics struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	TotalParticipants int `json:"total_participants" yaml:"total_participants"`

	// TotalInteractions is the raw event count, including repeat events
	// between the same pair.
	TotalInteractions int `json:"total_interactions" yaml:"total_interactions"`

	// NetworkDensity is unique edges over n(n-1)/2, in [0, 1].
	NetworkDensity float64 `json:"network_density" yaml:"network_density"`

	// AvgClusteringCoeff averages local clustering over nodes of degree >= 2.
	AvgClusteringCoeff float64 `json:"avg_clustering_coeff" yaml:"avg_clustering_coeff"`

	NumComponents int `json:"num_components" yaml:"num_components"`

	// Centrality maps participant identifier to centrality scores for
	// every participant observed in the event set.
	Centrality map[string]Centrality `json:"centrality_scores" yaml:"centrality_scores"`
}
