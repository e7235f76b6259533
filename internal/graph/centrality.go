package graph

import "math"

// Power-iteration parameters for eigenvector centrality, matching the
// usual damped-iteration defaults.
const (
	eigenMaxIterations = 100
	eigenTolerance     = 1e-6
)

// bfsDistances returns hop distances from src to every node, -1 where
// unreachable.
func bfsDistances(a *adjacency, src int) []int {
	dist := make([]int, len(a.nodes))
	for i := range dist {
		dist[i] = -1
	}
	dist[src] = 0
	queue := []int{src}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for u := range a.neighbors[v] {
			if dist[u] < 0 {
				dist[u] = dist[v] + 1
				queue = append(queue, u)
			}
		}
	}
	return dist
}

// closeness computes closeness centrality from BFS distance sums, using
// the Wasserman-Faust correction so scores stay in [0, 1] on
// disconnected graphs: ((r-1)/(n-1)) * ((r-1)/sum) with r the size of
// the node's reachable set including itself.
func closeness(a *adjacency) []float64 {
	n := len(a.nodes)
	out := make([]float64, n)
	if n <= 1 {
		return out
	}
	for v := range a.nodes {
		dist := bfsDistances(a, v)
		sum, reachable := 0, 0
		for u, d := range dist {
			if u != v && d > 0 {
				sum += d
				reachable++
			}
		}
		if sum > 0 {
			r := float64(reachable)
			out[v] = (r / float64(n-1)) * (r / float64(sum))
		}
	}
	return out
}

// betweenness computes shortest-path betweenness centrality with
// Brandes' algorithm, normalized by (n-1)(n-2)/2 for an undirected
// graph so scores land in [0, 1].
func betweenness(a *adjacency) []float64 {
	n := len(a.nodes)
	cb := make([]float64, n)
	if n < 3 {
		return cb
	}

	for s := 0; s < n; s++ {
		// Single-source shortest-path counting.
		stack := make([]int, 0, n)
		preds := make([][]int, n)
		sigma := make([]float64, n)
		dist := make([]int, n)
		for i := range dist {
			dist[i] = -1
		}
		sigma[s] = 1
		dist[s] = 0
		queue := []int{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for w := range a.neighbors[v] {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					preds[w] = append(preds[w], v)
				}
			}
		}

		// Dependency accumulation in reverse BFS order.
		delta := make([]float64, n)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range preds[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				cb[w] += delta[w]
			}
		}
	}

	// Each undirected pair was counted from both endpoints; halving and
	// dividing by (n-1)(n-2)/2 collapses to one division.
	norm := float64(n-1) * float64(n-2)
	for v := range cb {
		cb[v] /= norm
	}
	return cb
}

// eigenvector computes eigenvector centrality by power iteration on the
// adjacency matrix, normalized so the most central node scores 1.
func eigenvector(a *adjacency) []float64 {
	n := len(a.nodes)
	out := make([]float64, n)
	if n == 0 || a.edgeCount() == 0 {
		return out
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = 1 / float64(n)
	}
	next := make([]float64, n)
	for iter := 0; iter < eigenMaxIterations; iter++ {
		for v := range next {
			next[v] = 0
		}
		for v := range a.nodes {
			for u := range a.neighbors[v] {
				next[v] += x[u]
			}
		}

		var norm float64
		for _, val := range next {
			norm += val * val
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			return out
		}

		maxDelta := 0.0
		for v := range next {
			next[v] /= norm
			if d := math.Abs(next[v] - x[v]); d > maxDelta {
				maxDelta = d
			}
		}
		copy(x, next)
		if maxDelta < eigenTolerance {
			break
		}
	}

	maxVal := 0.0
	for _, val := range x {
		if val > maxVal {
			maxVal = val
		}
	}
	if maxVal > 0 {
		for v := range x {
			out[v] = x[v] / maxVal
		}
	}
	return out
}
