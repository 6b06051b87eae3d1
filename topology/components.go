// SPDX-License-Identifier: MIT
// Package: springnet/topology
//
// components.go — adjacency list and BFS connected components.
//
// Determinism:
//   • Neighbour lists follow edge order; components are discovered from the
//     lowest unvisited node upward, so labels are stable for a fixed input.

package topology

// Adjacency returns, for each node in [0, n), the neighbour indices in edge
// order. Edges with out-of-range endpoints must be rejected beforehand
// (ValidateEdges).
// Complexity: O(N + E).
func Adjacency(edges []Edge, n int) [][]int {
	adj := make([][]int, n)
	for _, e := range edges {
		adj[e.I] = append(adj[e.I], e.J)
		adj[e.J] = append(adj[e.J], e.I)
	}

	return adj
}

// Degrees returns the number of springs incident on each node.
func Degrees(edges []Edge, n int) []int {
	deg := make([]int, n)
	for _, e := range edges {
		deg[e.I]++
		deg[e.J]++
	}

	return deg
}

// Components labels every node with its connected-component id and returns
// the labels and the component count. Isolated nodes form their own
// component.
// Complexity: O(N + E).
func Components(edges []Edge, n int) ([]int, int) {
	adj := Adjacency(edges, n)
	label := make([]int, n)
	for i := range label {
		label[i] = -1
	}

	queue := make([]int, 0, n)
	count := 0
	var u int
	for start := 0; start < n; start++ {
		if label[start] >= 0 {
			continue
		}
		label[start] = count
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			u, queue = queue[0], queue[1:]
			for _, v := range adj[u] {
				if label[v] < 0 {
					label[v] = count
					queue = append(queue, v)
				}
			}
		}
		count++
	}

	return label, count
}

// RigidModes is the number of rigid translational zero modes expected for a
// 2D network: two per connected component.
func RigidModes(edges []Edge, n int) int {
	_, c := Components(edges, n)

	return 2 * c
}
