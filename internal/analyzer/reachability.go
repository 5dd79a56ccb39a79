package analyzer

import "github.com/joris-gallot/sweepy/domain"

// ComputeReachable returns the set of FileIDs reachable from entries
// by following every resolved edge kind (plain imports, side-effect
// imports, and all three re-export kinds) - a plain queue-based BFS,
// the same shape jscan's orphan-file detection uses over string paths,
// generalized to FileID edges.
func ComputeReachable(graph *domain.ProjectGraph, entries []domain.FileID) map[domain.FileID]bool {
	reachable := make(map[domain.FileID]bool, len(graph.Files))
	queue := make([]domain.FileID, 0, len(entries))

	for _, e := range entries {
		if !reachable[e] {
			reachable[e] = true
			queue = append(queue, e)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, edge := range graph.ResolvedImports[cur] {
			if !reachable[edge.Target] {
				reachable[edge.Target] = true
				queue = append(queue, edge.Target)
			}
		}
	}

	return reachable
}
