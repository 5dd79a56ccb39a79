package analyzer

import (
	"testing"

	"github.com/joris-gallot/sweepy/domain"
)

func TestComputeReachableFollowsAllEdgeKinds(t *testing.T) {
	graph := domain.NewProjectGraph()
	// 0: index -> 1 (import), 1: utils -> 2 (side-effect import), 2: setup -> 3 (star reexport)
	for i := 0; i < 4; i++ {
		graph.Files[domain.FileID(i)] = &domain.ModuleFacts{RelPath: "f"}
	}
	graph.ResolvedImports[0] = []domain.ResolvedEdge{{Target: 1, Kind: domain.EdgeImport}}
	graph.ResolvedImports[1] = []domain.ResolvedEdge{{Target: 2, Kind: domain.EdgeImport, Bindings: domain.Bindings{Kind: domain.BindingSideEffect}}}
	graph.ResolvedImports[2] = []domain.ResolvedEdge{{Target: 3, Kind: domain.EdgeReexportStar}}

	reachable := ComputeReachable(graph, []domain.FileID{0})
	for i := domain.FileID(0); i < 4; i++ {
		if !reachable[i] {
			t.Errorf("expected file %d reachable", i)
		}
	}
}

func TestComputeReachableDoesNotLeak(t *testing.T) {
	graph := domain.NewProjectGraph()
	graph.Files[0] = &domain.ModuleFacts{RelPath: "a"}
	graph.Files[1] = &domain.ModuleFacts{RelPath: "b"}

	reachable := ComputeReachable(graph, []domain.FileID{0})
	if reachable[1] {
		t.Error("unrelated file should not be reachable")
	}
}

func TestComputeReachableHandlesCycles(t *testing.T) {
	graph := domain.NewProjectGraph()
	graph.Files[0] = &domain.ModuleFacts{RelPath: "a"}
	graph.Files[1] = &domain.ModuleFacts{RelPath: "b"}
	graph.ResolvedImports[0] = []domain.ResolvedEdge{{Target: 1, Kind: domain.EdgeImport}}
	graph.ResolvedImports[1] = []domain.ResolvedEdge{{Target: 0, Kind: domain.EdgeImport}}

	reachable := ComputeReachable(graph, []domain.FileID{0})
	if !reachable[0] || !reachable[1] {
		t.Fatal("expected both files reachable despite cycle")
	}
}
