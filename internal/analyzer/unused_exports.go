package analyzer

import (
	"sort"

	"github.com/joris-gallot/sweepy/domain"
)

type fileName struct {
	file domain.FileID
	name string
}

// propagation carries the mutable state of one FindUnusedExports run:
// which (file, name) pairs are marked used, which files are marked
// "every export used" (the wildcard from a namespace import), and the
// visited sets that guard re-export cycles. A single run reuses one
// set of visited markers across every top-level import edge, which is
// safe because exploring a (file, name) pair is idempotent - once
// marked, revisiting it can only repeat work, never change the
// outcome.
type propagation struct {
	graph        *domain.ProjectGraph
	used         map[domain.FileID]map[string]bool
	wildcard     map[domain.FileID]bool
	visitedName  map[fileName]bool
	visitedFile  map[domain.FileID]bool
}

func newPropagation(graph *domain.ProjectGraph) *propagation {
	return &propagation{
		graph:       graph,
		used:        make(map[domain.FileID]map[string]bool),
		wildcard:    make(map[domain.FileID]bool),
		visitedName: make(map[fileName]bool),
		visitedFile: make(map[domain.FileID]bool),
	}
}

func (p *propagation) markUsed(file domain.FileID, name string) {
	set, ok := p.used[file]
	if !ok {
		set = make(map[string]bool)
		p.used[file] = set
	}
	set[name] = true
}

func (p *propagation) isUsed(file domain.FileID, name string) bool {
	if p.wildcard[file] {
		return true
	}
	return p.used[file][name]
}

// resolveNamedUsage implements rule 2: mark name used on file, then
// follow re-export routing (named takes priority, then the first
// star target that actually exposes name) to find the name's
// ultimate origin, marking that too.
func (p *propagation) resolveNamedUsage(file domain.FileID, name string) {
	key := fileName{file, name}
	if p.visitedName[key] {
		return
	}
	p.visitedName[key] = true
	p.markUsed(file, name)

	for _, edge := range p.graph.ResolvedImports[file] {
		if edge.Kind != domain.EdgeReexportNamed {
			continue
		}
		for _, item := range edge.Items {
			if item.Exposed == name {
				p.resolveNamedUsage(edge.Target, item.Source)
				return
			}
		}
	}

	for _, edge := range p.graph.ResolvedImports[file] {
		if edge.Kind != domain.EdgeReexportStar {
			continue
		}
		if exportsName(p.graph, edge.Target, name, make(map[domain.FileID]bool)) {
			p.resolveNamedUsage(edge.Target, name)
			return
		}
	}
}

// markNamespaceUsed implements rule 4: mark every export of file
// used, then burn through its re-export edges exactly like a fresh
// namespace/named import of each re-export target.
func (p *propagation) markNamespaceUsed(file domain.FileID) {
	if p.visitedFile[file] {
		return
	}
	p.visitedFile[file] = true
	p.wildcard[file] = true

	for _, edge := range p.graph.ResolvedImports[file] {
		switch edge.Kind {
		case domain.EdgeReexportStar, domain.EdgeReexportNS:
			p.markNamespaceUsed(edge.Target)
		case domain.EdgeReexportNamed:
			for _, item := range edge.Items {
				p.resolveNamedUsage(edge.Target, item.Source)
			}
		}
	}
}

// exportsName reports whether file exposes name, directly declared or
// reachable through its own re-export routing - a side-effect-free
// existence check used to pick the first matching star target per
// rule 2, without prematurely marking targets that turn out not to
// have the name.
func exportsName(graph *domain.ProjectGraph, file domain.FileID, name string, visited map[domain.FileID]bool) bool {
	if visited[file] {
		return false
	}
	visited[file] = true

	if facts := graph.Files[file]; facts != nil {
		for _, e := range facts.Exports {
			if e.Name == name {
				return true
			}
		}
	}

	for _, edge := range graph.ResolvedImports[file] {
		switch edge.Kind {
		case domain.EdgeReexportNamed:
			for _, item := range edge.Items {
				if item.Exposed == name && exportsName(graph, edge.Target, item.Source, visited) {
					return true
				}
			}
		case domain.EdgeReexportStar:
			if exportsName(graph, edge.Target, name, visited) {
				return true
			}
		}
	}
	return false
}

// FindUnusedExports runs the usage propagator over every reachable
// file's import edges, then builds the sorted report: every reachable
// file's path, and every declared export among reachable files that
// was never marked used.
func FindUnusedExports(graph *domain.ProjectGraph, reachable map[domain.FileID]bool) *domain.Report {
	p := newPropagation(graph)

	for file := range reachable {
		for _, edge := range graph.ResolvedImports[file] {
			if edge.Kind != domain.EdgeImport {
				continue // reexport edges are routing-only (rules 5-6)
			}
			switch edge.Bindings.Kind {
			case domain.BindingSideEffect:
				// no names marked
			case domain.BindingDefault:
				p.markUsed(edge.Target, "default")
			case domain.BindingNamespace:
				p.markNamespaceUsed(edge.Target)
			case domain.BindingNamed:
				for _, nb := range edge.Bindings.Named {
					p.resolveNamedUsage(edge.Target, nb.Imported)
				}
			}
		}
	}

	report := &domain.Report{}
	for file := range reachable {
		facts := graph.Files[file]
		if facts == nil {
			continue
		}
		report.ReachableFiles = append(report.ReachableFiles, facts.RelPath)
		if p.wildcard[file] {
			continue
		}
		for _, e := range facts.Exports {
			if !p.isUsed(file, e.Name) {
				report.UnusedExports = append(report.UnusedExports, domain.UnusedExport{File: facts.RelPath, Name: e.Name})
			}
		}
	}

	sort.Strings(report.ReachableFiles)
	sort.Slice(report.UnusedExports, func(i, j int) bool {
		a, b := report.UnusedExports[i], report.UnusedExports[j]
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Name < b.Name
	})

	return report
}
