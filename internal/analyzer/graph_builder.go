// Package analyzer builds the project module graph, computes
// reachability from a set of entry files, and propagates export usage
// through it to produce the unused-exports report.
package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/joris-gallot/sweepy/domain"
	"github.com/joris-gallot/sweepy/internal/parser"
	"github.com/joris-gallot/sweepy/internal/resolver"
)

// SourceFile is one discovered file, ready to be parsed into the
// graph.
type SourceFile struct {
	// Path is the absolute on-disk path.
	Path string
	// RelPath is Path relative to the project root, used for FileID
	// assignment order and report output.
	RelPath string
}

// ParseFailure records a file that could not be read. Per the
// error-handling contract, a read failure never aborts graph
// construction; it is recorded here and the file still occupies a
// FileID with empty ModuleFacts. A file that is read but fails to
// parse is not recorded: BuildModuleFacts absorbs that into empty
// ModuleFacts without an error.
type ParseFailure struct {
	Path string
	Err  error
}

func (f ParseFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

// BuildProjectGraph assigns FileIDs to sources (lexicographically by
// RelPath, for deterministic output independent of parse completion
// order), parses every file concurrently, then resolves specifiers
// and assembles edges single-threaded. Read failures are returned
// alongside a fully usable graph rather than aborting the build,
// mirroring jscan's ParallelExecutor aggregation pattern but with
// per-task failures absorbed instead of surfaced as a hard error.
func BuildProjectGraph(ctx context.Context, root string, sources []SourceFile, cfg *domain.Config) (*domain.ProjectGraph, []error) {
	ordered := append([]SourceFile(nil), sources...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].RelPath < ordered[j].RelPath })

	graph := domain.NewProjectGraph()
	factsByID := make([]*domain.ModuleFacts, len(ordered))

	for i, src := range ordered {
		id := domain.FileID(i)
		graph.ByPath[resolver.CanonicalPath(src.Path)] = id
	}

	var failures []error
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency())

	for i, src := range ordered {
		i, src := i, src
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			data, err := os.ReadFile(src.Path)
			if err != nil {
				mu.Lock()
				failures = append(failures, ParseFailure{Path: src.Path, Err: err})
				mu.Unlock()
				factsByID[i] = &domain.ModuleFacts{Path: src.Path, RelPath: src.RelPath}
				return nil
			}
			facts := parser.BuildModuleFacts(src.Path, data)
			facts.RelPath = src.RelPath
			facts.Path = src.Path
			factsByID[i] = facts
			return nil
		})
	}
	// Parse failures never abort the build; only a context
	// cancellation (caller-driven) propagates as an error.
	if err := g.Wait(); err != nil && ctx.Err() != nil {
		return graph, append(failures, err)
	}

	for i, facts := range factsByID {
		graph.Files[domain.FileID(i)] = facts
	}

	res := resolver.New(root, cfg)
	for i, facts := range factsByID {
		id := domain.FileID(i)
		graph.ResolvedImports[id] = resolveEdges(res, graph, facts)
	}

	return graph, failures
}

// resolveEdges turns one file's imports/reexports/side-effect imports
// into edges against already-assigned FileIDs. Unresolved or bare
// specifiers are silently dropped - the originating ImportRecord stays
// in ModuleFacts regardless.
func resolveEdges(res *resolver.Resolver, graph *domain.ProjectGraph, facts *domain.ModuleFacts) []domain.ResolvedEdge {
	var edges []domain.ResolvedEdge

	resolveToID := func(specifier string) (domain.FileID, bool) {
		target, ok := res.Resolve(facts.Path, specifier)
		if !ok {
			return 0, false
		}
		id, ok := graph.ByPath[resolver.CanonicalPath(target)]
		return id, ok
	}

	for _, imp := range facts.Imports {
		if id, ok := resolveToID(imp.Specifier); ok {
			edges = append(edges, domain.ResolvedEdge{Target: id, Kind: domain.EdgeImport, Bindings: imp.Bindings})
		}
	}
	for _, specifier := range facts.SideEffectOnlyImports {
		if id, ok := resolveToID(specifier); ok {
			edges = append(edges, domain.ResolvedEdge{
				Target:   id,
				Kind:     domain.EdgeImport,
				Bindings: domain.Bindings{Kind: domain.BindingSideEffect},
			})
		}
	}
	for _, re := range facts.Reexports {
		id, ok := resolveToID(re.Specifier)
		if !ok {
			continue
		}
		switch re.Kind {
		case domain.ReexportStar:
			edges = append(edges, domain.ResolvedEdge{Target: id, Kind: domain.EdgeReexportStar})
		case domain.ReexportNamed:
			edges = append(edges, domain.ResolvedEdge{Target: id, Kind: domain.EdgeReexportNamed, Items: re.Items})
		case domain.ReexportNamespace:
			edges = append(edges, domain.ResolvedEdge{Target: id, Kind: domain.EdgeReexportNS, Exposed: re.Exposed})
		}
	}
	return edges
}

// EnsureEntries adds any entry file missing from sources so that
// entries always get discovered during graph construction - the
// reachability engine relies on every entry having a FileID, synthetic
// or not.
func EnsureEntries(root string, sources []SourceFile, entries []string) []SourceFile {
	known := make(map[string]bool, len(sources))
	for _, s := range sources {
		known[resolver.CanonicalPath(s.Path)] = true
	}
	out := append([]SourceFile(nil), sources...)
	for _, e := range entries {
		abs := e
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(root, e)
		}
		if known[resolver.CanonicalPath(abs)] {
			continue
		}
		rel, err := filepath.Rel(root, abs)
		if err != nil {
			rel = abs
		}
		out = append(out, SourceFile{Path: abs, RelPath: rel})
		known[resolver.CanonicalPath(abs)] = true
	}
	return out
}

func maxConcurrency() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}
