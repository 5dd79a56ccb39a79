// Package service wires the discovery, parsing, resolution and
// propagation stages into the single entry point the CLI and the root
// package call.
package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/joris-gallot/sweepy/app"
	"github.com/joris-gallot/sweepy/domain"
	"github.com/joris-gallot/sweepy/internal/analyzer"
	"github.com/joris-gallot/sweepy/internal/resolver"
)

// AnalyzerImpl runs a full unused-exports analysis over a project root.
type AnalyzerImpl struct {
	fileHelper *app.FileHelper
}

// NewAnalyzer returns an AnalyzerImpl ready to run.
func NewAnalyzer() *AnalyzerImpl {
	return &AnalyzerImpl{fileHelper: app.NewFileHelper()}
}

// Analyze discovers every JS/TS/Vue source file under root, builds the
// module graph, computes reachability from entries, and propagates
// export usage. entries are paths relative to root, or absolute.
// Read failures never abort the run; they are returned alongside a
// complete Report so a caller can decide how to surface them. A file
// that fails to parse contributes empty facts and is not listed.
func (a *AnalyzerImpl) Analyze(ctx context.Context, root string, entries []string, cfg *domain.Config) (*domain.Report, []error, error) {
	if cfg == nil {
		cfg = domain.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	paths, err := a.fileHelper.CollectJSFiles([]string{root}, true, nil, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("discovering source files: %w", err)
	}

	sources := make([]analyzer.SourceFile, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			continue
		}
		sources = append(sources, analyzer.SourceFile{Path: p, RelPath: rel})
	}
	sources = analyzer.EnsureEntries(root, sources, entries)

	graph, failures := analyzer.BuildProjectGraph(ctx, root, sources, cfg)

	entryIDs, err := resolveEntryIDs(graph, root, entries)
	if err != nil {
		return nil, failures, err
	}

	reachable := analyzer.ComputeReachable(graph, entryIDs)
	report := analyzer.FindUnusedExports(graph, reachable)
	return report, failures, nil
}

func resolveEntryIDs(graph *domain.ProjectGraph, root string, entries []string) ([]domain.FileID, error) {
	ids := make([]domain.FileID, 0, len(entries))
	for _, e := range entries {
		abs := e
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(root, e)
		}
		id, ok := graph.ByPath[resolver.CanonicalPath(abs)]
		if !ok {
			return nil, fmt.Errorf("entry %q was not discovered in the project graph", e)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
