package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/joris-gallot/sweepy/domain"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	abs := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return abs
}

func discoverSources(t *testing.T, root string, relPaths ...string) []SourceFile {
	t.Helper()
	var out []SourceFile
	for _, rel := range relPaths {
		out = append(out, SourceFile{Path: filepath.Join(root, rel), RelPath: rel})
	}
	return out
}

func TestBuildProjectGraphResolvesImportEdges(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.ts", `import { helper } from "./utils"
helper()
`)
	writeFile(t, root, "utils.ts", `export function helper() {}
export const unused = 1
`)

	sources := discoverSources(t, root, "index.ts", "utils.ts")
	graph, failures := BuildProjectGraph(context.Background(), root, sources, domain.DefaultConfig())
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
	if len(graph.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(graph.Files))
	}

	var indexID, utilsID domain.FileID
	for id, facts := range graph.Files {
		switch facts.RelPath {
		case "index.ts":
			indexID = id
		case "utils.ts":
			utilsID = id
		}
	}

	edges := graph.ResolvedImports[indexID]
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge from index.ts, got %d", len(edges))
	}
	if edges[0].Target != utilsID || edges[0].Kind != domain.EdgeImport {
		t.Errorf("unexpected edge: %+v", edges[0])
	}
	if edges[0].Bindings.Kind != domain.BindingNamed || len(edges[0].Bindings.Named) != 1 || edges[0].Bindings.Named[0].Imported != "helper" {
		t.Errorf("unexpected bindings: %+v", edges[0].Bindings)
	}
}

func TestBuildProjectGraphUnresolvedSpecifierIsDropped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.ts", `import { something } from "left-pad"
`)

	sources := discoverSources(t, root, "index.ts")
	graph, failures := BuildProjectGraph(context.Background(), root, sources, domain.DefaultConfig())
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
	for id := range graph.Files {
		if len(graph.ResolvedImports[id]) != 0 {
			t.Errorf("expected no edges for bare specifier, got %+v", graph.ResolvedImports[id])
		}
	}
}

func TestBuildProjectGraphUnreadableFileProducesFailureNotAbort(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.ts", `import "./missing"
`)
	// missing.ts is never written to disk, but is listed as a source
	// (as if discovered and then removed mid-walk); the build must
	// still complete and record a failure rather than aborting.
	sources := discoverSources(t, root, "index.ts", "missing.ts")

	graph, failures := BuildProjectGraph(context.Background(), root, sources, domain.DefaultConfig())
	if len(failures) != 1 {
		t.Fatalf("expected exactly 1 failure, got %d: %v", len(failures), failures)
	}
	if len(graph.Files) != 2 {
		t.Fatalf("expected both files to still occupy a FileID, got %d", len(graph.Files))
	}
}

func TestBuildProjectGraphAliasResolution(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/index.ts", `import { thing } from "@/lib/thing"
`)
	writeFile(t, root, "src/lib/thing.ts", `export const thing = 1
`)

	sources := discoverSources(t, root, "src/index.ts", "src/lib/thing.ts")
	cfg := &domain.Config{Aliases: []domain.AliasEntry{{Prefix: "@/", Target: "src/"}}}
	graph, failures := BuildProjectGraph(context.Background(), root, sources, cfg)
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}

	var indexID domain.FileID
	for id, facts := range graph.Files {
		if facts.RelPath == "src/index.ts" {
			indexID = id
		}
	}
	if len(graph.ResolvedImports[indexID]) != 1 {
		t.Fatalf("expected alias specifier to resolve to an edge")
	}
}

func TestBuildProjectGraphNamedImportBindingsShape(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.ts", `import { a, b as c } from "./utils"
`)
	writeFile(t, root, "utils.ts", `export const a = 1
export const b = 2
`)

	sources := discoverSources(t, root, "index.ts", "utils.ts")
	graph, failures := BuildProjectGraph(context.Background(), root, sources, domain.DefaultConfig())
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}

	var indexID domain.FileID
	for id, facts := range graph.Files {
		if facts.RelPath == "index.ts" {
			indexID = id
		}
	}

	want := domain.Bindings{
		Kind: domain.BindingNamed,
		Named: []domain.NamedBinding{
			{Imported: "a", Local: "a"},
			{Imported: "b", Local: "c"},
		},
	}
	got := graph.ResolvedImports[indexID][0].Bindings
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestEnsureEntriesAddsSyntheticSource(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "entry.ts", `export const x = 1
`)

	sources := EnsureEntries(root, nil, []string{"entry.ts"})
	if len(sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(sources))
	}
	if sources[0].RelPath != "entry.ts" {
		t.Errorf("unexpected RelPath %q", sources[0].RelPath)
	}
}

func TestEnsureEntriesDoesNotDuplicateKnownSource(t *testing.T) {
	root := t.TempDir()
	abs := writeFile(t, root, "entry.ts", `export const x = 1
`)

	known := []SourceFile{{Path: abs, RelPath: "entry.ts"}}
	sources := EnsureEntries(root, known, []string{"entry.ts"})
	if len(sources) != 1 {
		t.Fatalf("expected entry to not be duplicated, got %d sources", len(sources))
	}
}
