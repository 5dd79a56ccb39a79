// Package resolver turns the specifier string of an import or
// re-export declaration into an absolute on-disk path, the way
// jscan's dependency graph builder resolves relative imports -
// generalized here with an explicit alias table instead of bare
// suffix guessing.
package resolver

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joris-gallot/sweepy/domain"
)

// SpecifierKind classifies a specifier string before resolution.
type SpecifierKind int

const (
	Relative SpecifierKind = iota
	Aliased
	Bare
)

// ClassifySpecifier reports how a specifier should be resolved. A
// specifier is Relative if it starts with "./" or "../", Aliased if
// it matches one of the configured alias prefixes, else Bare (a
// package import, which sweepy never resolves to a file).
func ClassifySpecifier(specifier string, aliases []domain.AliasEntry) (SpecifierKind, *domain.AliasEntry) {
	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") {
		return Relative, nil
	}
	if best := bestAlias(specifier, aliases); best != nil {
		return Aliased, best
	}
	return Bare, nil
}

// bestAlias returns the alias entry whose Prefix is the longest match
// for specifier, breaking ties by declaration order (first wins).
func bestAlias(specifier string, aliases []domain.AliasEntry) *domain.AliasEntry {
	type candidate struct {
		entry domain.AliasEntry
		idx   int
	}
	var matches []candidate
	for i, a := range aliases {
		if strings.HasPrefix(specifier, a.Prefix) {
			matches = append(matches, candidate{a, i})
		}
	}
	if len(matches) == 0 {
		return nil
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if len(matches[i].entry.Prefix) != len(matches[j].entry.Prefix) {
			return len(matches[i].entry.Prefix) > len(matches[j].entry.Prefix)
		}
		return matches[i].idx < matches[j].idx
	})
	best := matches[0].entry
	return &best
}

// Resolver resolves specifier strings found in a project rooted at
// Root against an alias table and an extension/index search order.
type Resolver struct {
	Root       string
	Aliases    []domain.AliasEntry
	Extensions []string
	// stat is overridable in tests.
	stat func(string) (os.FileInfo, error)
}

// New builds a Resolver from a project root and a config. A nil cfg
// uses domain.DefaultConfig().
func New(root string, cfg *domain.Config) *Resolver {
	if cfg == nil {
		cfg = domain.DefaultConfig()
	}
	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = domain.DefaultExtensions
	}
	return &Resolver{
		Root:       root,
		Aliases:    cfg.Aliases,
		Extensions: exts,
		stat:       os.Stat,
	}
}

// Resolve turns the specifier found inside fromFile into an absolute,
// canonicalized path on disk, or ok=false if nothing on disk matches.
func (r *Resolver) Resolve(fromFile, specifier string) (resolved string, ok bool) {
	kind, alias := ClassifySpecifier(specifier, r.Aliases)

	var base string
	switch kind {
	case Relative:
		base = filepath.Join(filepath.Dir(fromFile), specifier)
	case Aliased:
		rest := strings.TrimPrefix(specifier, alias.Prefix)
		target := alias.Target
		if !filepath.IsAbs(target) {
			target = filepath.Join(r.Root, target)
		}
		base = filepath.Join(target, rest)
	case Bare:
		return "", false
	}

	candidate, ok := r.searchCandidates(base)
	if !ok {
		return "", false
	}
	resolved = r.canonicalize(candidate)
	if !underRoot(r.Root, resolved) {
		return "", false
	}
	return resolved, true
}

// underRoot reports whether path lies at or under root once both are
// canonicalized, rejecting relative imports or alias targets that walk
// out of the project (e.g. "../../outside/file.js") so every edge in
// the graph stays inside the tree being analyzed.
func underRoot(root, path string) bool {
	rootClean := CanonicalPath(root)
	rel, err := filepath.Rel(rootClean, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}

// searchCandidates tries base as-is, base+ext for each configured
// extension, then base/index+ext for each extension - jscan's
// resolveImportTarget enumeration order, generalized with the
// configured extension list.
func (r *Resolver) searchCandidates(base string) (string, bool) {
	if r.isFile(base) {
		return base, true
	}
	for _, ext := range r.Extensions {
		if c := base + ext; r.isFile(c) {
			return c, true
		}
	}
	for _, ext := range r.Extensions {
		if c := filepath.Join(base, "index"+ext); r.isFile(c) {
			return c, true
		}
	}
	return "", false
}

func (r *Resolver) isFile(path string) bool {
	info, err := r.stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// canonicalize resolves symlinks and cleans path so that two
// specifiers landing on the same on-disk file collapse to one key.
// When EvalSymlinks fails (rare - the file is guaranteed to exist by
// the caller, but permissions or races can still break this) it falls
// back to a plain Clean.
func (r *Resolver) canonicalize(path string) string {
	return CanonicalPath(path)
}

// CanonicalPath resolves symlinks and cleans path so that two
// specifiers landing on the same on-disk file produce the same key.
// Falls back to a plain Clean when the path cannot be stat'd (it may
// not exist, e.g. a synthetic entry FileID).
func CanonicalPath(path string) string {
	if real, err := filepath.EvalSymlinks(path); err == nil {
		return filepath.Clean(real)
	}
	return filepath.Clean(path)
}
