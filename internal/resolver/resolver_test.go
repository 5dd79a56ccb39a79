package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joris-gallot/sweepy/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestResolveRelativeWithExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "util.ts"), "export const x = 1")
	writeFile(t, filepath.Join(root, "src", "main.ts"), "")

	r := New(root, nil)
	got, ok := r.Resolve(filepath.Join(root, "src", "main.ts"), "./util")
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	want, _ := filepath.EvalSymlinks(filepath.Join(root, "src", "util.ts"))
	if got != filepath.Clean(want) {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestResolveRelativeIndexFallback(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "lib", "index.ts"), "export const x = 1")
	writeFile(t, filepath.Join(root, "src", "main.ts"), "")

	r := New(root, nil)
	got, ok := r.Resolve(filepath.Join(root, "src", "main.ts"), "./lib")
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	if filepath.Base(got) != "index.ts" {
		t.Errorf("expected index.ts, got %q", got)
	}
}

func TestResolveAliasLongestPrefixWins(t *testing.T) {
	root := t.TempDir()
	// "@/" alone would land on src/components/Button.tsx; the longer
	// "@/components/" prefix points at src/ui instead.
	writeFile(t, filepath.Join(root, "src", "components", "Button.tsx"), "")
	writeFile(t, filepath.Join(root, "src", "ui", "Button.tsx"), "")
	writeFile(t, filepath.Join(root, "src", "main.ts"), "")

	cfg := &domain.Config{
		Aliases: []domain.AliasEntry{
			{Prefix: "@/", Target: "src"},
			{Prefix: "@/components/", Target: "src/ui"},
		},
	}
	r := New(root, cfg)

	got, ok := r.Resolve(filepath.Join(root, "src", "main.ts"), "@/components/Button")
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	if filepath.Base(got) != "Button.tsx" {
		t.Errorf("got %q", got)
	}
	if filepath.Base(filepath.Dir(got)) != "ui" {
		t.Errorf("expected the longest prefix @/components/ to win, got %q", got)
	}
}

func TestResolveRelativeEscapingRootFails(t *testing.T) {
	root := t.TempDir()
	parent := filepath.Dir(root)
	writeFile(t, filepath.Join(parent, "outside.ts"), "export const x = 1")
	writeFile(t, filepath.Join(root, "src", "main.ts"), "")

	r := New(root, nil)
	_, ok := r.Resolve(filepath.Join(root, "src", "main.ts"), "../../outside")
	if ok {
		t.Error("expected a relative import escaping the project root to fail resolution")
	}
}

func TestResolveAliasEscapingRootFails(t *testing.T) {
	root := t.TempDir()
	parent := filepath.Dir(root)
	writeFile(t, filepath.Join(parent, "escape", "mod.ts"), "")
	writeFile(t, filepath.Join(root, "main.ts"), "")

	cfg := &domain.Config{
		Aliases: []domain.AliasEntry{
			{Prefix: "@escape/", Target: filepath.Join(parent, "escape")},
		},
	}
	r := New(root, cfg)
	_, ok := r.Resolve(filepath.Join(root, "main.ts"), "@escape/mod")
	if ok {
		t.Error("expected an alias pointing outside the project root to fail resolution")
	}
}

func TestResolveBareSpecifierFails(t *testing.T) {
	root := t.TempDir()
	r := New(root, nil)
	_, ok := r.Resolve(filepath.Join(root, "main.ts"), "react")
	if ok {
		t.Error("expected bare package specifiers to fail resolution")
	}
}

func TestResolveUnknownSpecifierFails(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.ts"), "")
	r := New(root, nil)
	_, ok := r.Resolve(filepath.Join(root, "main.ts"), "./missing")
	if ok {
		t.Error("expected unresolved specifier to fail")
	}
}

func TestClassifySpecifier(t *testing.T) {
	aliases := []domain.AliasEntry{{Prefix: "@/", Target: "src"}}

	if kind, _ := ClassifySpecifier("./x", aliases); kind != Relative {
		t.Errorf("expected Relative, got %v", kind)
	}
	if kind, _ := ClassifySpecifier("../x", aliases); kind != Relative {
		t.Errorf("expected Relative, got %v", kind)
	}
	if kind, _ := ClassifySpecifier("@/x", aliases); kind != Aliased {
		t.Errorf("expected Aliased, got %v", kind)
	}
	if kind, _ := ClassifySpecifier("lodash", aliases); kind != Bare {
		t.Errorf("expected Bare, got %v", kind)
	}
}
