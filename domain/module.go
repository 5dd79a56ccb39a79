// Package domain holds the plain data types shared across sweepy's
// parsing, resolution, graph, and reporting layers.
package domain

// FileID is a dense, zero-based index assigned to every source file
// discovered while building a ProjectGraph. IDs are assigned in
// lexicographic order of each file's path relative to the project
// root, so the same project tree always yields the same IDs.
type FileID int

// ExportKind classifies how an export was declared.
type ExportKind string

const (
	// ExportDeclared covers named exports of a value, function, class,
	// interface, type alias, or variable (export const x = ...,
	// export function f() {}, export { x }, ...).
	ExportDeclared ExportKind = "declared"
	// ExportDefault covers `export default ...` regardless of whether
	// the defaulted expression is named.
	ExportDefault ExportKind = "default"
	// ExportNamedAggregate covers the name bound by a namespace
	// re-export (export * as ns from "./m"). A plain named re-export
	// (export { x } from "./m") produces no ExportRecord.
	ExportNamedAggregate ExportKind = "named_aggregate"
)

// ExportRecord describes one export surfaced by a file. Overloaded or
// merged declarations (multiple `declare function` overloads, a type
// and a value sharing a name) collapse to a single record per name.
type ExportRecord struct {
	Name string
	Kind ExportKind
	// TypeOnly is true when every declaration contributing to this
	// export name is a type-only export (`export type { T }`).
	TypeOnly bool
}

// BindingKind classifies the shape of an import's bound names.
type BindingKind string

const (
	BindingNamed      BindingKind = "named"
	BindingDefault    BindingKind = "default"
	BindingNamespace  BindingKind = "namespace"
	BindingSideEffect BindingKind = "side_effect"
)

// NamedBinding is one entry of a `{ a, b as c }` import clause.
type NamedBinding struct {
	Imported string
	Local    string
	TypeOnly bool
}

// Bindings is a tagged union describing what an import statement binds
// locally. Exactly the fields relevant to Kind are populated.
type Bindings struct {
	Kind  BindingKind
	Named []NamedBinding
	// Local is the bound local name for BindingDefault and
	// BindingNamespace; unused for Named and SideEffect.
	Local string
}

// ImportRecord describes one `import ... from "specifier"` statement.
type ImportRecord struct {
	Specifier string
	Bindings  Bindings
	TypeOnly  bool
}

// ReexportKind classifies a re-export declaration.
type ReexportKind string

const (
	ReexportStar      ReexportKind = "star"
	ReexportNamed     ReexportKind = "named"
	ReexportNamespace ReexportKind = "namespace"
)

// ReexportItem is one entry of a named re-export clause:
// `export { source as exposed } from "m"`. When the declaration has no
// alias, Source == Exposed.
type ReexportItem struct {
	Source   string
	Exposed  string
	TypeOnly bool
}

// ReexportRecord describes one `export ... from "specifier"`
// declaration.
type ReexportRecord struct {
	Specifier string
	Kind      ReexportKind
	// Items is populated for ReexportNamed.
	Items []ReexportItem
	// Exposed is populated for ReexportNamespace
	// (`export * as ns from "m"`).
	Exposed string
}

// ModuleFacts is everything the parser extracts from a single source
// file: its exports, imports, and re-exports. A file whose parse
// failed, or that was discovered but never successfully read, is
// represented by a zero-value ModuleFacts (no exports, no imports) -
// it still occupies a FileID and can still be reachable.
type ModuleFacts struct {
	Path      string
	RelPath   string
	Exports   []ExportRecord
	Imports   []ImportRecord
	Reexports []ReexportRecord
	// SideEffectOnlyImports lists the specifier of every `import "x"`
	// declaration - a bare import with no binding list.
	SideEffectOnlyImports []string
}

// EdgeKind classifies a resolved edge in the project graph.
type EdgeKind string

const (
	EdgeImport         EdgeKind = "import"
	EdgeReexportStar   EdgeKind = "reexport_star"
	EdgeReexportNamed  EdgeKind = "reexport_named"
	EdgeReexportNS     EdgeKind = "reexport_namespace"
)

// ResolvedEdge is one outgoing edge from a file to another file already
// assigned a FileID, carrying enough information for the usage
// propagator to know what the edge uses or routes.
type ResolvedEdge struct {
	Target   FileID
	Kind     EdgeKind
	Bindings Bindings // populated for EdgeImport
	// Items/Exposed mirror ReexportRecord, populated for the matching
	// reexport edge kinds.
	Items   []ReexportItem
	Exposed string
}

// ProjectGraph is the full set of discovered files and the edges
// between them, keyed by FileID.
type ProjectGraph struct {
	Files           map[FileID]*ModuleFacts
	ResolvedImports map[FileID][]ResolvedEdge
	ByPath          map[string]FileID
}

// NewProjectGraph returns an empty, initialized ProjectGraph.
func NewProjectGraph() *ProjectGraph {
	return &ProjectGraph{
		Files:           make(map[FileID]*ModuleFacts),
		ResolvedImports: make(map[FileID][]ResolvedEdge),
		ByPath:          make(map[string]FileID),
	}
}

// UnusedExport names one export of one file that no reachable importer
// uses.
type UnusedExport struct {
	File string `json:"file"`
	Name string `json:"name"`
}

// Report is the result of analyzing a project: the files reachable
// from the given entries, and the unused exports among them.
type Report struct {
	ReachableFiles []string       `json:"reachableFiles"`
	UnusedExports  []UnusedExport `json:"unusedExports"`
}
