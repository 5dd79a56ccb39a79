package parser

import (
	"path/filepath"
	"strings"

	"github.com/joris-gallot/sweepy/domain"
)

// BuildModuleFacts parses source as filename's dialect (or, for .vue
// files, the preferred <script> block's dialect) and extracts the
// exports, imports, and re-exports declared at the module's top
// level. A parse failure yields an empty, non-nil ModuleFacts rather
// than an error, matching the "individual file failures do not abort
// the run" contract. The failure is not reported: callers cannot tell
// a failed parse from a file with no imports or exports.
func BuildModuleFacts(filename string, source []byte) *domain.ModuleFacts {
	facts := &domain.ModuleFacts{Path: filename}

	dialectFile := filename
	code := source
	if strings.EqualFold(filepath.Ext(filename), ".vue") {
		blocks := ExtractScriptBlocks(source)
		block, ok := PreferredScriptBlock(blocks)
		if !ok {
			return facts
		}
		dialectFile = filename + ScriptExtension(block.Lang)
		code = []byte(block.Code)
	}

	ast, err := ParseForLanguage(dialectFile, code)
	if err != nil || ast == nil {
		return facts
	}

	seenExports := make(map[string]int) // name -> index into facts.Exports, for overload collapsing
	addExport := func(rec domain.ExportRecord) {
		if idx, ok := seenExports[rec.Name]; ok {
			// Overloaded/merged declaration: keep the first record but
			// only keep the TypeOnly flag if every contribution agrees.
			if !rec.TypeOnly {
				facts.Exports[idx].TypeOnly = false
			}
			return
		}
		seenExports[rec.Name] = len(facts.Exports)
		facts.Exports = append(facts.Exports, rec)
	}

	for _, stmt := range ast.Body {
		switch stmt.Type {
		case NodeImportDeclaration:
			extractImport(stmt, facts)
		case NodeExportDefaultDeclaration:
			addExport(domain.ExportRecord{Name: "default", Kind: domain.ExportDefault})
		case NodeExportAllDeclaration:
			extractExportAll(stmt, facts, addExport)
		case NodeExportNamedDeclaration:
			extractExportNamed(stmt, facts, addExport)
		}
	}

	return facts
}

func unquote(raw string) string {
	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if (first == '"' || first == '\'' || first == '`') && first == last {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}

func extractImport(stmt *Node, facts *domain.ModuleFacts) {
	if stmt.Source == nil {
		return
	}
	specifier := unquote(stmt.Source.Raw)

	if len(stmt.Specifiers) == 0 {
		facts.SideEffectOnlyImports = append(facts.SideEffectOnlyImports, specifier)
		return
	}

	var named []domain.NamedBinding
	for _, spec := range stmt.Specifiers {
		switch spec.Type {
		case NodeImportDefaultSpecifier:
			facts.Imports = append(facts.Imports, domain.ImportRecord{
				Specifier: specifier,
				TypeOnly:  stmt.IsType,
				Bindings: domain.Bindings{
					Kind:  domain.BindingDefault,
					Local: spec.Name,
				},
			})
		case NodeImportNamespaceSpecifier:
			facts.Imports = append(facts.Imports, domain.ImportRecord{
				Specifier: specifier,
				TypeOnly:  stmt.IsType,
				Bindings: domain.Bindings{
					Kind:  domain.BindingNamespace,
					Local: spec.Name,
				},
			})
		case NodeImportSpecifier:
			imported := spec.Name
			local := spec.Name
			if spec.Imported != nil {
				imported = spec.Imported.Name
			}
			named = append(named, domain.NamedBinding{
				Imported: imported,
				Local:    local,
				TypeOnly: stmt.IsType || spec.IsType,
			})
		}
	}
	if len(named) > 0 {
		facts.Imports = append(facts.Imports, domain.ImportRecord{
			Specifier: specifier,
			TypeOnly:  stmt.IsType,
			Bindings: domain.Bindings{
				Kind:  domain.BindingNamed,
				Named: named,
			},
		})
	}
}

func extractExportAll(stmt *Node, facts *domain.ModuleFacts, addExport func(domain.ExportRecord)) {
	if stmt.Source == nil {
		return
	}
	specifier := unquote(stmt.Source.Raw)

	if stmt.NSName != "" {
		facts.Reexports = append(facts.Reexports, domain.ReexportRecord{
			Specifier: specifier,
			Kind:      domain.ReexportNamespace,
			Exposed:   stmt.NSName,
		})
		addExport(domain.ExportRecord{Name: stmt.NSName, Kind: domain.ExportNamedAggregate, TypeOnly: stmt.IsType})
		return
	}
	facts.Reexports = append(facts.Reexports, domain.ReexportRecord{
		Specifier: specifier,
		Kind:      domain.ReexportStar,
	})
}

func extractExportNamed(stmt *Node, facts *domain.ModuleFacts, addExport func(domain.ExportRecord)) {
	if stmt.Source != nil {
		// `export { a, b as c } from "m"` - a named re-export.
		specifier := unquote(stmt.Source.Raw)
		var items []domain.ReexportItem
		for _, spec := range stmt.Specifiers {
			source := spec.Name
			exposed := spec.Name
			if spec.Local != nil {
				source = spec.Local.Name
				exposed = spec.Name
			}
			items = append(items, domain.ReexportItem{Source: source, Exposed: exposed, TypeOnly: stmt.IsType || spec.IsType})
		}
		facts.Reexports = append(facts.Reexports, domain.ReexportRecord{
			Specifier: specifier,
			Kind:      domain.ReexportNamed,
			Items:     items,
		})
		return
	}

	if stmt.Declaration != nil {
		for _, name := range declaredNames(stmt.Declaration) {
			addExport(domain.ExportRecord{Name: name, Kind: domain.ExportDeclared, TypeOnly: stmt.IsType})
		}
		return
	}

	// `export { a, b as c }` - local re-export of an in-file binding,
	// treated as a declared export under its exposed name.
	for _, spec := range stmt.Specifiers {
		exposed := spec.Name
		if spec.Local != nil {
			exposed = spec.Name
		}
		addExport(domain.ExportRecord{Name: exposed, Kind: domain.ExportDeclared, TypeOnly: stmt.IsType || spec.IsType})
	}
}

// declaredNames extracts every name bound by an `export`-ed
// declaration: a single name for functions/classes/interfaces/etc, or
// one name per declarator (and, best-effort, per destructured
// binding) for `export const/let/var`.
func declaredNames(decl *Node) []string {
	if decl.Name != "" {
		return []string{decl.Name}
	}
	if decl.Type != NodeVariableDeclaration {
		// interface/type-alias/enum/namespace declarations fall through
		// the generic builder (no dedicated build* method); their name
		// is their first identifier child. An ambient declaration
		// (`declare ...`) wraps the real declaration, whose names are
		// used instead.
		for _, c := range decl.Children {
			if c.Type == NodeIdentifier {
				return []string{c.Name}
			}
		}
		if decl.Type == "ambient_declaration" {
			for _, c := range decl.Children {
				if names := declaredNames(c); len(names) > 0 {
					return names
				}
			}
		}
		return nil
	}
	var names []string
	for _, d := range decl.Declarations {
		if len(d.Children) == 0 {
			continue
		}
		pattern := d.Children[0]
		if pattern.Type == NodeIdentifier {
			names = append(names, pattern.Name)
			continue
		}
		pattern.Walk(func(n *Node) bool {
			if n.Type == NodeIdentifier {
				names = append(names, n.Name)
			}
			return true
		})
	}
	return names
}
