package parser

import "fmt"

// NodeType represents the type of AST node. Node types the builder
// does not need to distinguish (control flow, expressions, ...) keep
// whatever string tree-sitter itself uses; they only ever appear as
// opaque Children of a declaration pattern or statement sweepy does
// not inspect further.
type NodeType string

// Node types sweepy's module-facts extraction actually switches on.
const (
	NodeProgram NodeType = "Program"

	NodeFunction            NodeType = "FunctionDeclaration"
	NodeClass               NodeType = "ClassDeclaration"
	NodeVariableDeclaration NodeType = "VariableDeclaration"
	NodeIdentifier          NodeType = "Identifier"

	NodeImportDeclaration        NodeType = "ImportDeclaration"
	NodeImportSpecifier          NodeType = "ImportSpecifier"
	NodeImportDefaultSpecifier   NodeType = "ImportDefaultSpecifier"
	NodeImportNamespaceSpecifier NodeType = "ImportNamespaceSpecifier"
	NodeExportNamedDeclaration   NodeType = "ExportNamedDeclaration"
	NodeExportDefaultDeclaration NodeType = "ExportDefaultDeclaration"
	NodeExportAllDeclaration     NodeType = "ExportAllDeclaration"
	NodeExportSpecifier          NodeType = "ExportSpecifier"

	NodeStringLiteral NodeType = "StringLiteral"
)

// Location represents the position of a node in the source code.
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// String returns a string representation of the location.
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
}

// Node represents an AST node. Only the fields module-facts
// extraction, Vue script-block handling, and declaration-name
// resolution actually read survive here; the rest of the statement
// and expression grammar collapses into Children, since sweepy never
// inspects it.
type Node struct {
	Type     NodeType
	Location Location
	Children []*Node

	Name string // identifier / declaration name

	Body []*Node // Program's top-level statements

	// Variable declarations
	Declarations []*Node // one per `variable_declarator`

	// Import/export fields
	Source      *Node   // import/re-export source string literal
	Specifiers  []*Node // import/export specifiers
	Declaration *Node   // `export <declaration>`
	Imported    *Node   // import specifier's imported name
	Local       *Node   // export specifier's local name

	Raw string // raw literal text (used for Source.Raw)

	// ESM type-only markers / namespace re-export alias
	IsType bool   // `import type`/`export type`/inline `type` marker
	NSName string // bound name of `export * as ns from "m"`
}

// NewNode creates a new AST node.
func NewNode(nodeType NodeType) *Node {
	return &Node{Type: nodeType}
}

// AddChild adds a child node.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
}

// Walk traverses the AST depth-first and calls the visitor function
// for each node. If the visitor returns false, traversal of that
// branch is stopped.
func (n *Node) Walk(visitor func(*Node) bool) {
	if n == nil {
		return
	}
	if !visitor(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(visitor)
	}
	for _, stmt := range n.Body {
		stmt.Walk(visitor)
	}
	for _, decl := range n.Declarations {
		decl.Walk(visitor)
	}
	for _, spec := range n.Specifiers {
		spec.Walk(visitor)
	}
	if n.Source != nil {
		n.Source.Walk(visitor)
	}
	if n.Declaration != nil {
		n.Declaration.Walk(visitor)
	}
}

// String returns a string representation of the node.
func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s) at %s", n.Type, n.Name, n.Location)
	}
	return fmt.Sprintf("%s at %s", n.Type, n.Location)
}
